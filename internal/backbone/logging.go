package backbone

import (
	"io"

	"github.com/sirupsen/logrus"
)

// commentFormatter renders every entry as a DIMACS comment line. Debug
// entries are tagged so extensive logging is recognizable in the stream.
type commentFormatter struct{}

func (commentFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	prefix := "c "
	if entry.Level == logrus.DebugLevel {
		prefix = "c LOGGING "
	}
	if entry.Message == "" {
		return []byte("c\n"), nil
	}
	return []byte(prefix + entry.Message + "\n"), nil
}

// NewLogger builds the engine logger for a verbosity level. All lines go to
// out (stdout in production) as 'c ' comments; quiet suppresses everything.
func NewLogger(verbosity int, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(commentFormatter{})
	switch {
	case verbosity < 0:
		logger.SetLevel(logrus.ErrorLevel)
	case verbosity == VerbosityLogging:
		logger.SetLevel(logrus.DebugLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}
	return logger
}

// line emits a bare 'c' separator like the message helpers of the classic
// DIMACS tools.
func line(logger *logrus.Logger) {
	if logger.IsLevelEnabled(logrus.InfoLevel) {
		logger.Info("")
	}
}
