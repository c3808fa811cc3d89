package sat

import (
	"bufio"
	"compress/gzip"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// MaxVariables bounds the variable count so that the engine's 'index <= vars'
// idiom and the vars+1 sized arrays cannot overflow.
const MaxVariables = math.MaxInt32 - 1

// ReadDIMACS parses a DIMACS CNF formula. The format is relaxed: the header
// clause and variable counts are not enforced, and variables above the
// declared count are accepted (Variables then reflects the largest one seen).
func ReadDIMACS(r io.Reader) (*SAT, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	instance := &SAT{}
	seenHeader := false
	clause := []int{}
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		// Empty lines, 'c' comments and '%' trailer lines carry no clauses
		if line == "" || strings.HasPrefix(line, "c") || strings.HasPrefix(line, "%") {
			continue
		}

		if !seenHeader {
			fields := strings.Fields(line)
			if len(fields) != 4 || fields[0] != "p" || fields[1] != "cnf" {
				return nil, errors.Errorf("line %d: expected 'p cnf <vars> <clauses>', got %q", lineNo, line)
			}
			variables, err := strconv.Atoi(fields[2])
			if err != nil || variables < 0 {
				return nil, errors.Errorf("line %d: invalid variable count %q", lineNo, fields[2])
			}
			if _, err := strconv.Atoi(fields[3]); err != nil {
				return nil, errors.Errorf("line %d: invalid clause count %q", lineNo, fields[3])
			}
			instance.Variables = variables
			seenHeader = true
			continue
		}

		for _, field := range strings.Fields(line) {
			literal, err := strconv.Atoi(field)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: invalid literal %q", lineNo, field)
			}
			if literal == 0 {
				instance.Clauses = append(instance.Clauses, clause)
				clause = []int{}
				continue
			}
			variable := literal
			if variable < 0 {
				variable = -variable
			}
			if variable > instance.Variables {
				instance.Variables = variable
			}
			clause = append(clause, literal)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading DIMACS input")
	}
	if !seenHeader {
		return nil, errors.New("missing 'p cnf <vars> <clauses>' header")
	}
	if len(clause) > 0 { // a final clause without its terminating zero
		instance.Clauses = append(instance.Clauses, clause)
	}
	if instance.Variables > MaxVariables {
		return nil, errors.Errorf("can not support %d variables", instance.Variables)
	}
	return instance, nil
}

// OpenDIMACS reads a formula from path, transparently unwrapping gzip
// compressed files by their '.gz' suffix.
func OpenDIMACS(path string) (*SAT, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open %q", path)
	}
	defer file.Close()

	var reader io.Reader = file
	if strings.HasSuffix(path, ".gz") {
		unzipped, err := gzip.NewReader(file)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot uncompress %q", path)
		}
		defer unzipped.Close()
		reader = unzipped
	}

	instance, err := ReadDIMACS(reader)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot parse %q", path)
	}
	return instance, nil
}
