package backbone

import (
	"fmt"
	"sync"
	"time"
)

// Time buckets of the profile. Solving intervals are attributed to first,
// sat/satMax or unsat/unsatMax once their verdict is known; flip and check
// intervals are timed as explicit frames.
const (
	bucketSolving = "solving"
	bucketFlip    = "flip"
	bucketCheck   = "check"
)

// Snapshot is a read-only copy of the counters, safe to hand to the signal
// path and the reporter.
type Snapshot struct {
	Backbones int
	Dropped   int
	Filtered  int
	Flipped   int
	Fixed     int
	Checked   int

	Calls        int
	SatCalls     int
	UnsatCalls   int
	UnknownCalls int

	First    float64
	Sat      float64
	SatMax   float64
	Unsat    float64
	UnsatMax float64
	Unknown  float64
	Solving  float64
	Flip     float64
	Check    float64
}

type timerFrame struct {
	bucket  string
	start   time.Time
	elapsed float64 // accumulated while inner frames were not running
}

// Statistics owns every counter and time accumulator of a run. All methods
// are safe for the signal goroutine to race with the engine: state is
// guarded by a mutex and exposed only through Snapshot.
type Statistics struct {
	mu     sync.Mutex
	snap   Snapshot
	frames []timerFrame
}

func NewStatistics() *Statistics {
	return &Statistics{}
}

func (s *Statistics) AddBackbone() { s.add(func(c *Snapshot) { c.Backbones++ }) }
func (s *Statistics) AddDropped()  { s.add(func(c *Snapshot) { c.Dropped++ }) }
func (s *Statistics) AddFiltered() { s.add(func(c *Snapshot) { c.Filtered++ }) }
func (s *Statistics) AddFlipped()  { s.add(func(c *Snapshot) { c.Flipped++ }) }
func (s *Statistics) AddFixed()    { s.add(func(c *Snapshot) { c.Fixed++ }) }
func (s *Statistics) AddChecked()  { s.add(func(c *Snapshot) { c.Checked++ }) }

func (s *Statistics) add(update func(*Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	update(&s.snap)
}

// Start opens a timer frame for bucket, pausing the enclosing frame.
func (s *Statistics) Start(bucket string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	if n := len(s.frames); n > 0 {
		outer := &s.frames[n-1]
		outer.elapsed += now.Sub(outer.start).Seconds()
	}
	s.frames = append(s.frames, timerFrame{bucket: bucket, start: now})
}

// Stop closes the innermost frame, adds its time to the bucket and resumes
// the enclosing frame. It returns the frame's elapsed seconds.
func (s *Statistics) Stop() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	n := len(s.frames)
	if n == 0 {
		panic("backbone: timer stop without start")
	}
	frame := s.frames[n-1]
	s.frames = s.frames[:n-1]
	delta := frame.elapsed + now.Sub(frame.start).Seconds()
	s.addToBucket(frame.bucket, delta)
	if n > 1 {
		s.frames[n-2].start = now
	}
	return delta
}

func (s *Statistics) addToBucket(bucket string, delta float64) {
	switch bucket {
	case bucketSolving:
		s.snap.Solving += delta
	case bucketFlip:
		s.snap.Flip += delta
	case bucketCheck:
		s.snap.Check += delta
	default:
		panic(fmt.Sprintf("backbone: unknown time bucket %q", bucket))
	}
}

// RecordSolve attributes a finished solving interval to its verdict buckets.
func (s *Statistics) RecordSolve(satisfiable bool, delta float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Calls++
	if s.snap.Calls == 1 {
		s.snap.First = delta
	}
	if satisfiable {
		s.snap.SatCalls++
		s.snap.Sat += delta
		if delta > s.snap.SatMax {
			s.snap.SatMax = delta
		}
	} else {
		s.snap.UnsatCalls++
		s.snap.Unsat += delta
		if delta > s.snap.UnsatMax {
			s.snap.UnsatMax = delta
		}
	}
}

// Snapshot returns a copy of the counters.
func (s *Statistics) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Interrupt closes any open frames and returns the resulting counters. Called
// from the signal path: an open solving frame goes to the unknown bucket and
// counts as an interrupted (unknown) call, other frames go to their own
// bucket.
func (s *Statistics) Interrupt() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for n := len(s.frames); n > 0; n = len(s.frames) {
		frame := s.frames[n-1]
		s.frames = s.frames[:n-1]
		delta := frame.elapsed + now.Sub(frame.start).Seconds()
		if frame.bucket == bucketSolving {
			s.snap.Unknown += delta
			s.snap.Solving += delta
			s.snap.Calls++
			s.snap.UnknownCalls++
		} else {
			s.addToBucket(frame.bucket, delta)
		}
	}
	return s.snap
}
