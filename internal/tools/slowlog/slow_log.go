package slowlog

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type Logger interface {
	Start(name string)
	Stop(name string) time.Duration
}

// slowLogger times named breakpoints. Starting a running name restarts it.
type slowLogger struct {
	log           *zerolog.Logger
	ongoingTimers map[string]time.Time
	sync.Mutex
}

func (s *slowLogger) Start(name string) {
	s.Lock()
	s.ongoingTimers[name] = time.Now()
	s.Unlock()
}

// Stop logs at debug level and returns zero for names that were never started.
func (s *slowLogger) Stop(name string) time.Duration {
	s.Lock()
	defer s.Unlock()

	start, ok := s.ongoingTimers[name]
	if !ok {
		return 0
	}
	delete(s.ongoingTimers, name)

	duration := time.Since(start)

	s.log.Debug().
		Float64("duration", duration.Seconds()).
		Str("breakpoint_name", name).
		Msg("")

	return duration
}

// Measure times fn under name.
func Measure(s Logger, name string, fn func() error) error {
	s.Start(name)
	defer s.Stop(name)

	return fn()
}

func CreateLogger(log *zerolog.Logger) *slowLogger {
	logger := log.With().Str("label", "slowlog").Logger()
	return &slowLogger{
		log:           &logger,
		ongoingTimers: make(map[string]time.Time),
	}
}
