package circuit_breaker

import (
	"errors"
	"sync"
	"time"
)

type Status uint8

const (
	Closed   Status = 1
	Open     Status = 2
	HalfOpen Status = 3
)

func (s Status) String() string {
	switch s {
	case Closed:
		return "CLOSED"
	case Open:
		return "OPEN"
	case HalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

type Config struct {
	// RecordLength is the size of the window of tracked calls.
	RecordLength int `envconfig:"CB_RECORD_LENGTH" default:"10"`
	// Timeout is how long the breaker stays open before probing.
	Timeout time.Duration `envconfig:"CB_TIMEOUT" default:"30s"`
	// Percentile is the failure ratio of the window that opens the breaker.
	Percentile float64 `envconfig:"CB_PERCENTILE" default:"0.5"`
	// RecoveryRequests successful probes close a half-open breaker.
	RecoveryRequests int `envconfig:"CB_RECOVERY_REQUESTS" default:"3"`
}

type circuitBreaker struct {
	mu    sync.Mutex
	state Status

	recordLength     int
	timeout          time.Duration
	percentile       float64
	recoveryRequests int

	lastAttemptedAt time.Time
	// buffer is a ring of call outcomes, true meaning failed.
	buffer       []bool
	pos          int
	successCount int
}

type CircuitBreaker interface {
	Call(service func() error) error
	State() Status
	Reset()
}

func New(cfg Config) CircuitBreaker {
	if cfg.RecordLength <= 0 {
		cfg.RecordLength = 1
	}
	return &circuitBreaker{
		state:            Closed,
		recordLength:     cfg.RecordLength,
		timeout:          cfg.Timeout,
		percentile:       cfg.Percentile,
		buffer:           make([]bool, cfg.RecordLength),
		recoveryRequests: cfg.RecoveryRequests,
	}
}

var (
	ErrOpenCB = errors.New("circuit breaker is open")
)

func (cb *circuitBreaker) Call(service func() error) error {
	cb.mu.Lock()
	if cb.state == Open {
		if time.Since(cb.lastAttemptedAt) > cb.timeout {
			cb.state = HalfOpen
			cb.successCount = 0
		} else {
			cb.mu.Unlock()
			return ErrOpenCB
		}
	}
	cb.mu.Unlock()

	err := service()

	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.buffer[cb.pos] = err != nil
	cb.pos = (cb.pos + 1) % cb.recordLength

	if cb.state == HalfOpen {
		if err != nil {
			cb.trip()
		} else {
			cb.successCount++
			if cb.successCount >= cb.recoveryRequests {
				cb.reset()
			}
		}
		return err
	}

	fails := 0
	for _, failed := range cb.buffer {
		if failed {
			fails++
		}
	}
	if float64(fails)/float64(cb.recordLength) >= cb.percentile {
		cb.trip()
	}

	return err
}

func (cb *circuitBreaker) State() Status {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

func (cb *circuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.reset()
}

func (cb *circuitBreaker) trip() {
	cb.state = Open
	cb.successCount = 0
	cb.lastAttemptedAt = time.Now()
}

func (cb *circuitBreaker) reset() {
	for i := range cb.buffer {
		cb.buffer[i] = false
	}
	cb.successCount = 0
	cb.pos = 0
	cb.state = Closed
}
