// Package circuitbreaker wraps outbound calls so a failing dependency is skipped
// for a while instead of being hit on every request.
package circuitbreaker

import (
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// ErrOpen is returned while the breaker rejects calls
var ErrOpen = errors.New("circuit breaker is open")

type Settings struct {
	Name        string
	MaxFailures uint32        // consecutive failures that trip the breaker
	OpenTimeout time.Duration // how long the breaker stays open before probing
}

type Breaker struct {
	cb *gobreaker.CircuitBreaker[struct{}]
}

func New(s Settings, logger *zap.Logger) *Breaker {
	if logger == nil {
		logger = zap.NewNop()
	}
	maxFailures := s.MaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}

	cb := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:    s.Name,
		Timeout: s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &Breaker{cb: cb}
}

// Do runs fn through the breaker
func (b *Breaker) Do(fn func() error) error {
	_, err := b.cb.Execute(func() (struct{}, error) {
		return struct{}{}, fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrOpen
	}
	return err
}

// Open reports whether calls are currently rejected
func (b *Breaker) Open() bool {
	return b.cb.State() == gobreaker.StateOpen
}
