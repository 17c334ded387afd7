package health

import (
	"context"
	"fmt"
)

// Checker represents a dependency health check.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// Report maps each checker name to "ok" or its error text.
type Report map[string]string

// ReadinessUseCase describes readiness verification.
type ReadinessUseCase interface {
	// Ready runs every checker; the error names the first one that failed.
	Ready(ctx context.Context) (Report, error)
}

type service struct {
	checkers []Checker
}

// NewService aggregates dependency checkers.
func NewService(checkers ...Checker) ReadinessUseCase {
	return &service{checkers: checkers}
}

func (s *service) Ready(ctx context.Context) (Report, error) {
	report := make(Report, len(s.checkers))
	var firstErr error
	for _, ch := range s.checkers {
		if err := ch.Check(ctx); err != nil {
			report[ch.Name()] = err.Error()
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %w", ch.Name(), err)
			}
			continue
		}
		report[ch.Name()] = "ok"
	}
	return report, firstErr
}
