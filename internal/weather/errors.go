package weather

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Terminal error classes. Every error returned by the resolver and the
// orchestrator wraps exactly one of these.
var (
	ErrInvalidRegionFormat = errors.New("invalid location")
	ErrUnknownLocation     = errors.New("unknown location")
	ErrLocationUnavailable = errors.New("location unavailable")
	ErrNoProviderSucceeded = errors.New("no weather provider succeeded")
	ErrCache               = errors.New("location cache")
)

// Outcome records what happened to one provider in the fallback loop.
type Outcome string

const (
	OutcomeSkipped   Outcome = "skipped"
	OutcomeFailed    Outcome = "failed"
	OutcomeSucceeded Outcome = "succeeded"
)

// Attempt is one entry in the fallback log.
type Attempt struct {
	Provider ProviderID
	Outcome  Outcome
	Err      error
}

func (a Attempt) String() string {
	if a.Err != nil {
		return fmt.Sprintf("%s %s: %v", a.Provider, a.Outcome, a.Err)
	}
	return fmt.Sprintf("%s %s", a.Provider, a.Outcome)
}

// ExhaustedError is returned when no provider produced conditions.
// It matches ErrNoProviderSucceeded with errors.Is.
type ExhaustedError struct {
	Attempts []Attempt
	causes   *multierror.Error
}

func newExhaustedError(attempts []Attempt) *ExhaustedError {
	e := &ExhaustedError{Attempts: attempts}
	for _, a := range attempts {
		if a.Err != nil {
			e.causes = multierror.Append(e.causes, fmt.Errorf("%s: %w", a.Provider, a.Err))
		}
	}
	if e.causes != nil {
		e.causes.ErrorFormat = joinErrors
	}
	return e
}

func (e *ExhaustedError) Error() string {
	if len(e.Attempts) == 0 {
		return ErrNoProviderSucceeded.Error() + ": no providers configured"
	}
	parts := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		parts[i] = a.String()
	}
	return ErrNoProviderSucceeded.Error() + " (" + strings.Join(parts, "; ") + ")"
}

func (e *ExhaustedError) Unwrap() []error {
	errs := []error{ErrNoProviderSucceeded}
	if err := e.causes.ErrorOrNil(); err != nil {
		errs = append(errs, err)
	}
	return errs
}

func joinErrors(errs []error) string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}
