package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/formica/internal/logging"
)

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Key    string // Field name
	Reason string // Human-readable reason for failure
	Value  any    // The value that failed validation
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("field %q: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("field %q: %s (got %v)", e.Key, e.Reason, e.Value)
}

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, err.Error())
	}
	return b.String()
}

// ValidationErrors returns all validation errors if err is an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	var errs []error
	fail := func(key, reason string, value any) {
		errs = append(errs, &ValidationError{Key: key, Reason: reason, Value: value})
	}

	c.Evolution.check(fail)

	switch c.Store.Kind {
	case StoreMemory, StoreFile:
	case StoreRedis:
		if c.Store.Redis.Addr == "" {
			fail("store.redis.addr", "required for redis store", nil)
		}
		if c.Store.Redis.TTL < 0 {
			fail("store.redis.ttl", "must not be negative", c.Store.Redis.TTL)
		}
	default:
		fail("store.kind", "must be memory, file or redis", c.Store.Kind)
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		fail("log.level", err.Error(), nil)
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

// Validate checks the evolution parameters alone, for values overridden on the
// command line.
func (ev EvolutionConfig) Validate() error {
	var errs []error
	ev.check(func(key, reason string, value any) {
		errs = append(errs, &ValidationError{Key: key, Reason: reason, Value: value})
	})
	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

// ValidRate reports whether rate is a probability. NaN is not.
func ValidRate(rate float64) bool {
	return rate >= 0 && rate <= 1
}

func (ev EvolutionConfig) check(fail func(key, reason string, value any)) {
	if ev.MinLevel < 0 {
		fail("evolution.min_level", "must not be negative", ev.MinLevel)
	}
	switch {
	case ev.MaxLevel < ev.MinLevel:
		fail("evolution.max_level", "must be >= min_level", ev.MaxLevel)
	case ev.MaxLevel > LevelLimit:
		fail("evolution.max_level", fmt.Sprintf("must be <= %d", LevelLimit), ev.MaxLevel)
	}
	if !ValidRate(ev.MutationRate) {
		fail("evolution.mutation_rate", "must be within [0,1]", ev.MutationRate)
	}
	switch {
	case ev.Population < 0:
		fail("evolution.population", "must not be negative", ev.Population)
	case ev.Population > PopulationLimit:
		fail("evolution.population", fmt.Sprintf("must be <= %d", PopulationLimit), ev.Population)
	}
}
