package domain

import "errors"

// ErrStructure is returned when a tree violates its arity or parent invariants.
// Reaching it at execution time means generation, cloning or crossover is broken.
var ErrStructure = errors.New("tree structure violation")

// ErrUnknownKind is returned when a catalogue has no behaviour registered for a kind.
var ErrUnknownKind = errors.New("unknown action kind")

// ErrWrongRole is returned when an action is evaluated through the wrong contract
// (testing a terminal, performing a conditional).
var ErrWrongRole = errors.New("action role mismatch")

// ErrInvalidLevels is returned when random generation bounds cannot be satisfied.
var ErrInvalidLevels = errors.New("invalid level bounds")

// ErrPopulationNotFound is returned when a population name cannot be found in the store.
var ErrPopulationNotFound = errors.New("population not found")

// ErrInvalidName is returned when a population name cannot be used as a store key.
var ErrInvalidName = errors.New("invalid population name")
