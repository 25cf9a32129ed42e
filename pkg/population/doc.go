// Package population serialises access to named populations held by a
// ports.PopulationStore, in-process and optionally across processes.
package population
