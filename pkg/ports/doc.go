/*
Package ports defines the driven ports (interfaces) for Formica.

These interfaces decouple the engine from storage backends.

# Key Interfaces

  - PopulationStore: persists named populations (memory, file, Redis).
  - DistributedLocker: serialises population updates across processes (Redis).

RunPopulationStoreContract is the shared test suite every implementation runs.
*/
package ports
