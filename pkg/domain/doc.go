/*
Package domain contains the core value types shared by every Formica package.

It is kept free of I/O and randomness so the tree, codec and store packages can
all depend on it.

# Key Entities

  - Action: the behaviour held by a tree node, classified as terminal or conditional.
  - LifecycleHooks: callbacks fired by the engine for decisions, mutations,
    crossovers, simplifications and generation.
  - Sentinel errors: structural violations, unknown kinds and missing populations.
*/
package domain
