/*
Package registry provides the behaviour catalogue consumed by the tree package.

Behaviours are registered by kind either as a Condition (branch selection) or as an
Effect (terminal side-effect). The registry evaluates actions and draws random
actions of a given role, keeping kinds sorted so that a seeded random source yields
reproducible trees.
*/
package registry
