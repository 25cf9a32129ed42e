/*
Package tree implements behaviour decision trees and their genetic operators.

A Tree owns a single root Node. Conditional nodes hold exactly two children and
terminal nodes none; parent back references are kept in sync by SetLeft and
SetRight. Execution walks from the root, testing conditionals (true goes right,
false goes left) until a terminal action is performed.

Genetics isolates every random choice behind an injected *rand.Rand:

	g := tree.NewGenetics(colony.Catalogue(), rand.New(rand.NewSource(42)))
	parent1, _ := g.GenerateRandomTree(2, 5)
	parent2, _ := g.GenerateRandomTree(2, 5)
	child := g.CrossBreed(parent1, parent2, 0.05)

Simplification removes conditionals already decided by an ancestor and conditionals
whose two branches are identical, without changing what the tree does.
*/
package tree
