package animated

// flushFrom recomputes every flush leaf reachable from root. Each leaf is
// updated exactly once, even when several paths lead to it. Traversal
// stops at leaves.
func flushFrom(root Node) int {
	leaves := collectLeaves(root)
	for _, leaf := range leaves {
		leaf.update()
	}
	observer.FlushCompleted(len(leaves))
	return len(leaves)
}

// Flush runs a flush from n as if n had just been updated. Hosts use it
// after binding new props to push the current values once.
func Flush(n Node) int {
	return flushFrom(n)
}

// collectLeaves walks the descendants of root depth first with an explicit
// stack. Leaves are returned in discovery order, deduplicated.
func collectLeaves(root Node) []flushLeaf {
	var leaves []flushLeaf
	stack := make([]Node, 0, 16)
	stack = append(stack, root)
	visited := make(map[Node]struct{}, 16)

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, seen := visited[current]; seen {
			continue
		}
		visited[current] = struct{}{}

		if leaf, ok := current.(flushLeaf); ok {
			leaves = append(leaves, leaf)
			continue
		}
		children := current.Children()
		// Reverse push so children pop in attach order.
		for i := len(children) - 1; i >= 0; i-- {
			if _, seen := visited[children[i]]; !seen {
				stack = append(stack, children[i])
			}
		}
	}
	return leaves
}
