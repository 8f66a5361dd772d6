package projection

import "github.com/pstuifzand/placestree/internal/model"

// materialize lists the rows that container's children occupy: depth
// first, duplicates collapsed, separators dropped from sorted results.
// Containers whose remembered open state differs from their current one
// are not expanded; they are returned in toOpen so the caller can toggle
// them once the row list is consistent again.
func (t *TreeView) materialize(container model.Node) (visible, toOpen []model.Node) {
	return t.appendSection(container, nil, nil)
}

func (t *TreeView) appendSection(container model.Node, visible, toOpen []model.Node) ([]model.Node, []model.Node) {
	sorted := t.sorted()
	count := container.ChildCount()
	for i := 0; i < count; i++ {
		child := container.Child(i)
		if sorted && child.Kind() == model.KindSeparator {
			continue
		}

		for i < count-1 {
			collapsible, showFirst := CanCollapse(child, container.Child(i+1), t.collapseDuplicates)
			if !collapsible {
				break
			}
			if !showFirst {
				child = container.Child(i + 1)
			}
			i++
		}
		visible = append(visible, child)

		if t.flatList || !child.IsContainer() {
			continue
		}
		if t.persistedOpen(child) != child.ContainerOpen() {
			toOpen = append(toOpen, child)
		} else if child.ContainerOpen() && child.HasChildren() {
			visible, toOpen = t.appendSection(child, visible, toOpen)
		}
	}
	return visible, toOpen
}

// persistedOpen returns the remembered open state of a container. Containers
// without a URI cannot be remembered and keep their current state.
func (t *TreeView) persistedOpen(n model.Node) bool {
	if t.openState == nil || n.URI() == "" {
		return n.ContainerOpen()
	}
	return t.openState.IsOpen(n.URI())
}

// reopen toggles containers collected by materialize. A container is left
// alone when one of its ancestors has the same URI, which would otherwise
// open the same query inside itself forever.
func (t *TreeView) reopen(nodes []model.Node) {
	if t.flatList {
		return
	}
	for _, n := range nodes {
		if hasAncestorWithURI(n) {
			continue
		}
		n.SetContainerOpen(!n.ContainerOpen())
	}
}

func hasAncestorWithURI(n model.Node) bool {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.URI() == n.URI() {
			return true
		}
	}
	return false
}

func (t *TreeView) sorted() bool {
	return t.result != nil && t.result.SortingMode() != model.SortNone
}
