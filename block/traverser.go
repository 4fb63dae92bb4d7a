package block

// TraverseEdges visits every edge reachable from start in breadth-first order,
// applying visit to each edge exactly once.
//
// The returned VisitGraph records which edges were visited, so blocks that are
// only partially reachable from start can be told apart with NodeVisited.
func TraverseEdges(g Graph, start ID, visit func(from, to ID)) *VisitGraph {
	visited := NewVisitGraph(g)
	visited.Visit(start)
	queue := make([]Edge, 0, len(g.Neighbors(start)))
	for _, succ := range g.Neighbors(start) {
		queue = append(queue, Edge{From: start, To: succ})
	}
	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]
		if visited.EdgeVisited(e.From, e.To) {
			continue
		}
		seen := visited.VisitedOnce(e.To)
		visited.VisitFrom(e.From, e.To)
		if visit != nil {
			visit(e.From, e.To)
		}
		if !seen {
			for _, succ := range g.Neighbors(e.To) {
				queue = append(queue, Edge{From: e.To, To: succ})
			}
		}
	}
	return visited
}
