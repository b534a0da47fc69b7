package indoor

// Adjacency is satisfied by both floor graphs and the floor-adjacency graph.
// Neighbors must return a stable order; search results depend on it.
type Adjacency interface {
	Has(id string) bool
	Neighbors(id string) []string
}

// NodeSequence is a breadth-first search from start to dest. It returns nil
// when either endpoint is missing or dest cannot be reached.
func NodeSequence(g Adjacency, start, dest string) []string {
	if !g.Has(dest) {
		return nil
	}
	return search(g, start, func(id string) bool { return id == dest })
}

// ClassToTransitionSequence searches outward from start to the closest
// stairwell, or the closest elevator when accessible is set.
func ClassToTransitionSequence(g *Graph, start string, accessible bool) []string {
	target := Stairs
	if accessible {
		target = Elevator
	}
	return search(g, start, func(id string) bool {
		return g.Nodes[id].Type == target
	})
}

// FloorSequence resolves the floors of start and dest and returns the floors
// to walk through, "Outside" included.
func FloorSequence(fg *FloorGraph, start, dest string) []string {
	startFloor := fg.FloorOf(start)
	destFloor := fg.FloorOf(dest)
	if startFloor == "" || destFloor == "" {
		return nil
	}
	return NodeSequence(fg, startFloor, destFloor)
}

func search(g Adjacency, start string, isGoal func(id string) bool) []string {
	if !g.Has(start) {
		return nil
	}

	cameFrom := make(map[string]string)
	visited := map[string]bool{start: true}
	queue := []string{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if isGoal(current) {
			return reconstructPath(cameFrom, start, current)
		}

		for _, neighbor := range g.Neighbors(current) {
			if visited[neighbor] || !g.Has(neighbor) {
				continue
			}
			visited[neighbor] = true
			cameFrom[neighbor] = current
			queue = append(queue, neighbor)
		}
	}

	return nil
}

func reconstructPath(cameFrom map[string]string, start, current string) []string {
	path := []string{current}
	for current != start {
		current = cameFrom[current]
		path = append(path, current)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
