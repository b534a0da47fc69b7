package indoor

import (
	"fmt"
	"strings"

	"campus-route-server/geometry"

	"github.com/paulmach/orb"
)

// PathCoordinates turns a node sequence into the polyline drawn on the floor
// plan. Rooms are joined to the corridor at the point of the hallway closest
// to them instead of cutting straight to the first corner.
func PathCoordinates(g *Graph, sequence []string) []Point {
	if len(sequence) == 0 {
		return nil
	}
	for _, id := range sequence {
		if !g.Has(id) {
			return nil
		}
	}

	coords := []Point{g.Nodes[sequence[0]].Coords}
	if len(sequence) == 1 {
		return coords
	}

	second := g.Nodes[sequence[1]]
	if second.Type != Corner {
		return append(coords, second.Coords)
	}

	coords = append(coords, hallwayPoint(g, sequence[0]))
	i := 1
	for i < len(sequence) && g.Nodes[sequence[i]].Type == Corner {
		coords = append(coords, g.Nodes[sequence[i]].Coords)
		i++
	}
	if i == len(sequence) {
		return coords
	}

	terminal := g.Nodes[sequence[i]]
	return append(coords, hallwayPoint(g, terminal.ID), terminal.Coords)
}

// hallwayPoint projects a node onto the hallway segment spanned by its first
// two neighbors.
func hallwayPoint(g *Graph, id string) Point {
	node := g.Nodes[id]
	if len(node.Connections) == 0 {
		return node.Coords
	}

	a, ok := g.Nodes[node.Connections[0]]
	if !ok {
		return node.Coords
	}
	b := a
	if len(node.Connections) > 1 {
		if n, ok := g.Nodes[node.Connections[1]]; ok {
			b = n
		}
	}

	q := geometry.ProjectPointOntoSegment(toOrb(a.Coords), toOrb(b.Coords), toOrb(node.Coords))
	return Point{X: int(q[0]), Y: int(q[1])}
}

func toOrb(p Point) orb.Point {
	return orb.Point{float64(p.X), float64(p.Y)}
}

// ToDrawablePath renders coordinates as SVG path data: "M x0 y0 L x1 y1 ...".
func ToDrawablePath(coords []Point) string {
	var sb strings.Builder
	for i, c := range coords {
		if i == 0 {
			fmt.Fprintf(&sb, "M%d %d", c.X, c.Y)
			continue
		}
		fmt.Fprintf(&sb, " L%d %d", c.X, c.Y)
	}
	return sb.String()
}

// Pins returns the start and destination markers, or nil unless both nodes
// carry a pin.
func Pins(g *Graph, start, dest string) [][2]int {
	s, ok := g.Nodes[start]
	if !ok || s.Pin == nil {
		return nil
	}
	d, ok := g.Nodes[dest]
	if !ok || d.Pin == nil {
		return nil
	}
	return [][2]int{{s.Pin.X, s.Pin.Y}, {d.Pin.X, d.Pin.Y}}
}
