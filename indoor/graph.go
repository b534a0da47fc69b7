package indoor

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

type Kind string

const (
	Room     Kind = "room"
	Corner   Kind = "corner"
	Stairs   Kind = "stairs"
	Elevator Kind = "elevator"
	Exit     Kind = "exit"
)

const (
	// ExitID is the identifier every floor uses for its building exit.
	ExitID = "Exit"
	// OutsideFloor is the floor-adjacency sentinel for leaving a building.
	OutsideFloor = "Outside"
)

// Point is a drawing coordinate on a floor plan.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Node is a vertex of a floor graph. Pin is only set for nodes that get a
// marker on the map.
type Node struct {
	ID          string   `json:"id"`
	Type        Kind     `json:"type"`
	Coords      Point    `json:"coords"`
	Pin         *Point   `json:"pin,omitempty"`
	Connections []string `json:"connections"`
}

// Graph is one floor, keyed by node identifier. It is never mutated after
// loading.
type Graph struct {
	Floor string
	Nodes map[string]*Node
}

func (g *Graph) Has(id string) bool {
	_, ok := g.Nodes[id]
	return ok
}

func (g *Graph) Neighbors(id string) []string {
	if n, ok := g.Nodes[id]; ok {
		return n.Connections
	}
	return nil
}

func LoadGraphFromJSON(floor string, data []byte) (*Graph, error) {
	var nodes map[string]*Node
	if err := json.Unmarshal(data, &nodes); err != nil {
		return nil, fmt.Errorf("failed to parse floor graph %s: %w", floor, err)
	}

	g := &Graph{
		Floor: floor,
		Nodes: make(map[string]*Node, len(nodes)),
	}
	for id, n := range nodes {
		if n == nil {
			return nil, fmt.Errorf("floor graph %s: node %s is null", floor, id)
		}
		if n.ID == "" {
			n.ID = id
		}
		g.Nodes[id] = n
	}

	return g, nil
}

// Validate reports every neighbor reference that points outside the floor
// and every edge that is not listed on both ends.
func (g *Graph) Validate() error {
	var errs []error
	for _, id := range g.sortedIDs() {
		for _, neighbor := range g.Nodes[id].Connections {
			other, ok := g.Nodes[neighbor]
			if !ok {
				errs = append(errs, fmt.Errorf("%s: node %s references unknown node %s", g.Floor, id, neighbor))
				continue
			}
			if !contains(other.Connections, id) {
				errs = append(errs, fmt.Errorf("%s: edge %s-%s is only listed on %s", g.Floor, id, neighbor, id))
			}
		}
	}
	return errors.Join(errs...)
}

func (g *Graph) sortedIDs() []string {
	ids := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// FloorGraph says which floors (and the outside) connect to which.
type FloorGraph struct {
	Links map[string][]string
}

// floorLinks accepts either ["H9", ...] or {"connections": ["H9", ...]}.
type floorLinks []string

func (f *floorLinks) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*f = list
		return nil
	}

	var obj struct {
		Connections []string `json:"connections"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("floor links must be a list or an object with connections: %w", err)
	}
	*f = obj.Connections
	return nil
}

func LoadFloorGraphFromJSON(data []byte) (*FloorGraph, error) {
	var raw map[string]floorLinks
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse floor connection graph: %w", err)
	}

	fg := &FloorGraph{Links: make(map[string][]string, len(raw))}
	for floor, links := range raw {
		fg.Links[floor] = links
	}
	return fg, nil
}

func (fg *FloorGraph) Has(floor string) bool {
	_, ok := fg.Links[floor]
	return ok
}

func (fg *FloorGraph) Neighbors(floor string) []string {
	return fg.Links[floor]
}

// FloorOf maps a room or node identifier such as "H913" to its floor label
// ("H9"). The longest matching label wins; "" when nothing matches.
func (fg *FloorGraph) FloorOf(id string) string {
	best := ""
	for floor := range fg.Links {
		if floor == OutsideFloor {
			continue
		}
		if strings.HasPrefix(id, floor) && len(floor) > len(best) {
			best = floor
		}
	}
	return best
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
