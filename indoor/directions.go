package indoor

import "log"

// Directions is the indoor itinerary handed to the map client: one path and
// one marker pair per floor, keyed by floor label. Outside segments are not
// drawn.
type Directions struct {
	FloorSequence []string            `json:"floor_sequence"`
	PathData      map[string]string   `json:"path_data"`
	Pins          map[string][][2]int `json:"pin"`
}

// GetIndoorDirections returns nil when a floor graph is missing, the floors
// cannot be connected, or any floor has no path.
func (f *Fixtures) GetIndoorDirections(start, destination string, accessible bool) *Directions {
	if f == nil || f.Connections == nil {
		return nil
	}

	floors := FloorSequence(f.Connections, start, destination)
	if floors == nil {
		log.Printf("Indoor directions: no floor sequence from %s to %s", start, destination)
		return nil
	}

	directions := &Directions{
		FloorSequence: floors,
		PathData:      make(map[string]string),
		Pins:          make(map[string][][2]int),
	}

	lastTransition := ""
	for i, floor := range floors {
		if floor == OutsideFloor {
			continue
		}

		g, ok := f.Floor(floor)
		if !ok {
			log.Printf("Indoor directions: floor graph %s not loaded", floor)
			return nil
		}

		var sequence []string
		sequence, lastTransition = floorSegment(g, floors, i, start, destination, accessible, lastTransition)
		if sequence == nil {
			log.Printf("Indoor directions: no path on floor %s (%s -> %s)", floor, start, destination)
			return nil
		}

		directions.PathData[floor] = ToDrawablePath(PathCoordinates(g, sequence))
		directions.Pins[floor] = Pins(g, sequence[0], sequence[len(sequence)-1])
	}

	return directions
}

// floorSegment picks and searches the node pair for floors[i]. lastTransition
// is the stairwell or elevator the itinerary arrived by; the returned value is
// the one to carry into the next floor.
func floorSegment(g *Graph, floors []string, i int, start, destination string, accessible bool, lastTransition string) ([]string, string) {
	var prev, next string
	if i > 0 {
		prev = floors[i-1]
	}
	if i < len(floors)-1 {
		next = floors[i+1]
	}

	switch {
	case len(floors) == 1:
		return NodeSequence(g, start, destination), lastTransition

	case i == 0 && next == OutsideFloor:
		return NodeSequence(g, start, ExitID), lastTransition

	case i == 0:
		return toTransition(g, start, accessible)

	case prev == OutsideFloor && next == "":
		return NodeSequence(g, ExitID, destination), lastTransition

	case prev == OutsideFloor && next != OutsideFloor:
		return toTransition(g, ExitID, accessible)

	case prev == OutsideFloor, lastTransition == "":
		return nil, lastTransition

	case next == "":
		return NodeSequence(g, lastTransition, destination), lastTransition

	case next == OutsideFloor:
		return NodeSequence(g, lastTransition, ExitID), lastTransition

	default:
		// passing through: the same stairwell continues on this floor
		return NodeSequence(g, lastTransition, lastTransition), lastTransition
	}
}

func toTransition(g *Graph, from string, accessible bool) ([]string, string) {
	sequence := ClassToTransitionSequence(g, from, accessible)
	if sequence == nil {
		return nil, ""
	}
	return sequence, sequence[len(sequence)-1]
}
