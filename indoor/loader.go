package indoor

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// FloorGraphFile is the fixture holding the floor-adjacency graph.
const FloorGraphFile = "floor_connection_graph.json"

// Fixtures is every floor graph plus the floor-adjacency graph. It is built
// once and shared read-only between requests.
type Fixtures struct {
	Floors      map[string]*Graph
	Connections *FloorGraph
}

func (f *Fixtures) Floor(label string) (*Graph, bool) {
	g, ok := f.Floors[label]
	return g, ok
}

func LoadGraphFromFile(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read floor graph file: %w", err)
	}
	floor := strings.TrimSuffix(filepath.Base(path), ".json")
	return LoadGraphFromJSON(floor, data)
}

// LoadFixtures reads every *.json file in dir: the floor-adjacency graph from
// FloorGraphFile and one floor graph per remaining file, named after it.
func LoadFixtures(dir string) (*Fixtures, error) {
	fixtures := &Fixtures{Floors: make(map[string]*Graph)}

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(info.Name(), ".json") {
			return nil
		}

		if info.Name() == FloorGraphFile {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("could not read %s: %w", path, err)
			}
			fg, err := LoadFloorGraphFromJSON(data)
			if err != nil {
				return fmt.Errorf("error loading floor connections from %s: %w", path, err)
			}
			fixtures.Connections = fg
			return nil
		}

		graph, err := LoadGraphFromFile(path)
		if err != nil {
			return fmt.Errorf("error loading floor graph from %s: %w", path, err)
		}
		fixtures.Floors[graph.Floor] = graph
		return nil
	})
	if err != nil {
		return nil, err
	}

	if fixtures.Connections == nil {
		return nil, fmt.Errorf("no %s found in %s", FloorGraphFile, dir)
	}

	log.Printf("Loaded indoor fixtures from %s: %d floors, %d floor links", dir, len(fixtures.Floors), len(fixtures.Connections.Links))
	return fixtures, nil
}
