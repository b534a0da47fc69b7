package indoor

import (
	"reflect"
	"testing"

	"github.com/kr/pretty"
)

func TestGetIndoorDirectionsSingleFloor(t *testing.T) {
	fixtures := loadTestFixtures(t)

	got := fixtures.GetIndoorDirections("H867", "H837", false)
	want := &Directions{
		FloorSequence: []string{"H8"},
		PathData: map[string]string{
			"H8": "M160 200 L180 220 L180 220 L555 220 L555 800 L675 800 L675 820",
		},
		Pins: map[string][][2]int{
			"H8": {{75, 105}, {640, 900}},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("unexpected directions:\n%s", pretty.Diff(want, got))
	}

	got = fixtures.GetIndoorDirections("H913", "H967", false)
	if got == nil {
		t.Fatal("expected directions on H9")
	}
	if got.PathData["H9"] != "M740 200 L740 225 L740 225 L600 225 L600 200" {
		t.Errorf("unexpected H9 path %q", got.PathData["H9"])
	}
}

func TestGetIndoorDirectionsMissingPins(t *testing.T) {
	fixtures := loadTestFixtures(t)

	got := fixtures.GetIndoorDirections("H867", "H813", false)
	if got == nil {
		t.Fatal("expected directions")
	}
	pins, ok := got.Pins["H8"]
	if !ok || pins != nil {
		t.Errorf("expected a nil pin entry for H8, got %v (present=%v)", pins, ok)
	}
}

func TestGetIndoorDirectionsStairs(t *testing.T) {
	fixtures := loadTestFixtures(t)

	got := fixtures.GetIndoorDirections("H867", "H913", false)
	want := &Directions{
		FloorSequence: []string{"H8", "H9"},
		PathData: map[string]string{
			"H8": "M160 200 L180 220 L180 400 L275 400 L275 380",
			"H9": "M265 385 L265 405 L530 405 L530 225 L740 225 L740 200",
		},
		Pins: map[string][][2]int{
			"H8": {{75, 105}, {250, 320}},
			"H9": {{265, 340}, {740, 125}},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("unexpected directions:\n%s", pretty.Diff(want, got))
	}
}

func TestGetIndoorDirectionsElevator(t *testing.T) {
	fixtures := loadTestFixtures(t)

	got := fixtures.GetIndoorDirections("H913", "H867", true)
	want := &Directions{
		FloorSequence: []string{"H9", "H8"},
		PathData: map[string]string{
			"H9": "M740 200 L740 225 L530 225 L530 405 L400 405 L400 385",
			"H8": "M360 380 L360 400 L180 400 L180 220 L160 200",
		},
		Pins: map[string][][2]int{
			"H9": {{740, 125}, {400, 340}},
			"H8": {{360, 350}, {75, 105}},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("unexpected directions:\n%s", pretty.Diff(want, got))
	}

	got = fixtures.GetIndoorDirections("H867", "H913", true)
	if got == nil {
		t.Fatal("expected accessible directions")
	}
	if got.PathData["H8"] != "M160 200 L180 220 L180 400 L360 400 L360 380" {
		t.Errorf("unexpected H8 path %q", got.PathData["H8"])
	}
	if got.PathData["H9"] != "M400 385 L400 405 L530 405 L530 225 L740 225 L740 200" {
		t.Errorf("unexpected H9 path %q", got.PathData["H9"])
	}
}

func TestGetIndoorDirectionsAcrossBuildings(t *testing.T) {
	fixtures := loadTestFixtures(t)

	got := fixtures.GetIndoorDirections("H913", "MB1.210", false)
	want := &Directions{
		FloorSequence: []string{"H9", "H8", "H1", OutsideFloor, "MB1"},
		PathData: map[string]string{
			"H9":  "M740 200 L740 225 L530 225 L530 405 L265 405 L265 385",
			"H8":  "M275 380",
			"H1":  "M150 235 L150 250 L530 250 L530 900 L325 900 L325 960",
			"MB1": "M505 145 L465 165 L465 165 L465 420 L350 450",
		},
		Pins: map[string][][2]int{
			"H9":  {{740, 125}, {265, 340}},
			"H8":  {{250, 320}, {250, 320}},
			"H1":  {{185, 185}, {325, 1000}},
			"MB1": {{430, 100}, {345, 645}},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("unexpected directions:\n%s", pretty.Diff(want, got))
	}
	if _, ok := got.PathData[OutsideFloor]; ok {
		t.Error("outside segment should not be drawn")
	}

	back := fixtures.GetIndoorDirections("MB1.210", "H913", false)
	wantBack := map[string]string{
		"MB1": "M350 450 L465 420 L465 165 L465 165 L505 145",
		"H1":  "M325 960 L325 900 L530 900 L530 250 L150 250 L150 235",
		"H8":  "M275 380",
		"H9":  "M265 385 L265 405 L530 405 L530 225 L740 225 L740 200",
	}
	if back == nil {
		t.Fatal("expected return directions")
	}
	if !reflect.DeepEqual(back.PathData, wantBack) {
		t.Errorf("unexpected return paths:\n%s", pretty.Diff(wantBack, back.PathData))
	}
	if !reflect.DeepEqual(back.Pins["MB1"], [][2]int{{345, 645}, {430, 100}}) {
		t.Errorf("unexpected MB1 pins %v", back.Pins["MB1"])
	}
}

func TestGetIndoorDirectionsFailures(t *testing.T) {
	fixtures := loadTestFixtures(t)

	if got := fixtures.GetIndoorDirections("X1", "H913", false); got != nil {
		t.Errorf("expected nil for unknown building, got %+v", got)
	}
	if got := fixtures.GetIndoorDirections("H800", "H813", false); got != nil {
		t.Errorf("expected nil for unknown room, got %+v", got)
	}

	var empty *Fixtures
	if got := empty.GetIndoorDirections("H867", "H813", false); got != nil {
		t.Errorf("expected nil without fixtures, got %+v", got)
	}

	missing := &Fixtures{Floors: map[string]*Graph{}, Connections: fixtures.Connections}
	if got := missing.GetIndoorDirections("H867", "H913", false); got != nil {
		t.Errorf("expected nil when a floor graph is not loaded, got %+v", got)
	}
}
