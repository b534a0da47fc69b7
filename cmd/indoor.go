package cmd

import (
	"fmt"
	"sort"

	"campus-route-server/indoor"

	"github.com/spf13/cobra"
)

var indoorAccessible bool

var indoorCmd = &cobra.Command{
	Use:   "indoor <start> <destination>",
	Short: "Print the indoor itinerary between two rooms",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		fixtures, err := indoor.LoadFixtures(cfg.Indoor.FixturesDir)
		if err != nil {
			return err
		}

		directions := fixtures.GetIndoorDirections(args[0], args[1], indoorAccessible)
		if directions == nil {
			return fmt.Errorf("no indoor route from %s to %s", args[0], args[1])
		}
		return printJSON(directions)
	},
}

var fixturesCmd = &cobra.Command{
	Use:   "fixtures",
	Short: "Inspect the indoor floor graphs",
}

var fixturesValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check every floor graph for dangling and one-sided edges",
	RunE: func(cmd *cobra.Command, args []string) error {
		fixtures, err := indoor.LoadFixtures(cfg.Indoor.FixturesDir)
		if err != nil {
			return err
		}

		floors := make([]string, 0, len(fixtures.Connections.Links))
		for floor := range fixtures.Connections.Links {
			floors = append(floors, floor)
		}
		sort.Strings(floors)

		invalid := 0
		for _, floor := range floors {
			if floor == indoor.OutsideFloor {
				continue
			}
			g, ok := fixtures.Floor(floor)
			if !ok {
				fmt.Printf("%s: no floor graph\n", floor)
				continue
			}
			if err := g.Validate(); err != nil {
				invalid++
				fmt.Println(err)
				continue
			}
			fmt.Printf("%s: ok (%d nodes)\n", floor, len(g.Nodes))
		}

		if invalid > 0 {
			return fmt.Errorf("%d floor graphs have inconsistent edges", invalid)
		}
		return nil
	},
}

func init() {
	indoorCmd.Flags().BoolVar(&indoorAccessible, "disabled", false, "Route through elevators instead of stairs")
	fixturesCmd.AddCommand(fixturesValidateCmd)
	rootCmd.AddCommand(indoorCmd, fixturesCmd)
}
