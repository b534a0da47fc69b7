package cmd

import (
	"campus-route-server/models"
	"campus-route-server/store"

	"github.com/spf13/cobra"
)

var (
	seedFile     string
	scheduleFile string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load buildings, shuttle stops and the shuttle schedule into the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, err := store.LoadReferenceFile(seedFile)
		if err != nil {
			return err
		}

		var departures []models.ShuttleDeparture
		if scheduleFile != "" {
			departures, err = store.LoadSchedule(scheduleFile)
			if err != nil {
				return err
			}
		}

		s, err := store.New(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer s.Close()

		return s.Seed(cmd.Context(), ref, departures)
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "data/reference.json", "Buildings and shuttle stops (JSON)")
	seedCmd.Flags().StringVar(&scheduleFile, "schedule", "data/shuttle_schedule.csv", "Shuttle departures (CSV); empty to skip")
	rootCmd.AddCommand(seedCmd)
}
