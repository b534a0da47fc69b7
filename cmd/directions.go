package cmd

import (
	"campus-route-server/services"
	"campus-route-server/store"
	"campus-route-server/utils"

	"github.com/spf13/cobra"
)

var directionsCmd = &cobra.Command{
	Use:   "directions <profile> <lon,lat> <lon,lat>",
	Short: "Request one leg, or a composed shuttle trip, and print it",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.New(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer s.Close()

		rs := services.NewRoutingService(newLegClient(), s)
		result, err := rs.GetDirections(cmd.Context(), utils.ParseProfile(args[0]), args[1], args[2])
		if err != nil {
			return err
		}
		return printJSON(result.Body())
	},
}

func init() {
	rootCmd.AddCommand(directionsCmd)
}
