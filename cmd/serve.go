package cmd

import (
	"fmt"
	"log"

	"campus-route-server/handlers"
	"campus-route-server/indoor"
	"campus-route-server/services"
	"campus-route-server/store"

	"github.com/spf13/cobra"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the directions, indoor and shuttle API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("host") {
			cfg.Server.Host = serveHost
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}

		fixtures, err := indoor.LoadFixtures(cfg.Indoor.FixturesDir)
		if err != nil {
			return fmt.Errorf("loading indoor fixtures: %w", err)
		}

		s, err := store.New(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer s.Close()

		loc, err := cfg.Location()
		if err != nil {
			return err
		}

		legs := newLegClient()
		r := handlers.NewRouter(
			handlers.NewRoutingHandler(services.NewRoutingService(legs, s)),
			handlers.NewIndoorHandler(fixtures),
			handlers.NewShuttleHandler(services.NewShuttleService(s, loc)),
		)

		log.Printf("Server starting on %s", cfg.Addr())
		log.Printf("ORS: %s, OTP: %s", cfg.Routing.ORSBaseURL, cfg.Routing.OTPBaseURL)
		return r.Run(cfg.Addr())
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to listen on")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func newLegClient() *services.LegClient {
	return services.NewLegClient(services.LegClientOptions{
		ORSBaseURL: cfg.Routing.ORSBaseURL,
		ORSAPIKey:  cfg.Routing.ORSAPIKey,
		OTPBaseURL: cfg.Routing.OTPBaseURL,
		Timeout:    cfg.Timeout(),
		RateLimit:  cfg.Routing.RateLimit,
	})
}
