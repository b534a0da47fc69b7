package services

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"campus-route-server/models"

	"github.com/paulmach/orb"
	"golang.org/x/time/rate"
)

type LegClientOptions struct {
	ORSBaseURL string
	ORSAPIKey  string
	OTPBaseURL string
	Timeout    time.Duration
	// RateLimit caps outgoing engine requests per second; 0 disables it.
	RateLimit float64
}

// LegClient requests one leg of a trip from whichever engine serves the
// profile.
type LegClient struct {
	ors     *ORSService
	transit *TransitService
	limiter *rate.Limiter
}

func NewLegClient(opts LegClientOptions) *LegClient {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	httpClient := &http.Client{Timeout: timeout}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		burst := int(opts.RateLimit)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	return &LegClient{
		ors:     NewORSService(opts.ORSBaseURL, opts.ORSAPIKey, httpClient),
		transit: NewTransitService(opts.OTPBaseURL, httpClient),
		limiter: limiter,
	}
}

// Profiles lists the profiles RequestLeg accepts.
func (c *LegClient) Profiles() []models.Profile {
	return models.Profiles
}

func (c *LegClient) RequestLeg(ctx context.Context, start, end orb.Point, profile models.Profile) (*models.RouteLeg, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	log.Printf("Requesting %s leg from %v to %v", profile, start, end)

	switch profile {
	case models.FootWalking, models.CyclingRegular, models.DrivingCar, models.Wheelchair:
		return c.ors.CalculateRoute(ctx, start, end, profile)
	case models.ConcordiaShuttle:
		// the shuttle follows the road network
		return c.ors.CalculateRoute(ctx, start, end, models.DrivingCar)
	case models.PublicTransport:
		return c.transit.PlanTransit(ctx, start, end)
	default:
		return nil, &InvalidInputError{Message: fmt.Sprintf("unsupported profile %q", profile)}
	}
}
