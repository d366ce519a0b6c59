package cta

import (
	"fmt"
	"time"

	"github.com/theoremus-urban-solutions/cta-train-tracker/config"
	"github.com/theoremus-urban-solutions/cta-train-tracker/tabular"
	"github.com/theoremus-urban-solutions/cta-train-tracker/transport"
	"github.com/theoremus-urban-solutions/cta-train-tracker/utils"
)

var (
	_ Fetcher[StopsQuery, *tabular.Table]                = (*Stops)(nil)
	_ Fetcher[ArrivalsQuery, *tabular.Table]             = (*Arrivals)(nil)
	_ Fetcher[FollowQuery, *tabular.Table]               = (*FollowThisTrain)(nil)
	_ Fetcher[LocationsQuery, map[string]*tabular.Table] = (*Locations)(nil)
)

// Clients bundles one client per resource, sharing a transport
type Clients struct {
	Stops     *Stops
	Arrivals  *Arrivals
	Follow    *FollowThisTrain
	Locations *Locations
}

// TransportFromConfig builds the transport client described by cfg
func TransportFromConfig(cfg config.TransportConfig) (*transport.Client, error) {
	policy, err := transport.TLSPolicyByName(cfg.TLSPolicy)
	if err != nil {
		return nil, err
	}
	return transport.NewClient(transport.Options{
		Timeout:   time.Duration(cfg.TimeoutMS) * time.Millisecond,
		TLS:       policy,
		UserAgent: cfg.UserAgent,
	}), nil
}

// NewFromConfig builds every client from cfg. Defaults are applied to a
// copy, so a zero AppConfig plus a key is enough.
func NewFromConfig(cfg config.AppConfig, opts ...Option) (*Clients, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	tc, err := TransportFromConfig(cfg.Transport)
	if err != nil {
		return nil, err
	}
	loc, err := utils.LoadTimezone(cfg.API.Timezone)
	if err != nil {
		return nil, err
	}

	common := append([]Option{WithTransport(tc), WithLocation(loc)}, opts...)
	with := func(base string) []Option {
		return append([]Option{WithBaseURL(base)}, common...)
	}

	return &Clients{
		Stops:     NewStops(with(cfg.API.StopsURL)...),
		Arrivals:  NewArrivals(cfg.API.Key, with(cfg.API.ArrivalsURL)...),
		Follow:    NewFollowThisTrain(cfg.API.Key, with(cfg.API.FollowURL)...),
		Locations: NewLocations(cfg.API.Key, with(cfg.API.PositionsURL)...),
	}, nil
}
