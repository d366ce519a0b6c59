package cta

import (
	"context"
	"strings"

	"github.com/theoremus-urban-solutions/cta-train-tracker/config"
	"github.com/theoremus-urban-solutions/cta-train-tracker/endpoint"
	"github.com/theoremus-urban-solutions/cta-train-tracker/schema"
	"github.com/theoremus-urban-solutions/cta-train-tracker/tabular"
	"github.com/theoremus-urban-solutions/cta-train-tracker/utils"
)

// StopsQuery narrows the stop listing. The zero value lists every stop.
type StopsQuery struct {
	MapID string
	Limit int
}

// Stops lists "L" stops from the city open-data portal
type Stops struct {
	resource
}

// NewStops creates a stop listing client. The portal needs no key.
func NewStops(opts ...Option) *Stops {
	return &Stops{resource: newResource("stops", schema.Stops, config.DefaultStopsURL, nil, opts)}
}

// Get fetches the stop listing, one row per stop
func (s *Stops) Get(ctx context.Context, q StopsQuery) (*tabular.Table, error) {
	q.MapID = strings.TrimSpace(q.MapID)
	if err := checkArguments(s.name, q); err != nil {
		return nil, err
	}

	url := s.endpoint.Build(
		endpoint.String("map_id", q.MapID),
		endpoint.Int("$limit", q.Limit),
	)

	body, err := s.fetch(ctx, url)
	if err != nil {
		return emptyOnReject(err)
	}
	recs, err := s.records(body, "")
	if err != nil {
		return emptyOnReject(err)
	}

	tbl := tabular.FromRecords(recs)
	s.commit(utils.NoQueryTime, tbl.Len())
	return tbl, nil
}
