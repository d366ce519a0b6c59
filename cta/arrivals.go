package cta

import (
	"context"
	"strings"

	"github.com/theoremus-urban-solutions/cta-train-tracker/config"
	"github.com/theoremus-urban-solutions/cta-train-tracker/endpoint"
	"github.com/theoremus-urban-solutions/cta-train-tracker/schema"
	"github.com/theoremus-urban-solutions/cta-train-tracker/tabular"
)

// ArrivalsQuery selects predictions for a whole station (MapID) or a single
// platform (StopID). Exactly one of the two must be set.
type ArrivalsQuery struct {
	MapID  string `validate:"required_without=StopID,excluded_with=StopID"`
	StopID string `validate:"required_without=MapID,excluded_with=MapID"`
	// Max caps the number of predictions; zero or less leaves it to the server.
	Max   int
	Route string
}

func (q ArrivalsQuery) trimmed() ArrivalsQuery {
	q.MapID = strings.TrimSpace(q.MapID)
	q.StopID = strings.TrimSpace(q.StopID)
	q.Route = strings.TrimSpace(q.Route)
	return q
}

// Arrivals queries Train Tracker arrival predictions
type Arrivals struct {
	resource
}

// NewArrivals creates an arrivals client authenticated with key
func NewArrivals(key string, opts ...Option) *Arrivals {
	return &Arrivals{resource: newResource("arrivals", schema.Arrivals, config.DefaultArrivalsURL, trainTrackerParams(key), opts)}
}

// Get fetches predictions, one row per entry of ctatt.eta
func (a *Arrivals) Get(ctx context.Context, q ArrivalsQuery) (*tabular.Table, error) {
	q = q.trimmed()
	if err := checkArguments(a.name, q); err != nil {
		return nil, err
	}

	url := a.endpoint.Build(
		endpoint.String("mapid", q.MapID),
		endpoint.String("stpid", q.StopID),
		endpoint.Int("max", q.Max),
		endpoint.String("rt", q.Route),
	)

	ct, err := a.fetchTrainTracker(ctx, url)
	if err != nil {
		return emptyOnReject(err)
	}
	recs, err := a.records(ct.Eta, "/ctatt/eta")
	if err != nil {
		return emptyOnReject(err)
	}

	tbl := tabular.FromRecords(recs)
	a.commit(ct.queryTime, tbl.Len())
	return tbl, nil
}
