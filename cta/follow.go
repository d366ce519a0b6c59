package cta

import (
	"context"
	"strings"

	"github.com/theoremus-urban-solutions/cta-train-tracker/config"
	"github.com/theoremus-urban-solutions/cta-train-tracker/endpoint"
	"github.com/theoremus-urban-solutions/cta-train-tracker/schema"
	"github.com/theoremus-urban-solutions/cta-train-tracker/tabular"
)

// FollowQuery identifies a train by its run number
type FollowQuery struct {
	RunNumber string `validate:"required,numeric"`
}

// FollowThisTrain queries predictions for one train at its upcoming stops
type FollowThisTrain struct {
	resource
	position tabular.Record
}

// NewFollowThisTrain creates a follow-this-train client authenticated with key
func NewFollowThisTrain(key string, opts ...Option) *FollowThisTrain {
	return &FollowThisTrain{resource: newResource("followthistrain", schema.FollowThisTrain, config.DefaultFollowURL, trainTrackerParams(key), opts)}
}

// Get fetches the run's predictions, one row per upcoming stop
func (f *FollowThisTrain) Get(ctx context.Context, q FollowQuery) (*tabular.Table, error) {
	q.RunNumber = strings.TrimSpace(q.RunNumber)
	if err := checkArguments(f.name, q); err != nil {
		return nil, err
	}

	url := f.endpoint.Build(endpoint.String("runnumber", q.RunNumber))

	ct, err := f.fetchTrainTracker(ctx, url)
	if err != nil {
		return emptyOnReject(err)
	}
	recs, err := f.records(ct.Eta, "/ctatt/eta")
	if err != nil {
		return emptyOnReject(err)
	}
	pos, err := tabular.DecodeRecord(ct.Position)
	if err != nil {
		return emptyOnReject(f.reject(invalid(f.schema, "/ctatt/position", err.Error()), nil))
	}

	tbl := tabular.FromRecords(recs)
	f.position = pos
	f.commit(ct.queryTime, tbl.Len())
	return tbl, nil
}

// Position is the train position (lat, lon, heading) from the last
// validated response, or nil before one has been received
func (f *FollowThisTrain) Position() tabular.Record {
	return f.position
}
