package cta

import (
	"context"
	"strings"

	"github.com/theoremus-urban-solutions/cta-train-tracker/config"
	"github.com/theoremus-urban-solutions/cta-train-tracker/endpoint"
	"github.com/theoremus-urban-solutions/cta-train-tracker/schema"
	"github.com/theoremus-urban-solutions/cta-train-tracker/tabular"
)

// LocationsQuery lists the routes to report, e.g. "red", "blue", "Brn"
type LocationsQuery struct {
	Routes []string `validate:"min=1,dive,required"`
}

// trimmed copies the routes so the caller's slice is left alone
func (q LocationsQuery) trimmed() LocationsQuery {
	routes := make([]string, len(q.Routes))
	for i, r := range q.Routes {
		routes[i] = strings.TrimSpace(r)
	}
	return LocationsQuery{Routes: routes}
}

// Locations queries the positions of in-service trains
type Locations struct {
	resource
}

// NewLocations creates a train locations client authenticated with key
func NewLocations(key string, opts ...Option) *Locations {
	return &Locations{resource: newResource("locations", schema.Locations, config.DefaultPositionsURL, trainTrackerParams(key), opts)}
}

// Get fetches train positions, one table per route keyed by the route's
// @name. Each table holds only that route's trains.
func (l *Locations) Get(ctx context.Context, q LocationsQuery) (map[string]*tabular.Table, error) {
	q = q.trimmed()
	if err := checkArguments(l.name, q); err != nil {
		return nil, err
	}

	url := l.endpoint.Build(endpoint.List("rt", q.Routes))

	ct, err := l.fetchTrainTracker(ctx, url)
	if err != nil {
		return emptyGroupsOnReject(err)
	}
	routes, err := l.records(ct.Route, "/ctatt/route")
	if err != nil {
		return emptyGroupsOnReject(err)
	}
	groups, err := tabular.GroupBy(routes, "@name", "train")
	if err != nil {
		return emptyGroupsOnReject(l.reject(invalid(l.schema, "/ctatt/route", err.Error()), nil))
	}

	rows := 0
	for _, t := range groups {
		rows += t.Len()
	}
	l.commit(ct.queryTime, rows)
	return groups, nil
}

func emptyGroupsOnReject(err error) (map[string]*tabular.Table, error) {
	if isRejected(err) {
		return map[string]*tabular.Table{}, err
	}
	return nil, err
}
