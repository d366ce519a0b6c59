package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/theoremus-urban-solutions/cta-train-tracker/config"
	"github.com/theoremus-urban-solutions/cta-train-tracker/cta"
	"github.com/theoremus-urban-solutions/cta-train-tracker/formatter"
	"github.com/theoremus-urban-solutions/cta-train-tracker/schema"
	"github.com/theoremus-urban-solutions/cta-train-tracker/tabular"
	"github.com/theoremus-urban-solutions/cta-train-tracker/utils"
)

// runner holds what every command needs once flags and config are merged
type runner struct {
	clients *cta.Clients
	format  formatter.Format
	filter  string
	out     io.Writer

	// sections collects the tour's tables when they are emitted as one JSON document
	sections *tabular.Record
}

func newRunner(c *cli.Context, needsKey bool) (*runner, error) {
	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}
	if key := c.String("key"); key != "" {
		cfg.API.Key = key
	}
	if lvl := c.String("log-level"); lvl != "" {
		cfg.Logging.Level = lvl
	}
	utils.InitLogging(cfg.Logging.Level)

	if needsKey && cfg.API.Key == "" {
		return nil, errors.New("an API key is required: pass --key, set CTA_API_KEY or api.key in the config file")
	}

	format, err := formatter.ParseFormat(c.String("format"))
	if err != nil {
		return nil, err
	}

	clients, err := cta.NewFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	return &runner{
		clients: clients,
		format:  format,
		filter:  c.String("filter"),
		out:     c.App.Writer,
	}, nil
}

// loadConfig reads the config at path; with no path a missing default file is not an error
func loadConfig(path string) (config.AppConfig, error) {
	cfg, err := config.LoadAppConfig(path)
	if err == nil {
		return cfg, nil
	}
	if path == "" && errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return config.AppConfig{}, err
}

// tour walks stops, the first stop's arrivals, the first arrival's run and the positions on routes
func (r *runner) tour(ctx context.Context, routes []string) error {
	if r.format == formatter.JSON {
		r.sections = &tabular.Record{}
		defer func() { r.sections = nil }()
	}
	if err := r.walk(ctx, routes); err != nil {
		return err
	}
	if r.sections == nil {
		return nil
	}
	b, err := json.Marshal(r.sections)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.out, string(b))
	return err
}

func (r *runner) walk(ctx context.Context, routes []string) error {
	stops, err := r.clients.Stops.Get(ctx, cta.StopsQuery{})
	if err := tolerate(err); err != nil {
		return err
	}
	if err := r.show("stops", "stops", stops); err != nil {
		return err
	}

	if stopID, ok := firstString(stops, "stop_id"); ok {
		arrivals, err := r.arrivals(ctx, cta.ArrivalsQuery{StopID: stopID})
		if err != nil {
			return err
		}
		if run, ok := firstString(arrivals, "rn"); ok {
			if err := r.follow(ctx, run); err != nil {
				return err
			}
		} else {
			log.Warn().Str("stop_id", stopID).Msg("no arrivals; skipping follow")
		}
	} else {
		log.Warn().Msg("no stops; skipping arrivals and follow")
	}

	return r.locations(ctx, routes)
}

func (r *runner) stops(ctx context.Context, mapID string, limit int) error {
	tbl, err := r.clients.Stops.Get(ctx, cta.StopsQuery{MapID: mapID, Limit: limit})
	if err := tolerate(err); err != nil {
		return err
	}
	return r.show("stops", "stops", tbl)
}

func (r *runner) arrivals(ctx context.Context, q cta.ArrivalsQuery) (*tabular.Table, error) {
	tbl, err := r.clients.Arrivals.Get(ctx, q)
	if err := tolerate(err); err != nil {
		return nil, err
	}
	r.logQueryTime("arrivals", r.clients.Arrivals.QueryTime())
	return tbl, r.show("arrivals", "arrivals", tbl)
}

func (r *runner) follow(ctx context.Context, run string) error {
	tbl, err := r.clients.Follow.Get(ctx, cta.FollowQuery{RunNumber: run})
	if err := tolerate(err); err != nil {
		return err
	}
	r.logQueryTime("follow", r.clients.Follow.QueryTime())
	if err := r.show("follow", "follow "+run, tbl); err != nil {
		return err
	}
	if pos := r.clients.Follow.Position(); pos != nil {
		return r.show("position", "position "+run, tabular.FromRecords([]tabular.Record{pos}))
	}
	return nil
}

func (r *runner) locations(ctx context.Context, routes []string) error {
	groups, err := r.clients.Locations.Get(ctx, cta.LocationsQuery{Routes: routes})
	if err := tolerate(err); err != nil {
		return err
	}
	r.logQueryTime("locations", r.clients.Locations.QueryTime())

	if r.filter != "" {
		for name, t := range groups {
			if groups[name], err = t.Filter(r.filter); err != nil {
				return err
			}
		}
	}
	if r.sections != nil {
		*r.sections = append(*r.sections, tabular.Field{Key: "locations", Value: groups})
		return nil
	}
	return formatter.RenderGroups(r.out, groups, r.format)
}

// show prints t under title, or files it under section when the tour collects JSON
func (r *runner) show(section, title string, t *tabular.Table) error {
	if r.filter != "" {
		var err error
		if t, err = t.Filter(r.filter); err != nil {
			return err
		}
	}
	if r.sections != nil {
		*r.sections = append(*r.sections, tabular.Field{Key: section, Value: t})
		return nil
	}
	if r.format != formatter.JSON {
		if _, err := fmt.Fprintf(r.out, "== %s (%d)\n", title, t.Len()); err != nil {
			return err
		}
	}
	return formatter.Render(r.out, t, r.format)
}

func (r *runner) logQueryTime(resource string, qt float64) {
	if qt == utils.NoQueryTime {
		return
	}
	log.Info().Str("resource", resource).Time("queryTime", utils.TimeFromEpochSeconds(qt)).Msg("upstream timestamp")
}

// tolerate lets a discarded response through as an empty result and keeps every other error
func tolerate(err error) error {
	var ve *schema.ValidationError
	if err == nil || errors.As(err, &ve) {
		return nil
	}
	return err
}

func firstString(t *tabular.Table, column string) (string, bool) {
	if t == nil || t.Empty() {
		return "", false
	}
	v, ok := t.Value(0, column)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}
