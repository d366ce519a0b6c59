package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/theoremus-urban-solutions/cta-train-tracker/cta"
	"github.com/theoremus-urban-solutions/cta-train-tracker/utils"
)

func main() {
	utils.InitLogging("info")

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal().Err(err).Send()
	}
}

// routes prefers a --routes given to the subcommand over the global one
func routes(c *cli.Context) []string {
	for _, ctx := range c.Lineage() {
		if rs := ctx.StringSlice("routes"); len(rs) > 0 {
			return rs
		}
	}
	return nil
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "cta-trains",
		Usage: "query CTA \"L\" stops, arrivals, runs and train positions",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "key",
				Aliases: []string{"k"},
				Usage:   "Train Tracker API key",
				EnvVars: []string{"CTA_API_KEY"},
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to a YAML config file",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "output format: text, json, csv or pretty",
				Value: "text",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "trace, debug, info, warn or error (defaults to the config value)",
			},
			&cli.StringFlag{
				Name:  "filter",
				Usage: "boolean expression over a row's columns, e.g. isApp == \"1\"",
			},
			&cli.StringSliceFlag{
				Name:  "routes",
				Usage: "routes for train positions",
				Value: cli.NewStringSlice("red", "blue"),
			},
		},
		Action: func(c *cli.Context) error {
			r, err := newRunner(c, true)
			if err != nil {
				return err
			}
			return r.tour(c.Context, routes(c))
		},
		Commands: []*cli.Command{
			{
				Name:  "stops",
				Usage: "list \"L\" stops",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "map-id", Usage: "only stops of this station"},
					&cli.IntFlag{Name: "limit", Usage: "maximum number of stops"},
				},
				Action: func(c *cli.Context) error {
					r, err := newRunner(c, false)
					if err != nil {
						return err
					}
					return r.stops(c.Context, c.String("map-id"), c.Int("limit"))
				},
			},
			{
				Name:  "arrivals",
				Usage: "arrival predictions for a station or a stop",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "map-id", Usage: "station (parent stop) id"},
					&cli.StringFlag{Name: "stop-id", Usage: "platform stop id"},
					&cli.IntFlag{Name: "max", Usage: "maximum number of predictions"},
					&cli.StringFlag{Name: "route", Usage: "only this route"},
				},
				Action: func(c *cli.Context) error {
					r, err := newRunner(c, true)
					if err != nil {
						return err
					}
					_, err = r.arrivals(c.Context, cta.ArrivalsQuery{
						MapID:  c.String("map-id"),
						StopID: c.String("stop-id"),
						Max:    c.Int("max"),
						Route:  c.String("route"),
					})
					return err
				},
			},
			{
				Name:  "follow",
				Usage: "predictions for one train run",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "run", Usage: "train run number", Required: true},
				},
				Action: func(c *cli.Context) error {
					r, err := newRunner(c, true)
					if err != nil {
						return err
					}
					return r.follow(c.Context, c.String("run"))
				},
			},
			{
				Name:  "locations",
				Usage: "positions of in-service trains by route",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{Name: "routes", Usage: "routes for train positions (defaults to the global --routes)"},
				},
				Action: func(c *cli.Context) error {
					r, err := newRunner(c, true)
					if err != nil {
						return err
					}
					return r.locations(c.Context, routes(c))
				},
			},
		},
	}
}
