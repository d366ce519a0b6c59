package cta

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/theoremus-urban-solutions/cta-train-tracker/endpoint"
	"github.com/theoremus-urban-solutions/cta-train-tracker/schema"
	"github.com/theoremus-urban-solutions/cta-train-tracker/tabular"
	"github.com/theoremus-urban-solutions/cta-train-tracker/transport"
	"github.com/theoremus-urban-solutions/cta-train-tracker/utils"
)

// Fetcher is the contract shared by every resource client
type Fetcher[Q, R any] interface {
	Get(ctx context.Context, q Q) (R, error)
	QueryTime() float64
}

// Option customises a client at construction
type Option func(*settings)

type settings struct {
	transport *transport.Client
	validator *schema.Validator
	baseURL   string
	location  *time.Location
}

// WithTransport shares one transport client between resource clients
func WithTransport(c *transport.Client) Option {
	return func(s *settings) { s.transport = c }
}

// WithValidator replaces the bundled schema validator
func WithValidator(v *schema.Validator) Option {
	return func(s *settings) { s.validator = v }
}

// WithBaseURL points the client at a different endpoint
func WithBaseURL(u string) Option {
	return func(s *settings) { s.baseURL = u }
}

// WithLocation sets the zone the upstream tmst is interpreted in
func WithLocation(loc *time.Location) Option {
	return func(s *settings) { s.location = loc }
}

var defaultValidator = sync.OnceValue(schema.MustNewValidator)

var defaultLocation = sync.OnceValue(func() *time.Location {
	loc, err := utils.LoadTimezone(utils.DefaultTimezone)
	if err != nil {
		log.Warn().Err(err).Msg("falling back to UTC for query timestamps")
		return time.UTC
	}
	return loc
})

// resource carries the pipeline every client runs
type resource struct {
	name      string
	schema    schema.Name
	endpoint  endpoint.Descriptor
	transport *transport.Client
	validator *schema.Validator
	location  *time.Location
	queryTime float64
}

func newResource(name string, s schema.Name, defaultURL string, fixed []endpoint.Param, opts []Option) resource {
	cfg := settings{baseURL: defaultURL}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.transport == nil {
		cfg.transport = transport.NewClient(transport.DefaultOptions())
	}
	if cfg.validator == nil {
		cfg.validator = defaultValidator()
	}
	if cfg.location == nil {
		cfg.location = defaultLocation()
	}

	return resource{
		name:      name,
		schema:    s,
		endpoint:  endpoint.NewDescriptor(cfg.baseURL, fixed...),
		transport: cfg.transport,
		validator: cfg.validator,
		location:  cfg.location,
		queryTime: utils.NoQueryTime,
	}
}

// trainTrackerParams are attached to every Train Tracker request
func trainTrackerParams(key string) []endpoint.Param {
	return []endpoint.Param{
		endpoint.Fixed("outputType", "JSON"),
		endpoint.Fixed("key", key),
	}
}

// QueryTime is the upstream timestamp of the last validated response in
// epoch seconds, or -1 before one has been received
func (r *resource) QueryTime() float64 {
	return r.queryTime
}

// Endpoint is the base URL the client queries
func (r *resource) Endpoint() string {
	return r.endpoint.Base()
}

// fetch retrieves url and returns the body only if it validates
func (r *resource) fetch(ctx context.Context, url string) ([]byte, error) {
	log.Debug().Str("resource", r.name).Str("url", transport.RedactURL(url)).Msg("querying")

	body, err := r.transport.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.name, err)
	}

	res := r.validator.Validate(r.schema, body)
	if !res.Valid {
		return nil, r.reject(res.Err(), body)
	}
	return body, nil
}

// ctatt is the Train Tracker envelope, with payload members left raw
type ctatt struct {
	Tmst     string          `json:"tmst"`
	ErrCd    string          `json:"errCd"`
	ErrNm    *string         `json:"errNm"`
	Eta      json.RawMessage `json:"eta"`
	Position json.RawMessage `json:"position"`
	Route    json.RawMessage `json:"route"`

	queryTime float64
}

// fetchTrainTracker runs fetch and unpacks a validated ctatt envelope with a parsed tmst
func (r *resource) fetchTrainTracker(ctx context.Context, url string) (*ctatt, error) {
	body, err := r.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	var env struct {
		Ctatt ctatt `json:"ctatt"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, r.reject(invalid(r.schema, "", err.Error()), body)
	}

	qt, err := utils.ParseQueryTimestamp(env.Ctatt.Tmst, r.location)
	if err != nil {
		return nil, r.reject(invalid(r.schema, "/ctatt/tmst", err.Error()), body)
	}
	env.Ctatt.queryTime = qt
	return &env.Ctatt, nil
}

// records tabulates a payload member; a failure here still counts as an invalid response
func (r *resource) records(raw json.RawMessage, location string) ([]tabular.Record, error) {
	recs, err := tabular.DecodeRecords(raw)
	if err != nil {
		return nil, r.reject(invalid(r.schema, location, err.Error()), nil)
	}
	return recs, nil
}

// commit records the timestamp of a response that made it through every stage
func (r *resource) commit(qt float64, rows int) {
	r.queryTime = qt
	log.Debug().Str("resource", r.name).Int("rows", rows).Float64("queryTime", qt).Msg("query complete")
}

func (r *resource) reject(err error, body []byte) error {
	ev := log.Warn().Str("resource", r.name).Str("schema", string(r.schema))

	var ve *schema.ValidationError
	if errors.As(err, &ve) {
		ev = ev.Strs("violations", ve.Messages())
	}
	if code, name, ok := upstreamError(body); ok {
		ev = ev.Str("errCd", code).Str("errNm", name)
	}
	ev.Msg("response discarded")

	return fmt.Errorf("%s: %w", r.name, err)
}

func invalid(s schema.Name, location, msg string) error {
	return &schema.ValidationError{
		Schema:     s,
		Violations: []schema.Violation{{InstanceLocation: location, Message: msg}},
	}
}

// upstreamError pulls the diagnostic fields out of a Train Tracker body, if any
func upstreamError(body []byte) (code, name string, ok bool) {
	if len(body) == 0 {
		return "", "", false
	}
	var env struct {
		Ctatt struct {
			ErrCd *string `json:"errCd"`
			ErrNm *string `json:"errNm"`
		} `json:"ctatt"`
	}
	if err := json.Unmarshal(body, &env); err != nil || env.Ctatt.ErrCd == nil {
		return "", "", false
	}
	if env.Ctatt.ErrNm != nil {
		name = *env.Ctatt.ErrNm
	}
	return *env.Ctatt.ErrCd, name, true
}

// emptyOnReject maps a discarded response to an empty table and passes other errors through
func emptyOnReject(err error) (*tabular.Table, error) {
	if isRejected(err) {
		return tabular.New(), err
	}
	return nil, err
}

func isRejected(err error) bool {
	var ve *schema.ValidationError
	return errors.As(err, &ve)
}
