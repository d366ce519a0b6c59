package schema

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var bundle embed.FS

// Name identifies a bundled schema document and its version
type Name string

const (
	Stops           Name = "stops.v1"
	Arrivals        Name = "arrivals.v1"
	FollowThisTrain Name = "followthistrain.v1"
	Locations       Name = "locations.v1"
)

const baseURL = "https://cta-train-tracker.local/schemas/"

// Names lists every bundled schema
func Names() []Name {
	return []Name{Stops, Arrivals, FollowThisTrain, Locations}
}

// URL is the identifier the document is registered under
func (n Name) URL() string {
	return baseURL + string(n) + ".json"
}

// Document returns the raw bundled JSON for n
func Document(n Name) ([]byte, error) {
	return bundle.ReadFile("schemas/" + string(n) + ".json")
}

// Violation is a single structural mismatch
type Violation struct {
	InstanceLocation string `json:"instanceLocation"`
	KeywordLocation  string `json:"keywordLocation"`
	Message          string `json:"message"`
}

func (v Violation) String() string {
	loc := v.InstanceLocation
	if loc == "" {
		loc = "/"
	}
	return loc + ": " + v.Message
}

// Result is the outcome of validating one response body.
// Document holds the decoded body only when Valid is true.
type Result struct {
	Schema     Name
	Valid      bool
	Document   any
	Violations []Violation
}

// Err returns nil for a valid result and *ValidationError otherwise
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return &ValidationError{Schema: r.Schema, Violations: r.Violations}
}

// ValidationError reports a response that does not match its schema
type ValidationError struct {
	Schema     Name
	Violations []Violation
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return fmt.Sprintf("response does not match schema %s", e.Schema)
	}
	msg := fmt.Sprintf("response does not match schema %s: %s", e.Schema, e.Violations[0])
	if n := len(e.Violations) - 1; n > 0 {
		msg += fmt.Sprintf(" (and %d more)", n)
	}
	return msg
}

// Messages renders every violation, one per entry
func (e *ValidationError) Messages() []string {
	out := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		out = append(out, v.String())
	}
	return out
}

// Validator holds the compiled bundle
type Validator struct {
	schemas map[Name]*jsonschema.Schema
}

// NewValidator compiles every bundled schema document
func NewValidator() (*Validator, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft6

	for _, n := range Names() {
		data, err := Document(n)
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", n, err)
		}
		if err := c.AddResource(n.URL(), bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("add schema %s: %w", n, err)
		}
	}

	v := &Validator{schemas: make(map[Name]*jsonschema.Schema, len(Names()))}
	for _, n := range Names() {
		s, err := c.Compile(n.URL())
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", n, err)
		}
		v.schemas[n] = s
	}
	return v, nil
}

// MustNewValidator is NewValidator for package-level initialisation
func MustNewValidator() *Validator {
	v, err := NewValidator()
	if err != nil {
		panic(err)
	}
	return v
}

// Validate decodes body and checks it against the named schema
func (v *Validator) Validate(name Name, body []byte) Result {
	res := Result{Schema: name}

	s, ok := v.schemas[name]
	if !ok {
		res.Violations = []Violation{{Message: fmt.Sprintf("unknown schema %q", name)}}
		return res
	}

	doc, err := decode(body)
	if err != nil {
		res.Violations = []Violation{{Message: "invalid JSON: " + err.Error()}}
		return res
	}

	if err := s.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			res.Violations = flatten(ve, nil)
		} else {
			res.Violations = []Violation{{Message: err.Error()}}
		}
		return res
	}

	res.Valid = true
	res.Document = doc
	return res
}

func decode(body []byte) (any, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errors.New("empty body")
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("trailing data after document")
	}
	return doc, nil
}

// flatten keeps the leaf causes; intermediate nodes only say "doesn't validate with ...".
func flatten(ve *jsonschema.ValidationError, out []Violation) []Violation {
	if len(ve.Causes) == 0 {
		return append(out, Violation{
			InstanceLocation: ve.InstanceLocation,
			KeywordLocation:  strings.TrimPrefix(ve.KeywordLocation, "#"),
			Message:          ve.Message,
		})
	}
	for _, c := range ve.Causes {
		out = flatten(c, out)
	}
	return out
}
