package formatter

import (
	"bytes"
	"encoding/json"

	"github.com/theoremus-urban-solutions/cta-train-tracker/tabular"
)

type responseBuilder struct{}

func newResponseBuilder() *responseBuilder { return &responseBuilder{} }

// NewResponseBuilder creates a new builder for serialising tables
func NewResponseBuilder() *responseBuilder {
	return newResponseBuilder()
}

// BuildJSON serializes a table as an array of objects in column order
func (rb *responseBuilder) BuildJSON(t *tabular.Table) ([]byte, error) {
	if t == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(t)
}

// BuildGroupsJSON serializes grouped tables as one object with sorted keys
func (rb *responseBuilder) BuildGroupsJSON(groups map[string]*tabular.Table) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range GroupNames(groups) {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		v, err := rb.BuildJSON(groups[name])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
