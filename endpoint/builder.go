// Package endpoint builds CTA query URLs from a fixed base and an ordered
// list of optional parameters.
package endpoint

import (
	"net/url"
	"strconv"
	"strings"
)

// Rule decides whether a parameter is written to the query string
type Rule int

const (
	// OmitEmpty drops the parameter when its value is empty
	OmitEmpty Rule = iota
	// Positive drops a count parameter unless it is greater than zero
	Positive
	// Always writes the parameter, even when empty
	Always
)

// Param is one name=value pair with its inclusion rule
type Param struct {
	Name  string
	Value string
	Rule  Rule

	escaped bool
}

// String is an id or text parameter, omitted when empty
func String(name, value string) Param {
	return Param{Name: name, Value: value, Rule: OmitEmpty}
}

// Int is a count limit, omitted unless n > 0
func Int(name string, n int) Param {
	return Param{Name: name, Value: strconv.Itoa(n), Rule: Positive}
}

// List joins the non-empty values with commas, omitted when none remain
func List(name string, values []string) Param {
	kept := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			kept = append(kept, url.QueryEscape(v))
		}
	}
	return Param{Name: name, Value: strings.Join(kept, ","), Rule: OmitEmpty, escaped: true}
}

// Fixed is written on every call
func Fixed(name, value string) Param {
	return Param{Name: name, Value: value, Rule: Always}
}

// Included reports whether the rule admits the value
func (p Param) Included() bool {
	switch p.Rule {
	case Positive:
		n, err := strconv.Atoi(strings.TrimSpace(p.Value))
		return err == nil && n > 0
	case Always:
		return true
	default:
		return p.Value != ""
	}
}

// List values are escaped element-wise so the separating commas stay literal.
func (p Param) encode() string {
	v := p.Value
	if !p.escaped {
		v = url.QueryEscape(v)
	}
	return p.Name + "=" + v
}

// Descriptor is a base URL plus the parameters every request carries
type Descriptor struct {
	base  string
	fixed []Param
}

// NewDescriptor builds an immutable descriptor
func NewDescriptor(base string, fixed ...Param) Descriptor {
	return Descriptor{base: base, fixed: append([]Param(nil), fixed...)}
}

// Base returns the URL without any parameters
func (d Descriptor) Base() string {
	return d.base
}

// Build appends the fixed parameters and then each included parameter, in declared order
func (d Descriptor) Build(params ...Param) string {
	var b strings.Builder
	b.WriteString(d.base)

	sep := "?"
	if strings.Contains(d.base, "?") {
		sep = "&"
		if strings.HasSuffix(d.base, "?") || strings.HasSuffix(d.base, "&") {
			sep = ""
		}
	}

	write := func(p Param) {
		if !p.Included() {
			return
		}
		b.WriteString(sep)
		b.WriteString(p.encode())
		sep = "&"
	}
	for _, p := range d.fixed {
		write(p)
	}
	for _, p := range params {
		write(p)
	}
	return b.String()
}
