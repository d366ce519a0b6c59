// Package schema bundles the draft-06 JSON Schema documents that describe
// each CTA response shape and validates raw response bodies against them.
//
// Validation is structural only: required members, primitive types,
// closed enumerations and additionalProperties. Values are never
// interpreted or coerced. Every call returns a Result; callers branch on
// Result.Valid (or Result.Err) instead of recovering from a panic.
//
// Documents are versioned by name. A response for a given endpoint is
// checked against exactly one version:
//
//	stops.v1             data.cityofchicago.org "L" stop listing
//	arrivals.v1          ttarrivals.aspx
//	followthistrain.v1   ttfollow.aspx
//	locations.v1         ttpositions.aspx
package schema
