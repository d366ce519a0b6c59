// Package config handles application configuration loading and validation.
//
// Configuration is loaded from a YAML file and validated using struct tags.
// Zero values are replaced with the public CTA endpoints, a 60 second
// request timeout and the legacy TLS policy.
package config
