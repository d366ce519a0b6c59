// Package transport performs the outbound HTTP GETs for every CTA endpoint.
//
// All requests share one TLS policy and one timeout. The legacy policy
// re-enables the cipher suites Go disables by default because the Train
// Tracker hosts still negotiate them; it is a compatibility setting for
// those hosts, not a recommendation. Use ModernTLSPolicy for anything else.
package transport
