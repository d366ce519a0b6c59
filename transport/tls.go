package transport

import (
	"crypto/tls"
	"fmt"
	"strings"
)

// TLSPolicy names a cipher and protocol version policy applied to all outbound calls
type TLSPolicy struct {
	Name         string
	MinVersion   uint16
	CipherSuites []uint16
}

// LegacyTLSPolicy accepts TLS 1.0+ and every cipher suite Go implements,
// including the ones it treats as insecure.
func LegacyTLSPolicy() TLSPolicy {
	suites := make([]uint16, 0, len(tls.CipherSuites())+len(tls.InsecureCipherSuites()))
	for _, s := range tls.CipherSuites() {
		suites = append(suites, s.ID)
	}
	for _, s := range tls.InsecureCipherSuites() {
		suites = append(suites, s.ID)
	}
	return TLSPolicy{
		Name:         "legacy",
		MinVersion:   tls.VersionTLS10,
		CipherSuites: suites,
	}
}

// ModernTLSPolicy keeps Go's default suites with TLS 1.2 as the floor
func ModernTLSPolicy() TLSPolicy {
	return TLSPolicy{
		Name:       "modern",
		MinVersion: tls.VersionTLS12,
	}
}

// TLSPolicyByName resolves "legacy" or "modern"
func TLSPolicyByName(name string) (TLSPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "legacy":
		return LegacyTLSPolicy(), nil
	case "modern":
		return ModernTLSPolicy(), nil
	}
	return TLSPolicy{}, fmt.Errorf("unknown TLS policy %q", name)
}

// Config builds a fresh tls.Config for the policy
func (p TLSPolicy) Config() *tls.Config {
	cfg := &tls.Config{MinVersion: p.MinVersion}
	if len(p.CipherSuites) > 0 {
		cfg.CipherSuites = append([]uint16(nil), p.CipherSuites...)
	}
	return cfg
}
