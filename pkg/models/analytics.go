package models

// DefaultAnalyticsHost is used when no analytics host is configured
const DefaultAnalyticsHost = "https://us.i.posthog.com"

// AnalyticsConfig is resolved once per request and never mutated afterwards.
// An empty Key means analytics is disabled.
type AnalyticsConfig struct {
	Key  string `json:"key,omitempty"`
	Host string `json:"host"`
}

// NewAnalyticsConfig applies the default host when host is empty
func NewAnalyticsConfig(key, host string) AnalyticsConfig {
	if host == "" {
		host = DefaultAnalyticsHost
	}
	return AnalyticsConfig{Key: key, Host: host}
}

// Enabled reports whether a key is present
func (c AnalyticsConfig) Enabled() bool {
	return c.Key != ""
}
