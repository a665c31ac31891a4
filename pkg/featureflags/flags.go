// ABOUTME: Feature flags for switching optional parts of the feed service on and off
// ABOUTME: Flags default to enabled and are turned off through FEATURE_* environment variables

package featureflags

import (
	"context"
	"os"
	"sort"
	"strings"
	"sync"
)

// FeatureFlag represents a single feature flag
type FeatureFlag string

// Defined feature flags
const (
	// Enrichment resolves podroll and publisher references through their own feeds
	Enrichment FeatureFlag = "enrichment"

	// RSSProxy exposes /api/rss-proxy, the first transport strategy for other deployments
	RSSProxy FeatureFlag = "rss_proxy"

	// Metrics exposes the Prometheus /metrics endpoint
	Metrics FeatureFlag = "metrics"

	// RateLimit enables per-client request limiting
	RateLimit FeatureFlag = "rate_limit"
)

// All lists every defined flag
var All = []FeatureFlag{Enrichment, RSSProxy, Metrics, RateLimit}

// Manager reports whether a flag is on
type Manager interface {
	IsEnabled(ctx context.Context, flag FeatureFlag) bool
	SetEnabled(flag FeatureFlag, enabled bool)
	Snapshot() map[FeatureFlag]bool
}

// EnvManager implements Manager using environment variables. A flag is on
// unless its variable says otherwise.
type EnvManager struct {
	mu        sync.RWMutex
	overrides map[FeatureFlag]bool
	prefix    string
}

// NewEnvManager creates a new environment-based feature flag manager
func NewEnvManager(prefix string) *EnvManager {
	if prefix == "" {
		prefix = "FEATURE_"
	}
	return &EnvManager{
		overrides: make(map[FeatureFlag]bool),
		prefix:    prefix,
	}
}

// IsEnabled checks if a feature flag is enabled
func (m *EnvManager) IsEnabled(_ context.Context, flag FeatureFlag) bool {
	m.mu.RLock()
	enabled, ok := m.overrides[flag]
	m.mu.RUnlock()
	if ok {
		return enabled
	}

	value := strings.ToLower(strings.TrimSpace(os.Getenv(m.prefix + strings.ToUpper(string(flag)))))
	switch value {
	case "false", "0", "off", "disabled":
		return false
	default:
		return true
	}
}

// SetEnabled pins a flag regardless of the environment
func (m *EnvManager) SetEnabled(flag FeatureFlag, enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.overrides[flag] = enabled
}

// Snapshot returns the state of every defined flag
func (m *EnvManager) Snapshot() map[FeatureFlag]bool {
	ctx := context.Background()
	flags := make(map[FeatureFlag]bool, len(All))
	for _, f := range All {
		flags[f] = m.IsEnabled(ctx, f)
	}
	return flags
}

// StaticManager implements Manager with fixed states; unknown flags are off
type StaticManager struct {
	flags map[FeatureFlag]bool
	mu    sync.RWMutex
}

// NewStaticManager creates a manager with predefined flag states
func NewStaticManager(flags map[FeatureFlag]bool) *StaticManager {
	copied := make(map[FeatureFlag]bool, len(flags))
	for k, v := range flags {
		copied[k] = v
	}
	return &StaticManager{flags: copied}
}

// IsEnabled checks if a feature flag is enabled
func (m *StaticManager) IsEnabled(_ context.Context, flag FeatureFlag) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.flags[flag]
}

// SetEnabled sets a feature flag's state
func (m *StaticManager) SetEnabled(flag FeatureFlag, enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flags[flag] = enabled
}

// Snapshot returns all flag states
func (m *StaticManager) Snapshot() map[FeatureFlag]bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[FeatureFlag]bool, len(m.flags))
	for k, v := range m.flags {
		result[k] = v
	}
	return result
}

// Disabled returns the names of the flags that are off, sorted, for startup logs
func Disabled(m Manager) []string {
	var off []string
	for flag, on := range m.Snapshot() {
		if !on {
			off = append(off, string(flag))
		}
	}
	sort.Strings(off)
	return off
}
