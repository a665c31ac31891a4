// ABOUTME: YAML loading for the transport chain
// ABOUTME: Lets operators add, drop or reorder proxies without a code change

package transport

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// StrategyConfig is the YAML form of a Strategy
type StrategyConfig struct {
	Name     string        `yaml:"name"`
	Template string        `yaml:"template"`
	Decode   string        `yaml:"decode"`
	Timeout  time.Duration `yaml:"timeout"`
}

// ChainConfig is the YAML document describing the whole chain
type ChainConfig struct {
	Backoff    time.Duration    `yaml:"backoff"`
	Strategies []StrategyConfig `yaml:"strategies"`
}

// LoadChain reads a chain definition from a YAML file
func LoadChain(path string) (*ChainConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transport config: %w", err)
	}
	return ParseChain(data)
}

// ParseChain decodes and validates a chain definition
func ParseChain(data []byte) (*ChainConfig, error) {
	var cfg ChainConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse transport config: %w", err)
	}
	if len(cfg.Strategies) == 0 {
		return nil, fmt.Errorf("transport config defines no strategies")
	}
	for i, s := range cfg.Strategies {
		if s.Name == "" {
			return nil, fmt.Errorf("strategy %d: name is required", i)
		}
		if !strings.Contains(s.Template, "{url}") && !strings.Contains(s.Template, "{rawurl}") {
			return nil, fmt.Errorf("strategy %q: template must contain {url} or {rawurl}", s.Name)
		}
		if _, err := decoderFor(s.Decode); err != nil {
			return nil, fmt.Errorf("strategy %q: %w", s.Name, err)
		}
	}
	if cfg.Backoff < 0 {
		return nil, fmt.Errorf("backoff cannot be negative")
	}
	return &cfg, nil
}

// Build converts the configuration into strategies. Strategies without a
// timeout use the resolver's default.
func (c *ChainConfig) Build() []Strategy {
	strategies := make([]Strategy, 0, len(c.Strategies))
	for _, s := range c.Strategies {
		decode, _ := decoderFor(s.Decode)
		strategies = append(strategies, Strategy{
			Name:     s.Name,
			BuildURL: Template(s.Template),
			Decode:   decode,
			Timeout:  s.Timeout,
		})
	}
	return strategies
}

func decoderFor(name string) (Decoder, error) {
	switch strings.ToLower(name) {
	case "", "auto":
		return DecodeAuto, nil
	case "raw":
		return DecodeRaw, nil
	case "json":
		return DecodeJSONEnvelope, nil
	default:
		return nil, fmt.Errorf("unknown decoder %q", name)
	}
}
