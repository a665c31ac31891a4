package transport

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chainYAML = `
backoff: 250ms
strategies:
  - name: corsproxy
    template: "https://corsproxy.io/?url={url}"
    timeout: 5s
  - name: allorigins-get
    template: "https://api.allorigins.win/get?url={url}"
    decode: json
  - name: direct
    template: "{rawurl}"
    decode: raw
    timeout: 10s
`

func TestParseChain(t *testing.T) {
	cfg, err := ParseChain([]byte(chainYAML))
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, cfg.Backoff)
	strategies := cfg.Build()
	require.Len(t, strategies, 3)

	assert.Equal(t, "corsproxy", strategies[0].Name)
	assert.Equal(t, 5*time.Second, strategies[0].Timeout)
	assert.Equal(t, "https://corsproxy.io/?url=https%3A%2F%2Fa.example%2Ff.xml", strategies[0].BuildURL("https://a.example/f.xml"))

	assert.Zero(t, strategies[1].Timeout)
	text, err := strategies[1].Decode([]byte(`{"contents":"<rss/>"}`), "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "<rss/>", text)

	assert.Equal(t, "https://a.example/f.xml", strategies[2].BuildURL("https://a.example/f.xml"))
}

func TestParseChain_Invalid(t *testing.T) {
	tests := map[string]string{
		"no strategies":   "backoff: 1s\n",
		"missing name":    "strategies:\n  - template: \"{url}\"\n",
		"no placeholder":  "strategies:\n  - name: x\n    template: \"https://x\"\n",
		"unknown decoder": "strategies:\n  - name: x\n    template: \"{url}\"\n    decode: xml\n",
		"not yaml":        "strategies: [",
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseChain([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadChain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transports.yaml")
	require.NoError(t, os.WriteFile(path, []byte(chainYAML), 0o600))

	cfg, err := LoadChain(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Strategies, 3)

	_, err = LoadChain(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
