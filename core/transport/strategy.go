// ABOUTME: Transport strategies describe one way of reaching a feed (proxy or direct)
// ABOUTME: Each strategy owns its URL template, response decoder and timeout

package transport

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Decoder turns a successful response body into feed text
type Decoder func(body []byte, contentType string) (string, error)

// Strategy is one entry in the ordered transport chain
type Strategy struct {
	Name     string
	BuildURL func(feedURL string) string
	Decode   Decoder

	// Timeout bounds one attempt; zero means the resolver default
	Timeout time.Duration
}

const (
	// DefaultStrategyTimeout bounds a single strategy attempt
	DefaultStrategyTimeout = 8 * time.Second

	// DefaultBackoff is the fixed pause between strategies
	DefaultBackoff = 500 * time.Millisecond
)

// DecodeRaw returns the body unchanged
func DecodeRaw(body []byte, _ string) (string, error) {
	return string(body), nil
}

// DecodeJSONEnvelope unwraps proxies that return the feed inside a JSON object
// under "contents", "data" or "body", or as a bare JSON string.
func DecodeJSONEnvelope(body []byte, _ string) (string, error) {
	var asString string
	if err := json.Unmarshal(body, &asString); err == nil {
		if asString == "" {
			return "", fmt.Errorf("no content received from JSON proxy")
		}
		return asString, nil
	}

	var envelope map[string]interface{}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", fmt.Errorf("decode JSON proxy response: %w", err)
	}
	for _, field := range []string{"contents", "data", "body"} {
		if v, ok := envelope[field].(string); ok && v != "" {
			return v, nil
		}
	}
	return "", fmt.Errorf("unexpected JSON response structure from proxy")
}

// DecodeAuto unwraps JSON when the proxy labels its answer as JSON and
// otherwise treats the body as feed text.
func DecodeAuto(body []byte, contentType string) (string, error) {
	if strings.Contains(strings.ToLower(contentType), "application/json") {
		return DecodeJSONEnvelope(body, contentType)
	}
	return DecodeRaw(body, contentType)
}

// Template builds a URL function from a pattern. {url} is replaced with the
// query-escaped feed URL, {rawurl} with the feed URL as is and {cache} with a
// millisecond timestamp for cache busting.
func Template(pattern string) func(string) string {
	return func(feedURL string) string {
		r := strings.NewReplacer(
			"{url}", url.QueryEscape(feedURL),
			"{rawurl}", feedURL,
			"{cache}", strconv.FormatInt(time.Now().UnixMilli(), 10),
		)
		return r.Replace(pattern)
	}
}

// DefaultStrategies returns the standard chain. The direct fetch always comes
// first, followed by the server-side proxy when proxyBaseURL is set. The
// public CORS proxies come last and use the resolver's default timeout.
func DefaultStrategies(proxyBaseURL string) []Strategy {
	strategies := []Strategy{DirectStrategy()}
	if base := strings.TrimRight(proxyBaseURL, "/"); base != "" {
		strategies = append(strategies, Strategy{
			Name:     "server-proxy",
			BuildURL: Template(base + "/api/rss-proxy?url={url}&cache={cache}"),
			Decode:   DecodeRaw,
			Timeout:  12 * time.Second,
		})
	}
	strategies = append(strategies,
		Strategy{
			Name:     "allorigins-get",
			BuildURL: Template("https://api.allorigins.win/get?url={url}"),
			Decode:   DecodeJSONEnvelope,
		},
		Strategy{
			Name:     "thingproxy",
			BuildURL: Template("https://thingproxy.freeboard.io/fetch/{url}"),
			Decode:   DecodeAuto,
		},
		Strategy{
			Name:     "allorigins-raw",
			BuildURL: Template("https://api.allorigins.win/raw?url={url}"),
			Decode:   DecodeAuto,
		},
		Strategy{
			Name:     "corsproxy",
			BuildURL: Template("https://corsproxy.io/?url={url}"),
			Decode:   DecodeAuto,
		},
		Strategy{
			Name:     "cors-lol",
			BuildURL: Template("https://api.cors.lol/?url={url}"),
			Decode:   DecodeAuto,
		},
	)
	return strategies
}

// DirectStrategy fetches the feed from its origin without a proxy
func DirectStrategy() Strategy {
	return Strategy{
		Name:     "direct",
		BuildURL: Template("{rawurl}"),
		Decode:   DecodeRaw,
		Timeout:  10 * time.Second,
	}
}
