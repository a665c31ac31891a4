package transport

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreerrors "podfeed-api/core/errors"
)

func TestNormalizePayload_TrimsWhitespaceAndBOM(t *testing.T) {
	got, err := NormalizePayload("https://a", "\ufeff  \n<rss/>\n")
	require.NoError(t, err)
	assert.Equal(t, "<rss/>", got)
}

func TestNormalizePayload_DecodesBase64DataURI(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("<rss><channel/></rss>"))

	got, err := NormalizePayload("https://a", "data:application/rss+xml;base64,"+encoded)

	require.NoError(t, err)
	assert.Equal(t, "<rss><channel/></rss>", got)
}

func TestNormalizePayload_BadBase64(t *testing.T) {
	_, err := NormalizePayload("https://a", "data:application/rss+xml;base64,@@@not-base64@@@")

	require.Error(t, err)
	var nonXML *coreerrors.NonXMLResponseError
	require.True(t, errors.As(err, &nonXML))
	assert.True(t, nonXML.DecodeFailed)
}

func TestNormalizePayload_RejectsNonXML(t *testing.T) {
	_, err := NormalizePayload("https://a", `{"error":"nope"}`)

	require.Error(t, err)
	var nonXML *coreerrors.NonXMLResponseError
	require.True(t, errors.As(err, &nonXML))
	assert.False(t, nonXML.DecodeFailed)
	assert.Equal(t, `{"error":"nope"}`, nonXML.Snippet)
}

func TestNormalizePayload_SnippetIsBounded(t *testing.T) {
	_, err := NormalizePayload("https://a", strings.Repeat("x", 1000))

	var nonXML *coreerrors.NonXMLResponseError
	require.True(t, errors.As(err, &nonXML))
	assert.Len(t, nonXML.Snippet, 200)
}

func TestValidateFeedURL(t *testing.T) {
	assert.NoError(t, ValidateFeedURL("https://example.com/feed.xml"))
	assert.NoError(t, ValidateFeedURL("http://example.com:8080/rss"))

	for _, raw := range []string{"", "   ", "example.com/feed.xml", "ftp://example.com", "javascript:alert(1)", "https:///path"} {
		err := ValidateFeedURL(raw)
		assert.True(t, coreerrors.IsInvalidURL(err), "expected invalid url for %q", raw)
	}
}

func TestIsLikelyFeedURL(t *testing.T) {
	assert.True(t, IsLikelyFeedURL("https://example.com/feed.xml"))
	assert.True(t, IsLikelyFeedURL("https://example.com/RSS"))
	assert.False(t, IsLikelyFeedURL("https://example.com/about"))
	assert.False(t, IsLikelyFeedURL("ftp://example.com/feed.xml"))
}

func TestDecoders(t *testing.T) {
	text, err := DecodeJSONEnvelope([]byte(`{"data":"<rss/>"}`), "")
	require.NoError(t, err)
	assert.Equal(t, "<rss/>", text)

	text, err = DecodeJSONEnvelope([]byte(`{"body":"<rss/>"}`), "")
	require.NoError(t, err)
	assert.Equal(t, "<rss/>", text)

	text, err = DecodeJSONEnvelope([]byte(`"<rss/>"`), "")
	require.NoError(t, err)
	assert.Equal(t, "<rss/>", text)

	_, err = DecodeJSONEnvelope([]byte(`{"contents":""}`), "")
	assert.Error(t, err)

	_, err = DecodeJSONEnvelope([]byte(`<rss/>`), "")
	assert.Error(t, err)

	text, err = DecodeAuto([]byte(`{"contents":"<rss/>"}`), "application/json; charset=utf-8")
	require.NoError(t, err)
	assert.Equal(t, "<rss/>", text)

	text, err = DecodeAuto([]byte(`<rss/>`), "text/xml")
	require.NoError(t, err)
	assert.Equal(t, "<rss/>", text)
}

func TestTemplate(t *testing.T) {
	build := Template("https://proxy.example/get?url={url}")
	assert.Equal(t, "https://proxy.example/get?url=https%3A%2F%2Fexample.com%2Ffeed.xml%3Fa%3D1", build("https://example.com/feed.xml?a=1"))

	assert.Equal(t, "https://example.com/feed.xml", Template("{rawurl}")("https://example.com/feed.xml"))

	busted := Template("{rawurl}&cache={cache}")("x")
	assert.True(t, strings.HasPrefix(busted, "x&cache="))
	assert.Greater(t, len(busted), len("x&cache="))
}

func TestLooksLikeFeedDocument(t *testing.T) {
	assert.True(t, LooksLikeFeedDocument([]byte(`<?xml version="1.0"?><rss/>`)))
	assert.True(t, LooksLikeFeedDocument([]byte("\n  <RSS version=\"2.0\"></RSS>")))
	assert.True(t, LooksLikeFeedDocument([]byte(`<feed xmlns="http://www.w3.org/2005/Atom"></feed>`)))
	assert.False(t, LooksLikeFeedDocument([]byte(`<!doctype html><html><body>blocked</body></html>`)))
	assert.False(t, LooksLikeFeedDocument([]byte(`{"error":"nope"}`)))
	assert.False(t, LooksLikeFeedDocument(nil))
}
