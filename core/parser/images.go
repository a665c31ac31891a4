// ABOUTME: Artwork and author resolution for channels and episodes
// ABOUTME: Walks the fallback chains feeds use to publish images and credits

package parser

import (
	"strings"

	"github.com/antchfx/xmlquery"
)

func looksLikeImageURL(v string) bool {
	return strings.Contains(v, "http") || strings.Contains(v, ".jpg") || strings.Contains(v, ".png")
}

// imageAttrOrText reads url/src/href from an image element, then its text if it looks like a link.
func imageAttrOrText(n *xmlquery.Node) string {
	if n == nil {
		return ""
	}
	for _, a := range []string{"href", "url", "src"} {
		if v := attrOf(n, a); v != "" {
			return v
		}
	}
	if t := textOf(n); looksLikeImageURL(t) {
		return t
	}
	return ""
}

// channelImage resolves the channel artwork.
func channelImage(s scope) string {
	sources := []func() string{
		func() string {
			return within(s.firstWhere(exactMatcher("image"))).text("url")
		},
		func() string {
			return attrOf(s.firstWhere(exactMatcher("itunes:image")), "href")
		},
		func() string {
			n := s.firstWhere(func(n *xmlquery.Node) bool {
				if !strings.Contains(strings.ToLower(qualifiedName(n)), "image") {
					return false
				}
				return looksLikeImageURL(attrOf(n, "href"))
			})
			return attrOf(n, "href")
		},
		func() string { return s.attr("image", "href") },
		func() string { return s.text("image") },
		func() string { return s.text("artwork") },
		func() string { return imageAttrOrText(s.first("image")) },
	}
	return firstNonEmpty(sources)
}

// episodeImage resolves the artwork of a single item.
func episodeImage(s scope) string {
	sources := []func() string{
		func() string { return s.attr("itunes:image", "href") },
		func() string { return s.text("image") },
		func() string { return s.attr("image", "href") },
		func() string { return s.text("artwork") },
		func() string { return imageAttrOrText(s.first("image")) },
	}
	return firstNonEmpty(sources)
}

// channelAuthor resolves the channel's credited author.
func channelAuthor(s scope) string {
	sources := []func() string{
		func() string { return textOf(s.firstWhere(exactMatcher("itunes:author"))) },
		func() string {
			n := s.firstWhere(func(n *xmlquery.Node) bool {
				return strings.Contains(strings.ToLower(qualifiedName(n)), "author") && textOf(n) != ""
			})
			return textOf(n)
		},
		func() string { return s.text("author") },
		func() string { return s.text("managingEditor") },
		func() string { return s.text("dc:creator") },
	}
	return firstNonEmpty(sources)
}

func firstNonEmpty(sources []func() string) string {
	for _, source := range sources {
		if v := source(); v != "" {
			return v
		}
	}
	return ""
}
