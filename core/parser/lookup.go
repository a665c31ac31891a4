// ABOUTME: Namespace-tolerant element lookup over an xmlquery DOM
// ABOUTME: Matches qualified names, then local names, then tag substrings

package parser

import (
	"strings"

	"github.com/antchfx/xmlquery"
)

// namespacePrefixes maps well-known namespace URIs to the prefix feeds use for them
var namespacePrefixes = map[string]string{
	"http://www.itunes.com/dtds/podcast-1.0.dtd":                                 "itunes",
	"https://podcastindex.org/namespace/1.0":                                     "podcast",
	"https://github.com/Podcastindex-org/podcast-namespace/blob/main/docs/1.0.md": "podcast",
	"http://purl.org/dc/elements/1.1/":                                           "dc",
	"http://purl.org/rss/1.0/modules/content/":                                   "content",
	"http://www.w3.org/2005/Atom":                                                "atom",
	"http://search.yahoo.com/mrss/":                                              "media",
}

// prefixOf returns the prefix an element was written with. Undeclared prefixes
// survive non-strict decoding as the namespace URI itself.
func prefixOf(n *xmlquery.Node) string {
	if n.Prefix != "" {
		return n.Prefix
	}
	if n.NamespaceURI == "" {
		return ""
	}
	if p, ok := namespacePrefixes[n.NamespaceURI]; ok {
		return p
	}
	if !strings.ContainsAny(n.NamespaceURI, ":/") {
		return n.NamespaceURI
	}
	return ""
}

// qualifiedName renders an element name as prefix:local
func qualifiedName(n *xmlquery.Node) string {
	if p := prefixOf(n); p != "" {
		return p + ":" + n.Data
	}
	return n.Data
}

func splitName(name string) (prefix, local string) {
	if i := strings.IndexByte(name, ':'); i > 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}

// scope is a subtree searched by the lookup helpers. Channel-level scopes
// skip item subtrees so episode data never leaks into channel fields.
type scope struct {
	root      *xmlquery.Node
	skipItems bool
}

func within(n *xmlquery.Node) scope {
	return scope{root: n}
}

func channelScope(n *xmlquery.Node) scope {
	return scope{root: n, skipItems: true}
}

func isItem(n *xmlquery.Node) bool {
	return n.Type == xmlquery.ElementNode && n.Data == "item"
}

// breadthFirst visits element descendants level by level, so direct children
// win over deeper matches.
func (s scope) breadthFirst(visit func(*xmlquery.Node) bool) {
	if s.root == nil {
		return
	}
	queue := []*xmlquery.Node{s.root}
	for len(queue) > 0 {
		parent := queue[0]
		queue = queue[1:]
		for c := parent.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != xmlquery.ElementNode {
				continue
			}
			if s.skipItems && isItem(c) {
				continue
			}
			if visit(c) {
				return
			}
			queue = append(queue, c)
		}
	}
}

// documentOrder visits element descendants depth first.
func (s scope) documentOrder(visit func(*xmlquery.Node)) {
	if s.root == nil {
		return
	}
	var walk func(*xmlquery.Node)
	walk = func(parent *xmlquery.Node) {
		for c := parent.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != xmlquery.ElementNode {
				continue
			}
			if s.skipItems && isItem(c) {
				continue
			}
			visit(c)
			walk(c)
		}
	}
	walk(s.root)
}

func (s scope) firstWhere(match func(*xmlquery.Node) bool) *xmlquery.Node {
	var found *xmlquery.Node
	s.breadthFirst(func(n *xmlquery.Node) bool {
		if match(n) {
			found = n
			return true
		}
		return false
	})
	return found
}

func exactMatcher(name string) func(*xmlquery.Node) bool {
	prefix, local := splitName(name)
	return func(n *xmlquery.Node) bool {
		return n.Data == local && prefixOf(n) == prefix
	}
}

func localMatcher(name string) func(*xmlquery.Node) bool {
	_, local := splitName(name)
	return func(n *xmlquery.Node) bool {
		return strings.EqualFold(n.Data, local)
	}
}

func substringMatcher(name string) func(*xmlquery.Node) bool {
	_, local := splitName(name)
	needle := strings.ToLower(local)
	return func(n *xmlquery.Node) bool {
		return strings.Contains(strings.ToLower(qualifiedName(n)), needle)
	}
}

// first finds an element by exact qualified name, then by local name.
func (s scope) first(name string) *xmlquery.Node {
	if n := s.firstWhere(exactMatcher(name)); n != nil {
		return n
	}
	return s.firstWhere(localMatcher(name))
}

// fuzzy is first plus a last-resort substring match on the tag name.
func (s scope) fuzzy(name string) *xmlquery.Node {
	if n := s.first(name); n != nil {
		return n
	}
	return s.firstWhere(substringMatcher(name))
}

// all returns every element matching name by qualified or local name, in document order.
func (s scope) all(name string) []*xmlquery.Node {
	exact := exactMatcher(name)
	local := localMatcher(name)
	var out []*xmlquery.Node
	s.documentOrder(func(n *xmlquery.Node) {
		if exact(n) || local(n) {
			out = append(out, n)
		}
	})
	return out
}

// allFuzzy is all, falling back to a substring match when nothing matched by name.
func (s scope) allFuzzy(name string) []*xmlquery.Node {
	if out := s.all(name); len(out) > 0 {
		return out
	}
	match := substringMatcher(name)
	var out []*xmlquery.Node
	s.documentOrder(func(n *xmlquery.Node) {
		if match(n) {
			out = append(out, n)
		}
	})
	return out
}

// text returns the trimmed text of the first element matching name.
func (s scope) text(name string) string {
	return textOf(s.first(name))
}

// attr returns an attribute of the first element matching name.
func (s scope) attr(name, attribute string) string {
	return attrOf(s.first(name), attribute)
}

func textOf(n *xmlquery.Node) string {
	if n == nil {
		return ""
	}
	return strings.TrimSpace(n.InnerText())
}

// attrOf reads an attribute by local name, ignoring case as a fallback.
func attrOf(n *xmlquery.Node, name string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Name.Local == name {
			return strings.TrimSpace(a.Value)
		}
	}
	for _, a := range n.Attr {
		if strings.EqualFold(a.Name.Local, name) {
			return strings.TrimSpace(a.Value)
		}
	}
	return ""
}

func hasAttr(n *xmlquery.Node, name string) bool {
	if n == nil {
		return false
	}
	for _, a := range n.Attr {
		if strings.EqualFold(a.Name.Local, name) {
			return true
		}
	}
	return false
}
