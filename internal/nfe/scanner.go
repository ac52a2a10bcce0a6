package nfe

import (
	"html"
	"regexp"
	"strings"
	"sync"
)

// Scope is a slice of document text that field lookups are confined to.
// Every lookup goes through Scalar or Section so that a field is only ever
// read from inside the block it belongs to (emit/CNPJ is not dest/CNPJ).
//
// Matching is case-insensitive, ignores attributes and namespace prefixes,
// and never requires the surrounding document to be well formed.
type Scope string

var (
	elementCache sync.Map // tag -> *regexp.Regexp
	attrCache    sync.Map // tag+"@"+attr -> *regexp.Regexp

	cdataPattern = regexp.MustCompile(`(?s)^<!\[CDATA\[(.*)\]\]>$`)
)

func elementPattern(tag string) *regexp.Regexp {
	if re, ok := elementCache.Load(tag); ok {
		return re.(*regexp.Regexp)
	}
	q := regexp.QuoteMeta(tag)
	re := regexp.MustCompile(`(?is)<(?:[\w.-]+:)?` + q + `(?:\s[^>]*)?>(.*?)</(?:[\w.-]+:)?` + q + `\s*>`)
	elementCache.Store(tag, re)
	return re
}

func attrPattern(tag, attr string) *regexp.Regexp {
	key := tag + "@" + attr
	if re, ok := attrCache.Load(key); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`(?is)<(?:[\w.-]+:)?` + regexp.QuoteMeta(tag) +
		`\s[^>]*?\b` + regexp.QuoteMeta(attr) + `\s*=\s*["']?([^"'\s>]+)`)
	attrCache.Store(key, re)
	return re
}

// Scalar returns the trimmed inner text of the first tag element in scope.
// An element with empty content counts as absent.
func (s Scope) Scalar(tag string) (string, bool) {
	if s == "" {
		return "", false
	}
	m := elementPattern(tag).FindStringSubmatch(string(s))
	if m == nil {
		return "", false
	}
	text := cleanText(m[1])
	if text == "" {
		return "", false
	}
	return text, true
}

// Section isolates the content between the first tag element's opening and closing bounds.
func (s Scope) Section(tag string) (Scope, bool) {
	if s == "" {
		return "", false
	}
	m := elementPattern(tag).FindStringSubmatch(string(s))
	if m == nil {
		return "", false
	}
	return Scope(m[1]), true
}

// Elements returns every complete tag element in scope, opening tag included,
// in document order.
func (s Scope) Elements(tag string) []Scope {
	if s == "" {
		return nil
	}
	matches := elementPattern(tag).FindAllStringSubmatch(string(s), -1)
	out := make([]Scope, 0, len(matches))
	for _, m := range matches {
		out = append(out, Scope(m[0]))
	}
	return out
}

// Attr returns an attribute value from the first tag opening in scope.
func (s Scope) Attr(tag, attr string) (string, bool) {
	if s == "" {
		return "", false
	}
	m := attrPattern(tag, attr).FindStringSubmatch(string(s))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// first returns the first tag in the list that has a scalar value.
func (s Scope) first(tags ...string) (string, bool) {
	for _, tag := range tags {
		if v, ok := s.Scalar(tag); ok {
			return v, true
		}
	}
	return "", false
}

func cleanText(raw string) string {
	text := strings.TrimSpace(raw)
	if m := cdataPattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(html.UnescapeString(text))
}

// DigitsOnly strips every non-digit character.
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
