package automaton

import (
	"fmt"
	"strings"

	"github.com/kittclouds/rolegraph/internal/logging"
)

// Format selects how a matched span is rendered by ReplaceMatches.
type Format int

const (
	// FormatPlain emits the matched surface text unchanged.
	FormatPlain Format = iota
	// FormatMarkdown emits [term](payload).
	FormatMarkdown
	// FormatHTML emits <a href="payload">term</a>.
	FormatHTML
	// FormatWiki emits [[term]].
	FormatWiki
)

// ReplaceMatches rewrites text, replacing every match with its rendered
// form under format. Non-match text passes through verbatim. If a link
// format (markdown/html) is requested for a match whose normalized term
// has no payload, the surface term is emitted as plain text and a warning
// is logged (spec §4.2).
//
// Invariant I3: ReplaceMatches is idempotent under FormatPlain, because
// FormatPlain always re-emits the original matched substring verbatim.
func ReplaceMatches(text string, a *Automaton, format Format) string {
	matches := FindMatches(text, a)
	if len(matches) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, m := range matches {
		b.WriteString(text[last:m.Span[0]])
		b.WriteString(renderMatch(m, format))
		last = m.Span[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

func renderMatch(m Match, format Format) string {
	switch format {
	case FormatMarkdown:
		if m.Normalized.Payload == "" {
			logging.L().Warnw("automaton: markdown replace missing payload, emitting plain text",
				"term", m.Term)
			return m.Term
		}
		return fmt.Sprintf("[%s](%s)", m.Term, m.Normalized.Payload)
	case FormatHTML:
		if m.Normalized.Payload == "" {
			logging.L().Warnw("automaton: html replace missing payload, emitting plain text",
				"term", m.Term)
			return m.Term
		}
		return fmt.Sprintf(`<a href="%s">%s</a>`, m.Normalized.Payload, m.Term)
	case FormatWiki:
		return fmt.Sprintf("[[%s]]", m.Term)
	case FormatPlain:
		fallthrough
	default:
		return m.Term
	}
}
