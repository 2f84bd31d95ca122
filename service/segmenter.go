package service

import (
	"regexp"
	"strings"

	"contractguard-backend/models"
)

// Segmenter splits raw contract text into ordered, addressable clauses.
// Segmentation is deterministic: the same text always yields the same
// clause sequence, and each clause's Position points at its exact start in
// the source so text[pos:pos+len(clause)] recovers it for highlighting.
type Segmenter struct{}

// NewSegmenter creates a new segmenter
func NewSegmenter() *Segmenter {
	return &Segmenter{}
}

// blankLine separates paragraphs; numberedItem starts an enumerated
// clause on its own line ("1.", "(a)", "IV.", "2.3").
var (
	blankLine    = regexp.MustCompile(`\n[ \t]*\n`)
	numberedItem = regexp.MustCompile(`(?m)^[ \t]*(?:\d+(?:\.\d+)*[.)]|\([a-z]\)|[IVXLC]+\.)[ \t]`)
)

// Segment splits text into clauses. Paragraphs (blank-line separated)
// are the primary unit; a paragraph containing multiple numbered items
// is further split at each item boundary.
func (s *Segmenter) Segment(text string) []models.Clause {
	var clauses []models.Clause

	for _, span := range s.paragraphSpans(text) {
		for _, sub := range s.splitNumbered(text, span) {
			body := text[sub.start:sub.end]
			trimmed := strings.TrimSpace(body)
			if trimmed == "" {
				continue
			}
			// Advance position past leading whitespace so the stored
			// offset points at the first clause character.
			lead := strings.Index(body, trimmed[:1])
			clauses = append(clauses, models.Clause{
				ID:       len(clauses) + 1,
				Text:     trimmed,
				Position: sub.start + lead,
			})
		}
	}

	return clauses
}

type span struct {
	start, end int
}

// paragraphSpans returns the half-open byte ranges of blank-line
// separated paragraphs, covering every character of the input.
func (s *Segmenter) paragraphSpans(text string) []span {
	var spans []span
	prev := 0
	for _, gap := range blankLine.FindAllStringIndex(text, -1) {
		spans = append(spans, span{prev, gap[0]})
		prev = gap[1]
	}
	spans = append(spans, span{prev, len(text)})
	return spans
}

// splitNumbered splits a paragraph at numbered-item boundaries when it
// holds more than one item; otherwise the paragraph is one clause.
func (s *Segmenter) splitNumbered(text string, p span) []span {
	body := text[p.start:p.end]
	marks := numberedItem.FindAllStringIndex(body, -1)
	if len(marks) < 2 {
		return []span{p}
	}

	var spans []span
	if marks[0][0] > 0 {
		spans = append(spans, span{p.start, p.start + marks[0][0]})
	}
	for i, m := range marks {
		end := p.end
		if i+1 < len(marks) {
			end = p.start + marks[i+1][0]
		}
		spans = append(spans, span{p.start + m[0], end})
	}
	return spans
}
