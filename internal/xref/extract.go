package xref

import (
	"regexp"
	"strings"
)

// contextRadius is how many bytes on each side of the @ sigil end up in a
// candidate's context window.
const contextRadius = 50

// The token run stops at the first non-path character, which is left
// unconsumed so that "@a@b.com" yields both "a" and "b.com".
var atReferenceRE = regexp.MustCompile(`@([\w\-./]+)`)

// Context is the text surrounding a candidate reference.
type Context struct {
	// Window holds up to contextRadius bytes either side of the @ sigil.
	Window string
	// Before is the byte preceding the @ sigil, 0 at start of input.
	Before byte
	// After is the byte following the matched run, 0 at end of input.
	After byte
}

// Candidate is an @ token found in prose, before classification.
type Candidate struct {
	Token   string
	Source  string
	Line    int
	Context Context
}

// Extract returns the @ references in content that sit outside fenced and
// inline code, in document order. source is recorded on each candidate.
func Extract(source, content string) []Candidate {
	matches := atReferenceRE.FindAllStringSubmatchIndex(content, -1)
	candidates := make([]Candidate, 0, len(matches))
	for _, m := range matches {
		start, end := m[0], m[1]
		if inCode(content, start) {
			continue
		}
		token := trimSentencePunctuation(content[m[2]:m[3]])
		candidates = append(candidates, Candidate{
			Token:   token,
			Source:  source,
			Line:    strings.Count(content[:start], "\n") + 1,
			Context: contextAround(content, start, end),
		})
	}
	return candidates
}

// inCode reports whether offset lies inside a fenced block or an inline code
// span. Parity is recounted from the start of content on every call.
func inCode(content string, offset int) bool {
	before := content[:offset]
	if strings.Count(before, "```")%2 == 1 || strings.Count(before, "~~~")%2 == 1 {
		return true
	}
	lineStart := strings.LastIndexByte(before, '\n') + 1
	return strings.Count(before[lineStart:], "`")%2 == 1
}

func contextAround(content string, start, end int) Context {
	lo := max(0, start-contextRadius)
	hi := min(len(content), max(end, start+contextRadius))
	ctx := Context{Window: content[lo:hi]}
	if start > 0 {
		ctx.Before = content[start-1]
	}
	if end < len(content) {
		ctx.After = content[end]
	}
	return ctx
}

// trimSentencePunctuation drops dots that end a sentence rather than a path.
// A final segment made only of dots, such as "docs/..", is a parent
// reference and stays as written.
func trimSentencePunctuation(token string) string {
	last := token[strings.LastIndexByte(token, '/')+1:]
	if len(last) >= 2 && strings.Trim(last, ".") == "" {
		return token
	}
	trimmed := strings.TrimRight(token, ".")
	if trimmed == "" {
		return token
	}
	return trimmed
}
