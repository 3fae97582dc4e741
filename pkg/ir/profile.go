package ir

import "strings"

// Profile is a dialect capability record: comment markers, a tokenizer,
// and a key-hint extractor. Dialects are data, not polymorphism; the
// parser stays monomorphic over this set.
type Profile struct {
	// Name tags parsed documents ("generic", "eos", "iosxe", "junos").
	Name string

	// CommentMarkers are the leading tokens that mark a comment line.
	CommentMarkers []string

	// Tokenize extracts a head token and args from a raw line. Returning
	// false promotes the line to TriviaUnknown.
	Tokenize func(raw string) (ParsedLine, bool)

	// KeyHint derives a stable identity for keyed matching (e.g. the
	// interface name of "interface Ethernet1"). Must be deterministic and
	// side-effect free. Returning false means no hint.
	KeyHint func(raw string, parsed *ParsedLine, trivia Trivia) (string, bool)
}

// classify buckets a raw line into blank/comment/content. Content lines
// are promoted to unknown later if the tokenizer rejects them.
func (p Profile) classify(raw string) Trivia {
	if strings.TrimSpace(raw) == "" {
		return TriviaBlank
	}
	trimmed := strings.TrimLeft(raw, " \t")
	for _, marker := range p.CommentMarkers {
		if strings.HasPrefix(trimmed, marker) {
			return TriviaComment
		}
	}
	return TriviaContent
}
