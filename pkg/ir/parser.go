package ir

import "strings"

// Parse builds a lossless Document from input using the given profile.
//
// The parser is total: any byte sequence yields a valid Document that
// renders back to the exact input. Indentation is the only structural
// signal; a content line opens a block when the next content line is more
// indented, and non-blank dedents close open blocks. No line is ever
// dropped, merged, or reordered.
func Parse(input string, profile Profile) *Document {
	doc := &Document{
		Metadata: Metadata{
			Dialect:       profile.Name,
			Newline:       "\n",
			OriginalBytes: len(input),
		},
	}

	lines := collectLines(input, profile, &doc.Metadata)

	// Stack of open blocks as (header indent, node id).
	type openBlock struct {
		indent int
		id     NodeID
	}
	var stack []openBlock

	attach := func(id NodeID) {
		if len(stack) > 0 {
			if doc.addChild(stack[len(stack)-1].id, id) {
				return
			}
		}
		doc.roots = append(doc.roots, id)
	}

	for idx := range lines {
		line := &lines[idx]

		if structural(line.node.Trivia) && line.indent > 0 && len(stack) == 0 {
			doc.Metadata.ParseFindings = append(doc.Metadata.ParseFindings, ParseFinding{
				Code:    "orphan-indentation",
				Message: "indented content line without an open parent block; line kept as-is",
				Span:    line.node.Span,
			})
		}

		// Blank and comment lines neither open nor close blocks; they
		// attach to whatever block is currently open.
		if structural(line.node.Trivia) {
			for len(stack) > 0 && line.indent <= stack[len(stack)-1].indent {
				stack = stack[:len(stack)-1]
			}
		}

		opensBlock := structural(line.node.Trivia) && hasMoreIndentedSuccessor(lines, idx, line.indent)

		if opensBlock {
			id := doc.insertNode(Node{Block: &Block{Header: line.node}})
			attach(id)
			stack = append(stack, openBlock{indent: line.indent, id: id})
		} else {
			id := doc.insertNode(Node{Line: &line.node})
			attach(id)
		}
	}

	return doc
}

// structural reports whether a trivia kind participates in block grouping.
// Unknown lines group like content so indentation-suggested structure is
// preserved.
func structural(t Trivia) bool {
	return t == TriviaContent || t == TriviaUnknown
}

type lineCandidate struct {
	node   Line
	indent int
}

func collectLines(input string, profile Profile, meta *Metadata) []lineCandidate {
	var out []lineCandidate
	start := 0
	lineNo := 1
	sawNewline := false

	for start < len(input) {
		segEnd := len(input)
		next := len(input)
		if lf := strings.IndexByte(input[start:], '\n'); lf >= 0 {
			segEnd = start + lf + 1
			next = segEnd
		}

		raw, ending := splitLineEnding(input[start:segEnd])
		if ending != "" && !sawNewline {
			meta.Newline = ending
			sawNewline = true
		}

		trivia := profile.classify(raw)
		span := Span{
			Line:      lineNo,
			StartByte: start,
			// Spans cover the content bytes only, not the terminator.
			EndByte: start + len(raw),
		}

		var parsed *ParsedLine
		if trivia == TriviaContent {
			if parts, ok := profile.Tokenize(raw); ok {
				parsed = &parts
			} else {
				trivia = TriviaUnknown
				meta.ParseFindings = append(meta.ParseFindings, ParseFinding{
					Code:    "unrecognized-line",
					Message: "dialect tokenizer could not identify a head token; line kept verbatim",
					Span:    span,
				})
			}
		}

		if mixedLeadingWhitespace(raw) {
			meta.ParseFindings = append(meta.ParseFindings, ParseFinding{
				Code:    "mixed-leading-whitespace",
				Message: "line indentation mixes spaces and tabs; structure may be ambiguous",
				Span:    span,
			})
		}

		keyHint := ""
		if profile.KeyHint != nil {
			if hint, ok := profile.KeyHint(raw, parsed, trivia); ok {
				keyHint = hint
			}
		}

		out = append(out, lineCandidate{
			node: Line{
				Raw:        raw,
				LineEnding: ending,
				Span:       span,
				Parsed:     parsed,
				Trivia:     trivia,
				KeyHint:    keyHint,
			},
			indent: countIndent(raw),
		})

		meta.LineCount++
		lineNo++
		start = next
	}

	return out
}

// hasMoreIndentedSuccessor reports whether a later content-like line is
// more indented than indent, meaning the line at idx opens a block.
func hasMoreIndentedSuccessor(lines []lineCandidate, idx, indent int) bool {
	for _, line := range lines[idx+1:] {
		if structural(line.node.Trivia) {
			return line.indent > indent
		}
	}
	return false
}

func splitLineEnding(segment string) (raw, ending string) {
	if strings.HasSuffix(segment, "\r\n") {
		return segment[:len(segment)-2], "\r\n"
	}
	if strings.HasSuffix(segment, "\n") {
		return segment[:len(segment)-1], "\n"
	}
	return segment, ""
}

// countIndent counts leading whitespace characters; tabs count as one.
func countIndent(raw string) int {
	for i, ch := range raw {
		if ch != ' ' && ch != '\t' {
			return i
		}
	}
	return len(raw)
}

func mixedLeadingWhitespace(raw string) bool {
	seenSpace, seenTab := false, false
	for _, ch := range raw {
		switch ch {
		case ' ':
			seenSpace = true
		case '\t':
			seenTab = true
		default:
			return seenSpace && seenTab
		}
	}
	return seenSpace && seenTab
}
