package merge

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// contextLines is the number of anchor lines captured before and after each
// conflict.
const contextLines = 3

// Segment is one piece of the parsed file: either clean text or a reference
// to a conflict hunk. Exactly one branch is active, selected by IsConflict.
type Segment struct {
	// Text is the clean content, valid when IsConflict is false.
	Text string
	// HunkIndex indexes ParsedConflict.Hunks, valid when IsConflict is true.
	HunkIndex  int
	IsConflict bool
}

// ParsedConflict is the result of parsing a conflicted file: all hunks in
// document order plus the interleaved clean/conflict structure needed to
// reconstruct output.
type ParsedConflict struct {
	Hunks    []*ConflictHunk
	Segments []Segment
	// TrailingNewline records whether the source ended with a newline, so
	// rendering reproduces it exactly.
	TrailingNewline bool
}

// parserState tracks which section of a conflict the scanner is inside.
type parserState int

const (
	stateClean parserState = iota
	stateInLeft
	stateInBase
	stateInRight
)

// markerKind classifies a conflict-marker line.
type markerKind int

const (
	markerNone markerKind = iota
	markerStart
	markerBase
	markerSeparator
	markerEnd
)

// detectMarker classifies a line as a conflict marker. Markers are exactly
// seven characters at the start of the line: `<<<<<<<`, `|||||||`, and
// `>>>>>>>` may carry a label after them; `=======` may be followed only by
// whitespace.
func detectMarker(line string) markerKind {
	switch {
	case strings.HasPrefix(line, "<<<<<<<"):
		return markerStart
	case strings.HasPrefix(line, "|||||||"):
		return markerBase
	case strings.HasPrefix(line, "=======") && strings.TrimSpace(line[7:]) == "":
		return markerSeparator
	case strings.HasPrefix(line, ">>>>>>>"):
		return markerEnd
	}
	return markerNone
}

// ParseConflictMarkers parses conflict markers from file content. Both
// standard 2-way conflicts and diff3 3-way conflicts (with a `|||||||` base
// section) are supported. Hunks are assigned ascending ids in document order;
// clean text is preserved exactly in the surrounding segments.
//
// Structural violations (nested openers, orphaned or duplicated markers,
// unclosed conflicts at EOF) return a *ParseError with kind InvalidMarkers
// naming the offending one-indexed line. The parser never guesses intent or
// silently drops unmatched markers.
func ParseConflictMarkers(content string) (*ParsedConflict, error) {
	if !utf8.ValidString(content) {
		return nil, &ParseError{Kind: MalformedContent, Detail: "content is not valid UTF-8"}
	}

	parsed := &ParsedConflict{TrailingNewline: strings.HasSuffix(content, "\n")}
	lines := splitLines(content)

	state := stateClean
	var cleanBuf, leftBuf, rightBuf []string
	var baseBuf []string
	baseSeen := false

	hunkStartLine := 0
	leftContentStart := 0
	rightContentStart := 0

	flushClean := func() {
		if len(cleanBuf) > 0 {
			parsed.Segments = append(parsed.Segments, Segment{Text: strings.Join(cleanBuf, "\n")})
			cleanBuf = nil
		}
	}

	for i, line := range lines {
		lineNum := i + 1

		marker := detectMarker(line)
		switch {
		case marker == markerStart && state == stateClean:
			flushClean()
			hunkStartLine = lineNum
			leftContentStart = lineNum + 1
			state = stateInLeft

		case marker == markerStart:
			return nil, invalidMarkers(lineNum, "nested conflict marker")

		case marker == markerBase && state == stateInLeft:
			baseSeen = true
			baseBuf = []string{}
			state = stateInBase

		case marker == markerBase && state == stateInBase:
			return nil, invalidMarkers(lineNum, "duplicate base marker")

		case marker == markerBase:
			return nil, invalidMarkers(lineNum, "unexpected base marker")

		case marker == markerSeparator && (state == stateInLeft || state == stateInBase):
			rightContentStart = lineNum + 1
			state = stateInRight

		case marker == markerSeparator && state == stateInRight:
			return nil, invalidMarkers(lineNum, "duplicate separator")

		case marker == markerSeparator:
			return nil, invalidMarkers(lineNum, "unexpected separator")

		case marker == markerEnd && state == stateInRight:
			hunk := &ConflictHunk{
				ID:    HunkID(len(parsed.Hunks)),
				Left:  HunkContent{Text: sideText(leftBuf)},
				Right: HunkContent{Text: sideText(rightBuf)},
				Context: HunkContext{
					Before:         beforeContext(lines, hunkStartLine),
					StartLineLeft:  leftContentStart,
					StartLineRight: rightContentStart,
				},
				Status: HunkUnresolved,
			}
			if baseSeen {
				hunk.Base = &HunkContent{Text: sideText(baseBuf)}
			}

			parsed.Segments = append(parsed.Segments, Segment{HunkIndex: len(parsed.Hunks), IsConflict: true})
			parsed.Hunks = append(parsed.Hunks, hunk)

			leftBuf, rightBuf, baseBuf = nil, nil, nil
			baseSeen = false
			state = stateClean

		case marker == markerEnd:
			return nil, invalidMarkers(lineNum, "unexpected end marker")

		default:
			switch state {
			case stateClean:
				cleanBuf = append(cleanBuf, line)
			case stateInLeft:
				leftBuf = append(leftBuf, line)
			case stateInBase:
				baseBuf = append(baseBuf, line)
			case stateInRight:
				rightBuf = append(rightBuf, line)
			}
		}
	}

	if state != stateClean {
		return nil, invalidMarkers(hunkStartLine, "unclosed conflict starting")
	}

	flushClean()
	fillAfterContext(parsed.Hunks, lines)

	return parsed, nil
}

func invalidMarkers(line int, detail string) *ParseError {
	return &ParseError{Kind: InvalidMarkers, Line: line, Detail: detail}
}

// sideText joins a conflict section's buffered lines. A section whose last
// line is empty keeps a trailing newline so the empty line survives the round
// trip through splitLines when the side's text is emitted as a resolution.
func sideText(buf []string) string {
	text := strings.Join(buf, "\n")
	if len(buf) > 0 && buf[len(buf)-1] == "" {
		text += "\n"
	}
	return text
}

// beforeContext returns up to contextLines lines preceding the opening marker
// at the given one-indexed line.
func beforeContext(lines []string, hunkStartLine int) []string {
	start := 0
	if hunkStartLine > contextLines {
		start = hunkStartLine - contextLines - 1
	}
	end := hunkStartLine - 1
	if start >= end {
		return nil
	}
	return append([]string(nil), lines[start:end]...)
}

// fillAfterContext fills each hunk's after-context by scanning forward from
// its closing marker, clipping at the next conflict's opening marker.
func fillAfterContext(hunks []*ConflictHunk, lines []string) {
	for i, hunk := range hunks {
		rightLines := len(splitLines(hunk.Right.Text))
		// Zero-indexed position just past the >>>>>>> line.
		afterStart := hunk.Context.StartLineRight + rightLines
		afterEnd := min(afterStart+contextLines, len(lines))

		if i+1 < len(hunks) {
			// The next hunk's opening marker sits one line above its left
			// content start.
			nextStart := hunks[i+1].Context.StartLineLeft - 2
			afterEnd = min(afterEnd, nextStart+1)
		}

		if afterStart < afterEnd && afterStart < len(lines) {
			hunk.Context.After = append([]string(nil), lines[afterStart:afterEnd]...)
		}
	}
}

// String renders the segment for debugging.
func (s Segment) String() string {
	if s.IsConflict {
		return fmt.Sprintf("conflict(%d)", s.HunkIndex)
	}
	return fmt.Sprintf("clean(%d bytes)", len(s.Text))
}
