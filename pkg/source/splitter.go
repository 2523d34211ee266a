// Package source implements the splitter that separates literal template
// text from PHP code regions before lexing/parsing begins (§4.1).
package source

import "strings"

// SegmentKind distinguishes a literal-text run from a parsed code region.
type SegmentKind int

const (
	TextSegment SegmentKind = iota
	CodeSegment
)

// Segment is one contiguous run produced by Split, carrying its absolute
// byte offsets in the original source buffer.
type Segment struct {
	Kind SegmentKind
	// Bytes holds the verbatim text for a TextSegment, or the code
	// between the open tag and the matching close tag (exclusive of both)
	// for a CodeSegment.
	Bytes []byte
	Lo, Hi int
	// ShortEcho marks a CodeSegment opened by "<?=", whose body is a single
	// expression implicitly wrapped in an echo statement (§4.1).
	ShortEcho bool
}

// Config controls which open-tag spellings the splitter recognizes.
type Config struct {
	// ShortOpenTags accepts a bare "<?" as an open tag, in addition to
	// "<?php".
	ShortOpenTags bool
	// ShortEcho accepts "<?=" as an open tag that also means "echo".
	ShortEcho bool
}

// Split scans src and returns the ordered list of text/code segments.
func Split(src []byte, cfg Config) []Segment {
	var segs []Segment
	i := 0
	n := len(src)

	for i < n {
		start := i
		openAt, tagLen, shortEcho, ok := findOpenTag(src, i, cfg)
		if !ok {
			segs = append(segs, Segment{Kind: TextSegment, Bytes: src[start:n], Lo: start, Hi: n})
			break
		}

		if openAt > start {
			segs = append(segs, Segment{Kind: TextSegment, Bytes: src[start:openAt], Lo: start, Hi: openAt})
		}

		codeStart := openAt + tagLen
		closeAt := strings.Index(string(src[codeStart:]), "?>")
		var codeEnd, next int
		if closeAt < 0 {
			codeEnd = n
			next = n
		} else {
			codeEnd = codeStart + closeAt
			next = codeEnd + len("?>")
			if next < n && src[next] == '\n' {
				next++
			}
		}

		segs = append(segs, Segment{
			Kind:      CodeSegment,
			Bytes:     src[codeStart:codeEnd],
			Lo:        codeStart,
			Hi:        codeEnd,
			ShortEcho: shortEcho,
		})
		i = next
	}

	return segs
}

// findOpenTag locates the next recognized open tag at or after i, and
// reports its start offset, the tag's byte length, and whether it is the
// "<?=" short-echo form.
func findOpenTag(src []byte, i int, cfg Config) (at, tagLen int, shortEcho bool, ok bool) {
	for j := i; j < len(src); j++ {
		if src[j] != '<' || j+1 >= len(src) || src[j+1] != '?' {
			continue
		}
		rest := src[j+2:]
		switch {
		case hasCaseInsensitivePrefix(rest, "php"):
			return j, len("<?php"), false, true
		case len(rest) > 0 && rest[0] == '=' && cfg.ShortEcho:
			return j, len("<?="), true, true
		case cfg.ShortOpenTags:
			return j, len("<?"), false, true
		}
	}
	return 0, 0, false, false
}

func hasCaseInsensitivePrefix(b []byte, prefix string) bool {
	if len(b) < len(prefix) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		c := b[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c != prefix[i] {
			return false
		}
	}
	return true
}
