package ui

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Graphemes splits s into extended grapheme clusters. Escape sequences are
// kept whole, each as one zero-width cluster.
func Graphemes(s string) []string {
	var out []string
	for len(s) > 0 {
		if s[0] == '\x1b' {
			n := max(escapeEnd(s, 0), 1)
			out = append(out, s[:n])
			s = s[n:]
			continue
		}
		seg := s
		if i := strings.IndexByte(s, '\x1b'); i > 0 {
			seg = s[:i]
		}
		s = s[len(seg):]
		state := -1
		for len(seg) > 0 {
			var cluster string
			cluster, seg, _, state = uniseg.FirstGraphemeClusterInString(seg, state)
			out = append(out, cluster)
		}
	}
	return out
}

// ClusterWidth returns the display width of one cluster: 0, 1 or 2.
func ClusterWidth(cluster string) int {
	if cluster == "" || isEscape(cluster) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(cluster)
	if r == '\t' {
		return 1
	}
	return runewidth.RuneWidth(r)
}

// StringWidth is the display width of s, ignoring escape sequences.
func StringWidth(s string) int {
	w := 0
	for _, c := range Graphemes(s) {
		w += ClusterWidth(c)
	}
	return w
}

func clustersWidth(clusters []string) int {
	w := 0
	for _, c := range clusters {
		w += ClusterWidth(c)
	}
	return w
}

// splitLines splits s on hard line breaks. A trailing "\r" on a line is
// dropped so CRLF input behaves like LF.
func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// Wrap breaks a line into the longest prefixes whose summed width fits in
// width. A cluster wider than width still occupies a segment of its own, so
// wrapping always makes progress. An empty line produces one empty segment.
func Wrap(clusters []string, width int) [][]string {
	if width <= 0 || len(clusters) == 0 {
		return [][]string{clusters}
	}
	var segs [][]string
	start, w := 0, 0
	for i, c := range clusters {
		cw := ClusterWidth(c)
		if w+cw > width && i > start {
			segs = append(segs, clusters[start:i])
			start, w = i, 0
		}
		w += cw
	}
	return append(segs, clusters[start:])
}

// wordSpan is a half-open range of cluster offsets covering one word.
type wordSpan struct {
	start, end int
}

// wordSpans segments clusters into words using the Unicode word boundary
// rules and keeps the segments that contain a letter or a digit.
func wordSpans(clusters []string) []wordSpan {
	if len(clusters) == 0 {
		return nil
	}
	// byte offset of every cluster boundary, for mapping back from uniseg
	bounds := make(map[int]int, len(clusters)+1)
	var sb strings.Builder
	for i, c := range clusters {
		bounds[sb.Len()] = i
		sb.WriteString(c)
	}
	bounds[sb.Len()] = len(clusters)

	text := sb.String()
	var spans []wordSpan
	state, pos := -1, 0
	for rest := text; len(rest) > 0; {
		var word string
		word, rest, state = uniseg.FirstWordInString(rest, state)
		start, end := pos, pos+len(word)
		pos = end
		if !isWordLike(word) {
			continue
		}
		s, ok1 := bounds[start]
		e, ok2 := bounds[end]
		if ok1 && ok2 {
			spans = append(spans, wordSpan{s, e})
		}
	}
	return spans
}

func isWordLike(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// prevWordStart returns the start of the word that begins before offset, or
// 0 if there is none.
func prevWordStart(clusters []string, offset int) int {
	dest := 0
	for _, w := range wordSpans(clusters) {
		if w.start >= offset {
			break
		}
		dest = w.start
	}
	return dest
}

// nextWordEnd returns the end of the first word that ends after offset, or
// len(clusters) if there is none.
func nextWordEnd(clusters []string, offset int) int {
	for _, w := range wordSpans(clusters) {
		if w.end > offset {
			return w.end
		}
	}
	return len(clusters)
}
