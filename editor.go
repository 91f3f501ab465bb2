package main

import (
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cansyan/tui/ui"
)

// Editor is a multi-line input with source highlighting and a few extra
// bindings.
type Editor struct {
	*ui.Input
	syntax string

	// OnCursor is called after every key or mouse event the editor handles.
	OnCursor func()
}

func NewEditor(text string) *Editor {
	e := &Editor{Input: ui.NewTextArea(text)}
	e.SetSyntax("go")
	return e
}

// SetSyntax selects the highlighter: "go", "markdown" or anything else for
// plain text.
func (e *Editor) SetSyntax(name string) {
	e.syntax = name
	switch name {
	case "go":
		e.SetHighlighter(highlightGo)
	case "markdown":
		e.SetHighlighter(highlightMarkdown)
	default:
		e.SetHighlighter(nil)
	}
}

func (e *Editor) Syntax() string { return e.syntax }

func (e *Editor) ReceiveKey(ev ui.KeyEvent, sys ui.System) bool {
	ok := e.handleKey(ev, sys)
	if ok && e.OnCursor != nil {
		e.OnCursor()
	}
	return ok
}

func (e *Editor) ReceiveMouse(ev ui.MouseEvent, sys ui.System) {
	e.Input.ReceiveMouse(ev, sys)
	if e.OnCursor != nil {
		e.OnCursor()
	}
}

// handleKey handles editor-specific keybindings.
// If the key is not handled here, it goes to the input.
func (e *Editor) handleKey(ev ui.KeyEvent, sys ui.System) bool {
	switch ev.Full() {
	case "ctrl+c":
		if e.Cursor().IsCaret() {
			// copy current line by default
			c := e.Cursor()
			e.SelectLine()
			sys.Clipboard().WriteText(e.SelectedText())
			e.SetCursor(c)
			return true
		}
	case "ctrl+d":
		e.SelectWord()
		return true
	case "ctrl+l":
		e.SelectLine()
		return true
	case "ctrl+b":
		e.SelectBrackets()
		return true
	case "alt+up": // goto first line
		e.SetCursor(ui.Caret(0))
		return true
	case "alt+down": // goto last line
		e.SetCursor(ui.Caret(e.Len()))
		return true
	case "ctrl+t":
		next := map[string]string{"go": "markdown", "markdown": "plain", "plain": "go"}
		e.SetSyntax(next[e.syntax])
		return true
	}
	return e.Input.ReceiveKey(ev, sys)
}

var bracketOpen = map[string]string{"(": ")", "[": "]", "{": "}"}

var bracketClose = map[string]string{")": "(", "]": "[", "}": "{"}

// SelectBrackets selects the innermost bracket pair enclosing the caret,
// brackets included. It reports false when there is none.
func (e *Editor) SelectBrackets() bool {
	clusters := ui.Graphemes(e.Text())
	open := findOpeningBracket(clusters, e.Cursor().Start)
	if open < 0 {
		return false
	}
	end := findClosingBracket(clusters, open)
	if end < 0 {
		return false
	}
	e.SetCursor(ui.Cursor{Start: open, End: end + 1})
	return true
}

func findOpeningBracket(clusters []string, from int) int {
	var stack []string
	for i := from - 1; i >= 0; i-- {
		c := clusters[i]
		if open, ok := bracketClose[c]; ok {
			stack = append(stack, open)
		} else if _, ok := bracketOpen[c]; ok {
			if len(stack) == 0 {
				return i
			}
			stack = stack[:len(stack)-1]
		}
	}
	return -1
}

func findClosingBracket(clusters []string, open int) int {
	openCh := clusters[open]
	closeCh := bracketOpen[openCh]
	depth := 0
	for i := open + 1; i < len(clusters); i++ {
		switch clusters[i] {
		case openCh:
			depth++
		case closeCh:
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return -1
}

const (
	stateDefault = iota
	stateInString
	stateInRawString
	stateInComment
)

// firstRune returns the base rune of a cluster.
func firstRune(c string) rune {
	r, _ := utf8.DecodeRuneInString(c)
	return r
}

func joinClusters(line []string, i, j int) string {
	return strings.Join(line[i:j], "")
}

func highlightGo(line []string, syn ui.SyntaxStyle) []ui.StyleSpan {
	var spans []ui.StyleSpan
	state := stateDefault
	start := 0

	for i := 0; i < len(line); {
		r := firstRune(line[i])
		switch state {
		case stateDefault:
			switch r {
			case '"':
				state = stateInString
				start = i
			case '`':
				state = stateInRawString
				start = i
			case '/':
				if i+1 < len(line) && line[i+1] == "/" {
					state = stateInComment
					start = i
				} else {
					spans = append(spans, ui.StyleSpan{Start: i, End: i + 1, Style: syn.Operator})
					i++
					continue
				}
			case '+', '-', '*', '%', '&', '|', '^', '<', '>', '=', '!', ':':
				// Parse multi-character operators
				j := i + 1
				for j < len(line) && isOperatorRune(firstRune(line[j])) {
					j++
				}
				spans = append(spans, ui.StyleSpan{Start: i, End: j, Style: syn.Operator})
				i = j
				continue
			default:
				if isAlphaNumeric(r) {
					j := i + 1
					for j < len(line) && isAlphaNumeric(firstRune(line[j])) {
						j++
					}
					word := joinClusters(line, i, j)

					if token.IsKeyword(word) {
						spans = append(spans, ui.StyleSpan{Start: i, End: j, Style: syn.Keyword})
						i = j
						continue
					}

					if j < len(line) && line[j] == "(" {
						style := syn.FunctionCall
						if i-5 >= 0 && joinClusters(line, i-5, i) == "func " {
							style = syn.FunctionName
						}
						spans = append(spans, ui.StyleSpan{Start: i, End: j, Style: style})
						i = j
						continue
					}

					isNumber := true
					for _, c := range word {
						if !unicode.IsDigit(c) {
							isNumber = false
							break
						}
					}
					if isNumber {
						spans = append(spans, ui.StyleSpan{Start: i, End: j, Style: syn.Number})
					}
					i = j
					continue
				}
			}
		case stateInString:
			if r == '"' {
				spans = append(spans, ui.StyleSpan{Start: start, End: i + 1, Style: syn.String})
				state = stateDefault
			}
		case stateInRawString:
			if r == '`' {
				spans = append(spans, ui.StyleSpan{Start: start, End: i + 1, Style: syn.String})
				state = stateDefault
			}
		case stateInComment:
			spans = append(spans, ui.StyleSpan{Start: start, End: len(line), Style: syn.Comment})
			return spans
		}
		i++
	}
	switch state {
	case stateInString, stateInRawString:
		// unterminated on this line
		spans = append(spans, ui.StyleSpan{Start: start, End: len(line), Style: syn.String})
	case stateInComment:
		spans = append(spans, ui.StyleSpan{Start: start, End: len(line), Style: syn.Comment})
	}
	return spans
}

func isAlphaNumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func isOperatorRune(r rune) bool {
	return strings.ContainsRune("+-*/%&|^<>=!:", r)
}

func highlightMarkdown(line []string, syn ui.SyntaxStyle) []ui.StyleSpan {
	var spans []ui.StyleSpan
	if len(line) == 0 {
		return spans
	}
	at := func(i int) string { return line[i] }

	// Headers: # ## ### etc.
	if at(0) == "#" {
		i := 0
		for i < len(line) && at(i) == "#" {
			i++
		}
		return []ui.StyleSpan{
			{Start: 0, End: i, Style: syn.Operator.Merge(ui.Style{Bold: ui.FlagOn})},
			{Start: i, End: len(line), Style: ui.Style{Bold: ui.FlagOn}},
		}
	}

	if strings.HasPrefix(joinClusters(line, 0, len(line)), "```") {
		return []ui.StyleSpan{{Start: 0, End: len(line), Style: syn.Comment}}
	}

	// List items: -, *, or digits followed by .
	trimmed := 0
	for trimmed < len(line) && unicode.IsSpace(firstRune(at(trimmed))) {
		trimmed++
	}
	if trimmed < len(line) {
		if at(trimmed) == "-" || at(trimmed) == "*" {
			if trimmed+1 >= len(line) || unicode.IsSpace(firstRune(at(trimmed+1))) {
				spans = append(spans, ui.StyleSpan{Start: trimmed, End: trimmed + 1, Style: syn.Number})
			}
		} else if unicode.IsDigit(firstRune(at(trimmed))) {
			j := trimmed + 1
			for j < len(line) && unicode.IsDigit(firstRune(at(j))) {
				j++
			}
			if j < len(line) && at(j) == "." {
				spans = append(spans, ui.StyleSpan{Start: trimmed, End: j + 1, Style: syn.Keyword})
			}
		}
	}

	// Inline code: `code`
	for i := 0; i < len(line); i++ {
		if at(i) == "`" {
			start := i
			i++
			for i < len(line) && at(i) != "`" {
				i++
			}
			if i < len(line) {
				spans = append(spans, ui.StyleSpan{Start: start, End: i + 1, Style: syn.String})
			}
		}
	}

	// Bold: **text**
	for i := 0; i < len(line)-1; i++ {
		if at(i) == "*" && at(i+1) == "*" {
			start := i
			i += 2
			for i < len(line)-1 {
				if at(i) == "*" && at(i+1) == "*" {
					spans = append(spans, ui.StyleSpan{Start: start, End: i + 2, Style: ui.Style{Bold: ui.FlagOn}})
					i++
					break
				}
				i++
			}
		}
	}

	// Links: [text](url)
	for i := 0; i < len(line); i++ {
		if at(i) == "[" {
			start := i
			i++
			for i < len(line) && at(i) != "]" {
				i++
			}
			if i+1 < len(line) && at(i+1) == "(" {
				i += 2
				for i < len(line) && at(i) != ")" {
					i++
				}
				if i < len(line) {
					spans = append(spans, ui.StyleSpan{Start: start, End: i + 1, Style: syn.FunctionCall})
				}
			}
		}
	}

	return spans
}
