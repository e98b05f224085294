package errors

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"
)

// ANSI escape sequences for terminal output.
const (
	ansiReset = "\033[0m"
	ansiRed   = "\033[31m"
	ansiBlue  = "\033[34m"
	ansiCyan  = "\033[36m"
	ansiWhite = "\033[37m"
	ansiGray  = "\033[90m"
	ansiBold  = "\033[1m"
)

// colorEnabled controls whether ANSI colors are used. NO_COLOR in the
// environment disables them from the start.
var colorEnabled = os.Getenv("NO_COLOR") == ""

// DisableColors disables ANSI color output.
func DisableColors() {
	colorEnabled = false
}

// EnableColors enables ANSI color output.
func EnableColors() {
	colorEnabled = true
}

// paint wraps text in the given ANSI sequences when colors are enabled.
func paint(text string, codes ...string) string {
	if !colorEnabled || len(codes) == 0 {
		return text
	}
	return strings.Join(codes, "") + text + ansiReset
}

// FormatError renders any error for terminal display. A WayfindError
// anywhere in the chain gets the full multi-line treatment; everything
// else falls back to a single colored line.
func FormatError(err error) string {
	var we *WayfindError
	if stderrors.As(err, &we) {
		return we.Format()
	}
	return fmt.Sprintf("\n%s %s\n\n", paint("ERROR:", ansiRed, ansiBold), err.Error())
}

// PrintError prints a formatted error to stderr.
func PrintError(err error) {
	fmt.Fprint(os.Stderr, FormatError(err))
}

// Format returns the full multi-line rendering of the error: header,
// source location with context lines, detail, hint, example, and doc link.
func (e *WayfindError) Format() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(paint("ERROR ", ansiRed, ansiBold))
	if e.Code != "" {
		b.WriteString(paint(e.Code+": ", ansiWhite, ansiBold))
	}
	b.WriteString(paint(e.Message, ansiWhite))
	b.WriteString("\n\n")

	if e.Location != nil {
		fmt.Fprintf(&b, "  %s\n\n", paint(e.Location.String(), ansiCyan))
		e.writeContext(&b)
	}

	if e.Detail != "" {
		for _, line := range wrapText(e.Detail, 70) {
			fmt.Fprintf(&b, "  %s\n", line)
		}
		b.WriteString("\n")
	}

	if e.Suggestion != "" {
		fmt.Fprintf(&b, "  %s%s\n\n", paint("Hint: ", ansiCyan), e.Suggestion)
	}

	if e.Example != "" {
		fmt.Fprintf(&b, "  %s\n", paint("Example:", ansiCyan))
		for _, line := range strings.Split(e.Example, "\n") {
			fmt.Fprintf(&b, "    %s\n", line)
		}
		b.WriteString("\n")
	}

	if e.DocURL != "" {
		fmt.Fprintf(&b, "  %s%s\n", paint("Learn more: ", ansiGray), paint(e.DocURL, ansiBlue))
	}

	return b.String()
}

// writeContext renders the captured source lines with an arrow on the
// offending line and a caret under the offending column.
func (e *WayfindError) writeContext(b *strings.Builder) {
	if len(e.Context) == 0 {
		return
	}

	startLine := e.Location.Line - len(e.Context)/2
	for i, line := range e.Context {
		lineNum := startLine + i
		if lineNum != e.Location.Line {
			fmt.Fprintf(b, "    %4d%s%s\n", lineNum, paint(" │ ", ansiGray), line)
			continue
		}

		fmt.Fprintf(b, "  %s%4d%s%s\n", paint("→ ", ansiRed), lineNum, paint(" │ ", ansiGray), line)
		if e.Location.Column > 0 {
			fmt.Fprintf(b, "       %s%s%s\n",
				paint("│ ", ansiGray),
				strings.Repeat(" ", e.Location.Column-1),
				paint("^", ansiRed))
		}
	}
	b.WriteString("\n")
}

// FormatCompact returns a compact single-line error format.
func (e *WayfindError) FormatCompact() string {
	var parts []string
	if e.Location != nil {
		parts = append(parts, e.Location.String())
	}
	if e.Code != "" {
		parts = append(parts, e.Code)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// FormatJSON returns the error as a JSON object.
func (e *WayfindError) FormatJSON() string {
	var b strings.Builder
	b.WriteString("{")

	if e.Code != "" {
		fmt.Fprintf(&b, `"code":%q,`, e.Code)
	}
	fmt.Fprintf(&b, `"category":%q,`, e.Category)
	fmt.Fprintf(&b, `"message":%q`, e.Message)

	if e.Detail != "" {
		fmt.Fprintf(&b, `,"detail":%q`, e.Detail)
	}
	if e.Location != nil {
		fmt.Fprintf(&b, `,"location":{"file":%q,"line":%d,"column":%d}`,
			e.Location.File, e.Location.Line, e.Location.Column)
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, `,"suggestion":%q`, e.Suggestion)
	}
	if e.DocURL != "" {
		fmt.Fprintf(&b, `,"docUrl":%q`, e.DocURL)
	}

	b.WriteString("}")
	return b.String()
}

// wrapText word-wraps text to the given width.
func wrapText(text string, width int) []string {
	if text == "" {
		return nil
	}
	if len(text) <= width {
		return []string{text}
	}

	var lines []string
	var current strings.Builder
	for _, word := range strings.Fields(text) {
		if current.Len() > 0 && current.Len()+len(word)+1 > width {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}
