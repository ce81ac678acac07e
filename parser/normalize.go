package parser

import (
	"regexp"
	"strings"
)

var (
	reControl    = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f\x7f]`)
	reURL        = regexp.MustCompile(`https?://[^\s]+`)
	reEmail      = regexp.MustCompile(`[^\s@]+@[^\s@]+\.[^\s@]+`)
	reDotRun     = regexp.MustCompile(`\.{3,}`)
	reDashRun    = regexp.MustCompile(`-{3,}`)
	reSpaceRun   = regexp.MustCompile(`[ \t]+`)
	reNewlineRun = regexp.MustCompile(`\n{3,}`)
	rePageNumber = regexp.MustCompile(`^(?:\d+|Page \d+)$`)

	quoteReplacer = strings.NewReplacer(
		"“", `"`, "”", `"`, "„", `"`,
		"‘", "'", "’", "'", "‚", "'",
	)
)

// Normalize cleans raw extracted text into canonical form: control
// characters and URL/email tokens stripped, curly quotes straightened,
// punctuation runs collapsed, page-number boilerplate lines dropped, and
// whitespace runs reduced. The function is idempotent:
// Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = quoteReplacer.Replace(text)
	text = reControl.ReplaceAllString(text, "")
	text = reURL.ReplaceAllString(text, "")
	text = reEmail.ReplaceAllString(text, "")
	text = reDotRun.ReplaceAllString(text, "...")
	text = reDashRun.ReplaceAllString(text, "---")

	// Per-line pass: trim each line and drop isolated page-number lines.
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(reSpaceRun.ReplaceAllString(line, " "))
		if rePageNumber.MatchString(line) {
			continue
		}
		kept = append(kept, line)
	}
	text = strings.Join(kept, "\n")

	// Collapse runs of blank lines to at most one blank line.
	text = reNewlineRun.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
