package format

import (
	"github.com/charmbracelet/glamour"
	"github.com/klemjul/msgdump/internal/export"
	"github.com/klemjul/msgdump/internal/transcript"
)

func FormatMarkdown(text string) (string, error) {
	return glamour.Render(text, "dark")
}

// FormatTranscript renders the whole transcript for the terminal.
func FormatTranscript(t transcript.Transcript) (string, error) {
	return FormatMarkdown(export.Markdown(t))
}
