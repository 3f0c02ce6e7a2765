package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/klemjul/msgdump/internal/transcript"
)

type MarkdownExporter struct{}

func (e *MarkdownExporter) Export(t transcript.Transcript, w io.Writer) error {
	_, err := io.WriteString(w, Markdown(t))
	return err
}

func (e *MarkdownExporter) Extension() string {
	return "md"
}

// Markdown renders the transcript with one heading per message.
func Markdown(t transcript.Transcript) string {
	var b strings.Builder
	b.WriteString("# Transcript\n\n")
	fmt.Fprintf(&b, "_%d messages_\n", t.Len())
	for _, msg := range t.Messages {
		fmt.Fprintf(&b, "\n### %s\n\n%s\n", msg.Role, strings.TrimSpace(msg.Content))
	}
	return b.String()
}
