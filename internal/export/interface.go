package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klemjul/msgdump/internal/transcript"
)

// Exporter serializes a transcript into one document.
type Exporter interface {
	Export(t transcript.Transcript, w io.Writer) error
	Extension() string
}

var Formats = []string{"json", "jsonl", "yaml", "md"}

func NewExporter(format string) (Exporter, error) {
	switch format {
	case "json", "":
		return &JSONExporter{}, nil
	case "jsonl":
		return &JSONLExporter{}, nil
	case "yaml", "yml":
		return &YAMLExporter{}, nil
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: json, jsonl, yaml, md)", format)
	}
}

// WriteFile replaces path with the exported transcript.
func WriteFile(path string, exporter Exporter, t transcript.Transcript) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}

	if err := exporter.Export(normalize(t), file); err != nil {
		_ = file.Close()
		return fmt.Errorf("export transcript: %w", err)
	}
	return file.Close()
}

// normalize makes an empty transcript encode as an empty list instead of null.
func normalize(t transcript.Transcript) transcript.Transcript {
	if t.Messages == nil {
		t.Messages = []transcript.Message{}
	}
	return t
}
