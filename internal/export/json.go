package export

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/klemjul/msgdump/internal/transcript"
)

// JSONExporter writes the transcript as one compact JSON document. Non-ASCII
// and HTML characters are written literally.
type JSONExporter struct{}

func (e *JSONExporter) Export(t transcript.Transcript, w io.Writer) error {
	b, err := encodeJSON(normalize(t))
	if err != nil {
		return err
	}
	_, err = w.Write(bytes.TrimSuffix(b, []byte("\n")))
	return err
}

func (e *JSONExporter) Extension() string {
	return "json"
}

// JSONLExporter writes the transcript as a single fine-tuning record line.
type JSONLExporter struct{}

func (e *JSONLExporter) Export(t transcript.Transcript, w io.Writer) error {
	b, err := encodeJSON(normalize(t))
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

func (e *JSONLExporter) Extension() string {
	return "jsonl"
}

func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
