package export

import (
	"io"

	"github.com/klemjul/msgdump/internal/transcript"
	"gopkg.in/yaml.v3"
)

type YAMLExporter struct{}

func (e *YAMLExporter) Export(t transcript.Transcript, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer func() { _ = enc.Close() }()

	return enc.Encode(normalize(t))
}

func (e *YAMLExporter) Extension() string {
	return "yaml"
}
