package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klemjul/msgdump/internal/transcript"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTranscript() transcript.Transcript {
	return transcript.Transcript{Messages: []transcript.Message{
		{Role: transcript.User, Content: "Salut, ça va ?"},
		{Role: transcript.Assistant, Content: "Oui <3 & toi ? 😀"},
	}}
}

func TestNewExporter(t *testing.T) {
	tests := []struct {
		format  string
		want    Exporter
		wantExt string
	}{
		{format: "json", want: &JSONExporter{}, wantExt: "json"},
		{format: "", want: &JSONExporter{}, wantExt: "json"},
		{format: "jsonl", want: &JSONLExporter{}, wantExt: "jsonl"},
		{format: "yaml", want: &YAMLExporter{}, wantExt: "yaml"},
		{format: "yml", want: &YAMLExporter{}, wantExt: "yaml"},
		{format: "md", want: &MarkdownExporter{}, wantExt: "md"},
		{format: "markdown", want: &MarkdownExporter{}, wantExt: "md"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			exp, err := NewExporter(tt.format)
			require.NoError(t, err)
			assert.IsType(t, tt.want, exp)
			assert.Equal(t, tt.wantExt, exp.Extension())
		})
	}
}

func TestNewExporter_Unsupported(t *testing.T) {
	exp, err := NewExporter("csv")
	assert.Nil(t, exp)
	assert.EqualError(t, err, "unsupported format: csv (supported: json, jsonl, yaml, md)")
}

func TestWriteFile_OverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "facebook_messages.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"messages":[{"role":"user","content":"a much longer previous run"}]}`), 0o644))

	err := WriteFile(path, &JSONExporter{}, transcript.Transcript{})
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"messages":[]}`, string(b))
}

func TestWriteFile_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "nested", "t.json")

	err := WriteFile(path, &JSONExporter{}, sampleTranscript())
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "ça va")
}

func TestWriteFile_UnwritablePath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	err := WriteFile(filepath.Join(blocker, "t.json"), &JSONExporter{}, sampleTranscript())
	assert.ErrorContains(t, err, "create output directory")
}
