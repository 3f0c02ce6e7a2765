package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownExporter_Export(t *testing.T) {
	var buf bytes.Buffer
	err := (&MarkdownExporter{}).Export(sampleTranscript(), &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# Transcript\n"))
	assert.Contains(t, out, "_2 messages_")
	userAt := strings.Index(out, "### user")
	assistantAt := strings.Index(out, "### assistant")
	require.NotEqual(t, -1, userAt)
	require.NotEqual(t, -1, assistantAt)
	assert.Less(t, userAt, assistantAt)
	assert.Contains(t, out, "Oui <3 & toi ? 😀")
}
