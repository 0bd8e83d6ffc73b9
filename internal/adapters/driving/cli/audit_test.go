package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/core/domain"
)

func TestTextModality(t *testing.T) {
	m, err := textModality(string(domain.ModalityPrompt))
	require.NoError(t, err)
	assert.Equal(t, domain.ModalityPrompt, m)

	m, err = textModality(string(domain.ModalityModelOutput))
	require.NoError(t, err)
	assert.Equal(t, domain.ModalityModelOutput, m)

	for _, bad := range []string{string(domain.ModalityDocument), string(domain.ModalityImageDescription), "video", ""} {
		_, err := textModality(bad)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "modality %q", bad)
	}
}

func TestDocumentMIMEType(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"policy.pdf", "application/pdf"},
		{"POLICY.PDF", "application/pdf"},
		{"notes.txt", "text/plain"},
		{"readme.md", "text/plain"},
		{"no-extension", "text/plain"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, documentMIMEType(tt.path), tt.path)
	}
}

func TestReadLines_SkipsBlanks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.txt")
	content := "first prompt\n\n  \nsecond prompt\n\tthird prompt  \n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	lines, err := readLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"first prompt", "second prompt", "third prompt"}, lines)
}

func TestReadLines_MissingFile(t *testing.T) {
	_, err := readLines(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly ten", truncate("exactly ten", 11))
	assert.Equal(t, "this is a ...", truncate("this is a longer string", 10))
}

func TestCommandTree(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["index"])
	assert.True(t, names["audit"])
	assert.True(t, names["version"])

	sub := make(map[string]bool)
	for _, c := range auditCmd.Commands() {
		sub[c.Name()] = true
	}
	assert.True(t, sub["text"])
	assert.True(t, sub["document"])
	assert.True(t, sub["image"])
	assert.True(t, sub["batch"])
}
