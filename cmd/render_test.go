package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"doccloud/file/filetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *app {
	t.Helper()
	for _, key := range []string{"APP_PORT", "MAX_UPLOAD_BYTES", "MAX_CONCURRENT_RENDERS", "RENDER_CONFIG_PATH"} {
		t.Setenv(key, "")
	}
	t.Setenv("LOG_LEVEL", "error")

	a, err := newApp()
	require.NoError(t, err)
	return a
}

func writeInput(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestRenderFile_WritesPNG(t *testing.T) {
	a := newTestApp(t)
	dir := t.TempDir()
	in := writeInput(t, dir, "hello.pdf", filetest.PDF(t, "Hello hello world"))
	out := filepath.Join(dir, "cloud.png")
	var stderr bytes.Buffer

	require.NoError(t, renderFile(a.pipeline, in, out, &stderr))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Contains(t, stderr.String(), "Processing hello.pdf...")
	assert.Contains(t, stderr.String(), "wrote "+out)
}

func TestRenderFile_WarningLeavesNoOutput(t *testing.T) {
	a := newTestApp(t)
	dir := t.TempDir()
	in := writeInput(t, dir, "blank.docx", filetest.DOCX(t, filetest.Paragraph("")))
	out := filepath.Join(dir, "cloud.png")
	var stderr bytes.Buffer

	require.NoError(t, renderFile(a.pipeline, in, out, &stderr))

	assert.NoFileExists(t, out)
	assert.Contains(t, stderr.String(), "warning: The uploaded file is empty or contains no readable text.")
}

func TestRenderFile_Errors(t *testing.T) {
	a := newTestApp(t)
	dir := t.TempDir()
	out := filepath.Join(dir, "cloud.png")

	var stderr bytes.Buffer
	err := renderFile(a.pipeline, writeInput(t, dir, "broken.pdf", []byte("junk")), out, &stderr)
	assert.ErrorIs(t, err, errRenderFailed)
	assert.Contains(t, stderr.String(), "error: Error reading PDF file:")
	assert.NoFileExists(t, out)

	err = renderFile(a.pipeline, writeInput(t, dir, "notes.txt", []byte("words")), out, &stderr)
	assert.ErrorContains(t, err, "only .pdf and .docx files are accepted")

	err = renderFile(a.pipeline, filepath.Join(dir, "missing.pdf"), out, &stderr)
	assert.Error(t, err)

	err = renderFile(a.pipeline, writeInput(t, dir, "ok.pdf", filetest.PDF(t, "words")), filepath.Join(dir, "no", "such", "dir.png"), &stderr)
	assert.ErrorContains(t, err, "failed to create")
}

func TestNewApp_InvalidConfig(t *testing.T) {
	t.Setenv("RENDER_CONFIG_PATH", "")
	t.Setenv("APP_PORT", "not-a-port")

	_, err := newApp()
	assert.Error(t, err)
}
