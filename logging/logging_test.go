package logging

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotatingWriterKeepsOneBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "asp.log")
	w, err := NewRotatingWriter(path, 16)
	require.NoError(t, err)
	defer w.Close()

	_, err = w.Write([]byte("first line that is long\n"))
	require.NoError(t, err)
	_, err = w.Write([]byte("second\n"))
	require.NoError(t, err)

	backup, err := os.ReadFile(path + ".1")
	require.NoError(t, err)
	assert.Equal(t, "first line that is long\n", string(backup))

	current, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(current))
}

func TestSetupTee(t *testing.T) {
	defer log.SetOutput(os.Stderr)

	path := filepath.Join(t.TempDir(), "asp.log")
	var tee bytes.Buffer
	w, err := Setup(path, &tee)
	require.NoError(t, err)
	defer w.Close()

	log.Print("hello")
	assert.Contains(t, tee.String(), "hello")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

func TestDebugf(t *testing.T) {
	defer log.SetOutput(os.Stderr)
	defer SetLevel("info")

	var buf bytes.Buffer
	log.SetOutput(&buf)

	SetLevel("info")
	Debugf("hidden %d", 1)
	assert.Empty(t, buf.String())

	SetLevel("DEBUG")
	Debugf("shown %d", 2)
	assert.True(t, strings.Contains(buf.String(), "DEBUG shown 2"))
}
