package loader

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrogolib/assert"
)

func TestLoad(t *testing.T) {
	t.Run("load ROM file", func(t *testing.T) {
		data := []byte{0x60, 0x05, 0x61, 0x03, 0x80, 0x14}
		tmpFile := createTempFile(t, data)

		loader := New()
		program, err := loader.Load(tmpFile)
		assert.NoError(t, err)
		assert.True(t, bytes.Equal(data, program))
	})

	t.Run("load maximum size", func(t *testing.T) {
		tmpFile := createTempFile(t, make([]byte, MaxProgramSize))

		loader := New()
		program, err := loader.Load(tmpFile)
		assert.NoError(t, err)
		assert.Len(t, program, MaxProgramSize)
	})

	t.Run("error on oversized file", func(t *testing.T) {
		tmpFile := createTempFile(t, make([]byte, MaxProgramSize+1))

		loader := New()
		_, err := loader.Load(tmpFile)
		assert.True(t, errors.Is(err, memory.ErrProgramTooLarge))
	})

	t.Run("error on empty file", func(t *testing.T) {
		tmpFile := createTempFile(t, nil)

		loader := New()
		_, err := loader.Load(tmpFile)
		assert.True(t, errors.Is(err, ErrEmptyProgram))
	})

	t.Run("error on non-existent file", func(t *testing.T) {
		loader := New()
		_, err := loader.Load("/nonexistent/file.ch8")
		assert.Error(t, err)
		assert.ErrorContains(t, err, "opening file")
	})
}

func TestLoadFromReader(t *testing.T) {
	loader := New()

	program, err := loader.LoadFromReader(strings.NewReader("\x00\xE0\x12\x00"))
	assert.NoError(t, err)
	assert.True(t, bytes.Equal([]byte{0x00, 0xE0, 0x12, 0x00}, program))

	_, err = loader.LoadFromReader(bytes.NewReader(make([]byte, 2*memory.Size)))
	assert.True(t, errors.Is(err, memory.ErrProgramTooLarge))
}

func TestMaxProgramSize(t *testing.T) {
	assert.Equal(t, 0xE00, MaxProgramSize)
}

func createTempFile(t *testing.T, data []byte) string {
	t.Helper()
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test.ch8")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}
