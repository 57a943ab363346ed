package main

import (
	"os"
	"path/filepath"
	"testing"

	"coverflow/assets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateWritesLoadableSlides(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "imgs")
	require.NoError(t, generate(options{out: dir, count: 3, size: 32, quality: 90}))

	for _, name := range []string{"0.jpg", "1.jpg", "2.jpg", assets.BackgroundName} {
		assert.FileExists(t, filepath.Join(dir, name))
	}

	l := assets.NewLoader(dir, 32, 32, nil)
	for i := 0; i < 3; i++ {
		_, err := l.LoadSlide(i)
		assert.NoError(t, err, "slide %d", i)
	}
}

func TestGenerateKeepsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "0.jpg")
	require.NoError(t, os.WriteFile(path, []byte("mine"), 0o644))

	require.NoError(t, generate(options{out: dir, count: 1, size: 16, quality: 90}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "mine", string(data))

	require.NoError(t, generate(options{out: dir, count: 1, size: 16, quality: 90, force: true}))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, "mine", string(data))
}

func TestGenerateRejectsBadOptions(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, generate(options{out: dir, count: 0, size: 16, quality: 90}))
	assert.Error(t, generate(options{out: dir, count: 1, size: 0, quality: 90}))
	assert.Error(t, generate(options{out: dir, count: 1, size: 16, quality: 0}))
}
