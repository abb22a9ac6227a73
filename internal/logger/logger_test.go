package logger

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesFileAndLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "globe.log")
	var console bytes.Buffer
	l, err := New(Options{File: path, Level: "debug", Console: &console})
	require.NoError(t, err)

	l.Info().Str("marker", "kraken").Msg("marker clicked")
	l.Debug().Msg("click missed")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"marker":"kraken"`)
	assert.Contains(t, string(data), `"message":"click missed"`)

	lines := l.Lines()
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "marker clicked")
	assert.Contains(t, lines[0], "marker=kraken")
	assert.Contains(t, console.String(), "click missed")
}

func TestLoggerLevel(t *testing.T) {
	l, err := New(Options{File: filepath.Join(t.TempDir(), "globe.log"), Level: "warn"})
	require.NoError(t, err)
	defer l.Close()

	l.Info().Msg("hidden")
	l.Warn().Msg("shown")
	lines := l.Lines()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "shown")
}

func TestLoggerBadLevel(t *testing.T) {
	_, err := New(Options{File: filepath.Join(t.TempDir(), "globe.log"), Level: "loud"})
	require.Error(t, err)
}

func TestLinesAreBounded(t *testing.T) {
	l, err := New(Options{File: filepath.Join(t.TempDir(), "globe.log")})
	require.NoError(t, err)
	defer l.Close()

	for i := 0; i < maxLines+50; i++ {
		l.Info().Msg(fmt.Sprintf("line %d", i))
	}
	lines := l.Lines()
	require.Len(t, lines, maxLines)
	assert.Contains(t, lines[0], "line 50")
	assert.Contains(t, lines[maxLines-1], fmt.Sprintf("line %d", maxLines+49))
}
