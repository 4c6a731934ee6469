package logger

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLoggingTo_ConsoleAndFile(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "app.log")

	InitLoggingTo(&console, path, "warn")
	InfoLog(context.Background(), "below the level")
	WarnLog(context.Background(), "exported %d rows", 3)

	assert.NotContains(t, console.String(), "below the level")
	assert.Contains(t, console.String(), "exported 3 rows")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "exported 3 rows")
}
