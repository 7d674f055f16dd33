package logging

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutput_Stderr(t *testing.T) {
	w := Output("")
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close(), "closing stderr output twice is harmless")
}

func TestOutput_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.log")
	w := Output(path)

	New(w, "info").Info(context.Background(), "session restored", "user_id", 7)
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "session restored")
	assert.Contains(t, string(data), "user_id=7")
}
