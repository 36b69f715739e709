package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWriter_WriteOutput verifies directory creation and content.
func TestWriter_WriteOutput(t *testing.T) {
	root := t.TempDir()
	w := NewWriter(root)

	err := w.WriteOutput(context.Background(), "/blog/first/index.html", []byte("<p>hi</p>"))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, "blog", "first", "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "<p>hi</p>", string(data))
}

// TestWriter_Overwrite verifies repeated writes replace content.
func TestWriter_Overwrite(t *testing.T) {
	root := t.TempDir()
	w := NewWriter(root)
	ctx := context.Background()

	require.NoError(t, w.WriteOutput(ctx, "/index.html", []byte("one")))
	require.NoError(t, w.WriteOutput(ctx, "/index.html", []byte("two")))

	data, err := os.ReadFile(filepath.Join(root, "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
}
