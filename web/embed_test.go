package web

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticFiles(t *testing.T) {
	index, err := fs.ReadFile(Static(), "index.html")
	require.NoError(t, err)
	assert.Contains(t, string(index), "/api/question")

	assert.Contains(t, string(UploadPage()), `name="file"`)
}
