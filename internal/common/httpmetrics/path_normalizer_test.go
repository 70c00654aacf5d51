package httpmetrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "/", NormalizePath(""))
	assert.Equal(t, "/api/submissions", NormalizePath("/api/submissions"))
	assert.Equal(t, "/api/submissions/{param}", NormalizePath("/api/submissions/3f2b1c9e-8a7d-4e6f-9b0a-1c2d3e4f5a6b"))
	assert.Equal(t, "/api/items/{param}/tags", NormalizePath("/api/items/42/tags"))
}
