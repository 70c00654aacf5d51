package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type decodeTarget struct {
	Name string `json:"name"`
}

func decodeBody(body string) (decodeTarget, error) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	var v decodeTarget
	err := DecodeJSON(req, &v)
	return v, err
}

func TestDecodeJSON_SingleValue(t *testing.T) {
	v, err := decodeBody("  {\"name\":\"Alice\"}\n")
	require.NoError(t, err)
	assert.Equal(t, "Alice", v.Name)
}

func TestDecodeJSON_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{name: "trailing garbage", body: `{"name":"Alice"} trailing-garbage`, want: ErrTrailingJSON},
		{name: "second value", body: `{"name":"Alice"}{"name":"Bob"}`, want: ErrTrailingJSON},
		{name: "null", body: `null`, want: ErrNullBody},
		{name: "empty", body: ``},
		{name: "malformed", body: `{"name":`},
		{name: "wrong type", body: `{"name":42}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeBody(tt.body)
			require.Error(t, err)
			if tt.want != nil {
				assert.True(t, errors.Is(err, tt.want), "got %v", err)
			}
		})
	}
}
