package app

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthMux(t *testing.T) {
	input := filepath.Join(t.TempDir(), "input.hcl")
	require.NoError(t, os.WriteFile(input, []byte("Mesh {\n  dim = 2\n  nx  = 3\n}\n"), 0o644))

	cfg, err := NewConfig(Config{InputPath: input, LogLevel: "error", MeshOnly: true})
	require.NoError(t, err)
	a, err := New(io.Discard, cfg)
	require.NoError(t, err)

	srv := httptest.NewServer(a.healthMux())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK\n", string(body))

	resp, err = http.Get(srv.URL + "/objects")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode, "graph is not built yet")

	require.NoError(t, a.Run(t.Context()))

	resp, err = http.Get(srv.URL + "/objects")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var views []objectView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&views))
	require.Len(t, views, 1)
	assert.Equal(t, "Mesh", views[0].Name)
	assert.Equal(t, "GeneratedMesh", views[0].Type)
	assert.Equal(t, "2", views[0].Params["dim"])
	assert.Equal(t, "3", views[0].Params["nx"])
}
