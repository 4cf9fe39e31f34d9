package classifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Close() error                 { return nil }

func TestClassify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/test-model", r.URL.Path)

		var req inferenceRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "some text", req.Inputs)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[[{"label":"POSITIVE","score":0.98},{"label":"NEGATIVE","score":0.02}]]`))
	}))
	defer server.Close()

	client, err := NewHTTPClient(Config{BaseURL: server.URL}, nopLogger{})
	require.NoError(t, err)

	scores, err := client.Classify(context.Background(), "test-model", "some text")
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, "POSITIVE", scores[0].Label)
	assert.Equal(t, 0.98, scores[0].Score)
}

func TestClassifyServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model is loading"}`, http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, err := NewHTTPClient(Config{BaseURL: server.URL}, nopLogger{})
	require.NoError(t, err)

	_, err = client.Classify(context.Background(), "test-model", "some text")
	assert.Error(t, err)
}

func TestClassifyEmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client, err := NewHTTPClient(Config{BaseURL: server.URL}, nopLogger{})
	require.NoError(t, err)

	_, err = client.Classify(context.Background(), "test-model", "some text")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestConfigValidate(t *testing.T) {
	assert.Error(t, Config{}.Validate())
	assert.NoError(t, Config{BaseURL: "http://localhost:8090"}.Validate())
}
