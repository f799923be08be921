package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_ReturnsResponseText(t *testing.T) {
	var gotPayload map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response": "chat\nchien\n"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	got, err := client.Generate(context.Background(), Request{
		Model:  "test-model",
		Prompt: "donne des mots",
		System: "un mot par ligne",
		Options: Options{
			Temperature:   0.7,
			TopP:          0.9,
			RepeatPenalty: 1.05,
			NumPredict:    512,
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "chat\nchien\n", got)

	// The payload must be a non-streaming request carrying the sampling options.
	assert.Equal(t, "test-model", gotPayload["model"])
	assert.Equal(t, false, gotPayload["stream"])
	opts, ok := gotPayload["options"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 0.7, opts["temperature"], 1e-9)
	assert.InDelta(t, 0.9, opts["top_p"], 1e-9)
	assert.InDelta(t, 1.05, opts["repeat_penalty"], 1e-9)
	assert.EqualValues(t, 512, opts["num_predict"])
}

func TestGenerate_ModelErrorField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"error": "model not found"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.Generate(context.Background(), Request{Model: "missing"})

	require.Error(t, err)
	assert.True(t, IsErrorType(err, ErrModel))
	assert.Contains(t, err.Error(), "model not found")
}

func TestGenerate_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"response": "   \n "}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.Generate(context.Background(), Request{Model: "m"})

	require.Error(t, err)
	assert.True(t, IsErrorType(err, ErrEmptyResponse))
}

func TestGenerate_HTTPStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "overloaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.Generate(context.Background(), Request{Model: "m"})

	require.Error(t, err)
	assert.True(t, IsErrorType(err, ErrTransport))
}

func TestGenerate_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // connection refused from here on

	client := NewClient(server.URL, time.Second)
	_, err := client.Generate(context.Background(), Request{Model: "m"})

	require.Error(t, err)
	assert.True(t, IsErrorType(err, ErrTransport))
}

func TestGenerate_ContextCancellation(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-block
	}))
	defer func() {
		close(block)
		server.Close()
	}()

	client := NewClient(server.URL, time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Generate(ctx, Request{Model: "m"})
	require.Error(t, err)
	assert.True(t, IsErrorType(err, ErrTransport))
}
