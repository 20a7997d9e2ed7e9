package textgen_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/onsideagency/touchline/internal/metrics"
	"github.com/onsideagency/touchline/internal/textgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.Equal(t, "/v1/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"text":"a tidy completion"}`)
	}))
	defer srv.Close()

	m := metrics.NewMock()
	client := textgen.NewClient(srv.URL, "secret-key", m)

	out, err := client.Generate(context.Background(), textgen.GenerateRequest{
		Prompt: "hello",
		System: "be brief",
	})
	require.NoError(t, err)
	assert.Equal(t, "a tidy completion", out)
	assert.Equal(t, "Bearer secret-key", gotAuth)
	assert.Equal(t, "hello", gotBody["prompt"])
	assert.Equal(t, false, gotBody["stream"])
	assert.Equal(t, 1, m.TextGenRequests())
}

func TestGenerateNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := textgen.NewClient(srv.URL, "k", metrics.NewMock())
	_, err := client.Generate(context.Background(), textgen.GenerateRequest{Prompt: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, true, body["stream"])

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"token\":\"Hel\"}\n\n")
		fmt.Fprint(w, ": a comment line\n")
		fmt.Fprint(w, "data: {\"token\":\"lo\"}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	m := metrics.NewMock()
	client := textgen.NewClient(srv.URL, "k", m)

	var tokens []string
	err := client.Stream(context.Background(), textgen.GenerateRequest{Prompt: "hi"}, func(token string) error {
		tokens = append(tokens, token)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Hel", "lo"}, tokens)
	assert.Equal(t, 1, m.TextGenRequests())
}

func TestStreamStopsOnCallbackError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "data: {\"token\":\"one\"}\n\n")
		fmt.Fprint(w, "data: {\"token\":\"two\"}\n\n")
	}))
	defer srv.Close()

	client := textgen.NewClient(srv.URL, "k", metrics.NewMock())

	var tokens []string
	err := client.Stream(context.Background(), textgen.GenerateRequest{Prompt: "hi"}, func(token string) error {
		tokens = append(tokens, token)
		return fmt.Errorf("stop")
	})
	require.Error(t, err)
	assert.Equal(t, []string{"one"}, tokens)
}

func TestStreamDoneChunk(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "data: {\"token\":\"only\"}\n\n")
		fmt.Fprint(w, "data: {\"token\":\"\",\"done\":true}\n\n")
		fmt.Fprint(w, "data: {\"token\":\"never delivered\"}\n\n")
	}))
	defer srv.Close()

	client := textgen.NewClient(srv.URL, "k", metrics.NewMock())

	var tokens []string
	err := client.Stream(context.Background(), textgen.GenerateRequest{Prompt: "hi"}, func(token string) error {
		tokens = append(tokens, token)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, tokens)
}
