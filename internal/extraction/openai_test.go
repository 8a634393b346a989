package extraction

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAICompleter(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"[]"}}]}`))
	}))
	defer srv.Close()

	c := NewOpenAICompleter(Config{Provider: ProviderOpenAI, APIKey: "test-key", BaseURL: srv.URL + "/v1/"})
	c.httpClient = srv.Client()

	reply, err := c.Complete(context.Background(), "sys", "usr")
	require.NoError(t, err)
	assert.Equal(t, "[]", reply)
	assert.Equal(t, defaultOpenAIModel, got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, chatMessage{Role: "system", Content: "sys"}, got.Messages[0])
	assert.Equal(t, chatMessage{Role: "user", Content: "usr"}, got.Messages[1])
}

func TestOpenAICompleter_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewOpenAICompleter(Config{APIKey: "k", BaseURL: srv.URL})
	c.httpClient = srv.Client()

	_, err := c.Complete(context.Background(), "sys", "usr")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestNewCompleter(t *testing.T) {
	_, err := NewCompleter(context.Background(), Config{Provider: ProviderOpenAI})
	assert.Error(t, err, "missing key")

	_, err = NewCompleter(context.Background(), Config{Provider: "mystery", APIKey: "k"})
	assert.Error(t, err)

	c, err := NewCompleter(context.Background(), Config{Provider: "OpenAI", APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &OpenAICompleter{}, c)

	c, err = NewCompleter(context.Background(), Config{Provider: ProviderAnthropic, APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &AnthropicCompleter{}, c)
}
