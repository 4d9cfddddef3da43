package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"burlometro/internal/scoring"
)

func completion(t *testing.T, content string) []byte {
	t.Helper()
	payload := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	}
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return data
}

func newTestClient(t *testing.T, srv *httptest.Server, timeout time.Duration) *Client {
	t.Helper()
	client, err := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL, Timeout: timeout})
	require.NoError(t, err)
	return client
}

func TestNewClientRequiresKey(t *testing.T) {
	client, err := NewClient(Config{APIKey: "   "})
	assert.Nil(t, client)
	assert.ErrorIs(t, err, ErrDisabled)

	var nilClient *Client
	assert.False(t, nilClient.Enabled())
	_, err = nilClient.Classify(context.Background(), "olá")
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestNewClientDefaults(t *testing.T) {
	client, err := NewClient(Config{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, defaultModel, client.Model())
	assert.Equal(t, defaultBaseURL, client.baseURL)
	assert.Equal(t, defaultTemperature, client.temperature)
	assert.Equal(t, defaultMaxTokens, client.maxTokens)
	assert.Equal(t, defaultTimeout, client.httpClient.Timeout)
}

func TestClassifySendsPromptAndParsesFencedReply(t *testing.T) {
	message := `Ganhou um "prémio"! Clique aqui`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, defaultReferer, r.Header.Get("HTTP-Referer"))
		assert.Equal(t, defaultTitle, r.Header.Get("X-Title"))

		var req chatCompletionRequest
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		assert.Equal(t, defaultModel, req.Model)
		assert.Equal(t, 0.3, req.Temperature)
		assert.Equal(t, 500, req.MaxTokens)
		if !assert.Len(t, req.Messages, 2) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Contains(t, req.Messages[0].Content, "Responda APENAS com JSON puro")
		assert.Equal(t, "user", req.Messages[1].Role)
		assert.Equal(t, UserPrompt(message), req.Messages[1].Content)

		_, _ = w.Write(completion(t, "```json\n"+verdictJSON+"\n```"))
	}))
	defer srv.Close()

	result, err := newTestClient(t, srv, time.Second).Classify(context.Background(), message)
	require.NoError(t, err)
	assert.Equal(t, scoring.RiskScam, result.RiskLevel)
	assert.True(t, result.IsScam)
	assert.Equal(t, 92, result.Confidence)
	assert.Equal(t, []string{"urgência", "link suspeito"}, result.Indicators)
}

func TestClassifyTransportFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
		}},
		{"rate limited", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}},
		{"no choices", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}},
		{"garbage body", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<html>gateway</html>`))
		}},
		{"timeout", func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(300 * time.Millisecond)
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			_, err := newTestClient(t, srv, 100*time.Millisecond).Classify(context.Background(), "olá")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrTransport), "expected ErrTransport, got %v", err)
		})
	}
}

func TestClassifyUnreachableProvider(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client, err := NewClient(Config{APIKey: "k", BaseURL: url, Timeout: time.Second})
	require.NoError(t, err)
	_, err = client.Classify(context.Background(), "olá")
	assert.ErrorIs(t, err, ErrTransport)
}

func TestClassifyMalformedContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(completion(t, "Claro! Aqui está: {\"is_scam\": tru"))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv, time.Second).Classify(context.Background(), "olá")
	assert.ErrorIs(t, err, ErrParse)
}

func TestUserPromptQuotesMessage(t *testing.T) {
	prompt := UserPrompt(`diz "olá"`)
	assert.True(t, strings.HasPrefix(prompt, "Analise esta mensagem: "))
	assert.Contains(t, prompt, `\"olá\"`)
}
