package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/futig/interview-agent/internal/config"
	"github.com/futig/interview-agent/internal/entity"
	pkgRetry "github.com/futig/interview-agent/internal/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const replyText = "Tell me how the Go scheduler decides which goroutine runs next."

func testConfig(url string) config.LLMConnectorConfig {
	return config.LLMConnectorConfig{
		HTTPClientConfig: config.HTTPClientConfig{
			RequestTimeout:        5 * time.Second,
			ConnTimeout:           time.Second,
			KeepAlive:             time.Second,
			IdleConnTimeout:       time.Second,
			ResponseHeaderTimeout: 5 * time.Second,
			Token:                 "test-token",
			Url:                   url,
		},
		CompletionEndpoint: "/v1/chat/completions",
		Model:              "test-model",
		Temperature:        0.2,
		MaxTokens:          256,
		CompletionTimeout:  2 * time.Second,
		StreamTimeout:      2 * time.Second,
		FallbackWordDelay:  time.Millisecond,
		Retry:              pkgRetry.RetryConfig{Attempts: 2, Delay: time.Millisecond, MaxDelay: 2 * time.Millisecond},
	}
}

func testMessages(user string) []entity.ChatMessage {
	return []entity.ChatMessage{
		{Role: entity.ChatRoleSystem, Content: "You are an interviewer."},
		{Role: entity.ChatRoleUser, Content: user},
	}
}

func drain(seq func(func(string) bool)) []string {
	var out []string
	seq(func(s string) bool {
		out = append(out, s)
		return true
	})
	return out
}

// llmServer answers both modes of the same chat request: a single JSON
// completion or the same text split into streamed delta frames.
func llmServer(t *testing.T, text string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var req entity.LLMChatRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		assert.Equal(t, 256, req.MaxTokens)

		if !req.Stream {
			_ = json.NewEncoder(w).Encode(entity.LLMChatResponse{
				Choices: []entity.LLMChatChoice{{Message: &entity.ChatMessage{Role: entity.ChatRoleAssistant, Content: text}}},
			})
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"role\":\"assistant\"}}]}\n\n")
		for _, word := range strings.SplitAfter(text, " ") {
			chunk, _ := json.Marshal(map[string]any{
				"choices": []any{map[string]any{"delta": map[string]any{"content": word}}},
			})
			fmt.Fprintf(w, "data: %s\n\n", chunk)
			w.(http.Flusher).Flush()
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
}

func TestCompleteReturnsFirstChoice(t *testing.T) {
	srv := llmServer(t, replyText)
	defer srv.Close()

	c := NewConnector(testConfig(srv.URL), zap.NewNop())
	result := c.CompleteResult(context.Background(), testMessages("hello"))

	assert.Equal(t, replyText, result.Text)
	assert.Equal(t, entity.CompletionSourceModel, result.Source)
	assert.Equal(t, entity.CompletionFailureNone, result.Failure)
	assert.NoError(t, result.Err)
	assert.Equal(t, replyText, c.Complete(context.Background(), testMessages("hello")))
}

func TestStreamConcatenationMatchesCompletion(t *testing.T) {
	srv := llmServer(t, replyText)
	defer srv.Close()

	c := NewConnector(testConfig(srv.URL), zap.NewNop())
	messages := testMessages("Explain goroutines")

	fragments := drain(c.CompleteStream(context.Background(), messages))

	assert.Greater(t, len(fragments), 1)
	assert.Equal(t, c.Complete(context.Background(), messages), strings.Join(fragments, ""))
}

func TestCompleteFallsBackOnServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewConnector(testConfig(srv.URL), zap.NewNop())
	result := c.CompleteResult(context.Background(), testMessages("Hello there"))

	assert.Equal(t, fallbackGreeting, result.Text)
	assert.True(t, result.IsFallback())
	assert.Equal(t, entity.CompletionFailureTransport, result.Failure)
	assert.Error(t, result.Err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCompleteDoesNotRetryClientError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad model", http.StatusBadRequest)
	}))
	defer srv.Close()

	result := NewConnector(testConfig(srv.URL), zap.NewNop()).CompleteResult(context.Background(), testMessages(""))

	assert.Equal(t, fallbackOpener, result.Text)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCompleteFallsBackOnTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.CompletionTimeout = 50 * time.Millisecond
	c := NewConnector(cfg, zap.NewNop())

	start := time.Now()
	result := c.CompleteResult(context.Background(), testMessages("I worked on payments"))

	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, fallbackExperience, result.Text)
	assert.Equal(t, entity.CompletionFailureTransport, result.Failure)
}

func TestCompleteFallsBackOnUnusableBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "<html>oops</html>"},
		{name: "no choices", body: `{"choices":[]}`},
		{name: "blank content", body: `{"choices":[{"message":{"role":"assistant","content":"  "}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			result := NewConnector(testConfig(srv.URL), zap.NewNop()).CompleteResult(context.Background(), testMessages("yes"))

			assert.Equal(t, fallbackNewTopic, result.Text)
			assert.Equal(t, entity.CompletionFailureParse, result.Failure)
		})
	}
}

func TestCompleteStreamFallsBackWhenUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewConnector(testConfig(srv.URL), zap.NewNop())
	fragments := drain(c.CompleteStream(context.Background(), testMessages("Hello there")))

	assert.Equal(t, len(strings.Fields(fallbackGreeting)), len(fragments))
	assert.Equal(t, fallbackGreeting, strings.Join(fragments, ""))
}

func TestCompleteStreamFallsBackOnMidStreamTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"Partial \"}}]}\n\n")
		w.(http.Flusher).Flush()
		<-r.Context().Done()
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.StreamTimeout = 100 * time.Millisecond
	c := NewConnector(cfg, zap.NewNop())

	fragments := drain(c.CompleteStream(context.Background(), testMessages("")))

	require.NotEmpty(t, fragments)
	assert.Equal(t, "Partial ", fragments[0])
	assert.Equal(t, fallbackOpener, strings.Join(fragments[1:], ""))
}

func TestCompleteStreamConsumerStopsEarly(t *testing.T) {
	srv := llmServer(t, replyText)
	defer srv.Close()

	c := NewConnector(testConfig(srv.URL), zap.NewNop())

	var got []string
	for fragment := range c.CompleteStream(context.Background(), testMessages("go")) {
		got = append(got, fragment)
		if len(got) == 2 {
			break
		}
	}

	assert.Len(t, got, 2)
	assert.Equal(t, replyText[:len(got[0])+len(got[1])], strings.Join(got, ""))
}

func TestMockConnector(t *testing.T) {
	m := NewMockConnector(0, zap.NewNop())

	result := m.CompleteResult(context.Background(), testMessages("my project"))
	assert.Equal(t, fallbackProject, result.Text)
	assert.True(t, result.IsFallback())

	assert.Equal(t, fallbackProject, strings.Join(drain(m.CompleteStream(context.Background(), testMessages("my project"))), ""))
}
