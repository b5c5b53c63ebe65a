package llm

import (
	"context"
	"errors"
	"iter"
	"net/http"
	"strings"
	"time"

	"github.com/futig/interview-agent/internal/config"
	"github.com/futig/interview-agent/internal/entity"
	"github.com/futig/interview-agent/internal/integration/common"
	"github.com/futig/interview-agent/internal/pkg/metrics"
	pkgRetry "github.com/futig/interview-agent/internal/pkg/retry"
	pkghttp "github.com/futig/interview-agent/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

var errEmptyCompletion = errors.New("completion response has no choice text")

// Connector talks to an OpenAI-compatible chat completion endpoint. Its
// public calls never fail: whenever the remote model is unusable the local
// fallback responder answers instead.
type Connector struct {
	config    config.LLMConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.LLMConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector("llm", cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Complete returns the model's reply to messages, or the fallback reply to the last user message
func (c *Connector) Complete(ctx context.Context, messages []entity.ChatMessage) string {
	return c.CompleteResult(ctx, messages).Text
}

// CompleteResult is Complete with the outcome kept: callers can tell a model
// answer from a fallback one and see why the model was not used.
func (c *Connector) CompleteResult(ctx context.Context, messages []entity.ChatMessage) entity.Completion {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, c.config.CompletionTimeout)
	defer cancel()

	ctxzap.Debug(ctx, "requesting completion from LLM service", zap.Int("message_count", len(messages)))

	req := c.newRequest(messages, false)

	var resp entity.LLMChatResponse
	err := pkgRetry.Do(ctx, &c.config.Retry, pkghttp.IsRetryable, func() error {
		resp = entity.LLMChatResponse{}
		return c.connector.DoRequest(ctx, http.MethodPost, c.config.CompletionEndpoint, req, &resp)
	})
	if err != nil {
		return c.fallback(ctx, messages, classify(err), err, start)
	}

	text, ok := firstChoiceText(&resp)
	if !ok {
		return c.fallback(ctx, messages, entity.CompletionFailureParse, errEmptyCompletion, start)
	}

	metrics.ObserveLLMCall(metrics.ModeComplete, string(entity.CompletionSourceModel), time.Since(start))
	ctxzap.Info(ctx, "completion received", zap.Int("result_length", len(text)))

	return entity.Completion{
		Text:   text,
		Source: entity.CompletionSourceModel,
	}
}

// CompleteStream streams the model's reply as text fragments. Transport
// failures, on connect or mid-stream, switch to the fallback reply emitted
// word by word; a malformed frame is skipped. Stopping the iteration early
// cancels the remote request.
func (c *Connector) CompleteStream(ctx context.Context, messages []entity.ChatMessage) iter.Seq[string] {
	return func(yield func(string) bool) {
		start := time.Now()
		parent := ctx

		streamCtx, cancel := context.WithTimeout(ctx, c.config.StreamTimeout)
		defer cancel()

		ctxzap.Debug(streamCtx, "requesting streamed completion from LLM service", zap.Int("message_count", len(messages)))

		body, err := c.connector.DoStream(streamCtx, http.MethodPost, c.config.CompletionEndpoint, c.newRequest(messages, true))
		if err != nil {
			c.streamFallback(parent, messages, err, start, yield)
			return
		}
		defer body.Close()

		res, err := readFrames(body, yield)
		if res.skipped > 0 {
			ctxzap.Debug(streamCtx, "skipped unparsable stream frames", zap.Int("skipped", res.skipped))
		}

		switch {
		case res.stopped:
			ctxzap.Debug(streamCtx, "stream consumer stopped early", zap.Int("fragments", res.fragments))
		case err != nil:
			ctxzap.Warn(streamCtx, "stream interrupted", zap.Int("fragments", res.fragments), zap.Error(err))
			c.streamFallback(parent, messages, err, start, yield)
		default:
			metrics.ObserveLLMCall(metrics.ModeStream, string(entity.CompletionSourceModel), time.Since(start))
			ctxzap.Info(streamCtx, "stream completed", zap.Int("fragments", res.fragments))
		}
	}
}

func (c *Connector) newRequest(messages []entity.ChatMessage, stream bool) *entity.LLMChatRequest {
	return &entity.LLMChatRequest{
		Model:       c.config.Model,
		Temperature: c.config.Temperature,
		MaxTokens:   c.config.MaxTokens,
		Stream:      stream,
		Messages:    messages,
	}
}

func (c *Connector) fallback(
	ctx context.Context,
	messages []entity.ChatMessage,
	failure entity.CompletionFailure,
	err error,
	start time.Time,
) entity.Completion {
	metrics.ObserveLLMCall(metrics.ModeComplete, string(failure), time.Since(start))
	ctxzap.Warn(ctx, "LLM completion unavailable, using fallback responder",
		zap.String("failure", string(failure)),
		zap.Error(err),
	)

	return entity.Completion{
		Text:    Respond(entity.LastUserMessage(messages)),
		Source:  entity.CompletionSourceFallback,
		Failure: failure,
		Err:     err,
	}
}

func (c *Connector) streamFallback(
	ctx context.Context,
	messages []entity.ChatMessage,
	err error,
	start time.Time,
	yield func(string) bool,
) {
	metrics.ObserveLLMCall(metrics.ModeStream, string(entity.CompletionFailureTransport), time.Since(start))
	ctxzap.Warn(ctx, "LLM stream unavailable, streaming fallback responder", zap.Error(err))

	streamWords(ctx, Respond(entity.LastUserMessage(messages)), c.config.FallbackWordDelay, yield)
}

func classify(err error) entity.CompletionFailure {
	var decodeErr *pkghttp.DecodeError
	if errors.As(err, &decodeErr) {
		return entity.CompletionFailureParse
	}
	return entity.CompletionFailureTransport
}

func firstChoiceText(resp *entity.LLMChatResponse) (string, bool) {
	if len(resp.Choices) == 0 {
		return "", false
	}

	choice := resp.Choices[0]
	var text string
	switch {
	case choice.Message != nil:
		text = choice.Message.Content
	case choice.Delta != nil && choice.Delta.Content != nil:
		text = *choice.Delta.Content
	}

	if strings.TrimSpace(text) == "" {
		return "", false
	}
	return text, true
}

// streamWords emits text one word at a time, waiting delay before each word
func streamWords(ctx context.Context, text string, delay time.Duration, yield func(string) bool) {
	words := strings.Fields(text)
	for i, word := range words {
		if delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}

		if i < len(words)-1 {
			word += " "
		}
		if !yield(word) {
			return
		}
	}
}
