package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveLLMCall(t *testing.T) {
	before := testutil.ToFloat64(llmRequests.WithLabelValues(ModeStream, "transport"))

	ObserveLLMCall(ModeStream, "transport", 10*time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(llmRequests.WithLabelValues(ModeStream, "transport")))
}

func TestObserveEvaluation(t *testing.T) {
	before := testutil.ToFloat64(evaluations.WithLabelValues("fallback", "poor"))

	ObserveEvaluation("fallback", "poor")
	ObserveEvaluation("fallback", "poor")

	assert.Equal(t, before+2, testutil.ToFloat64(evaluations.WithLabelValues("fallback", "poor")))
}
