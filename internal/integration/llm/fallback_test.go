package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRespond(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{name: "empty", message: "", want: fallbackOpener},
		{name: "blank", message: "  \n\t ", want: fallbackOpener},
		{name: "greeting", message: "Hello there", want: fallbackGreeting},
		{name: "short greeting uppercase", message: "HI!", want: fallbackGreeting},
		{name: "hi inside a word is not a greeting", message: "this is which", want: fallbackElaborate},
		{name: "experience", message: "I have experience with Go", want: fallbackExperience},
		{name: "worked", message: "I worked at a bank", want: fallbackExperience},
		{name: "project", message: "My last project was a CRM", want: fallbackProject},
		{name: "greeting wins over project", message: "hi, about my project", want: fallbackGreeting},
		{name: "experience wins over project", message: "project experience", want: fallbackExperience},
		{name: "affirmation", message: "Yes", want: fallbackNewTopic},
		{name: "affirmation yeah", message: "yeah, go on", want: fallbackNewTopic},
		{name: "long answer", message: strings.Repeat("A", 250), want: fallbackDetailed},
		{name: "medium answer", message: "Goroutines are cheap green threads", want: fallbackMoreDetail},
		{name: "short answer", message: "No idea", want: fallbackElaborate},
		{name: "exactly twenty chars", message: strings.Repeat("b", 20), want: fallbackElaborate},
		{name: "exactly hundred chars", message: strings.Repeat("c", 100), want: fallbackMoreDetail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Respond(tt.message))
		})
	}
}

func TestRespondIsDeterministic(t *testing.T) {
	for i := 0; i < 10; i++ {
		assert.Equal(t, Respond("tell me about the project"), Respond("tell me about the project"))
	}
}
