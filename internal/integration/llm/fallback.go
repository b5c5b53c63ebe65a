package llm

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Replies of the local fallback responder
const (
	fallbackOpener       = "Let's get started. Could you briefly introduce yourself and describe your technical background?"
	fallbackGreeting     = "Hello! Nice to meet you. Before we move on to technical questions, could you tell me about your background and the technologies you work with most?"
	fallbackExperience   = "That sounds like valuable experience. Could you elaborate on the technologies you used there and the hardest technical challenge you faced?"
	fallbackProject      = "Interesting project. What was your role in it, and what were the main technical challenges you had to solve?"
	fallbackNewTopic     = "Great, let's move on to a new topic. How would you design a service that has to handle a sudden tenfold increase in traffic?"
	fallbackDetailed     = "Thank you for the detailed explanation. Could you walk me through a concrete example from your own work where you applied this?"
	fallbackMoreDetail   = "Thanks. Could you go into a bit more detail on that?"
	fallbackElaborate    = "Could you elaborate on your answer a little more?"
	detailedAnswerLength = 100
	shortAnswerLength    = 20
)

var (
	greetingTokens    = []string{"hello", "hi"}
	experienceMarkers = []string{"experience", "worked"}
	projectMarkers    = []string{"project"}
	affirmationTokens = []string{"yes", "yeah", "sure"}
)

// Respond returns the deterministic local reply to the candidate's last
// message. Rules are checked in order and the first match wins.
func Respond(lastUserMessage string) string {
	text := strings.ToLower(strings.TrimSpace(lastUserMessage))
	if text == "" {
		return fallbackOpener
	}

	words := tokenize(text)

	switch {
	case hasAnyWord(words, greetingTokens):
		return fallbackGreeting
	case containsAny(text, experienceMarkers):
		return fallbackExperience
	case containsAny(text, projectMarkers):
		return fallbackProject
	case hasAnyWord(words, affirmationTokens):
		return fallbackNewTopic
	}

	switch length := utf8.RuneCountInString(text); {
	case length > detailedAnswerLength:
		return fallbackDetailed
	case length > shortAnswerLength:
		return fallbackMoreDetail
	default:
		return fallbackElaborate
	}
}

func tokenize(text string) map[string]struct{} {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	words := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		words[f] = struct{}{}
	}
	return words
}

func hasAnyWord(words map[string]struct{}, tokens []string) bool {
	for _, token := range tokens {
		if _, ok := words[token]; ok {
			return true
		}
	}
	return false
}

func containsAny(text string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}
