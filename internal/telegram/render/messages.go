package render

import (
	"fmt"
	"strings"

	"github.com/futig/interview-agent/internal/entity"
)

const (
	MsgHelp = `I run mock technical interviews.

/start [role] [level] - start a new interview, e.g. /start backend senior
/finish - finish the interview and get a summary
/help - show this message

Roles: backend, frontend, fullstack, devops, data-scientist.
Levels: junior, middle, senior, lead.
While an interview is running just answer the questions in plain text.`

	MsgNoInterview      = "There is no running interview. Send /start to begin one."
	MsgInterviewClosed  = "This interview is already finished. Send /start to begin a new one."
	MsgUnknownCommand   = "Unknown command. Send /help to see what I can do."
	MsgTextOnly         = "Please answer with a text message."
	MsgRateLimited      = "Too many messages. Please wait a little before sending the next one."
	MsgRateLimitedAgain = "Still too many messages. Please wait about a minute."

	ErrGeneric = "Something went wrong. Please try again or send /start."
)

// InterviewStarted announces a new interview
func InterviewStarted(session *entity.InterviewSession) string {
	return fmt.Sprintf("Starting a %s interview for the %s role. Send /finish whenever you want to stop.",
		session.ExperienceLevel, session.RoleID)
}

// InterviewSummary renders a completed interview
func InterviewSummary(session *entity.InterviewSession) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Interview finished. Rounds: %d.", len(session.History))

	total, evaluated := 0, 0
	for _, exchange := range session.History {
		if exchange.Evaluation != nil {
			total += exchange.Evaluation.Score
			evaluated++
		}
	}
	if evaluated > 0 {
		avg := total / evaluated
		fmt.Fprintf(&b, "\nAverage score: %d/100 (%s) over %d evaluated answers.", avg, entity.RubricForScore(avg), evaluated)
	}

	b.WriteString("\nThanks for your time! Send /start to try again.")
	return b.String()
}
