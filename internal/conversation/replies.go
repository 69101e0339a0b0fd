package conversation

import (
	"fmt"
	"time"
)

// Fixed assistant reply texts, one per transition.
const (
	replyAskDate             = "Great! What day did the incident happen? (e.g July 10 2025)"
	replyDeclined            = "Alright. Let me know if anything comes up."
	replyAskTime             = "Thanks. What time did it happen?"
	replyAskDescription      = "Please describe what happened."
	replyClassifyFailed      = "Thanks. We'll proceed."
	replyAskLecturerInvolved = "Was a lecturer involved? (yes/no)"
	replyAskLecturerName     = "Please provide the lecturer's name (or say 'prefer not to say')."
	replySubmitting          = "Thanks for reporting. We're submitting your report now..."
	replySubmitted           = "Thank you. Your report has been received. We'll get back to you as soon as possible."
)

func replyCategoryDetected(category string) string {
	return fmt.Sprintf("Thank you. This may fall under: **%s**.", category)
}

// Greeting returns the time-of-day salutation: before 12:00 "Good morning",
// before 17:00 "Good afternoon", otherwise "Good evening".
func Greeting(t time.Time) string {
	switch hour := t.Hour(); {
	case hour < 12:
		return "Good morning"
	case hour < 17:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}

func greetingMessage(t time.Time, restart bool) string {
	if restart {
		return fmt.Sprintf("%s! Do you have another incident you'd like to report?", Greeting(t))
	}
	return fmt.Sprintf("%s! Do you have any incident you'd like to report?", Greeting(t))
}
