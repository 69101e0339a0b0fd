package conversation

// Step names the meaning of the next expected user input. The flow is
// linear; the only branch is AskLecturerInvolved, which skips
// AskLecturerName when no lecturer was involved.
type Step string

const (
	StepAskIncident         Step = "ask_incident"
	StepAskDate             Step = "ask_date"
	StepAskTime             Step = "ask_time"
	StepAskDescription      Step = "ask_description"
	StepAskLecturerInvolved Step = "ask_lecturer_involved"
	StepAskLecturerName     Step = "ask_lecturer_name"
	StepSubmit              Step = "submit_report"
	StepCompleted           Step = "completed"
)
