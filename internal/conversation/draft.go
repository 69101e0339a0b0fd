package conversation

import "fmt"

// Involvement answers "was a lecturer involved?".
type Involvement string

const (
	InvolvementUnknown Involvement = "unknown"
	InvolvementYes     Involvement = "yes"
	InvolvementNo      Involvement = "no"
)

// Draft accumulates one in-progress report. Fields are populated in step
// order and the whole draft is cleared when the conversation resets. A
// failed submission leaves the draft untouched so nothing is lost.
type Draft struct {
	IncidentDate     string      `json:"incident_date"`
	IncidentTime     string      `json:"incident_time"`
	Description      string      `json:"description"`
	LecturerInvolved Involvement `json:"lecturer_involved"`
	LecturerName     string      `json:"lecturer_name,omitempty"`
	Category         string      `json:"category,omitempty"` // set once classification succeeds
}

func newDraft() Draft {
	return Draft{LecturerInvolved: InvolvementUnknown}
}

// ReportBody serializes the draft into the free-text blob the storage
// backend accepts.
func (d Draft) ReportBody() string {
	lecturerName := d.LecturerName
	if lecturerName == "" {
		lecturerName = "N/A"
	}
	return fmt.Sprintf("Date: %s\nTime: %s\nDescription: %s\nLecturer Involved: %s\nLecturer Name: %s",
		d.IncidentDate, d.IncidentTime, d.Description, d.LecturerInvolved, lecturerName)
}
