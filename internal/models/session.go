package models

// Session is one scheduled meeting of a programme. Date is YYYY-MM-DD and the
// times are HH:MM, so lexical order matches chronological order.
type Session struct {
	ID          string `json:"id" yaml:"id"`
	ProgrammeID string `json:"programmeId" yaml:"programmeId"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Date        string `json:"date" yaml:"date"`
	StartTime   string `json:"startTime" yaml:"startTime"`
	EndTime     string `json:"endTime" yaml:"endTime"`
	Venue       string `json:"venue" yaml:"venue"`
	TrainerID   string `json:"trainerId" yaml:"trainerId"`
}

func (s Session) Identifier() string { return s.ID }

type NewSession struct {
	ProgrammeID string
	Title       string
	Description string
	Date        string
	StartTime   string
	EndTime     string
	Venue       string
	TrainerID   string
}

type SessionPatch struct {
	Title       *string
	Description *string
	Date        *string
	StartTime   *string
	EndTime     *string
	Venue       *string
	TrainerID   *string
}

func (p SessionPatch) Apply(dst *Session) {
	setIf(&dst.Title, p.Title)
	setIf(&dst.Description, p.Description)
	setIf(&dst.Date, p.Date)
	setIf(&dst.StartTime, p.StartTime)
	setIf(&dst.EndTime, p.EndTime)
	setIf(&dst.Venue, p.Venue)
	setIf(&dst.TrainerID, p.TrainerID)
}
