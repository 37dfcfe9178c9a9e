package models

import "time"

// AttendanceStatus is the outcome recorded for one trainee at one session.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceExcused AttendanceStatus = "excused"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceExcused:
		return true
	default:
		return false
	}
}

// Attended reports whether the status counts towards the attendance rate.
func (s AttendanceStatus) Attended() bool {
	return s == AttendancePresent || s == AttendanceLate
}

// AttendanceRecord is not unique per (session, trainee); see
// AttendanceService.MarkSession for the upserting path.
type AttendanceRecord struct {
	ID        string           `json:"id" yaml:"id"`
	SessionID string           `json:"sessionId" yaml:"sessionId"`
	TraineeID string           `json:"traineeId" yaml:"traineeId"`
	Status    AttendanceStatus `json:"status" yaml:"status"`
	MarkedAt  time.Time        `json:"markedAt" yaml:"markedAt"`
	MarkedBy  string           `json:"markedBy" yaml:"markedBy"`
	Notes     string           `json:"notes,omitempty" yaml:"notes,omitempty"`
}

func (a AttendanceRecord) Identifier() string { return a.ID }

type NewAttendanceRecord struct {
	SessionID string
	TraineeID string
	Status    AttendanceStatus
	MarkedBy  string
	Notes     string
}

type AttendancePatch struct {
	Status   *AttendanceStatus
	MarkedBy *string
	Notes    *string
}

func (p AttendancePatch) Apply(dst *AttendanceRecord) {
	setIf(&dst.Status, p.Status)
	setIf(&dst.MarkedBy, p.MarkedBy)
	setIf(&dst.Notes, p.Notes)
}

// AttendanceRate is round((present+late)/total*100), 0 for no records.
func AttendanceRate(records []AttendanceRecord) int {
	if len(records) == 0 {
		return 0
	}
	attended := 0
	for _, r := range records {
		if r.Status.Attended() {
			attended++
		}
	}
	return roundPercent(attended, len(records))
}

func roundPercent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(float64(part)*100/float64(total) + 0.5)
}
