package models

// AttendanceReport aggregates the attendance of a programme's sessions.
type AttendanceReport struct {
	ProgrammeID       string                   `json:"programmeId"`
	ProgrammeName     string                   `json:"programmeName"`
	TotalSessions     int                      `json:"totalSessions"`
	AverageAttendance int                      `json:"averageAttendance"`
	TraineeStats      []TraineeAttendanceStats `json:"traineeStats"`
}

type TraineeAttendanceStats struct {
	TraineeID      string `json:"traineeId"`
	TraineeName    string `json:"traineeName"`
	Present        int    `json:"present"`
	Absent         int    `json:"absent"`
	Late           int    `json:"late"`
	Excused        int    `json:"excused"`
	AttendanceRate int    `json:"attendanceRate"`
}

// PerformanceReport groups a trainee's evaluations by programme.
type PerformanceReport struct {
	TraineeID      string                 `json:"traineeId"`
	TraineeName    string                 `json:"traineeName"`
	Programmes     []ProgrammePerformance `json:"programmes"`
	OverallAverage float64                `json:"overallAverage"`
}

type ProgrammePerformance struct {
	ProgrammeID   string                  `json:"programmeId"`
	ProgrammeName string                  `json:"programmeName"`
	AverageScore  float64                 `json:"averageScore"`
	Evaluations   []PerformanceEvaluation `json:"evaluations"`
}
