package models

// AdminStats summarises the whole organisation.
type AdminStats struct {
	TotalUsers          int `json:"totalUsers"`
	TotalTrainees       int `json:"totalTrainees"`
	TotalTrainers       int `json:"totalTrainers"`
	TotalMentors        int `json:"totalMentors"`
	ActiveProgrammes    int `json:"activeProgrammes"`
	CompletedProgrammes int `json:"completedProgrammes"`
	UpcomingProgrammes  int `json:"upcomingProgrammes"`
	AverageAttendance   int `json:"averageAttendance"`
}

type TrainerStats struct {
	AssignedProgrammes int `json:"assignedProgrammes"`
	TotalTrainees      int `json:"totalTrainees"`
	UpcomingSessions   int `json:"upcomingSessions"`
	MaterialsUploaded  int `json:"materialsUploaded"`
}

type MentorStats struct {
	AssignedMentees       int `json:"assignedMentees"`
	ActiveMentorships     int `json:"activeMentorships"`
	NotesSubmitted        int `json:"notesSubmitted"`
	AverageMenteeProgress int `json:"averageMenteeProgress"`
}

// TraineeStats leaves AssignedMentor empty when the trainee has no active
// mentor.
type TraineeStats struct {
	EnrolledProgrammes  int    `json:"enrolledProgrammes"`
	CompletedProgrammes int    `json:"completedProgrammes"`
	AttendanceRate      int    `json:"attendanceRate"`
	AveragePerformance  int    `json:"averagePerformance"`
	AssignedMentor      string `json:"assignedMentor,omitempty"`
}

// Dashboard is the role specific summary for one user. Exactly one of the
// stats pointers is set, matching Role.
type Dashboard struct {
	Role    Role          `json:"role"`
	Admin   *AdminStats   `json:"admin,omitempty"`
	Trainer *TrainerStats `json:"trainer,omitempty"`
	Mentor  *MentorStats  `json:"mentor,omitempty"`
	Trainee *TraineeStats `json:"trainee,omitempty"`
}
