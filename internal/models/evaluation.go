package models

import "time"

// Scores are each on a 1-5 scale.
type Scores struct {
	Participation int `json:"participation" yaml:"participation" validate:"min=1,max=5"`
	Understanding int `json:"understanding" yaml:"understanding" validate:"min=1,max=5"`
	Application   int `json:"application" yaml:"application" validate:"min=1,max=5"`
	Teamwork      int `json:"teamwork" yaml:"teamwork" validate:"min=1,max=5"`
	Punctuality   int `json:"punctuality" yaml:"punctuality" validate:"min=1,max=5"`
}

// Mean is the arithmetic mean of the five scores rounded to one decimal.
func (s Scores) Mean() float64 {
	sum := s.Participation + s.Understanding + s.Application + s.Teamwork + s.Punctuality
	return float64(int(float64(sum)*10/5+0.5)) / 10
}

// EvaluatorRole names who wrote an evaluation. Only trainers and mentors
// evaluate.
type EvaluatorRole string

const (
	EvaluatorTrainer EvaluatorRole = "trainer"
	EvaluatorMentor  EvaluatorRole = "mentor"
)

func (r EvaluatorRole) Valid() bool {
	return r == EvaluatorTrainer || r == EvaluatorMentor
}

// PerformanceEvaluation stores the caller supplied OverallScore; it is not
// derived from Scores on read.
type PerformanceEvaluation struct {
	ID            string        `json:"id" yaml:"id"`
	TraineeID     string        `json:"traineeId" yaml:"traineeId"`
	ProgrammeID   string        `json:"programmeId" yaml:"programmeId"`
	EvaluatorID   string        `json:"evaluatorId" yaml:"evaluatorId"`
	EvaluatorRole EvaluatorRole `json:"evaluatorRole" yaml:"evaluatorRole"`
	Scores        Scores        `json:"scores" yaml:"scores"`
	OverallScore  float64       `json:"overallScore" yaml:"overallScore"`
	Comments      string        `json:"comments" yaml:"comments"`
	CreatedAt     time.Time     `json:"createdAt" yaml:"createdAt"`
}

func (e PerformanceEvaluation) Identifier() string { return e.ID }

type NewEvaluation struct {
	TraineeID     string
	ProgrammeID   string
	EvaluatorID   string
	EvaluatorRole EvaluatorRole
	Scores        Scores
	OverallScore  float64
	Comments      string
}

// EvaluationPatch replaces Scores as a whole when set.
type EvaluationPatch struct {
	Scores       *Scores
	OverallScore *float64
	Comments     *string
}

func (p EvaluationPatch) Apply(dst *PerformanceEvaluation) {
	setIf(&dst.Scores, p.Scores)
	setIf(&dst.OverallScore, p.OverallScore)
	setIf(&dst.Comments, p.Comments)
}
