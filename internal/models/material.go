package models

import "time"

type MaterialType string

const (
	MaterialPDF      MaterialType = "pdf"
	MaterialVideo    MaterialType = "video"
	MaterialSlides   MaterialType = "slides"
	MaterialDocument MaterialType = "document"
	MaterialLink     MaterialType = "link"
)

func (t MaterialType) Valid() bool {
	switch t {
	case MaterialPDF, MaterialVideo, MaterialSlides, MaterialDocument, MaterialLink:
		return true
	default:
		return false
	}
}

// TrainingMaterial belongs to a programme and optionally to one of its
// sessions.
type TrainingMaterial struct {
	ID          string       `json:"id" yaml:"id"`
	ProgrammeID string       `json:"programmeId" yaml:"programmeId"`
	SessionID   string       `json:"sessionId,omitempty" yaml:"sessionId,omitempty"`
	Title       string       `json:"title" yaml:"title"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Type        MaterialType `json:"type" yaml:"type"`
	URL         string       `json:"url" yaml:"url"`
	UploadedBy  string       `json:"uploadedBy" yaml:"uploadedBy"`
	UploadedAt  time.Time    `json:"uploadedAt" yaml:"uploadedAt"`
}

func (m TrainingMaterial) Identifier() string { return m.ID }

type NewMaterial struct {
	ProgrammeID string
	SessionID   string
	Title       string
	Description string
	Type        MaterialType
	URL         string
	UploadedBy  string
}

type MaterialPatch struct {
	SessionID   *string
	Title       *string
	Description *string
	Type        *MaterialType
	URL         *string
}

func (p MaterialPatch) Apply(dst *TrainingMaterial) {
	setIf(&dst.SessionID, p.SessionID)
	setIf(&dst.Title, p.Title)
	setIf(&dst.Description, p.Description)
	setIf(&dst.Type, p.Type)
	setIf(&dst.URL, p.URL)
}
