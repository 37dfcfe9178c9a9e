// Package seed holds the demo dataset written to an empty store.
package seed

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/mindbuilders/dtmms/internal/models"
)

//go:embed seed.yaml
var raw []byte

// Hasher turns a demo password into the stored hash.
type Hasher interface {
	Hash(plain string) (string, error)
}

// Dataset is one slice per stored collection.
type Dataset struct {
	Users           []models.User                  `yaml:"-"`
	Programmes      []models.Programme             `yaml:"programmes"`
	Sessions        []models.Session               `yaml:"sessions"`
	Enrollments     []models.Enrollment            `yaml:"enrollments"`
	Attendance      []models.AttendanceRecord      `yaml:"attendance"`
	Mentorships     []models.MentorshipAssignment  `yaml:"mentorships"`
	MentorshipNotes []models.MentorshipNote        `yaml:"mentorshipNotes"`
	Evaluations     []models.PerformanceEvaluation `yaml:"evaluations"`
	Materials       []models.TrainingMaterial      `yaml:"materials"`
	Messages        []models.Message               `yaml:"messages"`
	Notifications   []models.Notification          `yaml:"notifications"`
}

type demoUser struct {
	models.User `yaml:",inline"`
	Password    string `yaml:"password"`
}

type file struct {
	Dataset `yaml:",inline"`
	Users   []demoUser `yaml:"users"`
}

// Load decodes the embedded dataset, hashing each demo password with h.
func Load(h Hasher) (*Dataset, error) {
	var doc file
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	ds := doc.Dataset
	ds.Users = make([]models.User, 0, len(doc.Users))
	for _, u := range doc.Users {
		hash, err := h.Hash(u.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password of %s: %w", u.ID, err)
		}
		user := u.User
		user.PasswordHash = hash
		ds.Users = append(ds.Users, user)
	}
	return &ds, nil
}

// Counts returns the number of records per collection name.
func (d *Dataset) Counts() map[string]int {
	return map[string]int{
		"users":           len(d.Users),
		"programmes":      len(d.Programmes),
		"sessions":        len(d.Sessions),
		"enrollments":     len(d.Enrollments),
		"attendance":      len(d.Attendance),
		"mentorships":     len(d.Mentorships),
		"mentorshipNotes": len(d.MentorshipNotes),
		"evaluations":     len(d.Evaluations),
		"materials":       len(d.Materials),
		"messages":        len(d.Messages),
		"notifications":   len(d.Notifications),
	}
}
