package remote

import (
	"fmt"
	"strings"
	"time"

	"github.com/guardianshield/shieldplan/internal/calc"
	"github.com/guardianshield/shieldplan/internal/model"
)

// apiError mirrors the server's error body.
type apiError struct {
	Error    string   `json:"error"`
	Redirect string   `json:"redirect,omitempty"`
	Section  int      `json:"section,omitempty"`
	Fields   []string `json:"fields,omitempty"`
}

// StatusError is any non-2xx answer the client has no sentinel for.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote: unexpected status %d", e.Code)
	}
	return fmt.Sprintf("remote: %d %s", e.Code, e.Message)
}

// SectionError reports the section that rejected a submitted profile.
type SectionError struct {
	Section int
	Fields  []string
}

func (e *SectionError) Error() string {
	return fmt.Sprintf("remote: section %d incomplete: %s", e.Section, strings.Join(e.Fields, ", "))
}

// Status is the session's flag pair.
type Status struct {
	AssessmentCompleted bool `json:"assessment_completed"`
	DerivedFlowEntered  bool `json:"derived_flow_entered"`
}

// ServerStatus is the server's own health summary.
type ServerStatus struct {
	StartedAt       time.Time `json:"started_at"`
	Requests        int64     `json:"requests"`
	Submissions     int64     `json:"submissions"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Event is one entry of the server's activity feed.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Session   string    `json:"session"`
}

// IULBanking is the illustration available after entering the IUL flow.
type IULBanking struct {
	ClientName   string            `json:"client_name"`
	Suitability  model.Suitability `json:"suitability"`
	Illustration calc.IULResult    `json:"illustration"`
}
