package services

import (
	"log"
	"sync"

	"github.com/google/uuid"

	"interview-analyzer/internal/models"
)

// AnalysisSession is the single "current analysis" slot. One submission may
// be in flight at a time; completion replaces the whole report, never
// merges. A reset while a submission is in flight does not abort the
// outbound call, it just causes the eventual result to be discarded.
type AnalysisSession struct {
	mu      sync.Mutex
	state   models.AnalysisState
	current uuid.UUID
	report  *models.InterviewAnalysis
	lastErr string
}

// SessionSnapshot is a point-in-time copy of the slot.
type SessionSnapshot struct {
	State  models.AnalysisState
	ID     uuid.UUID
	Report *models.InterviewAnalysis
	Err    string
}

func NewAnalysisSession() *AnalysisSession {
	return &AnalysisSession{
		state: models.StateIdle,
	}
}

// Begin claims the slot for a new submission. It fails with
// ErrAnalysisInFlight while another submission is outstanding; a finished
// or failed analysis is simply replaced.
func (s *AnalysisSession) Begin() (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == models.StateInFlight {
		return uuid.Nil, ErrAnalysisInFlight
	}

	s.state = models.StateInFlight
	s.current = uuid.New()
	s.report = nil
	s.lastErr = ""

	return s.current, nil
}

// Complete stores a finished report. It reports false when the submission
// is no longer current, in which case the result is discarded.
func (s *AnalysisSession) Complete(id uuid.UUID, report *models.InterviewAnalysis) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != models.StateInFlight || s.current != id {
		log.Printf("⚠️  Discarding late analysis result for submission %s\n", id)
		return false
	}

	s.state = models.StateSucceeded
	s.report = report
	s.lastErr = ""

	return true
}

// Fail records a failed submission. Same staleness rule as Complete.
func (s *AnalysisSession) Fail(id uuid.UUID, message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != models.StateInFlight || s.current != id {
		log.Printf("⚠️  Discarding late analysis failure for submission %s\n", id)
		return false
	}

	s.state = models.StateFailed
	s.report = nil
	s.lastErr = message

	return true
}

// Reset clears all transient state and returns the slot to idle.
func (s *AnalysisSession) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = models.StateIdle
	s.current = uuid.Nil
	s.report = nil
	s.lastErr = ""
}

// Snapshot returns a consistent copy of the slot.
func (s *AnalysisSession) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return SessionSnapshot{
		State:  s.state,
		ID:     s.current,
		Report: s.report,
		Err:    s.lastErr,
	}
}
