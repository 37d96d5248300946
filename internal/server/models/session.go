package models

import "time"

// Session is a work session managed by the frontend. Its ID is chosen by
// the client.
type Session struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Request     string    `json:"request"`
	Repo        string    `json:"repo"`
	Environment string    `json:"environment"`
	Output      string    `json:"output"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SessionPatch lists the mutable fields of a Session; nil means "leave as is".
type SessionPatch struct {
	Name        *string
	Request     *string
	Repo        *string
	Environment *string
	Output      *string
}

func (p SessionPatch) Empty() bool {
	return p.Name == nil && p.Request == nil && p.Repo == nil && p.Environment == nil && p.Output == nil
}

func (p SessionPatch) Apply(s *Session, now time.Time) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Request != nil {
		s.Request = *p.Request
	}
	if p.Repo != nil {
		s.Repo = *p.Repo
	}
	if p.Environment != nil {
		s.Environment = *p.Environment
	}
	if p.Output != nil {
		s.Output = *p.Output
	}
	s.UpdatedAt = now
}
