package model

import (
	"strings"
	"time"
)

// Section is a page of study material. It is readable on mobile whenever its
// chapter is.
type Section struct {
	ID        string    `json:"id" db:"id"`
	ChapterID string    `json:"chapter_id" db:"chapter_id"`
	Title     string    `json:"title" db:"title"`
	Body      string    `json:"body" db:"body"`
	Position  int       `json:"position" db:"position"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// SectionSummary is what the mobile chapter view lists.
type SectionSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Position int    `json:"position"`
}

func (s Section) Summary() SectionSummary {
	return SectionSummary{ID: s.ID, Title: s.Title, Position: s.Position}
}

type CreateSectionRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	Body     string `json:"body"`
	Position int    `json:"position" validate:"gte=0"`
}

func (r *CreateSectionRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	return check(r)
}

type UpdateSectionRequest struct {
	Title    *string `json:"title" validate:"omitnil,min=1,max=200"`
	Body     *string `json:"body"`
	Position *int    `json:"position" validate:"omitnil,gte=0"`
}

func (r *UpdateSectionRequest) Apply(s *Section) error {
	trimPtr(r.Title)
	if err := check(r); err != nil {
		return err
	}

	if r.Title != nil {
		s.Title = *r.Title
	}
	if r.Body != nil {
		s.Body = *r.Body
	}
	if r.Position != nil {
		s.Position = *r.Position
	}
	return nil
}
