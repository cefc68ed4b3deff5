package model

import (
	"fmt"
	"strings"
	"time"
)

// Question is a multiple-choice practice question attached to a chapter.
type Question struct {
	ID          string    `json:"id" db:"id"`
	ChapterID   string    `json:"chapter_id" db:"chapter_id"`
	Prompt      string    `json:"prompt" db:"prompt" validate:"required"`
	Options     []string  `json:"options" db:"-" validate:"min=2,max=6,dive,required"`
	AnswerIndex int       `json:"answer_index" db:"answer_index" validate:"gte=0"`
	Explanation string    `json:"explanation" db:"explanation"`
	ImageURL    string    `json:"image_url,omitempty" db:"image_url"`
	Position    int       `json:"position" db:"position" validate:"gte=0"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

type CreateQuestionRequest struct {
	Prompt      string   `json:"prompt"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answer_index"`
	Explanation string   `json:"explanation"`
	ImageURL    string   `json:"image_url"`
	Position    int      `json:"position"`
}

func (r *CreateQuestionRequest) Validate() error {
	q := Question{
		Prompt:      r.Prompt,
		Options:     r.Options,
		AnswerIndex: r.AnswerIndex,
		Position:    r.Position,
	}
	if err := q.validate(); err != nil {
		return err
	}
	r.Prompt = q.Prompt
	r.Options = q.Options
	return nil
}

type UpdateQuestionRequest struct {
	Prompt      *string   `json:"prompt"`
	Options     *[]string `json:"options"`
	AnswerIndex *int      `json:"answer_index"`
	Explanation *string   `json:"explanation"`
	ImageURL    *string   `json:"image_url"`
	Position    *int      `json:"position"`
}

// Apply copies the set fields onto q and validates the result as a whole, so
// shrinking the options below the current answer index is rejected.
func (r *UpdateQuestionRequest) Apply(q *Question) error {
	next := *q
	if r.Prompt != nil {
		next.Prompt = *r.Prompt
	}
	if r.Options != nil {
		next.Options = *r.Options
	}
	if r.AnswerIndex != nil {
		next.AnswerIndex = *r.AnswerIndex
	}
	if r.Explanation != nil {
		next.Explanation = *r.Explanation
	}
	if r.ImageURL != nil {
		next.ImageURL = *r.ImageURL
	}
	if r.Position != nil {
		next.Position = *r.Position
	}

	if err := next.validate(); err != nil {
		return err
	}
	*q = next
	return nil
}

func (q *Question) validate() error {
	q.Prompt = strings.TrimSpace(q.Prompt)
	if q.Options != nil {
		opts := make([]string, len(q.Options))
		for i, o := range q.Options {
			opts[i] = strings.TrimSpace(o)
		}
		q.Options = opts
	}

	if err := check(q); err != nil {
		return err
	}
	if q.AnswerIndex >= len(q.Options) {
		return fmt.Errorf("%w: answer_index out of range", ErrInvalid)
	}
	return nil
}
