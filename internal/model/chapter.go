package model

import (
	"strings"
	"time"

	"github.com/EATMove/CDT-sub001/internal/access"
)

type Chapter struct {
	ID          string             `json:"id" db:"id"`
	Title       string             `json:"title" db:"title"`
	Description string             `json:"description" db:"description"`
	Position    int                `json:"position" db:"position"`
	PaymentTier access.PaymentTier `json:"payment_tier" db:"payment_tier"`
	CreatedAt   time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" db:"updated_at"`
}

type CreateChapterRequest struct {
	Title       string             `json:"title" validate:"required,max=200"`
	Description string             `json:"description"`
	Position    int                `json:"position" validate:"gte=0"`
	PaymentTier access.PaymentTier `json:"payment_tier" validate:"required,oneof=FREE TRIAL_INCLUDED MEMBER_ONLY PREMIUM"`
}

func (r *CreateChapterRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	if r.PaymentTier == "" {
		r.PaymentTier = access.PaymentFree
	}
	return check(r)
}

type UpdateChapterRequest struct {
	Title       *string             `json:"title" validate:"omitnil,min=1,max=200"`
	Description *string             `json:"description"`
	Position    *int                `json:"position" validate:"omitnil,gte=0"`
	PaymentTier *access.PaymentTier `json:"payment_tier" validate:"omitnil,oneof=FREE TRIAL_INCLUDED MEMBER_ONLY PREMIUM"`
}

// Apply validates the request and copies the set fields onto c. Nothing is
// copied when validation fails.
func (r *UpdateChapterRequest) Apply(c *Chapter) error {
	trimPtr(r.Title)
	if err := check(r); err != nil {
		return err
	}

	if r.Title != nil {
		c.Title = *r.Title
	}
	if r.Description != nil {
		c.Description = *r.Description
	}
	if r.Position != nil {
		c.Position = *r.Position
	}
	if r.PaymentTier != nil {
		c.PaymentTier = *r.PaymentTier
	}
	return nil
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
