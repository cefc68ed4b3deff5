package model

import (
	"strings"
	"testing"

	"github.com/EATMove/CDT-sub001/internal/access"
	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestCreateChapterRequest_Validate(t *testing.T) {
	assert := assert.New(t)

	r := &CreateChapterRequest{Title: "  Road signs  "}
	assert.NoError(r.Validate())
	assert.Equal("Road signs", r.Title)
	assert.Equal(access.PaymentFree, r.PaymentTier)

	assert.ErrorIs((&CreateChapterRequest{Title: " "}).Validate(), ErrInvalid)
	assert.ErrorIs((&CreateChapterRequest{Title: strings.Repeat("x", 201)}).Validate(), ErrInvalid)
	assert.ErrorIs((&CreateChapterRequest{Title: "a", Position: -1}).Validate(), ErrInvalid)
	assert.ErrorIs((&CreateChapterRequest{Title: "a", PaymentTier: "GOLD"}).Validate(), ErrInvalid)
}

func TestUpdateChapterRequest_Apply(t *testing.T) {
	assert := assert.New(t)

	c := &Chapter{Title: "old", PaymentTier: access.PaymentFree}
	err := (&UpdateChapterRequest{
		Title:       ptr(" new "),
		PaymentTier: ptr(access.PaymentMemberOnly),
	}).Apply(c)
	assert.NoError(err)
	assert.Equal("new", c.Title)
	assert.Equal(access.PaymentMemberOnly, c.PaymentTier)

	err = (&UpdateChapterRequest{PaymentTier: ptr(access.PaymentTier("x"))}).Apply(c)
	assert.ErrorIs(err, ErrInvalid)
	assert.Equal(access.PaymentMemberOnly, c.PaymentTier)
}

func TestCreateQuestionRequest_Validate(t *testing.T) {
	assert := assert.New(t)

	ok := &CreateQuestionRequest{Prompt: " What does a red octagon mean? ", Options: []string{"Stop", "Yield"}, AnswerIndex: 0}
	assert.NoError(ok.Validate())
	assert.Equal("What does a red octagon mean?", ok.Prompt)

	padded := &CreateQuestionRequest{Prompt: "p", Options: []string{" Stop ", "Yield"}}
	assert.NoError(padded.Validate())
	assert.Equal([]string{"Stop", "Yield"}, padded.Options)

	assert.ErrorIs((&CreateQuestionRequest{Options: []string{"a", "b"}}).Validate(), ErrInvalid)
	assert.ErrorIs((&CreateQuestionRequest{Prompt: "p", Options: []string{"a"}}).Validate(), ErrInvalid)
	assert.ErrorIs((&CreateQuestionRequest{Prompt: "p", Options: []string{"a", " "}}).Validate(), ErrInvalid)
	assert.ErrorIs((&CreateQuestionRequest{Prompt: "p", Options: []string{"a", "b"}, AnswerIndex: 2}).Validate(), ErrInvalid)
}

func TestUpdateQuestionRequest_Apply_keepsConsistency(t *testing.T) {
	assert := assert.New(t)

	q := &Question{Prompt: "p", Options: []string{"a", "b", "c"}, AnswerIndex: 2}
	err := (&UpdateQuestionRequest{Options: ptr([]string{"a", "b"})}).Apply(q)
	assert.ErrorIs(err, ErrInvalid)
	assert.Len(q.Options, 3)

	err = (&UpdateQuestionRequest{Options: ptr([]string{"a", "b"}), AnswerIndex: ptr(1)}).Apply(q)
	assert.NoError(err)
	assert.Equal(1, q.AnswerIndex)
	assert.Len(q.Options, 2)
}

func TestCreateUserRequest_Validate(t *testing.T) {
	assert := assert.New(t)

	r := &CreateUserRequest{Email: " Learner@Example.COM ", Password: "longenough"}
	assert.NoError(r.Validate())
	assert.Equal("learner@example.com", r.Email)
	assert.Equal(access.UserFree, r.Tier)

	assert.ErrorIs((&CreateUserRequest{Email: "nope", Password: "longenough"}).Validate(), ErrInvalid)
	assert.ErrorIs((&CreateUserRequest{Email: "a@b.co", Password: "short"}).Validate(), ErrInvalid)
	assert.ErrorIs((&CreateUserRequest{Email: "a@b.co", Password: "longenough", Tier: "VIP"}).Validate(), ErrInvalid)
	assert.ErrorIs((&CreateUserRequest{Email: "a@b.co", Password: strings.Repeat("ü", 40)}).Validate(), ErrInvalid)
	assert.ErrorIs((&CreateUserRequest{Email: "a@b.co", Password: "longenough", DisplayName: strings.Repeat("x", 201)}).Validate(), ErrInvalid)
}

func TestUpdateUserRequest_Apply(t *testing.T) {
	assert := assert.New(t)

	u := &User{Tier: access.UserFree}
	assert.NoError((&UpdateUserRequest{Tier: ptr(access.UserMember)}).Apply(u))
	assert.Equal(access.UserMember, u.Tier)

	assert.ErrorIs((&UpdateUserRequest{Password: ptr("short")}).Apply(u), ErrInvalid)

	err := (&UpdateUserRequest{DisplayName: ptr("Sam"), Tier: ptr(access.UserTier("VIP"))}).Apply(u)
	assert.ErrorIs(err, ErrInvalid)
	assert.Equal(access.UserMember, u.Tier)
	assert.Empty(u.DisplayName)
}

func TestCheck_reportsJSONFieldNames(t *testing.T) {
	assert := assert.New(t)

	err := (&CreateChapterRequest{Title: "a", PaymentTier: "GOLD"}).Validate()
	assert.ErrorIs(err, ErrInvalid)
	assert.EqualError(err, "invalid request: payment_tier must be one of FREE TRIAL_INCLUDED MEMBER_ONLY PREMIUM")

	err = (&CreateChapterRequest{Title: "a", Position: -1}).Validate()
	assert.EqualError(err, "invalid request: position must not be less than 0")

	err = (&CreateUserRequest{Email: "nope", Password: "longenough"}).Validate()
	assert.EqualError(err, "invalid request: email must be a valid email")

	err = (&CreateQuestionRequest{Prompt: "p", Options: []string{"a"}}).Validate()
	assert.EqualError(err, "invalid request: options needs at least 2 entries")

	err = (&CreateQuestionRequest{Prompt: "p", Options: []string{"a", "b", "c", "d", "e", "f", "g"}}).Validate()
	assert.EqualError(err, "invalid request: options allows at most 6 entries")
}

func TestUpdateSectionRequest_Apply(t *testing.T) {
	assert := assert.New(t)

	s := &Section{Title: "old", Position: 1}
	assert.ErrorIs((&UpdateSectionRequest{Title: ptr("  ")}).Apply(s), ErrInvalid)
	assert.ErrorIs((&UpdateSectionRequest{Position: ptr(-2)}).Apply(s), ErrInvalid)
	assert.Equal("old", s.Title)

	assert.NoError((&UpdateSectionRequest{Title: ptr(" Merging "), Body: ptr("Signal first.")}).Apply(s))
	assert.Equal("Merging", s.Title)
	assert.Equal("Signal first.", s.Body)
	assert.Equal(1, s.Position)
}
