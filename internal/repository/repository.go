package repository

import (
	"context"

	"github.com/EATMove/CDT-sub001/internal/model"
)

// Repository is the content store behind both the admin and mobile APIs.
// Missing rows are reported as model.ErrNotFound and unique violations as
// model.ErrConflict.
type Repository interface {
	ListChapters(ctx context.Context) ([]model.Chapter, error)
	GetChapter(ctx context.Context, id string) (*model.Chapter, error)
	CreateChapter(ctx context.Context, c *model.Chapter) error
	UpdateChapter(ctx context.Context, c *model.Chapter) error
	DeleteChapter(ctx context.Context, id string) error

	ListSections(ctx context.Context, chapterID string) ([]model.Section, error)
	GetSection(ctx context.Context, id string) (*model.Section, error)
	CreateSection(ctx context.Context, s *model.Section) error
	UpdateSection(ctx context.Context, s *model.Section) error
	DeleteSection(ctx context.Context, id string) error

	ListQuestions(ctx context.Context, chapterID string) ([]model.Question, error)
	GetQuestion(ctx context.Context, id string) (*model.Question, error)
	CreateQuestion(ctx context.Context, q *model.Question) error
	UpdateQuestion(ctx context.Context, q *model.Question) error
	DeleteQuestion(ctx context.Context, id string) error

	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	CreateUser(ctx context.Context, u *model.User) error
	UpdateUser(ctx context.Context, u *model.User) error
	DeleteUser(ctx context.Context, id string) error
}
