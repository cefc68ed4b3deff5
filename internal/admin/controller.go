package admin

import (
	"context"
	"fmt"

	"github.com/EATMove/CDT-sub001/internal/model"
	"github.com/EATMove/CDT-sub001/internal/repository"
	"github.com/EATMove/CDT-sub001/internal/session"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type Controller struct {
	repo   repository.Repository
	creds  session.Credentials
	issuer *session.Issuer
	log    *zap.Logger
}

type ControllerParams struct {
	fx.In

	Logger      *zap.Logger
	Repo        repository.Repository
	Credentials session.Credentials
	Issuer      *session.Issuer
}

func NewController(p ControllerParams) (*Controller, error) {
	return &Controller{
		log:    p.Logger,
		repo:   p.Repo,
		creds:  p.Credentials,
		issuer: p.Issuer,
	}, nil
}

// Login checks the configured admin pair and mints a session token for it.
func (c *Controller) Login(username, password string) (string, error) {
	if !c.creds.Check(username, password) {
		return "", fmt.Errorf("%w: invalid credentials", model.ErrUnauthorized)
	}

	return c.issuer.Issue(username), nil
}

func (c *Controller) ListChapters(ctx context.Context) ([]model.Chapter, error) {
	return c.repo.ListChapters(ctx)
}

func (c *Controller) GetChapter(ctx context.Context, id string) (*model.Chapter, error) {
	return c.repo.GetChapter(ctx, id)
}

func (c *Controller) CreateChapter(ctx context.Context, req *model.CreateChapterRequest) (*model.Chapter, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ch := &model.Chapter{
		Title:       req.Title,
		Description: req.Description,
		Position:    req.Position,
		PaymentTier: req.PaymentTier,
	}
	if err := c.repo.CreateChapter(ctx, ch); err != nil {
		return nil, err
	}
	return ch, nil
}

func (c *Controller) UpdateChapter(ctx context.Context, id string, req *model.UpdateChapterRequest) (*model.Chapter, error) {
	ch, err := c.repo.GetChapter(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := req.Apply(ch); err != nil {
		return nil, err
	}
	if err := c.repo.UpdateChapter(ctx, ch); err != nil {
		return nil, err
	}
	return ch, nil
}

func (c *Controller) DeleteChapter(ctx context.Context, id string) error {
	return c.repo.DeleteChapter(ctx, id)
}

// ListSections returns ErrNotFound for an unknown chapter rather than an
// empty list.
func (c *Controller) ListSections(ctx context.Context, chapterID string) ([]model.Section, error) {
	if _, err := c.repo.GetChapter(ctx, chapterID); err != nil {
		return nil, err
	}
	return c.repo.ListSections(ctx, chapterID)
}

func (c *Controller) GetSection(ctx context.Context, id string) (*model.Section, error) {
	return c.repo.GetSection(ctx, id)
}

func (c *Controller) CreateSection(ctx context.Context, chapterID string, req *model.CreateSectionRequest) (*model.Section, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s := &model.Section{
		ChapterID: chapterID,
		Title:     req.Title,
		Body:      req.Body,
		Position:  req.Position,
	}
	if err := c.repo.CreateSection(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (c *Controller) UpdateSection(ctx context.Context, id string, req *model.UpdateSectionRequest) (*model.Section, error) {
	s, err := c.repo.GetSection(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := req.Apply(s); err != nil {
		return nil, err
	}
	if err := c.repo.UpdateSection(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (c *Controller) DeleteSection(ctx context.Context, id string) error {
	return c.repo.DeleteSection(ctx, id)
}

func (c *Controller) ListQuestions(ctx context.Context, chapterID string) ([]model.Question, error) {
	if _, err := c.repo.GetChapter(ctx, chapterID); err != nil {
		return nil, err
	}
	return c.repo.ListQuestions(ctx, chapterID)
}

func (c *Controller) GetQuestion(ctx context.Context, id string) (*model.Question, error) {
	return c.repo.GetQuestion(ctx, id)
}

func (c *Controller) CreateQuestion(ctx context.Context, chapterID string, req *model.CreateQuestionRequest) (*model.Question, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	q := &model.Question{
		ChapterID:   chapterID,
		Prompt:      req.Prompt,
		Options:     req.Options,
		AnswerIndex: req.AnswerIndex,
		Explanation: req.Explanation,
		ImageURL:    req.ImageURL,
		Position:    req.Position,
	}
	if err := c.repo.CreateQuestion(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (c *Controller) UpdateQuestion(ctx context.Context, id string, req *model.UpdateQuestionRequest) (*model.Question, error) {
	q, err := c.repo.GetQuestion(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := req.Apply(q); err != nil {
		return nil, err
	}
	if err := c.repo.UpdateQuestion(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (c *Controller) DeleteQuestion(ctx context.Context, id string) error {
	return c.repo.DeleteQuestion(ctx, id)
}

func (c *Controller) GetUsers(ctx context.Context) ([]model.User, error) {
	return c.repo.ListUsers(ctx)
}

func (c *Controller) GetUser(ctx context.Context, id string) (*model.User, error) {
	return c.repo.GetUser(ctx, id)
}

func (c *Controller) CreateUser(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		Email:        req.Email,
		DisplayName:  req.DisplayName,
		PasswordHash: hash,
		Tier:         req.Tier,
	}
	if err := c.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	c.log.Info("app user created", zap.String("user_id", u.ID), zap.String("tier", string(u.Tier)))
	return u, nil
}

func (c *Controller) UpdateUser(ctx context.Context, id string, req *model.UpdateUserRequest) (*model.User, error) {
	u, err := c.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := req.Apply(u); err != nil {
		return nil, err
	}
	if req.Password != nil {
		if u.PasswordHash, err = hashPassword(*req.Password); err != nil {
			return nil, err
		}
	}
	if err := c.repo.UpdateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (c *Controller) DeleteUser(ctx context.Context, id string) error {
	return c.repo.DeleteUser(ctx, id)
}

func hashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
