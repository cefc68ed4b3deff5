package repository

import (
	"context"

	"github.com/EATMove/CDT-sub001/internal/model"
)

const sectionColumns = `id, chapter_id, title, body, position, created_at, updated_at`

func (r *sqlRepo) ListSections(ctx context.Context, chapterID string) ([]model.Section, error) {
	sections := []model.Section{}
	err := selectAll(ctx, r.db, &sections,
		`SELECT `+sectionColumns+` FROM sections WHERE chapter_id = ? ORDER BY position, created_at, id`, chapterID)
	if err != nil {
		return nil, mapError("list sections", err)
	}
	return sections, nil
}

func (r *sqlRepo) GetSection(ctx context.Context, id string) (*model.Section, error) {
	s := &model.Section{}
	if err := get(ctx, r.db, s, `SELECT `+sectionColumns+` FROM sections WHERE id = ?`, id); err != nil {
		return nil, mapError("section", err)
	}
	return s, nil
}

func (r *sqlRepo) CreateSection(ctx context.Context, s *model.Section) error {
	s.ID = newID()
	s.CreatedAt = r.now()
	s.UpdatedAt = s.CreatedAt

	_, err := exec(ctx, r.db,
		`INSERT INTO sections (`+sectionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.ChapterID, s.Title, s.Body, s.Position, s.CreatedAt, s.UpdatedAt)
	return mapError("chapter", err)
}

func (r *sqlRepo) UpdateSection(ctx context.Context, s *model.Section) error {
	s.UpdatedAt = r.now()
	return execOne(ctx, r.db, "section",
		`UPDATE sections SET title = ?, body = ?, position = ?, updated_at = ? WHERE id = ?`,
		s.Title, s.Body, s.Position, s.UpdatedAt, s.ID)
}

func (r *sqlRepo) DeleteSection(ctx context.Context, id string) error {
	return execOne(ctx, r.db, "section", `DELETE FROM sections WHERE id = ?`, id)
}
