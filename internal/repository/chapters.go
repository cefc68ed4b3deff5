package repository

import (
	"context"

	"github.com/EATMove/CDT-sub001/internal/database"
	"github.com/EATMove/CDT-sub001/internal/model"
)

const chapterColumns = `id, title, description, position, payment_tier, created_at, updated_at`

func (r *sqlRepo) ListChapters(ctx context.Context) ([]model.Chapter, error) {
	chapters := []model.Chapter{}
	err := selectAll(ctx, r.db, &chapters, `SELECT `+chapterColumns+` FROM chapters ORDER BY position, created_at, id`)
	if err != nil {
		return nil, mapError("list chapters", err)
	}
	return chapters, nil
}

func (r *sqlRepo) GetChapter(ctx context.Context, id string) (*model.Chapter, error) {
	c := &model.Chapter{}
	if err := get(ctx, r.db, c, `SELECT `+chapterColumns+` FROM chapters WHERE id = ?`, id); err != nil {
		return nil, mapError("chapter", err)
	}
	return c, nil
}

func (r *sqlRepo) CreateChapter(ctx context.Context, c *model.Chapter) error {
	c.ID = newID()
	c.CreatedAt = r.now()
	c.UpdatedAt = c.CreatedAt

	_, err := exec(ctx, r.db,
		`INSERT INTO chapters (`+chapterColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Title, c.Description, c.Position, string(c.PaymentTier), c.CreatedAt, c.UpdatedAt)
	return mapError("create chapter", err)
}

func (r *sqlRepo) UpdateChapter(ctx context.Context, c *model.Chapter) error {
	c.UpdatedAt = r.now()
	return execOne(ctx, r.db, "chapter",
		`UPDATE chapters SET title = ?, description = ?, position = ?, payment_tier = ?, updated_at = ? WHERE id = ?`,
		c.Title, c.Description, c.Position, string(c.PaymentTier), c.UpdatedAt, c.ID)
}

// DeleteChapter removes the chapter with its sections and questions in one
// transaction. The children are deleted explicitly so a connection without
// foreign key enforcement does not leave orphans behind.
func (r *sqlRepo) DeleteChapter(ctx context.Context, id string) error {
	return database.WithTx(ctx, r.db.DB, func(q database.Querier) error {
		if _, err := exec(ctx, q, `DELETE FROM questions WHERE chapter_id = ?`, id); err != nil {
			return mapError("delete questions", err)
		}
		if _, err := exec(ctx, q, `DELETE FROM sections WHERE chapter_id = ?`, id); err != nil {
			return mapError("delete sections", err)
		}
		return execOne(ctx, q, "chapter", `DELETE FROM chapters WHERE id = ?`, id)
	})
}
