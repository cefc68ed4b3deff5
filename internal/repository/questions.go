package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/EATMove/CDT-sub001/internal/model"
)

const questionColumns = `id, chapter_id, prompt, options, answer_index, explanation, image_url, position, created_at, updated_at`

// questionRow carries the options column, stored as a JSON array.
type questionRow struct {
	model.Question
	Options string `db:"options"`
}

func (row *questionRow) decode() (model.Question, error) {
	q := row.Question
	if err := json.Unmarshal([]byte(row.Options), &q.Options); err != nil {
		return q, fmt.Errorf("decode options of question %s: %w", q.ID, err)
	}
	return q, nil
}

func encodeOptions(options []string) (string, error) {
	if options == nil {
		options = []string{}
	}
	b, err := json.Marshal(options)
	return string(b), err
}

func (r *sqlRepo) ListQuestions(ctx context.Context, chapterID string) ([]model.Question, error) {
	var rows []questionRow
	err := selectAll(ctx, r.db, &rows,
		`SELECT `+questionColumns+` FROM questions WHERE chapter_id = ? ORDER BY position, created_at, id`, chapterID)
	if err != nil {
		return nil, mapError("list questions", err)
	}

	questions := make([]model.Question, 0, len(rows))
	for i := range rows {
		q, err := rows[i].decode()
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func (r *sqlRepo) GetQuestion(ctx context.Context, id string) (*model.Question, error) {
	var row questionRow
	if err := get(ctx, r.db, &row, `SELECT `+questionColumns+` FROM questions WHERE id = ?`, id); err != nil {
		return nil, mapError("question", err)
	}
	q, err := row.decode()
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *sqlRepo) CreateQuestion(ctx context.Context, q *model.Question) error {
	options, err := encodeOptions(q.Options)
	if err != nil {
		return err
	}

	q.ID = newID()
	q.CreatedAt = r.now()
	q.UpdatedAt = q.CreatedAt

	_, err = exec(ctx, r.db,
		`INSERT INTO questions (`+questionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		q.ID, q.ChapterID, q.Prompt, options, q.AnswerIndex, q.Explanation, q.ImageURL, q.Position, q.CreatedAt, q.UpdatedAt)
	return mapError("chapter", err)
}

func (r *sqlRepo) UpdateQuestion(ctx context.Context, q *model.Question) error {
	options, err := encodeOptions(q.Options)
	if err != nil {
		return err
	}

	q.UpdatedAt = r.now()
	return execOne(ctx, r.db, "question",
		`UPDATE questions SET prompt = ?, options = ?, answer_index = ?, explanation = ?, image_url = ?, position = ?, updated_at = ? WHERE id = ?`,
		q.Prompt, options, q.AnswerIndex, q.Explanation, q.ImageURL, q.Position, q.UpdatedAt, q.ID)
}

func (r *sqlRepo) DeleteQuestion(ctx context.Context, id string) error {
	return execOne(ctx, r.db, "question", `DELETE FROM questions WHERE id = ?`, id)
}
