package db

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type pgCommentStore struct {
	conn *sqlx.DB
}

func (s *pgCommentStore) Create(comment *Comment) error {
	err := s.conn.QueryRow(
		"INSERT INTO comments (post_id, author_id, content) VALUES ($1, $2, $3) RETURNING id, created_at, updated_at",
		comment.PostId, comment.AuthorId, comment.Content,
	).Scan(&comment.Id, &comment.CreatedAt, &comment.UpdatedAt)

	if err != nil {
		if IsForeignKeyErr(err) {
			return ErrNotFound
		}
		return fmt.Errorf("error creating comment: %v", err)
	}

	return nil
}

func (s *pgCommentStore) Get(id string) (*Comment, error) {
	var comment Comment
	err := s.conn.Get(&comment, "SELECT * FROM comments WHERE id = $1", id)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error getting comment: %v", err)
	}

	return &comment, nil
}

func (s *pgCommentStore) ListForPost(postId string) ([]*Comment, error) {
	var comments []*Comment
	err := s.conn.Select(&comments,
		"SELECT * FROM comments WHERE post_id = $1 ORDER BY created_at DESC, updated_at DESC",
		postId,
	)

	if err != nil {
		return nil, fmt.Errorf("error listing comments: %v", err)
	}

	return comments, nil
}
