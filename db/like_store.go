package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type pgLikeStore struct {
	conn *sqlx.DB
}

// TogglePostLike creates the like if it doesn't exist and deletes it if it
// does. The insert races through the partial unique index on
// (author_id, post_id): of two concurrent toggles, exactly one insert wins
// and the other observes the conflict and falls through to the delete.
func (s *pgLikeStore) TogglePostLike(authorId, postId string) (liked bool, err error) {
	err = withTx(context.Background(), s.conn, "toggle post like", func(tx *sqlx.Tx) error {
		var id string
		err := tx.QueryRow(
			`INSERT INTO likes (author_id, post_id) VALUES ($1, $2)
			ON CONFLICT (author_id, post_id) WHERE post_id IS NOT NULL DO NOTHING
			RETURNING id`,
			authorId, postId,
		).Scan(&id)

		if err == nil {
			liked = true
			return nil
		}

		if err != sql.ErrNoRows {
			if IsForeignKeyErr(err) {
				return ErrNotFound
			}
			return fmt.Errorf("error creating like: %v", err)
		}

		// already liked: remove the existing row
		_, err = tx.Exec("DELETE FROM likes WHERE author_id = $1 AND post_id = $2", authorId, postId)
		if err != nil {
			return fmt.Errorf("error deleting like: %v", err)
		}

		liked = false
		return nil
	})

	return liked, err
}

func (s *pgLikeStore) ToggleCommentLike(authorId, commentId string) (liked bool, err error) {
	err = withTx(context.Background(), s.conn, "toggle comment like", func(tx *sqlx.Tx) error {
		var id string
		err := tx.QueryRow(
			`INSERT INTO likes (author_id, comment_id) VALUES ($1, $2)
			ON CONFLICT (author_id, comment_id) WHERE comment_id IS NOT NULL DO NOTHING
			RETURNING id`,
			authorId, commentId,
		).Scan(&id)

		if err == nil {
			liked = true
			return nil
		}

		if err != sql.ErrNoRows {
			if IsForeignKeyErr(err) {
				return ErrNotFound
			}
			return fmt.Errorf("error creating like: %v", err)
		}

		_, err = tx.Exec("DELETE FROM likes WHERE author_id = $1 AND comment_id = $2", authorId, commentId)
		if err != nil {
			return fmt.Errorf("error deleting like: %v", err)
		}

		liked = false
		return nil
	})

	return liked, err
}

func (s *pgLikeStore) ListForPost(postId string) ([]*Like, error) {
	var likes []*Like
	err := s.conn.Select(&likes, "SELECT * FROM likes WHERE post_id = $1 ORDER BY created_at", postId)

	if err != nil {
		return nil, fmt.Errorf("error listing likes: %v", err)
	}

	return likes, nil
}
