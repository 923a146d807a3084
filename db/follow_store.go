package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type pgFollowStore struct {
	conn *sqlx.DB
}

// Create adds the follow edge. The unique constraint on
// (follower_id, following_id) makes the existence check and the insert
// atomic with respect to concurrent requests for the same pair.
func (s *pgFollowStore) Create(followerId, followingId string) error {
	return withTx(context.Background(), s.conn, "create follow", func(tx *sqlx.Tx) error {
		res, err := tx.Exec(
			"INSERT INTO follows (follower_id, following_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
			followerId, followingId,
		)

		if err != nil {
			if IsForeignKeyErr(err) {
				return ErrNotFound
			}
			return fmt.Errorf("error creating follow: %v", err)
		}

		rows, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("error creating follow: %v", err)
		}
		if rows == 0 {
			return ErrAlreadyFollowing
		}

		return nil
	})
}

func (s *pgFollowStore) Delete(followerId, followingId string) error {
	return withTx(context.Background(), s.conn, "delete follow", func(tx *sqlx.Tx) error {
		res, err := tx.Exec(
			"DELETE FROM follows WHERE follower_id = $1 AND following_id = $2",
			followerId, followingId,
		)

		if err != nil {
			return fmt.Errorf("error deleting follow: %v", err)
		}

		rows, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("error deleting follow: %v", err)
		}
		if rows == 0 {
			return ErrNotFollowing
		}

		return nil
	})
}

func (s *pgFollowStore) Exists(followerId, followingId string) (bool, error) {
	var count int
	err := s.conn.QueryRow(
		"SELECT COUNT(*) FROM follows WHERE follower_id = $1 AND following_id = $2",
		followerId, followingId,
	).Scan(&count)

	if err != nil {
		return false, fmt.Errorf("error checking follow: %v", err)
	}

	return count > 0, nil
}

func (s *pgFollowStore) ListFollowers(userId string) ([]*User, error) {
	var users []*User
	err := s.conn.Select(&users,
		"SELECT u.* FROM users u JOIN follows f ON f.follower_id = u.id WHERE f.following_id = $1 ORDER BY f.created_at",
		userId,
	)

	if err != nil {
		return nil, fmt.Errorf("error listing followers: %v", err)
	}

	return users, nil
}

func (s *pgFollowStore) ListFollowing(userId string) ([]*User, error) {
	var users []*User
	err := s.conn.Select(&users,
		"SELECT u.* FROM users u JOIN follows f ON f.following_id = u.id WHERE f.follower_id = $1 ORDER BY f.created_at",
		userId,
	)

	if err != nil {
		return nil, fmt.Errorf("error listing following: %v", err)
	}

	return users, nil
}
