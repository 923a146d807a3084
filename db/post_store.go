package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type pgPostStore struct {
	conn *sqlx.DB
}

func (s *pgPostStore) Create(post *Post, hashtagIds []string) error {
	return withTx(context.Background(), s.conn, "create post", func(tx *sqlx.Tx) error {
		err := tx.QueryRow(
			"INSERT INTO posts (author_id, title, content, published, schedule_time) VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at, updated_at",
			post.AuthorId, post.Title, post.Content, post.Published, post.ScheduleTime,
		).Scan(&post.Id, &post.CreatedAt, &post.UpdatedAt)

		if err != nil {
			return fmt.Errorf("error creating post: %v", err)
		}

		return setPostHashtags(tx, post.Id, hashtagIds)
	})
}

func setPostHashtags(tx *sqlx.Tx, postId string, hashtagIds []string) error {
	_, err := tx.Exec("DELETE FROM post_hashtags WHERE post_id = $1", postId)
	if err != nil {
		return fmt.Errorf("error clearing post hashtags: %v", err)
	}

	for _, hashtagId := range hashtagIds {
		_, err := tx.Exec(
			"INSERT INTO post_hashtags (post_id, hashtag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
			postId, hashtagId,
		)
		if err != nil {
			if IsForeignKeyErr(err) {
				return ErrNotFound
			}
			return fmt.Errorf("error attaching hashtag: %v", err)
		}
	}

	return nil
}

// ListVisibleTo returns the viewer's own posts plus published posts from
// users the viewer follows, newest first. Unpublished posts are only ever
// visible to their author.
func (s *pgPostStore) ListVisibleTo(viewerId string) ([]*Post, error) {
	qs := `SELECT * FROM posts
		WHERE author_id = $1
		OR (published AND author_id IN (SELECT following_id FROM follows WHERE follower_id = $1))
		ORDER BY created_at DESC`

	var posts []*Post
	err := s.conn.Select(&posts, qs, viewerId)

	if err != nil {
		return nil, fmt.Errorf("error listing posts: %v", err)
	}

	return posts, nil
}

func (s *pgPostStore) Get(id string) (*Post, error) {
	var post Post
	err := s.conn.Get(&post, "SELECT * FROM posts WHERE id = $1", id)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error getting post: %v", err)
	}

	return &post, nil
}

func (s *pgPostStore) Update(post *Post, hashtagIds []string) error {
	return withTx(context.Background(), s.conn, "update post", func(tx *sqlx.Tx) error {
		res, err := tx.Exec(
			"UPDATE posts SET title = $1, content = $2, updated_at = NOW() WHERE id = $3",
			post.Title, post.Content, post.Id,
		)

		if err != nil {
			return fmt.Errorf("error updating post: %v", err)
		}

		rows, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("error updating post: %v", err)
		}
		if rows == 0 {
			return ErrNotFound
		}

		return setPostHashtags(tx, post.Id, hashtagIds)
	})
}

func (s *pgPostStore) Delete(id string) error {
	res, err := s.conn.Exec("DELETE FROM posts WHERE id = $1", id)

	if err != nil {
		return fmt.Errorf("error deleting post: %v", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error deleting post: %v", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *pgPostStore) SetImage(id, path string) error {
	res, err := s.conn.Exec("UPDATE posts SET image = $1, updated_at = NOW() WHERE id = $2", path, id)

	if err != nil {
		return fmt.Errorf("error setting post image: %v", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error setting post image: %v", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *pgPostStore) HashtagNames(postIds []string) (map[string][]string, error) {
	names := make(map[string][]string, len(postIds))
	if len(postIds) == 0 {
		return names, nil
	}

	rows, err := s.conn.Query(
		"SELECT ph.post_id, h.name FROM post_hashtags ph JOIN hashtags h ON h.id = ph.hashtag_id WHERE ph.post_id = ANY($1) ORDER BY h.name",
		pq.Array(postIds),
	)

	if err != nil {
		return nil, fmt.Errorf("error listing post hashtags: %v", err)
	}

	defer rows.Close()

	for rows.Next() {
		var postId, name string
		if err := rows.Scan(&postId, &name); err != nil {
			return nil, fmt.Errorf("error scanning post hashtag: %v", err)
		}
		names[postId] = append(names[postId], name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error listing post hashtags: %v", err)
	}

	return names, nil
}

// SetPublished flips the published flag on. Publishing an already-published
// post is a no-op, so the scheduled task can safely run more than once.
func (s *pgPostStore) SetPublished(id string) error {
	res, err := s.conn.Exec("UPDATE posts SET published = TRUE WHERE id = $1", id)

	if err != nil {
		return fmt.Errorf("error publishing post: %v", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error publishing post: %v", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *pgPostStore) ListPendingScheduled() ([]*Post, error) {
	var posts []*Post
	err := s.conn.Select(&posts, "SELECT * FROM posts WHERE published = FALSE AND schedule_time IS NOT NULL")

	if err != nil {
		return nil, fmt.Errorf("error listing scheduled posts: %v", err)
	}

	return posts, nil
}
