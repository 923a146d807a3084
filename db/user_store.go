package db

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type pgUserStore struct {
	conn *sqlx.DB
}

func (s *pgUserStore) Create(user *User) error {
	err := s.conn.QueryRow(
		"INSERT INTO users (email, password_hash, is_staff) VALUES ($1, $2, $3) RETURNING id, created_at, updated_at",
		user.Email, user.PasswordHash, user.IsStaff,
	).Scan(&user.Id, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if IsNonUniqueErr(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("error creating user: %v", err)
	}

	return nil
}

func (s *pgUserStore) Get(id string) (*User, error) {
	var user User
	err := s.conn.Get(&user, "SELECT * FROM users WHERE id = $1", id)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error getting user: %v", err)
	}

	return &user, nil
}

func (s *pgUserStore) GetByEmail(email string) (*User, error) {
	var user User
	err := s.conn.Get(&user, "SELECT * FROM users WHERE email = $1", email)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting user: %v", err)
	}

	return &user, nil
}

func (s *pgUserStore) GetMany(ids []string) (map[string]*User, error) {
	users := make(map[string]*User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	var rows []*User
	err := s.conn.Select(&rows, "SELECT * FROM users WHERE id = ANY($1)", pq.Array(ids))

	if err != nil {
		return nil, fmt.Errorf("error getting users: %v", err)
	}

	for _, user := range rows {
		users[user.Id] = user
	}

	return users, nil
}
