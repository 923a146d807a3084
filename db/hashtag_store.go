package db

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type pgHashtagStore struct {
	conn *sqlx.DB
}

func (s *pgHashtagStore) Create(hashtag *Hashtag) error {
	err := s.conn.QueryRow(
		"INSERT INTO hashtags (name) VALUES ($1) RETURNING id",
		hashtag.Name,
	).Scan(&hashtag.Id)

	if err != nil {
		if IsNonUniqueErr(err) {
			return ErrHashtagExists
		}
		return fmt.Errorf("error creating hashtag: %v", err)
	}

	return nil
}

func (s *pgHashtagStore) List() ([]*Hashtag, error) {
	var hashtags []*Hashtag
	err := s.conn.Select(&hashtags, "SELECT * FROM hashtags ORDER BY name")

	if err != nil {
		return nil, fmt.Errorf("error listing hashtags: %v", err)
	}

	return hashtags, nil
}

func (s *pgHashtagStore) Get(id string) (*Hashtag, error) {
	var hashtag Hashtag
	err := s.conn.Get(&hashtag, "SELECT * FROM hashtags WHERE id = $1", id)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error getting hashtag: %v", err)
	}

	return &hashtag, nil
}

func (s *pgHashtagStore) Update(hashtag *Hashtag) error {
	res, err := s.conn.Exec("UPDATE hashtags SET name = $1 WHERE id = $2", hashtag.Name, hashtag.Id)

	if err != nil {
		if IsNonUniqueErr(err) {
			return ErrHashtagExists
		}
		return fmt.Errorf("error updating hashtag: %v", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error updating hashtag: %v", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *pgHashtagStore) Delete(id string) error {
	res, err := s.conn.Exec("DELETE FROM hashtags WHERE id = $1", id)

	if err != nil {
		return fmt.Errorf("error deleting hashtag: %v", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error deleting hashtag: %v", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}
