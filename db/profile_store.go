package db

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type pgProfileStore struct {
	conn *sqlx.DB
}

func (s *pgProfileStore) Create(profile *Profile) error {
	err := s.conn.QueryRow(
		"INSERT INTO profiles (user_id, username, bio) VALUES ($1, $2, $3) RETURNING id, created_at, updated_at",
		profile.UserId, profile.Username, profile.Bio,
	).Scan(&profile.Id, &profile.CreatedAt, &profile.UpdatedAt)

	if err != nil {
		switch UniqueConstraint(err) {
		case "profiles_user_id_key":
			return ErrProfileExists
		case "profiles_username_key":
			return ErrUsernameTaken
		}
		return fmt.Errorf("error creating profile: %v", err)
	}

	return nil
}

func (s *pgProfileStore) List(search string) ([]*Profile, error) {
	qs := "SELECT p.* FROM profiles p JOIN users u ON u.id = p.user_id"
	var qargs []interface{}

	if search != "" {
		qs += " WHERE u.email ILIKE $1 OR p.username ILIKE $1"
		qargs = append(qargs, "%"+search+"%")
	}

	qs += " ORDER BY p.created_at"

	var profiles []*Profile
	err := s.conn.Select(&profiles, qs, qargs...)

	if err != nil {
		return nil, fmt.Errorf("error listing profiles: %v", err)
	}

	return profiles, nil
}

func (s *pgProfileStore) Get(id string) (*Profile, error) {
	var profile Profile
	err := s.conn.Get(&profile, "SELECT * FROM profiles WHERE id = $1", id)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error getting profile: %v", err)
	}

	return &profile, nil
}

func (s *pgProfileStore) GetByUserId(userId string) (*Profile, error) {
	var profile Profile
	err := s.conn.Get(&profile, "SELECT * FROM profiles WHERE user_id = $1", userId)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting profile: %v", err)
	}

	return &profile, nil
}

func (s *pgProfileStore) Update(profile *Profile) error {
	res, err := s.conn.Exec(
		"UPDATE profiles SET username = $1, bio = $2, updated_at = NOW() WHERE id = $3",
		profile.Username, profile.Bio, profile.Id,
	)

	if err != nil {
		if UniqueConstraint(err) == "profiles_username_key" {
			return ErrUsernameTaken
		}
		return fmt.Errorf("error updating profile: %v", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error updating profile: %v", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *pgProfileStore) Delete(id string) error {
	res, err := s.conn.Exec("DELETE FROM profiles WHERE id = $1", id)

	if err != nil {
		return fmt.Errorf("error deleting profile: %v", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error deleting profile: %v", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *pgProfileStore) SetPicture(id, path string) error {
	res, err := s.conn.Exec("UPDATE profiles SET picture = $1, updated_at = NOW() WHERE id = $2", path, id)

	if err != nil {
		return fmt.Errorf("error setting profile picture: %v", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error setting profile picture: %v", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}
