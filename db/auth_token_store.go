package db

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const accessTokenExpirationHours = 24
const refreshTokenExpirationDays = 30

type pgAuthTokenStore struct {
	conn *sqlx.DB
}

// HashToken derives the stored hash for an opaque token. Tokens are random
// UUIDs; only the sha256 of the raw bytes is persisted.
func HashToken(token string) (string, error) {
	uid, err := uuid.Parse(token)
	if err != nil {
		return "", ErrInvalidToken
	}

	bytes := uid[:]
	hashBytes := sha256.Sum256(bytes)
	return hex.EncodeToString(hashBytes[:]), nil
}

func (s *pgAuthTokenStore) Create(userId, tokenType string) (string, error) {
	uid := uuid.New()
	bytes := uid[:]
	hashBytes := sha256.Sum256(bytes)
	hash := hex.EncodeToString(hashBytes[:])

	_, err := s.conn.Exec(
		"INSERT INTO auth_tokens (user_id, token_hash, token_type) VALUES ($1, $2, $3)",
		userId, hash, tokenType,
	)

	if err != nil {
		return "", fmt.Errorf("error creating auth token: %v", err)
	}

	return uid.String(), nil
}

func (s *pgAuthTokenStore) Validate(token, tokenType string) (*AuthToken, error) {
	tokenHash, err := HashToken(token)
	if err != nil {
		return nil, err
	}

	var cutoff time.Time
	switch tokenType {
	case TokenTypeAccess:
		cutoff = time.Now().Add(-accessTokenExpirationHours * time.Hour)
	case TokenTypeRefresh:
		cutoff = time.Now().AddDate(0, 0, -refreshTokenExpirationDays)
	default:
		return nil, fmt.Errorf("unknown token type: %s", tokenType)
	}

	var authToken AuthToken
	err = s.conn.Get(&authToken,
		"SELECT * FROM auth_tokens WHERE token_hash = $1 AND token_type = $2 AND created_at > $3 AND deleted_at IS NULL",
		tokenHash, tokenType, cutoff,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("error validating token: %v", err)
	}

	return &authToken, nil
}

func (s *pgAuthTokenStore) Revoke(id string) error {
	_, err := s.conn.Exec("UPDATE auth_tokens SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL", id)

	if err != nil {
		return fmt.Errorf("error revoking auth token: %v", err)
	}

	return nil
}
