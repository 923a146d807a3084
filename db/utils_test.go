package db

import (
	"testing"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestIsNonUniqueErr(t *testing.T) {
	assert.True(t, IsNonUniqueErr(&pq.Error{Code: "23505"}))
	assert.False(t, IsNonUniqueErr(&pq.Error{Code: "23503"}))
	assert.False(t, IsNonUniqueErr(errors.New("some other error")))
	assert.False(t, IsNonUniqueErr(nil))
}

func TestIsForeignKeyErr(t *testing.T) {
	assert.True(t, IsForeignKeyErr(&pq.Error{Code: "23503"}))
	assert.False(t, IsForeignKeyErr(&pq.Error{Code: "23505"}))
	assert.False(t, IsForeignKeyErr(nil))
}

func TestUniqueConstraint(t *testing.T) {
	err := &pq.Error{Code: "23505", Constraint: "profiles_username_key"}
	assert.Equal(t, "profiles_username_key", UniqueConstraint(err))

	assert.Equal(t, "", UniqueConstraint(&pq.Error{Code: "23503", Constraint: "likes_post_id_fkey"}))
	assert.Equal(t, "", UniqueConstraint(errors.New("some other error")))
}
