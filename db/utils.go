package db

import "github.com/lib/pq"

func IsNonUniqueErr(err error) bool {
	if err, ok := err.(*pq.Error); ok {
		if err.Code == "23505" {
			return true
		}
	}
	return false
}

func IsForeignKeyErr(err error) bool {
	if err, ok := err.(*pq.Error); ok {
		if err.Code == "23503" {
			return true
		}
	}
	return false
}

// UniqueConstraint returns the name of the violated unique constraint,
// or an empty string if err is not a uniqueness violation.
func UniqueConstraint(err error) string {
	if err, ok := err.(*pq.Error); ok {
		if err.Code == "23505" {
			return err.Constraint
		}
	}
	return ""
}
