package types

import "socialite-server/db"

type ServerAuth struct {
	AuthToken *db.AuthToken
	User      *db.User
}
