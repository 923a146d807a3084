package handlers

import (
	"log"
	"net/http"
	"strings"

	"socialite-server/db"
	"socialite-server/shared"
	"socialite-server/types"
)

// authenticate resolves the actor from the bearer access token. On failure
// it writes a 401 and returns nil.
func (a *Api) authenticate(w http.ResponseWriter, r *http.Request) *types.ServerAuth {
	authHeader := r.Header.Get("Authorization")

	if authHeader == "" {
		log.Println("no auth header")
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeAuth,
			Status: http.StatusUnauthorized,
			Msg:    "no auth header",
		})
		return nil
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		log.Println("invalid auth header")
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeAuth,
			Status: http.StatusUnauthorized,
			Msg:    "invalid auth header",
		})
		return nil
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")

	authToken, err := a.store.AuthTokens.Validate(token, db.TokenTypeAccess)

	if err != nil {
		log.Printf("error validating auth token: %v\n", err)
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeInvalidToken,
			Status: http.StatusUnauthorized,
			Msg:    "Invalid auth token",
		})
		return nil
	}

	user, err := a.store.Users.Get(authToken.UserId)

	if err != nil {
		log.Printf("error getting user: %v\n", err)
		http.Error(w, "error getting user", http.StatusInternalServerError)
		return nil
	}

	return &types.ServerAuth{
		AuthToken: authToken,
		User:      user,
	}
}

// authorizePostUpdate loads the post and checks ownership. Read access is
// open to any authenticated actor; writes are author-only.
func (a *Api) authorizePostUpdate(w http.ResponseWriter, postId string, auth *types.ServerAuth) *db.Post {
	post, err := a.store.Posts.Get(postId)

	if err != nil {
		writeDbError(w, err)
		return nil
	}

	if post.AuthorId != auth.User.Id {
		log.Println("user is not the author of the post")
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeForbidden,
			Status: http.StatusForbidden,
			Msg:    "only the author can modify this post",
		})
		return nil
	}

	return post
}

func (a *Api) authorizeProfileUpdate(w http.ResponseWriter, profileId string, auth *types.ServerAuth) *db.Profile {
	profile, err := a.store.Profiles.Get(profileId)

	if err != nil {
		writeDbError(w, err)
		return nil
	}

	if profile.UserId != auth.User.Id {
		log.Println("user is not the owner of the profile")
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeForbidden,
			Status: http.StatusForbidden,
			Msg:    "only the owner can modify this profile",
		})
		return nil
	}

	return profile
}

// canViewPost applies the visibility policy: authors always see their own
// posts; everyone else sees a post only if it's published and they follow
// the author.
func (a *Api) canViewPost(post *db.Post, auth *types.ServerAuth) (bool, error) {
	if post.AuthorId == auth.User.Id {
		return true, nil
	}

	if !post.Published {
		return false, nil
	}

	return a.store.Follows.Exists(auth.User.Id, post.AuthorId)
}

// getVisiblePost loads a post and enforces the visibility policy, writing
// a 404 when the viewer may not see it.
func (a *Api) getVisiblePost(w http.ResponseWriter, postId string, auth *types.ServerAuth) *db.Post {
	post, err := a.store.Posts.Get(postId)

	if err != nil {
		writeDbError(w, err)
		return nil
	}

	visible, err := a.canViewPost(post, auth)

	if err != nil {
		log.Printf("error checking post visibility: %v\n", err)
		http.Error(w, "error checking post visibility", http.StatusInternalServerError)
		return nil
	}

	if !visible {
		writeDbError(w, db.ErrNotFound)
		return nil
	}

	return post
}
