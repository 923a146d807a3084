package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"socialite-server/shared"
	"socialite-server/storage"
	"socialite-server/tasks"
)

type testEnv struct {
	api   *Api
	store *fakeEnvStore
}

// fakeEnvStore keeps typed references to the fakes so tests can reach past
// the interfaces when checking end state.
type fakeEnvStore struct {
	users    *fakeUserStore
	posts    *fakePostStore
	likes    *fakeLikeStore
	follows  *fakeFollowStore
	profiles *fakeProfileStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := newFakeStore()
	api := NewApi(store, storage.NewLocalUploader(t.TempDir()), tasks.NewScheduler(store.Posts))

	return &testEnv{
		api: api,
		store: &fakeEnvStore{
			users:    store.Users.(*fakeUserStore),
			posts:    store.Posts.(*fakePostStore),
			likes:    store.Likes.(*fakeLikeStore),
			follows:  store.Follows.(*fakeFollowStore),
			profiles: store.Profiles.(*fakeProfileStore),
		},
	}
}

func newRequest(t *testing.T, method, target, token string, body interface{}) *http.Request {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func withVars(req *http.Request, vars map[string]string) *http.Request {
	return mux.SetURLVars(req, vars)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func decodeApiError(t *testing.T, rec *httptest.ResponseRecorder) shared.ApiError {
	t.Helper()
	var apiErr shared.ApiError
	decodeBody(t, rec, &apiErr)
	return apiErr
}

// signup registers a user and opens a session for them.
func (e *testEnv) signup(t *testing.T, email string) (*shared.User, *shared.SessionResponse) {
	t.Helper()

	rec := httptest.NewRecorder()
	e.api.RegisterHandler(rec, newRequest(t, "POST", "/user/register", "", shared.RegisterRequest{
		Email:    email,
		Password: "password123",
	}))
	require.Equal(t, http.StatusCreated, rec.Code)

	var user shared.User
	decodeBody(t, rec, &user)

	rec = httptest.NewRecorder()
	e.api.CreateTokenHandler(rec, newRequest(t, "POST", "/user/token", "", shared.CreateTokenRequest{
		Email:    email,
		Password: "password123",
	}))
	require.Equal(t, http.StatusOK, rec.Code)

	var session shared.SessionResponse
	decodeBody(t, rec, &session)

	return &user, &session
}

// createProfile makes a profile for the session's user.
func (e *testEnv) createProfile(t *testing.T, token, username string) *shared.Profile {
	t.Helper()

	rec := httptest.NewRecorder()
	e.api.CreateProfileHandler(rec, newRequest(t, "POST", "/user/profiles", token, shared.CreateProfileRequest{
		Username: username,
	}))
	require.Equal(t, http.StatusCreated, rec.Code)

	var profile shared.Profile
	decodeBody(t, rec, &profile)
	return &profile
}

// createPost makes a post and returns its DTO.
func (e *testEnv) createPost(t *testing.T, token, title string) *shared.Post {
	t.Helper()

	rec := httptest.NewRecorder()
	e.api.CreatePostHandler(rec, newRequest(t, "POST", "/api/posts", token, shared.CreatePostRequest{
		Title:   title,
		Content: "some content",
	}))
	require.Equal(t, http.StatusCreated, rec.Code)

	var post shared.Post
	decodeBody(t, rec, &post)
	return &post
}

// follow makes the session's user follow the owner of the given profile.
func (e *testEnv) follow(t *testing.T, token, profileId string) {
	t.Helper()

	rec := httptest.NewRecorder()
	req := withVars(newRequest(t, "POST", "/user/profiles/"+profileId+"/follow", token, nil),
		map[string]string{"profileId": profileId})
	e.api.FollowHandler(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
}
