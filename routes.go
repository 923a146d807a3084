package main

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"socialite-server/handlers"
)

func InitRoutes(api *handlers.Api) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "OK")
	})

	r.HandleFunc("/user/register", api.RegisterHandler).Methods("POST")
	r.HandleFunc("/user/token", api.CreateTokenHandler).Methods("POST")
	r.HandleFunc("/user/token/refresh", api.RefreshTokenHandler).Methods("POST")
	r.HandleFunc("/user/token/verify", api.VerifyTokenHandler).Methods("POST")
	r.HandleFunc("/user/logout", api.LogoutHandler).Methods("POST")

	r.HandleFunc("/user/profiles", api.ListProfilesHandler).Methods("GET")
	r.HandleFunc("/user/profiles", api.CreateProfileHandler).Methods("POST")
	r.HandleFunc("/user/profiles/{profileId}", api.GetProfileHandler).Methods("GET")
	r.HandleFunc("/user/profiles/{profileId}", api.UpdateProfileHandler).Methods("PUT", "PATCH")
	r.HandleFunc("/user/profiles/{profileId}", api.DeleteProfileHandler).Methods("DELETE")
	r.HandleFunc("/user/profiles/{profileId}/follow", api.FollowHandler).Methods("POST")
	r.HandleFunc("/user/profiles/{profileId}/unfollow", api.UnfollowHandler).Methods("POST")
	r.HandleFunc("/user/profiles/{profileId}/followers", api.FollowersHandler).Methods("GET")
	r.HandleFunc("/user/profiles/{profileId}/following", api.FollowingHandler).Methods("GET")
	r.HandleFunc("/user/profiles/{profileId}/picture", api.UploadProfilePictureHandler).Methods("POST")

	r.HandleFunc("/api/posts", api.ListPostsHandler).Methods("GET")
	r.HandleFunc("/api/posts", api.CreatePostHandler).Methods("POST")
	r.HandleFunc("/api/posts/{postId}", api.GetPostHandler).Methods("GET")
	r.HandleFunc("/api/posts/{postId}", api.UpdatePostHandler).Methods("PUT")
	r.HandleFunc("/api/posts/{postId}", api.DeletePostHandler).Methods("DELETE")
	r.HandleFunc("/api/posts/{postId}/like", api.LikePostHandler).Methods("POST")
	r.HandleFunc("/api/posts/{postId}/comment", api.CommentPostHandler).Methods("POST")
	r.HandleFunc("/api/posts/{postId}/image", api.UploadPostImageHandler).Methods("POST")
	r.HandleFunc("/api/comments/{commentId}/like", api.LikeCommentHandler).Methods("POST")

	r.HandleFunc("/api/tags", api.ListHashtagsHandler).Methods("GET")
	r.HandleFunc("/api/tags", api.CreateHashtagHandler).Methods("POST")
	r.HandleFunc("/api/tags/{hashtagId}", api.GetHashtagHandler).Methods("GET")
	r.HandleFunc("/api/tags/{hashtagId}", api.UpdateHashtagHandler).Methods("PUT")
	r.HandleFunc("/api/tags/{hashtagId}", api.DeleteHashtagHandler).Methods("DELETE")

	return r
}
