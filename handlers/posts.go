package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"socialite-server/db"
	"socialite-server/shared"
)

// ListPostsHandler returns the feed for the current actor: their own posts
// plus published posts from users they follow, newest first.
func (a *Api) ListPostsHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for ListPostsHandler")

	auth := a.authenticate(w, r)
	if auth == nil {
		return
	}

	posts, err := a.store.Posts.ListVisibleTo(auth.User.Id)
	if err != nil {
		log.Printf("Error listing posts: %v\n", err)
		http.Error(w, "Error listing posts", http.StatusInternalServerError)
		return
	}

	apiPosts, err := a.postsToApi(posts)
	if err != nil {
		log.Printf("Error building post list: %v\n", err)
		http.Error(w, "Error building post list", http.StatusInternalServerError)
		return
	}

	writeJson(w, http.StatusOK, apiPosts)
}

func (a *Api) CreatePostHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for CreatePostHandler")

	auth := a.authenticate(w, r)
	if auth == nil {
		return
	}

	var req shared.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error unmarshalling request: %v\n", err)
		writeValidationError(w, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		writeValidationError(w, "title is required")
		return
	}

	if req.ScheduleTime != nil && req.ScheduleTime.Before(time.Now()) {
		writeValidationError(w, "Scheduled time must be in the future.")
		return
	}

	post := &db.Post{
		AuthorId:     auth.User.Id,
		Title:        req.Title,
		Content:      req.Content,
		Published:    req.ScheduleTime == nil,
		ScheduleTime: req.ScheduleTime,
	}

	err := a.store.Posts.Create(post, req.HashtagIds)
	if err != nil {
		if err == db.ErrNotFound {
			writeValidationError(w, "invalid hashtag id")
			return
		}
		writeDbError(w, err)
		return
	}

	if req.ScheduleTime != nil {
		a.scheduler.Schedule(post.Id, *req.ScheduleTime)
	}

	names, err := a.store.Posts.HashtagNames([]string{post.Id})
	if err != nil {
		log.Printf("Error loading hashtag names: %v\n", err)
		http.Error(w, "Error loading hashtag names", http.StatusInternalServerError)
		return
	}

	log.Println("Successfully created post")

	writeJson(w, http.StatusCreated, post.ToApi(auth.User.ToApi(), names[post.Id]))
}

// GetPostHandler returns the detail view: base post fields plus comments
// and likes.
func (a *Api) GetPostHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for GetPostHandler")

	auth := a.authenticate(w, r)
	if auth == nil {
		return
	}

	postId := mux.Vars(r)["postId"]

	post := a.getVisiblePost(w, postId, auth)
	if post == nil {
		return
	}

	comments, err := a.store.Comments.ListForPost(post.Id)
	if err != nil {
		log.Printf("Error listing comments: %v\n", err)
		http.Error(w, "Error listing comments", http.StatusInternalServerError)
		return
	}

	likes, err := a.store.Likes.ListForPost(post.Id)
	if err != nil {
		log.Printf("Error listing likes: %v\n", err)
		http.Error(w, "Error listing likes", http.StatusInternalServerError)
		return
	}

	names, err := a.store.Posts.HashtagNames([]string{post.Id})
	if err != nil {
		log.Printf("Error loading hashtag names: %v\n", err)
		http.Error(w, "Error loading hashtag names", http.StatusInternalServerError)
		return
	}

	authorIds := []string{post.AuthorId}
	for _, comment := range comments {
		authorIds = append(authorIds, comment.AuthorId)
	}
	for _, like := range likes {
		authorIds = append(authorIds, like.AuthorId)
	}

	authors, err := a.store.Users.GetMany(authorIds)
	if err != nil {
		log.Printf("Error loading authors: %v\n", err)
		http.Error(w, "Error loading authors", http.StatusInternalServerError)
		return
	}

	detail := &shared.PostDetail{
		Post:     *post.ToApi(authors[post.AuthorId].ToApi(), names[post.Id]),
		Comments: make([]*shared.Comment, 0, len(comments)),
		Likes:    make([]*shared.Like, 0, len(likes)),
	}

	for _, comment := range comments {
		detail.Comments = append(detail.Comments, comment.ToApi(authors[comment.AuthorId].ToApi()))
	}
	for _, like := range likes {
		detail.Likes = append(detail.Likes, like.ToApi(authors[like.AuthorId].ToApi()))
	}

	writeJson(w, http.StatusOK, detail)
}

func (a *Api) UpdatePostHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for UpdatePostHandler")

	auth := a.authenticate(w, r)
	if auth == nil {
		return
	}

	postId := mux.Vars(r)["postId"]

	post := a.authorizePostUpdate(w, postId, auth)
	if post == nil {
		return
	}

	var req shared.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error unmarshalling request: %v\n", err)
		writeValidationError(w, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		writeValidationError(w, "title is required")
		return
	}

	post.Title = req.Title
	post.Content = req.Content

	err := a.store.Posts.Update(post, req.HashtagIds)
	if err != nil {
		if err == db.ErrNotFound {
			writeValidationError(w, "invalid hashtag id")
			return
		}
		writeDbError(w, err)
		return
	}

	names, err := a.store.Posts.HashtagNames([]string{post.Id})
	if err != nil {
		log.Printf("Error loading hashtag names: %v\n", err)
		http.Error(w, "Error loading hashtag names", http.StatusInternalServerError)
		return
	}

	writeJson(w, http.StatusOK, post.ToApi(auth.User.ToApi(), names[post.Id]))
}

func (a *Api) DeletePostHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for DeletePostHandler")

	auth := a.authenticate(w, r)
	if auth == nil {
		return
	}

	postId := mux.Vars(r)["postId"]

	post := a.authorizePostUpdate(w, postId, auth)
	if post == nil {
		return
	}

	err := a.store.Posts.Delete(post.Id)
	if err != nil {
		writeDbError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// LikePostHandler toggles the actor's like on a post and reports which way
// it went.
func (a *Api) LikePostHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for LikePostHandler")

	auth := a.authenticate(w, r)
	if auth == nil {
		return
	}

	postId := mux.Vars(r)["postId"]

	post := a.getVisiblePost(w, postId, auth)
	if post == nil {
		return
	}

	liked, err := a.store.Likes.TogglePostLike(auth.User.Id, post.Id)
	if err != nil {
		writeDbError(w, err)
		return
	}

	status := shared.LikeStatusUnliked
	if liked {
		status = shared.LikeStatusLiked
	}

	writeJson(w, http.StatusOK, shared.ToggleLikeResponse{Status: status})
}

// LikeCommentHandler toggles the actor's like on a comment.
func (a *Api) LikeCommentHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for LikeCommentHandler")

	auth := a.authenticate(w, r)
	if auth == nil {
		return
	}

	commentId := mux.Vars(r)["commentId"]

	comment, err := a.store.Comments.Get(commentId)
	if err != nil {
		writeDbError(w, err)
		return
	}

	post := a.getVisiblePost(w, comment.PostId, auth)
	if post == nil {
		return
	}

	liked, err := a.store.Likes.ToggleCommentLike(auth.User.Id, comment.Id)
	if err != nil {
		writeDbError(w, err)
		return
	}

	status := shared.LikeStatusUnliked
	if liked {
		status = shared.LikeStatusLiked
	}

	writeJson(w, http.StatusOK, shared.ToggleLikeResponse{Status: status})
}

// CommentPostHandler adds a comment attributed to the current actor. The
// author and post are always server-assigned.
func (a *Api) CommentPostHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for CommentPostHandler")

	auth := a.authenticate(w, r)
	if auth == nil {
		return
	}

	postId := mux.Vars(r)["postId"]

	post := a.getVisiblePost(w, postId, auth)
	if post == nil {
		return
	}

	var req shared.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error unmarshalling request: %v\n", err)
		writeValidationError(w, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Content) == "" {
		writeValidationError(w, "content is required")
		return
	}

	comment := &db.Comment{
		PostId:   post.Id,
		AuthorId: auth.User.Id,
		Content:  req.Content,
	}

	err := a.store.Comments.Create(comment)
	if err != nil {
		writeDbError(w, err)
		return
	}

	log.Println("Successfully created comment")

	writeJson(w, http.StatusCreated, comment.ToApi(auth.User.ToApi()))
}

func (a *Api) UploadPostImageHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for UploadPostImageHandler")

	auth := a.authenticate(w, r)
	if auth == nil {
		return
	}

	postId := mux.Vars(r)["postId"]

	post := a.authorizePostUpdate(w, postId, auth)
	if post == nil {
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeValidationError(w, "image file is required")
		return
	}
	defer file.Close()

	path, err := a.uploader.UploadPostImage(post.Title, header.Filename, file)
	if err != nil {
		log.Printf("Error uploading image: %v\n", err)
		http.Error(w, "Error uploading image", http.StatusInternalServerError)
		return
	}

	err = a.store.Posts.SetImage(post.Id, path)
	if err != nil {
		writeDbError(w, err)
		return
	}

	writeJson(w, http.StatusOK, shared.UploadImageResponse{Path: path})
}

// postsToApi assembles base post DTOs, batching the author and hashtag
// lookups.
func (a *Api) postsToApi(posts []*db.Post) ([]*shared.Post, error) {
	authorIds := make([]string, 0, len(posts))
	postIds := make([]string, 0, len(posts))
	for _, post := range posts {
		authorIds = append(authorIds, post.AuthorId)
		postIds = append(postIds, post.Id)
	}

	authors, err := a.store.Users.GetMany(authorIds)
	if err != nil {
		return nil, err
	}

	names, err := a.store.Posts.HashtagNames(postIds)
	if err != nil {
		return nil, err
	}

	apiPosts := make([]*shared.Post, 0, len(posts))
	for _, post := range posts {
		apiPosts = append(apiPosts, post.ToApi(authors[post.AuthorId].ToApi(), names[post.Id]))
	}

	return apiPosts, nil
}
