package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"socialite-server/db"
	"socialite-server/shared"
)

func (a *Api) ListProfilesHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for ListProfilesHandler")

	auth := a.authenticate(w, r)
	if auth == nil {
		return
	}

	search := r.URL.Query().Get("search")

	profiles, err := a.store.Profiles.List(search)
	if err != nil {
		log.Printf("Error listing profiles: %v\n", err)
		http.Error(w, "Error listing profiles", http.StatusInternalServerError)
		return
	}

	apiProfiles := make([]*shared.Profile, 0, len(profiles))
	for _, profile := range profiles {
		apiProfiles = append(apiProfiles, profile.ToApi())
	}

	writeJson(w, http.StatusOK, apiProfiles)
}

func (a *Api) CreateProfileHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for CreateProfileHandler")

	auth := a.authenticate(w, r)
	if auth == nil {
		return
	}

	var req shared.CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error unmarshalling request: %v\n", err)
		writeValidationError(w, "invalid request body")
		return
	}

	if req.Username == "" {
		writeValidationError(w, "username is required")
		return
	}

	profile := &db.Profile{
		UserId:   auth.User.Id,
		Username: req.Username,
		Bio:      req.Bio,
	}

	err := a.store.Profiles.Create(profile)
	if err != nil {
		writeDbError(w, err)
		return
	}

	log.Println("Successfully created profile")

	writeJson(w, http.StatusCreated, profile.ToApi())
}

func (a *Api) GetProfileHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for GetProfileHandler")

	auth := a.authenticate(w, r)
	if auth == nil {
		return
	}

	profileId := mux.Vars(r)["profileId"]

	profile, err := a.store.Profiles.Get(profileId)
	if err != nil {
		writeDbError(w, err)
		return
	}

	followers, err := a.store.Follows.ListFollowers(profile.UserId)
	if err != nil {
		log.Printf("Error listing followers: %v\n", err)
		http.Error(w, "Error listing followers", http.StatusInternalServerError)
		return
	}

	following, err := a.store.Follows.ListFollowing(profile.UserId)
	if err != nil {
		log.Printf("Error listing following: %v\n", err)
		http.Error(w, "Error listing following", http.StatusInternalServerError)
		return
	}

	detail := &shared.ProfileDetail{
		Profile:   *profile.ToApi(),
		Followers: usersToApi(followers),
		Following: usersToApi(following),
	}

	writeJson(w, http.StatusOK, detail)
}

func (a *Api) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for UpdateProfileHandler")

	auth := a.authenticate(w, r)
	if auth == nil {
		return
	}

	profileId := mux.Vars(r)["profileId"]

	profile := a.authorizeProfileUpdate(w, profileId, auth)
	if profile == nil {
		return
	}

	var req shared.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error unmarshalling request: %v\n", err)
		writeValidationError(w, "invalid request body")
		return
	}

	if req.Username == "" {
		writeValidationError(w, "username is required")
		return
	}

	profile.Username = req.Username
	profile.Bio = req.Bio

	err := a.store.Profiles.Update(profile)
	if err != nil {
		writeDbError(w, err)
		return
	}

	writeJson(w, http.StatusOK, profile.ToApi())
}

func (a *Api) DeleteProfileHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for DeleteProfileHandler")

	auth := a.authenticate(w, r)
	if auth == nil {
		return
	}

	profileId := mux.Vars(r)["profileId"]

	profile := a.authorizeProfileUpdate(w, profileId, auth)
	if profile == nil {
		return
	}

	err := a.store.Profiles.Delete(profile.Id)
	if err != nil {
		writeDbError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *Api) FollowHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for FollowHandler")

	auth := a.authenticate(w, r)
	if auth == nil {
		return
	}

	profileId := mux.Vars(r)["profileId"]

	profile, err := a.store.Profiles.Get(profileId)
	if err != nil {
		writeDbError(w, err)
		return
	}

	if profile.UserId == auth.User.Id {
		writeValidationError(w, "You cannot follow yourself")
		return
	}

	err = a.store.Follows.Create(auth.User.Id, profile.UserId)
	if err != nil {
		if err == db.ErrAlreadyFollowing {
			writeApiError(w, shared.ApiError{
				Type:   shared.ApiErrorTypeConflict,
				Status: http.StatusBadRequest,
				Msg:    "Already following",
			})
			return
		}
		writeDbError(w, err)
		return
	}

	log.Println("Successfully followed user")

	writeJson(w, http.StatusCreated, shared.DetailResponse{Detail: "Successfully followed user"})
}

func (a *Api) UnfollowHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for UnfollowHandler")

	auth := a.authenticate(w, r)
	if auth == nil {
		return
	}

	profileId := mux.Vars(r)["profileId"]

	profile, err := a.store.Profiles.Get(profileId)
	if err != nil {
		writeDbError(w, err)
		return
	}

	err = a.store.Follows.Delete(auth.User.Id, profile.UserId)
	if err != nil {
		if err == db.ErrNotFollowing {
			writeApiError(w, shared.ApiError{
				Type:   shared.ApiErrorTypeConflict,
				Status: http.StatusBadRequest,
				Msg:    "Not following",
			})
			return
		}
		writeDbError(w, err)
		return
	}

	log.Println("Successfully unfollowed user")

	w.WriteHeader(http.StatusNoContent)
}

// FollowersHandler lists the current actor's followers.
func (a *Api) FollowersHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for FollowersHandler")

	auth := a.authenticate(w, r)
	if auth == nil {
		return
	}

	followers, err := a.store.Follows.ListFollowers(auth.User.Id)
	if err != nil {
		log.Printf("Error listing followers: %v\n", err)
		http.Error(w, "Error listing followers", http.StatusInternalServerError)
		return
	}

	writeJson(w, http.StatusOK, usersToApi(followers))
}

// FollowingHandler lists who the current actor follows.
func (a *Api) FollowingHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for FollowingHandler")

	auth := a.authenticate(w, r)
	if auth == nil {
		return
	}

	following, err := a.store.Follows.ListFollowing(auth.User.Id)
	if err != nil {
		log.Printf("Error listing following: %v\n", err)
		http.Error(w, "Error listing following", http.StatusInternalServerError)
		return
	}

	writeJson(w, http.StatusOK, usersToApi(following))
}

func (a *Api) UploadProfilePictureHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for UploadProfilePictureHandler")

	auth := a.authenticate(w, r)
	if auth == nil {
		return
	}

	profileId := mux.Vars(r)["profileId"]

	profile := a.authorizeProfileUpdate(w, profileId, auth)
	if profile == nil {
		return
	}

	file, header, err := r.FormFile("picture")
	if err != nil {
		writeValidationError(w, "picture file is required")
		return
	}
	defer file.Close()

	path, err := a.uploader.UploadProfilePicture(profile.Username, header.Filename, file)
	if err != nil {
		log.Printf("Error uploading picture: %v\n", err)
		http.Error(w, "Error uploading picture", http.StatusInternalServerError)
		return
	}

	err = a.store.Profiles.SetPicture(profile.Id, path)
	if err != nil {
		writeDbError(w, err)
		return
	}

	writeJson(w, http.StatusOK, shared.UploadImageResponse{Path: path})
}

func usersToApi(users []*db.User) []*shared.User {
	apiUsers := make([]*shared.User, 0, len(users))
	for _, user := range users {
		apiUsers = append(apiUsers, user.ToApi())
	}
	return apiUsers
}
