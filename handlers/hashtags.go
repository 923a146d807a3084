package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"socialite-server/db"
	"socialite-server/shared"
)

func (a *Api) ListHashtagsHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for ListHashtagsHandler")

	auth := a.authenticate(w, r)
	if auth == nil {
		return
	}

	hashtags, err := a.store.Hashtags.List()
	if err != nil {
		log.Printf("Error listing hashtags: %v\n", err)
		http.Error(w, "Error listing hashtags", http.StatusInternalServerError)
		return
	}

	apiHashtags := make([]*shared.Hashtag, 0, len(hashtags))
	for _, hashtag := range hashtags {
		apiHashtags = append(apiHashtags, hashtag.ToApi())
	}

	writeJson(w, http.StatusOK, apiHashtags)
}

func (a *Api) CreateHashtagHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for CreateHashtagHandler")

	auth := a.authenticate(w, r)
	if auth == nil {
		return
	}

	var req shared.CreateHashtagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error unmarshalling request: %v\n", err)
		writeValidationError(w, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		writeValidationError(w, "name is required")
		return
	}

	hashtag := &db.Hashtag{Name: req.Name}

	err := a.store.Hashtags.Create(hashtag)
	if err != nil {
		writeDbError(w, err)
		return
	}

	log.Println("Successfully created hashtag")

	writeJson(w, http.StatusCreated, hashtag.ToApi())
}

func (a *Api) GetHashtagHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for GetHashtagHandler")

	auth := a.authenticate(w, r)
	if auth == nil {
		return
	}

	hashtagId := mux.Vars(r)["hashtagId"]

	hashtag, err := a.store.Hashtags.Get(hashtagId)
	if err != nil {
		writeDbError(w, err)
		return
	}

	writeJson(w, http.StatusOK, hashtag.ToApi())
}

func (a *Api) UpdateHashtagHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for UpdateHashtagHandler")

	auth := a.authenticate(w, r)
	if auth == nil {
		return
	}

	hashtagId := mux.Vars(r)["hashtagId"]

	var req shared.UpdateHashtagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error unmarshalling request: %v\n", err)
		writeValidationError(w, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		writeValidationError(w, "name is required")
		return
	}

	hashtag := &db.Hashtag{Id: hashtagId, Name: req.Name}

	err := a.store.Hashtags.Update(hashtag)
	if err != nil {
		writeDbError(w, err)
		return
	}

	writeJson(w, http.StatusOK, hashtag.ToApi())
}

func (a *Api) DeleteHashtagHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for DeleteHashtagHandler")

	auth := a.authenticate(w, r)
	if auth == nil {
		return
	}

	hashtagId := mux.Vars(r)["hashtagId"]

	err := a.store.Hashtags.Delete(hashtagId)
	if err != nil {
		writeDbError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
