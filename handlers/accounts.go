package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"socialite-server/db"
	"socialite-server/shared"
)

const minPasswordLength = 5

func (a *Api) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for RegisterHandler")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Error reading request body: %v\n", err)
		http.Error(w, "Error reading request body: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var req shared.RegisterRequest
	err = json.Unmarshal(body, &req)
	if err != nil {
		log.Printf("Error unmarshalling request: %v\n", err)
		writeValidationError(w, "invalid request body")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.Email == "" || !strings.Contains(req.Email, "@") {
		writeValidationError(w, "a valid email address is required")
		return
	}

	if len(req.Password) < minPasswordLength {
		writeValidationError(w, "password must be at least 5 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing password: %v\n", err)
		http.Error(w, "Error hashing password", http.StatusInternalServerError)
		return
	}

	user := &db.User{
		Email:        req.Email,
		PasswordHash: string(hash),
	}

	err = a.store.Users.Create(user)
	if err != nil {
		writeDbError(w, err)
		return
	}

	log.Println("Successfully registered user")

	writeJson(w, http.StatusCreated, user.ToApi())
}

func (a *Api) CreateTokenHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for CreateTokenHandler")

	var req shared.CreateTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error unmarshalling request: %v\n", err)
		writeValidationError(w, "invalid request body")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	user, err := a.store.Users.GetByEmail(req.Email)
	if err != nil {
		log.Printf("Error getting user: %v\n", err)
		http.Error(w, "Error getting user", http.StatusInternalServerError)
		return
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeAuth,
			Status: http.StatusUnauthorized,
			Msg:    "invalid email or password",
		})
		return
	}

	access, err := a.store.AuthTokens.Create(user.Id, db.TokenTypeAccess)
	if err != nil {
		log.Printf("Error creating access token: %v\n", err)
		http.Error(w, "Error creating access token", http.StatusInternalServerError)
		return
	}

	refresh, err := a.store.AuthTokens.Create(user.Id, db.TokenTypeRefresh)
	if err != nil {
		log.Printf("Error creating refresh token: %v\n", err)
		http.Error(w, "Error creating refresh token", http.StatusInternalServerError)
		return
	}

	log.Println("Successfully created session tokens")

	writeJson(w, http.StatusOK, shared.SessionResponse{
		UserId:  user.Id,
		Email:   user.Email,
		Access:  access,
		Refresh: refresh,
	})
}

func (a *Api) RefreshTokenHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for RefreshTokenHandler")

	var req shared.RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error unmarshalling request: %v\n", err)
		writeValidationError(w, "invalid request body")
		return
	}

	authToken, err := a.store.AuthTokens.Validate(req.Refresh, db.TokenTypeRefresh)
	if err != nil {
		log.Printf("error validating refresh token: %v\n", err)
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeInvalidToken,
			Status: http.StatusUnauthorized,
			Msg:    "Invalid refresh token",
		})
		return
	}

	access, err := a.store.AuthTokens.Create(authToken.UserId, db.TokenTypeAccess)
	if err != nil {
		log.Printf("Error creating access token: %v\n", err)
		http.Error(w, "Error creating access token", http.StatusInternalServerError)
		return
	}

	writeJson(w, http.StatusOK, shared.RefreshTokenResponse{Access: access})
}

func (a *Api) VerifyTokenHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for VerifyTokenHandler")

	var req shared.VerifyTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error unmarshalling request: %v\n", err)
		writeValidationError(w, "invalid request body")
		return
	}

	_, err := a.store.AuthTokens.Validate(req.Token, db.TokenTypeAccess)
	if err != nil {
		log.Printf("error verifying token: %v\n", err)
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeInvalidToken,
			Status: http.StatusUnauthorized,
			Msg:    "Invalid token",
		})
		return
	}

	writeJson(w, http.StatusOK, struct{}{})
}

// LogoutHandler blacklists the refresh token. Access tokens age out on
// their own short expiry.
func (a *Api) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for LogoutHandler")

	var req shared.LogoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error unmarshalling request: %v\n", err)
		writeValidationError(w, "invalid request body")
		return
	}

	authToken, err := a.store.AuthTokens.Validate(req.Refresh, db.TokenTypeRefresh)
	if err != nil {
		log.Printf("error validating refresh token: %v\n", err)
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeInvalidToken,
			Status: http.StatusUnauthorized,
			Msg:    "Invalid refresh token",
		})
		return
	}

	err = a.store.AuthTokens.Revoke(authToken.Id)
	if err != nil {
		log.Printf("Error revoking token: %v\n", err)
		http.Error(w, "Error revoking token", http.StatusInternalServerError)
		return
	}

	log.Println("Successfully logged out")

	writeJson(w, http.StatusOK, shared.DetailResponse{Detail: "Successfully logged out"})
}
