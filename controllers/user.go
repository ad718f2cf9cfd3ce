package controllers

import (
	"encoding/json"
	"net/http"

	"nambikkai-store/services"
	"nambikkai-store/utils"
)

// UserController handles account and login requests
type UserController struct {
	Service *services.UserService
}

// NewUserController creates a new UserController
func NewUserController(service *services.UserService) *UserController {
	return &UserController{Service: service}
}

// Register handles user signup and returns a fresh token.
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	user, err := uc.Service.Register(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Role)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// Login handles user authentication
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	user, err := uc.Service.Login(r.Context(), creds.Email, creds.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Role)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// AdminLogin authenticates back-office operators.
func (uc *UserController) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		utils.RespondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	admin, err := uc.Service.AdminLogin(r.Context(), creds.Email, creds.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	token, err := utils.GenerateJWT(admin.ID.Hex(), admin.Role)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"admin": admin,
	})
}

// GetProfile retrieves the authenticated user's profile
func (uc *UserController) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(w, r)
	if !ok {
		return
	}
	user, err := uc.Service.Profile(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, user)
}
