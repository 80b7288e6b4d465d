package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"gameadmin/internal/entity"
	"gameadmin/internal/service"
	"gameadmin/internal/session"
)

// AuthAPIHandler JSON-эндпоинт /api/auth: действия login и update_profile.
type AuthAPIHandler struct {
	auth     Authenticator
	sessions *session.Manager
}

func NewAuthAPIHandler(auth Authenticator, sessions *session.Manager) *AuthAPIHandler {
	return &AuthAPIHandler{auth: auth, sessions: sessions}
}

type authRequest struct {
	Action          string `json:"action"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	Email           string `json:"email"`
	FullName        string `json:"full_name"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

type authResponse struct {
	Success bool          `json:"success"`
	Error   string        `json:"error,omitempty"`
	Message string        `json:"message,omitempty"`
	Admin   *entity.Admin `json:"admin,omitempty"`
}

func (h *AuthAPIHandler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAuthRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, authResponse{Error: "Invalid request"})
		return
	}

	switch req.Action {
	case "login":
		h.login(w, r, req)
	case "update_profile":
		h.updateProfile(w, r, req)
	default:
		writeJSON(w, http.StatusBadRequest, authResponse{Error: "Unknown action"})
	}
}

func (h *AuthAPIHandler) login(w http.ResponseWriter, r *http.Request, req authRequest) {
	admin, err := h.auth.Login(r.Context(), service.LoginInput{Username: req.Username, Password: req.Password})
	if err != nil {
		if service.IsUserError(err) {
			writeJSON(w, http.StatusOK, authResponse{Error: capitalize(err.Error())})
			return
		}
		slog.Error("api login", "username", req.Username, "err", err)
		writeJSON(w, http.StatusInternalServerError, authResponse{Error: "Login failed, please try again"})
		return
	}

	if err := h.sessions.SignIn(w, r, admin); err != nil {
		slog.Error("save session", "admin_id", admin.ID, "err", err)
		writeJSON(w, http.StatusInternalServerError, authResponse{Error: "Login failed, please try again"})
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Success: true, Message: "Login successful", Admin: &admin})
}

func (h *AuthAPIHandler) updateProfile(w http.ResponseWriter, r *http.Request, req authRequest) {
	current, ok := h.sessions.Current(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, authResponse{Error: "Not authenticated"})
		return
	}

	admin, err := h.auth.UpdateProfile(r.Context(), current.ID, service.ProfileUpdate{
		CurrentPassword: req.CurrentPassword,
		Username:        req.Username,
		Email:           req.Email,
		FullName:        req.FullName,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		status := http.StatusOK
		if !service.IsUserError(err) {
			slog.Error("update profile", "admin_id", current.ID, "err", err)
			status = http.StatusInternalServerError
		}
		writeJSON(w, status, authResponse{Error: errorMessage(err)})
		return
	}

	// сессия должна видеть новые имя и email
	if err := h.sessions.SignIn(w, r, admin); err != nil {
		slog.Error("refresh session", "admin_id", admin.ID, "err", err)
	}

	writeJSON(w, http.StatusOK, authResponse{Success: true, Message: "Profile updated successfully", Admin: &admin})
}

// decodeAuthRequest принимает и JSON, и обычную форму
func decodeAuthRequest(r *http.Request) (authRequest, error) {
	var req authRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		err := json.NewDecoder(r.Body).Decode(&req)
		return req, err
	}

	if err := r.ParseForm(); err != nil {
		return req, err
	}
	req = authRequest{
		Action:          r.FormValue("action"),
		Username:        r.FormValue("username"),
		Password:        r.FormValue("password"),
		Email:           r.FormValue("email"),
		FullName:        r.FormValue("full_name"),
		CurrentPassword: r.FormValue("current_password"),
		NewPassword:     r.FormValue("new_password"),
		ConfirmPassword: r.FormValue("confirm_password"),
	}
	return req, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("write json", "err", err)
	}
}
