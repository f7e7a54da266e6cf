package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/username/painelvendas/backend/src/loader"
	"github.com/username/painelvendas/backend/src/logger"
	"github.com/username/painelvendas/backend/src/security"
	"github.com/username/painelvendas/backend/src/services"
	"github.com/username/painelvendas/backend/src/utils"
)

type AuthHandler struct {
	authService      *security.AuthService
	dashboardService services.DashboardService
}

func NewAuthHandler(authService *security.AuthService, dashboardService services.DashboardService) *AuthHandler {
	return &AuthHandler{
		authService:      authService,
		dashboardService: dashboardService,
	}
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token        string `json:"token"`
	TotalRecords int    `json:"total_records"`
}

// HandleLogin is the access gate. On a password match it opens a session,
// which fetches and normalizes the CSV snapshot, and returns the session
// token. A wrong password gets a denial message and nothing else.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if err := h.authService.CheckPassword(req.Password); err != nil {
		logger.L.Warn("Dashboard access denied", "remoteAddr", r.RemoteAddr)
		utils.SendJSONError(w, "Acesso negado. Informe a senha correta.", http.StatusUnauthorized)
		return
	}

	sessionID, ds, err := h.dashboardService.OpenSession(r.Context())
	if err != nil {
		if errors.Is(err, loader.ErrSourceUnavailable) {
			logger.L.Error("Could not load sales data source", "error", err)
			utils.SendJSONError(w, "Sales data source is unavailable. Try again later.", http.StatusBadGateway)
			return
		}
		logger.L.Error("Internal error opening dashboard session", "error", err)
		utils.SendJSONError(w, "An internal error occurred while opening the session.", http.StatusInternalServerError)
		return
	}

	token, err := h.authService.GenerateToken(sessionID)
	if err != nil {
		logger.L.Error("Error generating session token", "sessionID", sessionID, "error", err)
		utils.SendJSONError(w, "An internal error occurred while opening the session.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(loginResponse{Token: token, TotalRecords: len(ds.Records)}); err != nil {
		logger.L.Error("Error encoding login response", "error", err)
	}
}
