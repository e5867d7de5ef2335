package http

import (
	"errors"
	"net/http"

	"cro-sprint-backend/internal/domain"
	"cro-sprint-backend/internal/service"

	"github.com/gorilla/mux"
)

type AuthHandler struct {
	auth service.AuthService
}

func NewAuthHandler(auth service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type VerifyResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

// Verify handles GET /auth/v1/verify?token=, the link sent in the signup
// confirmation email
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.ConfirmSignup(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		ErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	JSONResponse(w, http.StatusOK, VerifyResponse{Message: "Email confirmed", User: user})
}

func (h *AuthHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/auth/v1/verify", h.Verify).Methods(http.MethodGet)
}
