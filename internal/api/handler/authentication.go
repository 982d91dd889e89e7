package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/portfolio-rotation-api/internal/domain"
	"github.com/vfg2006/portfolio-rotation-api/internal/usecases/authenticating"
	"github.com/vfg2006/portfolio-rotation-api/pkg/apiErrors"
	"github.com/vfg2006/portfolio-rotation-api/pkg/middleware"
)

func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - Login")

		var req domain.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		response, err := service.Login(req.Username, req.Password)
		if err != nil {
			writeServiceError(w, err, "Erro interno ao realizar login")
			return
		}

		writeJSON(w, http.StatusOK, response)
	}
}

// GetMe retorna o usuário e o perfil do token
func GetMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"username": claims.Username,
			"role":     claims.Role,
		})
	}
}
