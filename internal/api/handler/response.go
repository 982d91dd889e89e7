package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/portfolio-rotation-api/internal/domain"
	"github.com/vfg2006/portfolio-rotation-api/internal/usecases/authenticating"
	"github.com/vfg2006/portfolio-rotation-api/internal/usecases/registering"
	"github.com/vfg2006/portfolio-rotation-api/internal/usecases/rotating"
	"github.com/vfg2006/portfolio-rotation-api/pkg/apiErrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("Erro ao enviar resposta")
	}
}

// writeServiceError traduz os erros tipados dos casos de uso para o formato padronizado da API
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	var (
		registryErr *registering.RegistryError
		rotationErr *rotating.RotationError
		authErr     *authenticating.AuthError
	)

	switch {
	case errors.As(err, &registryErr):
		apiErrors.WriteError(w, registryErr.Code, registryErr.Error(), detailsOf("vendedor", registryErr.Name))
	case errors.As(err, &rotationErr):
		apiErrors.WriteError(w, rotationErr.Code, rotationErr.Error(), detailsOf("grupo", rotationErr.Group))
	case errors.As(err, &authErr):
		apiErrors.WriteError(w, authErr.Code, authErr.Error(), nil)
	default:
		logrus.WithError(err).Error(fallback)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, fallback, nil)
	}
}

func detailsOf(key, value string) map[string]any {
	if value == "" {
		return nil
	}
	return map[string]any{key: value}
}

// groupParam lê o grupo de vendas da rota, aceitando slug ou nome completo
func groupParam(w http.ResponseWriter, r *http.Request) (domain.SalesGroup, bool) {
	value := httprouter.ParamsFromContext(r.Context()).ByName("group")
	group, ok := domain.SalesGroupFromSlug(value)
	if !ok {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Grupo de vendas inválido", map[string]any{
			"grupo":   value,
			"aceitos": []string{"distribuicao", "corporativo", "outro"},
		})
		return "", false
	}
	return group, true
}
