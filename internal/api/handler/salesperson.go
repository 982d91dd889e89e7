package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/portfolio-rotation-api/internal/domain"
	"github.com/vfg2006/portfolio-rotation-api/internal/usecases/registering"
	"github.com/vfg2006/portfolio-rotation-api/pkg/apiErrors"
)

// ListSalespeople devolve o cadastro completo. Com ?grouped=true devolve apenas os
// nomes separados por grupo, e com ?group=<slug> os nomes de um grupo.
func ListSalespeople(service registering.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ListSalespeople")

		query := r.URL.Query()

		if value := query.Get("group"); value != "" {
			group, ok := domain.SalesGroupFromSlug(value)
			if !ok {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Grupo de vendas inválido", map[string]any{"grupo": value})
				return
			}

			names, err := service.ListByGroup(r.Context(), group)
			if err != nil {
				writeServiceError(w, err, "Erro ao listar vendedores")
				return
			}
			writeJSON(w, http.StatusOK, names)
			return
		}

		if query.Get("grouped") == "true" {
			grouped, err := service.ListGrouped(r.Context())
			if err != nil {
				writeServiceError(w, err, "Erro ao listar vendedores")
				return
			}
			writeJSON(w, http.StatusOK, grouped)
			return
		}

		salespeople, err := service.List(r.Context())
		if err != nil {
			writeServiceError(w, err, "Erro ao listar vendedores")
			return
		}

		writeJSON(w, http.StatusOK, salespeople)
	}
}

func CreateSalesperson(service registering.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateSalesperson")

		var req domain.CreateSalespersonRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		salesperson, err := service.Create(r.Context(), &req)
		if err != nil {
			writeServiceError(w, err, "Erro ao cadastrar vendedor")
			return
		}

		writeJSON(w, http.StatusCreated, salesperson)
	}
}

func DeleteSalesperson(service registering.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - DeleteSalesperson")

		name := httprouter.ParamsFromContext(r.Context()).ByName("name")
		if name == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nome do vendedor não fornecido", nil)
			return
		}

		if err := service.Delete(r.Context(), name); err != nil {
			writeServiceError(w, err, "Erro ao remover vendedor")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// SyncSalespeople copia os vendedores ativos do data warehouse e espera o resultado
func SyncSalespeople(service registering.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - SyncSalespeople")

		response, err := service.SyncFromWarehouse(r.Context())
		if err != nil {
			writeServiceError(w, err, "Erro ao sincronizar vendedores")
			return
		}

		writeJSON(w, http.StatusOK, response)
	}
}
