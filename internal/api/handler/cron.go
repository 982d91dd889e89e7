package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/portfolio-rotation-api/internal/scheduler"
	"github.com/vfg2006/portfolio-rotation-api/pkg/apiErrors"
)

const (
	CronJobTypeSalespeople = "salespeople"
	CronJobTypeAll         = "all"
)

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	RegistrySyncService *scheduler.RegistrySyncService
}

// RunCronJob dispara manualmente uma cron job em background
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeSalespeople, CronJobTypeAll:
			if services.RegistrySyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de sincronização de vendedores não disponível", nil)
				return
			}

			if !services.RegistrySyncService.TriggerManualSync() {
				apiErrors.WriteError(w, apiErrors.ErrRunInProgress, "Sincronização de vendedores já em andamento", nil)
				return
			}
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: salespeople, all", nil)
			return
		}

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		status := map[string]any{}
		if services.RegistrySyncService != nil {
			status[CronJobTypeSalespeople] = services.RegistrySyncService.GetStatus()
		}

		writeJSON(w, http.StatusOK, status)
	}
}
