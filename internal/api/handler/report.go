package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/portfolio-rotation-api/internal/config"
	"github.com/vfg2006/portfolio-rotation-api/internal/usecases/reporting"
)

// GenerateReports devolve o zip com os relatórios de carteira do grupo. Sem rodada
// anterior usa a base atual, ajustada pela planilha `reference` quando enviada.
// Com save=true os arquivos também ficam no diretório de saída do servidor.
func GenerateReports(service reporting.Reporter, cfg config.Rotation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GenerateReports")

		group, ok := groupParam(w, r)
		if !ok {
			return
		}

		reference, ok := readReference(w, r, cfg)
		if !ok {
			return
		}

		bundle, err := service.Bundle(r.Context(), &reporting.Request{
			Group:     group,
			Reference: reference,
			Save:      r.FormValue("save") == "true",
		})
		if err != nil {
			writeServiceError(w, err, "Erro ao gerar relatórios")
			return
		}

		writeAttachment(w, zipContentType, bundle.FileName, bundle.Content)
	}
}
