package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/portfolio-rotation-api/infrastructure/repository"
	"github.com/vfg2006/portfolio-rotation-api/infrastructure/spreadsheet"
	"github.com/vfg2006/portfolio-rotation-api/internal/config"
	"github.com/vfg2006/portfolio-rotation-api/internal/domain"
	"github.com/vfg2006/portfolio-rotation-api/internal/usecases/rotating"
	"github.com/vfg2006/portfolio-rotation-api/pkg/apiErrors"
	"github.com/vfg2006/portfolio-rotation-api/pkg/log"
	"github.com/vfg2006/portfolio-rotation-api/pkg/utils"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	zipContentType  = "application/zip"

	// Campo multipart com a planilha de referência
	referenceField = "reference"
)

// readReference lê a planilha de referência opcional enviada como multipart. Requisições
// sem corpo multipart ou sem o arquivo seguem sem referência.
func readReference(w http.ResponseWriter, r *http.Request, cfg config.Rotation) (domain.TransferReference, bool) {
	limit := cfg.MaxReferenceUploadSizeMiB << 20
	if limit <= 0 {
		limit = 20 << 20
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(limit); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, true
		}

		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidReference, fmt.Sprintf("Planilha maior que %d MiB", limit>>20), nil)
			return nil, false
		}

		logrus.WithError(err).Warn("Erro ao ler formulário multipart")
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formulário inválido", nil)
		return nil, false
	}

	file, header, err := r.FormFile(referenceField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, true
		}
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao ler planilha de referência", nil)
		return nil, false
	}
	defer file.Close()

	reference, err := spreadsheet.ReadReference(file, cfg.ReferenceSheetName)
	if err != nil {
		if errors.Is(err, spreadsheet.ErrMalformedReference) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidReference, err.Error(), map[string]any{"arquivo": header.Filename})
			return nil, false
		}
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao ler planilha de referência", nil)
		return nil, false
	}

	logrus.WithFields(logrus.Fields{
		"arquivo": header.Filename,
		"linhas":  len(reference),
	}).Info("Planilha de referência carregada")

	return reference, true
}

// RunRotation executa a rodada de um grupo. Aceita multipart com a planilha `reference`
// e os campos `cap` e `dry_run`, que também podem vir na query string.
func RunRotation(service rotating.Rotator, cfg config.Rotation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunRotation")

		group, ok := groupParam(w, r)
		if !ok {
			return
		}

		reference, ok := readReference(w, r, cfg)
		if !ok {
			return
		}

		request := &rotating.RunRequest{
			Group:     group,
			Reference: reference,
			DryRun:    r.FormValue("dry_run") == "true",
		}

		if value := r.FormValue("cap"); value != "" {
			perPersonCap, err := strconv.Atoi(value)
			if err != nil || perPersonCap < 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "cap deve ser um inteiro não negativo", map[string]any{"cap": value})
				return
			}
			request.Cap = &perPersonCap
		}

		run, err := service.Run(r.Context(), request)
		if err != nil {
			writeServiceError(w, err, "Erro ao executar rotação")
			return
		}

		log.ForContext(r.Context()).WithFields(log.Fields{
			"grupo":  group,
			"rodada": run.ID,
		}).Info(rotating.Summary(run))

		writeJSON(w, http.StatusOK, rotating.NewRunResponse(run))
	}
}

func GetLastRotation(service rotating.Rotator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetLastRotation")

		group, ok := groupParam(w, r)
		if !ok {
			return
		}

		run, err := service.LastRun(group)
		if err != nil {
			writeServiceError(w, err, "Erro ao buscar última rotação")
			return
		}

		writeJSON(w, http.StatusOK, rotating.NewRunResponse(run))
	}
}

// DownloadRotated devolve as contas rotacionadas da última rodada como xlsx
func DownloadRotated(service rotating.Rotator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - DownloadRotated")

		group, ok := groupParam(w, r)
		if !ok {
			return
		}

		var content bytes.Buffer
		fileName, err := service.WriteRotated(&content, group)
		if err != nil {
			writeServiceError(w, err, "Erro ao gerar planilha de contas rotacionadas")
			return
		}

		writeAttachment(w, xlsxContentType, fileName, content.Bytes())
	}
}

func RecordManualRotation(service rotating.Rotator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RecordManualRotation")

		var req domain.ManualRotationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		event, err := service.RecordManual(r.Context(), &req)
		if err != nil {
			writeServiceError(w, err, "Erro ao registrar rotação manual")
			return
		}

		writeJSON(w, http.StatusCreated, event)
	}
}

// ListRotationHistory aceita os filtros from, to (YYYY-MM-DD), salesperson e type
func ListRotationHistory(service rotating.Rotator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ListRotationHistory")

		query := r.URL.Query()
		filter := repository.HistoryFilter{
			SalespersonName: strings.TrimSpace(query.Get("salesperson")),
		}

		if value := query.Get("from"); value != "" {
			from, err := utils.ParseDate(value)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "from deve estar no formato YYYY-MM-DD", nil)
				return
			}
			filter.From = from
		}

		if value := query.Get("to"); value != "" {
			to, err := utils.ParseDate(value)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "to deve estar no formato YYYY-MM-DD", nil)
				return
			}
			filter.To = to
		}

		if value := query.Get("type"); value != "" {
			rotationType, ok := parseRotationType(value)
			if !ok {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "type deve ser automatica ou manual", nil)
				return
			}
			filter.Type = rotationType
		}

		events, err := service.History(r.Context(), filter)
		if err != nil {
			writeServiceError(w, err, "Erro ao consultar histórico de rotações")
			return
		}

		writeJSON(w, http.StatusOK, events)
	}
}

func parseRotationType(value string) (domain.RotationType, bool) {
	switch strings.ToLower(value) {
	case "automatica", strings.ToLower(string(domain.RotationTypeAutomatic)):
		return domain.RotationTypeAutomatic, true
	case "manual":
		return domain.RotationTypeManual, true
	}
	return "", false
}

func writeAttachment(w http.ResponseWriter, contentType, fileName string, content []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(content); err != nil {
		logrus.WithError(err).Error("Erro ao enviar arquivo")
	}
}
