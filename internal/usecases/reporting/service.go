package reporting

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/portfolio-rotation-api/infrastructure/spreadsheet"
	"github.com/vfg2006/portfolio-rotation-api/internal/config"
	"github.com/vfg2006/portfolio-rotation-api/internal/domain"
	"github.com/vfg2006/portfolio-rotation-api/internal/rotation"
	"github.com/vfg2006/portfolio-rotation-api/internal/usecases/rotating"
	"github.com/vfg2006/portfolio-rotation-api/pkg/apiErrors"
	"github.com/vfg2006/portfolio-rotation-api/pkg/metrics"
)

var ErrReportGeneration = errors.New("erro ao gerar relatórios de rotação")

type Request struct {
	Group domain.SalesGroup
	// Reference só é usada quando não houve rodada para o grupo
	Reference domain.TransferReference
	// Save grava os arquivos também no diretório de saída configurado
	Save bool
}

type Reporter interface {
	Build(ctx context.Context, request *Request) (*domain.PortfolioReport, error)
	Bundle(ctx context.Context, request *Request) (*domain.ReportBundle, error)
}

type Service struct {
	rotator rotating.Rotator
	cfg     config.Rotation
}

func NewService(rotator rotating.Rotator, cfg config.Rotation) Reporter {
	return &Service{
		rotator: rotator,
		cfg:     cfg,
	}
}

// Build compara a carteira do grupo antes e depois da última rodada. Sem rodada, a base
// atual é usada nos dois lados.
func (s *Service) Build(ctx context.Context, request *Request) (*domain.PortfolioReport, error) {
	var report *domain.PortfolioReport

	run, err := s.rotator.LastRun(request.Group)
	switch {
	case err == nil:
		report = rotation.BuildFromRun(run, s.cfg.CutoffDays)

	case errors.Is(err, rotating.ErrRunNotFound):
		logrus.WithField("grupo", request.Group).Warn("Nenhuma rotação foi realizada. Usando base atual para gerar relatório.")

		snapshot, err := s.rotator.Prepare(ctx, request.Group, request.Reference)
		if err != nil {
			return nil, err
		}
		report = rotation.Build(snapshot.Before, snapshot.Before, snapshot.Cutoff, snapshot.RotationDate)

	default:
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"grupo":      request.Group,
		"vendedores": len(report.Salespeople),
		"data":       report.RotationDate.Format(time.DateOnly),
	}).Info("Relatório de carteira montado")

	return report, nil
}

// Bundle gera um xlsx por vendedor e o consolidado, compactados em relatorios_rotacao.zip
func (s *Service) Bundle(ctx context.Context, request *Request) (*domain.ReportBundle, error) {
	report, err := s.Build(ctx, request)
	if err != nil {
		return nil, err
	}

	files, err := spreadsheet.BuildReportFiles(report)
	if err != nil {
		return nil, rotating.NewGroupRotationError(ErrReportGeneration, apiErrors.ErrInternalServer, string(request.Group), err.Error())
	}

	if request.Save && s.cfg.OutputDir != "" {
		if err := spreadsheet.SaveFiles(s.cfg.OutputDir, files); err != nil {
			return nil, rotating.NewGroupRotationError(ErrReportGeneration, apiErrors.ErrInternalServer, string(request.Group), err.Error())
		}
		logrus.Infof("Relatórios gravados em %s", s.cfg.OutputDir)
	}

	var archive bytes.Buffer
	if err := spreadsheet.Zip(&archive, files); err != nil {
		return nil, rotating.NewGroupRotationError(ErrReportGeneration, apiErrors.ErrInternalServer, string(request.Group), fmt.Sprintf("erro ao compactar relatórios: %v", err))
	}

	metrics.ReportsGenerated.WithLabelValues(string(request.Group)).Inc()

	return &domain.ReportBundle{
		FileName: spreadsheet.BundleFileName,
		Content:  archive.Bytes(),
	}, nil
}
