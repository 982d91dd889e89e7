package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/portfolio-rotation-api/infrastructure/database"
	"github.com/vfg2006/portfolio-rotation-api/infrastructure/migration"
	"github.com/vfg2006/portfolio-rotation-api/infrastructure/repository"
	"github.com/vfg2006/portfolio-rotation-api/infrastructure/warehouse"
	"github.com/vfg2006/portfolio-rotation-api/internal/config"
	"github.com/vfg2006/portfolio-rotation-api/internal/usecases/registering"
	"github.com/vfg2006/portfolio-rotation-api/internal/usecases/reporting"
	"github.com/vfg2006/portfolio-rotation-api/internal/usecases/rotating"
)

// app reúne os casos de uso usados pelos comandos
type app struct {
	cfg      *config.Config
	registry registering.Registry
	rotator  rotating.Rotator
	reporter reporting.Reporter
	close    func()
}

type appLoader func(ctx context.Context) (*app, error)

// loadApp monta os serviços com a mesma configuração da API
func loadApp(ctx context.Context) (*app, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}

	if level, err := logrus.ParseLevel(cfg.App.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	conn, err := database.NewConnection(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("erro ao conectar ao banco de histórico: %w", err)
	}

	if err := migration.Up(ctx, conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("erro ao aplicar migrações: %w", err)
	}

	source, err := warehouse.NewSQLServerSource(cfg.Warehouse)
	if err != nil {
		conn.Close()
		return nil, err
	}

	salespersonRepo := repository.NewSalespersonRepository(conn)
	historyRepo := repository.NewRotationHistoryRepository(conn)
	rotator := rotating.NewService(source, salespersonRepo, historyRepo, cfg.Rotation)

	return &app{
		cfg:      cfg,
		registry: registering.NewService(salespersonRepo, source),
		rotator:  rotator,
		reporter: reporting.NewService(rotator, cfg.Rotation),
		close: func() {
			source.Close()
			conn.Close()
		},
	}, nil
}
