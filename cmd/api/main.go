package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/portfolio-rotation-api/infrastructure/database"
	"github.com/vfg2006/portfolio-rotation-api/infrastructure/migration"
	"github.com/vfg2006/portfolio-rotation-api/infrastructure/repository"
	"github.com/vfg2006/portfolio-rotation-api/infrastructure/warehouse"
	"github.com/vfg2006/portfolio-rotation-api/internal/api"
	"github.com/vfg2006/portfolio-rotation-api/internal/config"
	"github.com/vfg2006/portfolio-rotation-api/internal/scheduler"
	"github.com/vfg2006/portfolio-rotation-api/internal/usecases/authenticating"
	"github.com/vfg2006/portfolio-rotation-api/internal/usecases/registering"
	"github.com/vfg2006/portfolio-rotation-api/internal/usecases/reporting"
	"github.com/vfg2006/portfolio-rotation-api/internal/usecases/rotating"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conn := dbconn(ctx, cfg.Database)
	defer conn.Close()

	source, err := warehouse.NewSQLServerSource(cfg.Warehouse)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao configurar o data warehouse")
	}
	defer source.Close()

	// Data warehouse fora do ar não impede a subida da API
	if err := source.Ping(ctx); err != nil {
		logrus.WithError(err).Warn("Data warehouse indisponível na inicialização")
	}

	salespersonRepo := repository.NewSalespersonRepository(conn)
	historyRepo := repository.NewRotationHistoryRepository(conn)

	authenticator := authenticating.NewService(cfg.Auth)
	registry := registering.NewService(salespersonRepo, source)
	rotator := rotating.NewService(source, salespersonRepo, historyRepo, cfg.Rotation)
	reporter := reporting.NewService(rotator, cfg.Rotation)

	registrySyncService := scheduler.NewRegistrySyncService(registry, cfg)
	if err := registrySyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de vendedores")
	} else {
		logrus.Info("Agendador de sincronização de vendedores iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Services{
		Authenticator:       authenticator,
		Registry:            registry,
		Rotator:             rotator,
		Reporter:            reporter,
		RegistrySyncService: registrySyncService,
		Database:            conn,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// dbconn abre o banco do histórico e aplica as migrações
func dbconn(ctx context.Context, dbConfig config.Database) *database.Connection {
	conn, err := database.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao banco de histórico")
	}

	if err := migration.Up(ctx, conn); err != nil {
		logrus.WithError(err).Fatal("Erro ao aplicar migrações")
	}

	logrus.WithField("driver", conn.Driver()).Info("Conexão com o banco de histórico estabelecida com sucesso")
	return conn
}
