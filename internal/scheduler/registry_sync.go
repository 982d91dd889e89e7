package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/portfolio-rotation-api/internal/config"
	"github.com/vfg2006/portfolio-rotation-api/internal/domain"
	"github.com/vfg2006/portfolio-rotation-api/internal/usecases/registering"
)

// RegistrySyncConfig representa a configuração do agendador de sincronização de vendedores
type RegistrySyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
	Timeout      time.Duration
}

// RegistrySyncService copia periodicamente os vendedores ativos do data warehouse para o cadastro
type RegistrySyncService struct {
	scheduler           *gocron.Scheduler
	config              RegistrySyncConfig
	registry            registering.Registry
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncResult      *domain.SyncSalespeopleResponse
}

func NewRegistrySyncService(registry registering.Registry, appConfig *config.Config) *RegistrySyncService {
	syncConfig := RegistrySyncConfig{
		CronSchedule: appConfig.RegistrySync.CronSchedule,
		SyncEnabled:  appConfig.RegistrySync.Enabled,
		Timeout:      5 * time.Minute,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de sincronização de vendedores carregada")

	return &RegistrySyncService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    syncConfig,
		registry:  registry,
	}
}

// Start inicia o agendador
func (s *RegistrySyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de vendedores desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização de vendedores")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncSalespeople(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de vendedores: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de vendedores")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *RegistrySyncService) syncSalespeople(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de vendedores já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	syncCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	startTime := time.Now()
	response, err := s.registry.SyncFromWarehouse(syncCtx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao sincronizar vendedores do data warehouse")
		response = &domain.SyncSalespeopleResponse{
			Message: err.Error(),
			Error:   true,
		}
	}

	logrus.WithFields(logrus.Fields{
		"duration": time.Since(startTime).String(),
		"novos":    response.Quantity,
	}).Info("Sincronização de vendedores concluída")

	s.syncMutex.Lock()
	s.lastSyncResult = response
	s.lastSyncCompletedAt = time.Now()
	s.syncMutex.Unlock()
}

// TriggerManualSync inicia manualmente uma sincronização de vendedores
func (s *RegistrySyncService) TriggerManualSync() bool {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de vendedores já em andamento, ignorando solicitação manual")
		return false
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando sincronização manual de vendedores")
	go s.syncSalespeople(context.Background())
	return true
}

// GetStatus retorna o status atual da sincronização
func (s *RegistrySyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.SyncEnabled,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_result":       s.lastSyncResult,
	}
}
