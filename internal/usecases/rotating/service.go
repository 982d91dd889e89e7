package rotating

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/portfolio-rotation-api/infrastructure/repository"
	"github.com/vfg2006/portfolio-rotation-api/infrastructure/spreadsheet"
	"github.com/vfg2006/portfolio-rotation-api/infrastructure/warehouse"
	"github.com/vfg2006/portfolio-rotation-api/internal/config"
	"github.com/vfg2006/portfolio-rotation-api/internal/domain"
	"github.com/vfg2006/portfolio-rotation-api/internal/rotation"
	"github.com/vfg2006/portfolio-rotation-api/pkg/apiErrors"
	"github.com/vfg2006/portfolio-rotation-api/pkg/metrics"
	"github.com/vfg2006/portfolio-rotation-api/pkg/utils"
)

type RunRequest struct {
	Group     domain.SalesGroup
	Reference domain.TransferReference
	Cap       *int
	// DryRun sorteia sem gravar histórico nem o arquivo acumulado
	DryRun bool
}

// Snapshot é a base enriquecida de uma rodada, antes da distribuição
type Snapshot struct {
	Group        domain.SalesGroup
	RotationDate time.Time
	Cutoff       time.Time
	Candidates   []string
	Accounts     []*domain.Account
	Before       []*domain.Account
}

type Rotator interface {
	Prepare(ctx context.Context, group domain.SalesGroup, reference domain.TransferReference) (*Snapshot, error)
	Run(ctx context.Context, request *RunRequest) (*domain.RotationRun, error)
	LastRun(group domain.SalesGroup) (*domain.RotationRun, error)
	WriteRotated(w io.Writer, group domain.SalesGroup) (string, error)
	RecordManual(ctx context.Context, request *domain.ManualRotationRequest) (*domain.RotationEvent, error)
	History(ctx context.Context, filter repository.HistoryFilter) ([]*domain.RotationEvent, error)
}

var _ Rotator = (*Service)(nil)

type Option func(*Service)

// WithRand fixa o gerador usado no sorteio dos vendedores
func WithRand(rng *rand.Rand) Option {
	return func(s *Service) {
		s.rng = rng
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

type Service struct {
	source                warehouse.Source
	salespersonRepository repository.SalespersonRepository
	historyRepository     repository.RotationHistoryRepository
	cfg                   config.Rotation
	rng                   *rand.Rand
	now                   func() time.Time

	// runMutex serializa busca, sorteio e gravação do histórico
	runMutex sync.Mutex

	lastRunsMutex sync.RWMutex
	lastRuns      map[domain.SalesGroup]*domain.RotationRun
}

func NewService(
	source warehouse.Source,
	salespersonRepository repository.SalespersonRepository,
	historyRepository repository.RotationHistoryRepository,
	cfg config.Rotation,
	opts ...Option,
) *Service {
	seed := cfg.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	service := &Service{
		source:                source,
		salespersonRepository: salespersonRepository,
		historyRepository:     historyRepository,
		cfg:                   cfg,
		rng:                   rand.New(rand.NewSource(seed)),
		now:                   time.Now,
		lastRuns:              make(map[domain.SalesGroup]*domain.RotationRun),
	}

	for _, opt := range opts {
		opt(service)
	}

	return service
}

// Prepare busca a base no data warehouse, aplica histórico e planilha de referência e
// separa as contas que hoje pertencem aos vendedores do grupo
func (s *Service) Prepare(ctx context.Context, group domain.SalesGroup, reference domain.TransferReference) (*Snapshot, error) {
	if !group.IsValid() {
		return nil, NewRotationError(ErrInvalidGroup, apiErrors.ErrInvalidRequest, fmt.Sprintf("Grupo %q não existe", group))
	}

	accounts, err := s.source.FetchAccounts(ctx)
	if err != nil {
		logrus.WithError(err).Error("Falha ao buscar contas no data warehouse")
		return nil, NewGroupRotationError(ErrSourceUnavailable, apiErrors.ErrExternalService, string(group), err.Error())
	}

	accounts = rotation.DedupByTaxRoot(accounts)

	accountIDs := make([]int64, 0, len(accounts))
	for _, account := range accounts {
		accountIDs = append(accountIDs, account.ID)
	}

	lastRotations, err := s.historyRepository.LastRotationDates(ctx, accountIDs)
	if err != nil {
		return nil, NewGroupRotationError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, string(group), err.Error())
	}

	now := s.now()
	cutoff := rotation.Cutoff(now, s.cfg.CutoffDays)

	enriched, err := rotation.Enrich(accounts, rotation.EnrichOptions{
		Cutoff:           cutoff,
		LastRotations:    lastRotations,
		Reference:        reference,
		DefaultEntryDate: s.cfg.DefaultTransferDate,
	})
	if err != nil {
		if errors.Is(err, rotation.ErrMissingTaxRoot) {
			return nil, NewGroupRotationError(err, apiErrors.ErrInvalidFormat, string(group), "Conta do data warehouse sem raiz de CNPJ")
		}
		return nil, NewGroupRotationError(err, apiErrors.ErrInternalServer, string(group), "")
	}

	candidates, err := s.salespersonRepository.ListByGroup(ctx, group)
	if err != nil {
		return nil, NewGroupRotationError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, string(group), err.Error())
	}

	snapshot := &Snapshot{
		Group:        group,
		RotationDate: utils.StartOfDay(now),
		Cutoff:       cutoff,
		Candidates:   candidates,
		Accounts:     enriched,
		Before:       rotation.BySalespeople(enriched, candidates),
	}

	logrus.WithFields(logrus.Fields{
		"grupo":      group,
		"contas":     len(enriched),
		"carteira":   len(snapshot.Before),
		"vendedores": len(candidates),
		"referencia": len(reference),
	}).Info("Base de rotação preparada")

	return snapshot, nil
}

// Run executa uma rodada completa para o grupo. Apenas uma rodada por vez é aceita.
func (s *Service) Run(ctx context.Context, request *RunRequest) (run *domain.RotationRun, err error) {
	if request == nil {
		return nil, NewRotationError(ErrInvalidRequest, apiErrors.ErrInvalidRequest, "Requisição vazia")
	}

	if !s.runMutex.TryLock() {
		return nil, NewGroupRotationError(ErrRunInProgress, apiErrors.ErrRunInProgress, string(request.Group), "Aguarde a rotação atual terminar")
	}
	defer s.runMutex.Unlock()

	startedAt := time.Now()
	defer func() {
		metrics.ObserveRun(string(request.Group), startedAt, err)
	}()

	snapshot, err := s.Prepare(ctx, request.Group, request.Reference)
	if err != nil {
		return nil, err
	}

	eligible := rotation.FilterByGroup(
		rotation.Eligible(snapshot.Accounts, snapshot.Cutoff),
		request.Group,
		s.cfg.DistributionCodes,
	)

	holders, err := s.priorHolders(ctx, eligible, snapshot.Accounts)
	if err != nil {
		return nil, NewGroupRotationError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, string(request.Group), err.Error())
	}

	perPersonCap := s.cfg.PerPersonCap
	if request.Cap != nil {
		perPersonCap = *request.Cap
	}

	var recorder rotation.EventRecorder
	if !request.DryRun {
		recorder = s.historyRepository
	}

	assigner := rotation.NewAssigner(recorder, s.rng, rotation.WithClock(s.now))
	result, err := assigner.Rotate(ctx, eligible, snapshot.Candidates, holders, perPersonCap)
	if err != nil {
		return nil, assignerError(err, request.Group)
	}

	runID, err := utils.GenerateID()
	if err != nil {
		return nil, NewRotationError(err, apiErrors.ErrInternalServer, "Erro ao gerar identificador da rodada")
	}

	run = &domain.RotationRun{
		ID:           runID,
		Group:        request.Group,
		RotationDate: snapshot.RotationDate,
		Cap:          perPersonCap,
		Candidates:   snapshot.Candidates,
		Before:       snapshot.Before,
		Eligible:     eligible,
		Rotated:      result.Rotated,
		Leftover:     result.Leftover,
		Events:       result.Events,
		StartedAt:    startedAt,
		CompletedAt:  time.Now(),
	}

	if !request.DryRun && len(result.Rotated) > 0 && s.cfg.CumulativeLogFile != "" {
		// O histórico no banco já foi gravado; falha no arquivo acumulado não desfaz a rodada
		if _, err := spreadsheet.AppendCumulativeLog(s.cfg.CumulativeLogFile, result.Rotated); err != nil {
			logrus.WithError(err).Warn("Não foi possível atualizar o histórico acumulado em xlsx")
		}
	}

	// Simulação não substitui a última rodada gravada
	if !request.DryRun {
		s.lastRunsMutex.Lock()
		s.lastRuns[request.Group] = run
		s.lastRunsMutex.Unlock()
	}

	group := string(request.Group)
	metrics.RotationAccounts.WithLabelValues(group, metrics.OutcomeRotated).Add(float64(len(result.Rotated)))
	metrics.RotationAccounts.WithLabelValues(group, metrics.OutcomeLeftover).Add(float64(len(result.Leftover)))

	logrus.WithFields(logrus.Fields{
		"id":       run.ID,
		"grupo":    group,
		"simulado": request.DryRun,
		"duracao":  run.CompletedAt.Sub(run.StartedAt).String(),
	}).Info(Summary(run))

	return run, nil
}

// priorHolders junta os vendedores do histórico com os donos atuais de cada raiz no snapshot
func (s *Service) priorHolders(ctx context.Context, eligible, snapshot []*domain.Account) (rotation.PriorHolders, error) {
	roots := make([]string, 0, len(eligible))
	for _, account := range eligible {
		roots = append(roots, account.TaxRootID)
	}

	recorded, err := s.historyRepository.PriorHolders(ctx, roots)
	if err != nil {
		return nil, err
	}

	holders := rotation.PriorHolders{}
	for root, names := range recorded {
		for _, name := range names {
			holders.Add(root, name)
		}
	}

	return holders.Merge(snapshot), nil
}

func assignerError(err error, group domain.SalesGroup) error {
	switch {
	case errors.Is(err, rotation.ErrInvalidCap), errors.Is(err, rotation.ErrEmptyCandidatePool):
		return NewGroupRotationError(err, apiErrors.ErrInvalidRequest, string(group), "Verifique o limite por vendedor e o cadastro do grupo")
	case errors.Is(err, rotation.ErrHistoryWrite):
		return NewGroupRotationError(err, apiErrors.ErrDatabaseOperation, string(group), "Nenhuma conta foi rotacionada")
	default:
		return NewGroupRotationError(err, apiErrors.ErrInternalServer, string(group), "")
	}
}

func (s *Service) LastRun(group domain.SalesGroup) (*domain.RotationRun, error) {
	s.lastRunsMutex.RLock()
	defer s.lastRunsMutex.RUnlock()

	run, ok := s.lastRuns[group]
	if !ok {
		return nil, NewGroupRotationError(ErrRunNotFound, apiErrors.ErrRunNotFound, string(group), "Execute a rotação antes de baixar os arquivos")
	}

	return run, nil
}

// WriteRotated grava as contas rotacionadas da última rodada no formato aceito como
// planilha de referência e devolve o nome sugerido do arquivo
func (s *Service) WriteRotated(w io.Writer, group domain.SalesGroup) (string, error) {
	run, err := s.LastRun(group)
	if err != nil {
		return "", err
	}

	if err := spreadsheet.WriteAccounts(w, spreadsheet.DefaultSheetName, run.Rotated); err != nil {
		return "", NewGroupRotationError(err, apiErrors.ErrInternalServer, string(group), "Erro ao gerar planilha de contas rotacionadas")
	}

	return spreadsheet.RotatedFileName(run.RotationDate), nil
}

// RecordManual registra uma reatribuição feita pelo operador fora da rodada automática
func (s *Service) RecordManual(ctx context.Context, request *domain.ManualRotationRequest) (*domain.RotationEvent, error) {
	if request == nil || request.AccountID <= 0 {
		return nil, NewRotationError(ErrInvalidRequest, apiErrors.ErrMissingRequiredData, "account_id é obrigatório")
	}

	name := strings.TrimSpace(request.SalespersonName)
	if name == "" {
		return nil, NewRotationError(ErrInvalidRequest, apiErrors.ErrMissingRequiredData, "salesperson_name é obrigatório")
	}

	root := strings.TrimSpace(request.TaxRootID)
	if root == "" {
		return nil, NewRotationError(ErrInvalidRequest, apiErrors.ErrMissingRequiredData, "tax_root_id é obrigatório")
	}

	salesperson, err := s.salespersonRepository.GetByName(ctx, name)
	if err != nil {
		return nil, NewRotationError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}
	if salesperson == nil {
		return nil, NewRotationError(ErrNotRegistered, apiErrors.ErrRegistrationNotFound, fmt.Sprintf("Vendedor %s não está cadastrado", name))
	}

	event := &domain.RotationEvent{
		SalespersonName: salesperson.Name,
		AccountID:       request.AccountID,
		TaxRootID:       domain.NormalizeTaxRoot(root),
		Type:            domain.RotationTypeManual,
		RotationDate:    utils.StartOfDay(s.now()),
	}

	if err := s.historyRepository.Record(ctx, event); err != nil {
		return nil, NewRotationError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}

	logrus.WithFields(logrus.Fields{
		"vendedor": event.SalespersonName,
		"conta":    event.AccountID,
		"raiz":     event.TaxRootID,
	}).Info("Rotação manual registrada")

	return event, nil
}

func (s *Service) History(ctx context.Context, filter repository.HistoryFilter) ([]*domain.RotationEvent, error) {
	events, err := s.historyRepository.List(ctx, filter)
	if err != nil {
		return nil, NewRotationError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}

	return events, nil
}

// Summary é a mensagem exibida ao operador ao fim da rodada
func Summary(run *domain.RotationRun) string {
	return fmt.Sprintf(
		"Foram encontradas %d clientes disponíveis para rotação e %d foram rotacionados com sucesso.",
		len(run.Eligible),
		len(run.Rotated),
	)
}

// NewRunResponse resume a rodada para a API
func NewRunResponse(run *domain.RotationRun) *domain.RotationRunResponse {
	return &domain.RotationRunResponse{
		ID:            run.ID,
		Group:         run.Group,
		RotationDate:  run.RotationDate.Format(time.DateOnly),
		EligibleCount: len(run.Eligible),
		RotatedCount:  len(run.Rotated),
		LeftoverCount: len(run.Leftover),
		Message:       Summary(run),
		Rotated:       run.Rotated,
		Leftover:      run.Leftover,
	}
}
