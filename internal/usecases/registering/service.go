package registering

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/portfolio-rotation-api/infrastructure/repository"
	"github.com/vfg2006/portfolio-rotation-api/infrastructure/warehouse"
	"github.com/vfg2006/portfolio-rotation-api/internal/domain"
	"github.com/vfg2006/portfolio-rotation-api/pkg/apiErrors"
	"github.com/vfg2006/portfolio-rotation-api/pkg/metrics"
)

type Registry interface {
	Create(ctx context.Context, request *domain.CreateSalespersonRequest) (*domain.Salesperson, error)
	List(ctx context.Context) ([]*domain.Salesperson, error)
	ListGrouped(ctx context.Context) (*domain.SalespeopleByGroup, error)
	ListByGroup(ctx context.Context, group domain.SalesGroup) ([]string, error)
	Delete(ctx context.Context, name string) error
	SyncFromWarehouse(ctx context.Context) (*domain.SyncSalespeopleResponse, error)
}

type Service struct {
	salespersonRepository repository.SalespersonRepository
	source                warehouse.Source
}

func NewService(salespersonRepository repository.SalespersonRepository, source warehouse.Source) Registry {
	return &Service{
		salespersonRepository: salespersonRepository,
		source:                source,
	}
}

func (s *Service) Create(ctx context.Context, request *domain.CreateSalespersonRequest) (*domain.Salesperson, error) {
	name := strings.TrimSpace(request.Name)
	if name == "" {
		return nil, NewRegistryError(ErrNameRequired, apiErrors.ErrMissingRequiredData, "Informe o nome do vendedor")
	}

	group := request.Group
	if group == "" {
		group = domain.SalesGroupDistribution
	}

	if !group.IsValid() {
		return nil, NewRegistryErrorWithName(ErrInvalidGroup, apiErrors.ErrInvalidRequest, name, fmt.Sprintf("Grupo %q não existe", group))
	}

	salesperson, err := s.salespersonRepository.Create(ctx, &domain.Salesperson{Name: name, Group: group})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, NewRegistryErrorWithName(ErrDuplicateRegistration, apiErrors.ErrDuplicateRegistration, name, "Vendedor já existe no banco de dados")
		}
		return nil, NewRegistryErrorWithName(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, name, err.Error())
	}

	logrus.WithFields(logrus.Fields{"vendedor": name, "grupo": group}).Info("Vendedor cadastrado")
	return salesperson, nil
}

func (s *Service) List(ctx context.Context) ([]*domain.Salesperson, error) {
	salespeople, err := s.salespersonRepository.List(ctx)
	if err != nil {
		return nil, NewRegistryError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar vendedores")
	}

	return salespeople, nil
}

// ListGrouped separa os nomes cadastrados pelos três grupos de vendas
func (s *Service) ListGrouped(ctx context.Context) (*domain.SalespeopleByGroup, error) {
	salespeople, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	grouped := &domain.SalespeopleByGroup{
		Distribution: make([]string, 0),
		Corporate:    make([]string, 0),
		Other:        make([]string, 0),
	}

	for _, salesperson := range salespeople {
		switch salesperson.Group {
		case domain.SalesGroupDistribution:
			grouped.Distribution = append(grouped.Distribution, salesperson.Name)
		case domain.SalesGroupCorporate:
			grouped.Corporate = append(grouped.Corporate, salesperson.Name)
		default:
			grouped.Other = append(grouped.Other, salesperson.Name)
		}
	}

	return grouped, nil
}

func (s *Service) ListByGroup(ctx context.Context, group domain.SalesGroup) ([]string, error) {
	if !group.IsValid() {
		return nil, NewRegistryError(ErrInvalidGroup, apiErrors.ErrInvalidRequest, fmt.Sprintf("Grupo %q não existe", group))
	}

	names, err := s.salespersonRepository.ListByGroup(ctx, group)
	if err != nil {
		return nil, NewRegistryError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, fmt.Sprintf("Falha ao listar vendedores do grupo %s", group))
	}

	return names, nil
}

func (s *Service) Delete(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return NewRegistryError(ErrNameRequired, apiErrors.ErrMissingRequiredData, "Informe o nome do vendedor")
	}

	deleted, err := s.salespersonRepository.Delete(ctx, name)
	if err != nil {
		return NewRegistryErrorWithName(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, name, err.Error())
	}

	if !deleted {
		return NewRegistryErrorWithName(ErrSalespersonNotFound, apiErrors.ErrRegistrationNotFound, name, "Vendedor não encontrado no cadastro")
	}

	logrus.WithField("vendedor", name).Info("Vendedor removido do cadastro")
	return nil
}

// SyncFromWarehouse insere os vendedores ativos do data warehouse que ainda não estão
// cadastrados, sempre no grupo Distribuição
func (s *Service) SyncFromWarehouse(ctx context.Context) (*domain.SyncSalespeopleResponse, error) {
	response := &domain.SyncSalespeopleResponse{
		Quantity: 0,
		Message:  "Erro ao sincronizar vendedores",
		Error:    true,
	}

	names, err := s.source.ListActiveSalespeople(ctx)
	if err != nil {
		metrics.RegistrySyncs.WithLabelValues(metrics.ResultError).Inc()
		logrus.WithError(err).Error("Falha ao buscar vendedores no data warehouse")
		return response, NewRegistryError(ErrSourceUnavailable, apiErrors.ErrExternalService, err.Error())
	}

	inserted, err := s.salespersonRepository.InsertIgnore(ctx, names, domain.SalesGroupDistribution)
	if err != nil {
		metrics.RegistrySyncs.WithLabelValues(metrics.ResultError).Inc()
		return response, NewRegistryError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}

	metrics.RegistrySyncs.WithLabelValues(metrics.ResultOK).Inc()
	logrus.Infof("Sincronização de vendedores concluída: %d encontrados, %d novos", len(names), inserted)

	response.Quantity = inserted
	response.Message = fmt.Sprintf("%d novos vendedores cadastrados", inserted)
	response.Error = false

	return response, nil
}
