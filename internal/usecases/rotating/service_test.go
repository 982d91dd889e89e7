package rotating

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/portfolio-rotation-api/infrastructure/repository/mocks"
	"github.com/vfg2006/portfolio-rotation-api/infrastructure/spreadsheet"
	warehousemocks "github.com/vfg2006/portfolio-rotation-api/infrastructure/warehouse/mocks"
	"github.com/vfg2006/portfolio-rotation-api/internal/config"
	"github.com/vfg2006/portfolio-rotation-api/internal/domain"
	"github.com/vfg2006/portfolio-rotation-api/internal/rotation"
	"github.com/vfg2006/portfolio-rotation-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2025, 7, 1, 10, 30, 0, 0, time.Local)

type fixture struct {
	source      *warehousemocks.MockSource
	salespeople *mocks.MockSalespersonRepository
	history     *mocks.MockRotationHistoryRepository
	service     *Service
	logFile     string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &fixture{
		source:      warehousemocks.NewMockSource(ctrl),
		salespeople: mocks.NewMockSalespersonRepository(ctrl),
		history:     mocks.NewMockRotationHistoryRepository(ctrl),
		logFile:     filepath.Join(t.TempDir(), "historico_rotacoes_completo.xlsx"),
	}

	f.service = NewService(f.source, f.salespeople, f.history, config.Rotation{
		PerPersonCap:        50,
		CutoffDays:          180,
		DistributionCodes:   []int{5, 7},
		CumulativeLogFile:   f.logFile,
		DefaultTransferDate: time.Date(2025, 3, 20, 0, 0, 0, 0, time.Local),
	}, WithRand(rand.New(rand.NewSource(1))), WithClock(func() time.Time { return fixedNow }))

	return f
}

// snapshotAccounts devolve uma conta elegível da Carla e uma conta que ainda compra
func snapshotAccounts() []*domain.Account {
	recentPurchase := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	opened := time.Date(2020, 1, 1, 0, 0, 0, 0, time.Local)

	return []*domain.Account{
		{
			ID:                 1,
			DisplayName:        "Ótica Dormente",
			TaxRootID:          "111",
			SalespersonName:    "Carla",
			Revenue6Mo:         decimal.Zero,
			AccountOpenedDate:  opened,
			ClassificationCode: 5,
		},
		{
			ID:                    2,
			DisplayName:           "Ótica Ativa",
			TaxRootID:             "222",
			SalespersonName:       "Carla",
			Revenue6Mo:            decimal.NewFromInt(900),
			AccountOpenedDate:     opened,
			LastGroupPurchaseDate: &recentPurchase,
			ClassificationCode:    5,
		},
	}
}

func (f *fixture) expectPrepare() {
	f.source.EXPECT().FetchAccounts(gomock.Any()).Return(snapshotAccounts(), nil)
	f.history.EXPECT().LastRotationDates(gomock.Any(), []int64{1, 2}).Return(map[int64]time.Time{}, nil)
	f.salespeople.EXPECT().
		ListByGroup(gomock.Any(), domain.SalesGroupDistribution).
		Return([]string{"Ana", "Bruno", "Carla"}, nil)
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()

	var rotationErr *RotationError
	require.True(t, errors.As(err, &rotationErr), "erro inesperado: %v", err)
	assert.Equal(t, code, rotationErr.Code)
}

func TestService_Run(t *testing.T) {
	t.Run("Rotaciona evitando vendedores do histórico e o dono atual", func(t *testing.T) {
		f := newFixture(t)
		f.expectPrepare()
		f.history.EXPECT().
			PriorHolders(gomock.Any(), []string{"00000000000111"}).
			Return(map[string][]string{"00000000000111": {"Ana"}}, nil)

		var recorded []*domain.RotationEvent
		f.history.EXPECT().
			RecordBatch(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, events []*domain.RotationEvent) error {
				recorded = events
				return nil
			})

		run, err := f.service.Run(context.Background(), &RunRequest{Group: domain.SalesGroupDistribution})

		require.NoError(t, err)
		assert.NotEmpty(t, run.ID)
		assert.Len(t, run.Before, 2)
		require.Len(t, run.Eligible, 1)
		require.Len(t, run.Rotated, 1)
		assert.Empty(t, run.Leftover)
		assert.Equal(t, "Bruno", run.Rotated[0].SalespersonName)
		assert.Equal(t, "2025-07-01", run.RotationDate.Format(time.DateOnly))

		require.Len(t, recorded, 1)
		assert.Equal(t, "Bruno", recorded[0].SalespersonName)
		assert.Equal(t, int64(1), recorded[0].AccountID)
		assert.Equal(t, domain.RotationTypeAutomatic, recorded[0].Type)

		assert.Equal(t, "Foram encontradas 1 clientes disponíveis para rotação e 1 foram rotacionados com sucesso.", Summary(run))

		last, err := f.service.LastRun(domain.SalesGroupDistribution)
		require.NoError(t, err)
		assert.Same(t, run, last)

		_, err = os.Stat(f.logFile)
		assert.NoError(t, err)
	})

	t.Run("Planilha de referência transfere a conta antes da rotação", func(t *testing.T) {
		f := newFixture(t)
		f.expectPrepare()
		f.history.EXPECT().PriorHolders(gomock.Any(), gomock.Any()).Return(map[string][]string{}, nil)
		f.history.EXPECT().RecordBatch(gomock.Any(), gomock.Any()).Return(nil)

		reference := domain.TransferReference{
			"00000000000222": {TaxRootID: "00000000000222", SalespersonName: "Ana"},
		}

		run, err := f.service.Run(context.Background(), &RunRequest{Group: domain.SalesGroupDistribution, Reference: reference})

		require.NoError(t, err)
		for _, account := range run.Before {
			if account.TaxRootID == "00000000000222" {
				assert.Equal(t, "Ana", account.SalespersonName)
				require.NotNil(t, account.EnteredPortfolioDate)
			}
		}
	})

	t.Run("Simulação não grava histórico nem arquivo acumulado", func(t *testing.T) {
		f := newFixture(t)
		f.expectPrepare()
		f.history.EXPECT().PriorHolders(gomock.Any(), gomock.Any()).Return(map[string][]string{}, nil)

		run, err := f.service.Run(context.Background(), &RunRequest{Group: domain.SalesGroupDistribution, DryRun: true})

		require.NoError(t, err)
		assert.Len(t, run.Rotated, 1)

		_, err = os.Stat(f.logFile)
		assert.True(t, os.IsNotExist(err))

		_, err = f.service.LastRun(domain.SalesGroupDistribution)
		assert.ErrorIs(t, err, ErrRunNotFound)

		var buf bytes.Buffer
		_, err = f.service.WriteRotated(&buf, domain.SalesGroupDistribution)
		assert.ErrorIs(t, err, ErrRunNotFound)
		assert.Zero(t, buf.Len())
	})

	t.Run("Simulação depois de rodada gravada mantém a rodada gravada", func(t *testing.T) {
		f := newFixture(t)
		f.expectPrepare()
		f.history.EXPECT().PriorHolders(gomock.Any(), gomock.Any()).Return(map[string][]string{}, nil)
		f.history.EXPECT().RecordBatch(gomock.Any(), gomock.Any()).Return(nil).Times(1)

		recorded, err := f.service.Run(context.Background(), &RunRequest{Group: domain.SalesGroupDistribution})
		require.NoError(t, err)

		f.expectPrepare()
		f.history.EXPECT().PriorHolders(gomock.Any(), gomock.Any()).Return(map[string][]string{}, nil)

		simulated, err := f.service.Run(context.Background(), &RunRequest{Group: domain.SalesGroupDistribution, DryRun: true})
		require.NoError(t, err)
		assert.NotEqual(t, recorded.ID, simulated.ID)

		last, err := f.service.LastRun(domain.SalesGroupDistribution)
		require.NoError(t, err)
		assert.Same(t, recorded, last)
	})

	t.Run("Conta sem raiz de CNPJ é erro de validação", func(t *testing.T) {
		f := newFixture(t)
		accounts := snapshotAccounts()
		accounts[0].TaxRootID = ""
		f.source.EXPECT().FetchAccounts(gomock.Any()).Return(accounts, nil)
		f.history.EXPECT().LastRotationDates(gomock.Any(), []int64{1, 2}).Return(map[int64]time.Time{}, nil)

		run, err := f.service.Run(context.Background(), &RunRequest{Group: domain.SalesGroupDistribution})

		assert.Nil(t, run)
		assert.ErrorIs(t, err, rotation.ErrMissingTaxRoot)
		assert.NotErrorIs(t, err, ErrSourceUnavailable)
		requireCode(t, err, apiErrors.ErrInvalidFormat)
	})

	t.Run("Limite zero envia todas as elegíveis para as sobras", func(t *testing.T) {
		f := newFixture(t)
		f.expectPrepare()
		f.history.EXPECT().PriorHolders(gomock.Any(), gomock.Any()).Return(map[string][]string{}, nil)

		zero := 0
		run, err := f.service.Run(context.Background(), &RunRequest{Group: domain.SalesGroupDistribution, Cap: &zero})

		require.NoError(t, err)
		assert.Empty(t, run.Rotated)
		assert.Len(t, run.Leftover, 1)
		assert.Equal(t, 0, run.Cap)
	})

	t.Run("Data warehouse indisponível aborta sem gravar", func(t *testing.T) {
		f := newFixture(t)
		f.source.EXPECT().FetchAccounts(gomock.Any()).Return(nil, errors.New("login failed"))

		run, err := f.service.Run(context.Background(), &RunRequest{Group: domain.SalesGroupDistribution})

		assert.Nil(t, run)
		assert.ErrorIs(t, err, ErrSourceUnavailable)
		requireCode(t, err, apiErrors.ErrExternalService)

		_, err = f.service.LastRun(domain.SalesGroupDistribution)
		assert.ErrorIs(t, err, ErrRunNotFound)
	})

	t.Run("Grupo sem vendedores cadastrados é erro de validação", func(t *testing.T) {
		f := newFixture(t)
		f.source.EXPECT().FetchAccounts(gomock.Any()).Return(snapshotAccounts(), nil)
		f.history.EXPECT().LastRotationDates(gomock.Any(), gomock.Any()).Return(nil, nil)
		f.salespeople.EXPECT().ListByGroup(gomock.Any(), domain.SalesGroupDistribution).Return([]string{}, nil)
		f.history.EXPECT().PriorHolders(gomock.Any(), gomock.Any()).Return(nil, nil)

		_, err := f.service.Run(context.Background(), &RunRequest{Group: domain.SalesGroupDistribution})

		assert.ErrorIs(t, err, rotation.ErrEmptyCandidatePool)
		requireCode(t, err, apiErrors.ErrInvalidRequest)
	})

	t.Run("Falha ao gravar histórico não reporta contas rotacionadas", func(t *testing.T) {
		f := newFixture(t)
		f.expectPrepare()
		f.history.EXPECT().PriorHolders(gomock.Any(), gomock.Any()).Return(map[string][]string{}, nil)
		f.history.EXPECT().RecordBatch(gomock.Any(), gomock.Any()).Return(errors.New("database is locked"))

		run, err := f.service.Run(context.Background(), &RunRequest{Group: domain.SalesGroupDistribution})

		assert.Nil(t, run)
		assert.ErrorIs(t, err, rotation.ErrHistoryWrite)
		requireCode(t, err, apiErrors.ErrDatabaseOperation)

		_, err = f.service.LastRun(domain.SalesGroupDistribution)
		assert.ErrorIs(t, err, ErrRunNotFound)
	})

	t.Run("Segunda rodada simultânea é rejeitada", func(t *testing.T) {
		f := newFixture(t)
		f.service.runMutex.Lock()
		defer f.service.runMutex.Unlock()

		_, err := f.service.Run(context.Background(), &RunRequest{Group: domain.SalesGroupCorporate})

		assert.ErrorIs(t, err, ErrRunInProgress)
		requireCode(t, err, apiErrors.ErrRunInProgress)
	})

	t.Run("Grupo inválido é rejeitado", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.Run(context.Background(), &RunRequest{Group: "Varejo"})

		assert.ErrorIs(t, err, ErrInvalidGroup)
	})
}

func TestService_WriteRotated(t *testing.T) {
	f := newFixture(t)

	var buffer bytes.Buffer
	_, err := f.service.WriteRotated(&buffer, domain.SalesGroupCorporate)
	assert.ErrorIs(t, err, ErrRunNotFound)

	f.expectPrepare()
	f.history.EXPECT().PriorHolders(gomock.Any(), gomock.Any()).Return(map[string][]string{}, nil)
	f.history.EXPECT().RecordBatch(gomock.Any(), gomock.Any()).Return(nil)

	_, err = f.service.Run(context.Background(), &RunRequest{Group: domain.SalesGroupDistribution})
	require.NoError(t, err)

	fileName, err := f.service.WriteRotated(&buffer, domain.SalesGroupDistribution)
	require.NoError(t, err)
	assert.Equal(t, "historico_2025-07-01.xlsx", fileName)

	reference, err := spreadsheet.ReadReference(bytes.NewReader(buffer.Bytes()), spreadsheet.DefaultSheetName)
	require.NoError(t, err)
	assert.Contains(t, reference, "00000000000111")
}

func TestService_RecordManual(t *testing.T) {
	tests := []struct {
		name    string
		request *domain.ManualRotationRequest
		setup   func(f *fixture)
		wantErr error
	}{
		{
			name:    "Registra evento manual com a data de hoje",
			request: &domain.ManualRotationRequest{AccountID: 1, TaxRootID: "111", SalespersonName: " Ana "},
			setup: func(f *fixture) {
				f.salespeople.EXPECT().
					GetByName(gomock.Any(), "Ana").
					Return(&domain.Salesperson{ID: 1, Name: "Ana"}, nil)
				f.history.EXPECT().
					Record(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, event *domain.RotationEvent) error {
						assert.Equal(t, "Ana", event.SalespersonName)
						assert.Equal(t, int64(1), event.AccountID)
						assert.Equal(t, "00000000000111", event.TaxRootID)
						assert.Equal(t, "2025-07-01", event.RotationDate.Format(time.DateOnly))
						return nil
					})
			},
		},
		{
			name:    "Vendedor fora do cadastro é rejeitado",
			request: &domain.ManualRotationRequest{AccountID: 1, TaxRootID: "111", SalespersonName: "Zé"},
			setup: func(f *fixture) {
				f.salespeople.EXPECT().GetByName(gomock.Any(), "Zé").Return(nil, nil)
			},
			wantErr: ErrNotRegistered,
		},
		{
			name:    "Conta ausente é rejeitada",
			request: &domain.ManualRotationRequest{TaxRootID: "111", SalespersonName: "Ana"},
			setup:   func(f *fixture) {},
			wantErr: ErrInvalidRequest,
		},
		{
			name:    "Raiz ausente é rejeitada",
			request: &domain.ManualRotationRequest{AccountID: 1, SalespersonName: "Ana"},
			setup:   func(f *fixture) {},
			wantErr: ErrInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			event, err := f.service.RecordManual(context.Background(), tt.request)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, event)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, domain.RotationTypeManual, event.Type)
		})
	}
}
