package rotation

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/portfolio-rotation-api/internal/domain"
	"github.com/vfg2006/portfolio-rotation-api/internal/rotation/mocks"
	"go.uber.org/mock/gomock"
)

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2025, 7, 10, 14, 0, 0, 0, time.UTC)
	}
}

func rootsOf(accounts []*domain.Account) []string {
	roots := make([]string, 0, len(accounts))
	for _, a := range accounts {
		roots = append(roots, a.TaxRootID)
	}
	return roots
}

func TestAssigner_Rotate_Scenarios(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rootA := domain.NormalizeTaxRoot("A")
	rootB := domain.NormalizeTaxRoot("B")
	rootC := domain.NormalizeTaxRoot("C")

	tests := []struct {
		name     string
		history  PriorHolders
		validate func(t *testing.T, result *Result)
	}{
		{
			name:    "Raiz A já foi de X - A vai para Y e C sobra quando ambos atingem o limite",
			history: PriorHolders{rootA: {"X": {}}},
			validate: func(t *testing.T, result *Result) {
				require.Len(t, result.Rotated, 2)
				assert.Equal(t, rootA, result.Rotated[0].TaxRootID)
				assert.Equal(t, "Y", result.Rotated[0].SalespersonName)
				assert.Equal(t, rootB, result.Rotated[1].TaxRootID)
				assert.Equal(t, "X", result.Rotated[1].SalespersonName)
				assert.Equal(t, []string{rootC}, rootsOf(result.Leftover))
			},
		},
		{
			name:    "Candidatos de B esgotados - B vai para as sobras",
			history: PriorHolders{rootA: {"X": {}}, rootB: {"X": {}}},
			validate: func(t *testing.T, result *Result) {
				require.Len(t, result.Rotated, 2)
				assert.Equal(t, "Y", result.Rotated[0].SalespersonName)
				assert.Equal(t, rootC, result.Rotated[1].TaxRootID)
				assert.Equal(t, "X", result.Rotated[1].SalespersonName)
				assert.Equal(t, []string{rootB}, rootsOf(result.Leftover))
				assert.Equal(t, "Antigo", result.Leftover[0].SalespersonName)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := mocks.NewMockEventRecorder(ctrl)
			recorder.EXPECT().RecordBatch(gomock.Any(), gomock.Len(2)).Return(nil)

			assigner := NewAssigner(recorder, rand.New(rand.NewSource(1)), WithClock(fixedClock()))
			eligible := []*domain.Account{
				eligibleAccount(1, "A"),
				eligibleAccount(2, "B"),
				eligibleAccount(3, "C"),
			}

			result, err := assigner.Rotate(context.Background(), eligible, []string{"X", "Y"}, tt.history, 1)
			require.NoError(t, err)
			tt.validate(t, result)
		})
	}
}

func TestAssigner_Rotate_RotatedAccountsAndEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	today := date(2025, 7, 10)
	recorder := mocks.NewMockEventRecorder(ctrl)

	var recorded []*domain.RotationEvent
	recorder.EXPECT().
		RecordBatch(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, events []*domain.RotationEvent) {
			recorded = events
		}).
		Return(nil)

	source := eligibleAccount(42, "99887766")
	assigner := NewAssigner(recorder, rand.New(rand.NewSource(7)), WithClock(fixedClock()))

	result, err := assigner.Rotate(context.Background(), []*domain.Account{source}, []string{"Novo"}, PriorHolders{}, 50)
	require.NoError(t, err)
	require.Len(t, result.Rotated, 1)

	rotated := result.Rotated[0]
	assert.Equal(t, "Novo", rotated.SalespersonName)
	assert.Equal(t, today, *rotated.EnteredPortfolioDate)
	assert.Equal(t, today, *rotated.LastRotationDate)

	// a conta de entrada não é alterada
	assert.Equal(t, "Antigo", source.SalespersonName)
	assert.Nil(t, source.EnteredPortfolioDate)

	require.Len(t, recorded, 1)
	assert.Equal(t, &domain.RotationEvent{
		SalespersonName: "Novo",
		AccountID:       42,
		TaxRootID:       "00000099887766",
		Type:            domain.RotationTypeAutomatic,
		RotationDate:    today,
	}, recorded[0])
	assert.Equal(t, recorded, result.Events)
}

func TestAssigner_Rotate_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name       string
		candidates []string
		cap        int
		expected   error
	}{
		{
			name:       "Limite negativo",
			candidates: []string{"X"},
			cap:        -1,
			expected:   ErrInvalidCap,
		},
		{
			name:       "Sem candidatos com limite positivo",
			candidates: []string{},
			cap:        3,
			expected:   ErrEmptyCandidatePool,
		},
		{
			name:       "Somente nomes em branco contam como lista vazia",
			candidates: []string{"", "  "},
			cap:        3,
			expected:   ErrEmptyCandidatePool,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := mocks.NewMockEventRecorder(ctrl)
			assigner := NewAssigner(recorder, rand.New(rand.NewSource(1)))

			result, err := assigner.Rotate(context.Background(), []*domain.Account{eligibleAccount(1, "1")}, tt.candidates, nil, tt.cap)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestAssigner_Rotate_ZeroCapSendsEverythingToLeftover(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	recorder := mocks.NewMockEventRecorder(ctrl)
	assigner := NewAssigner(recorder, rand.New(rand.NewSource(1)))

	eligible := []*domain.Account{eligibleAccount(1, "1"), eligibleAccount(2, "2")}
	result, err := assigner.Rotate(context.Background(), eligible, nil, nil, 0)
	require.NoError(t, err)
	assert.Empty(t, result.Rotated)
	assert.Len(t, result.Leftover, 2)
}

func TestAssigner_Rotate_HistoryWriteFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	recorder := mocks.NewMockEventRecorder(ctrl)
	recorder.EXPECT().RecordBatch(gomock.Any(), gomock.Any()).Return(errors.New("disco cheio"))

	assigner := NewAssigner(recorder, rand.New(rand.NewSource(1)))

	result, err := assigner.Rotate(context.Background(), []*domain.Account{eligibleAccount(1, "1")}, []string{"X"}, nil, 1)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrHistoryWrite)
}

func TestAssigner_Rotate_Invariants(t *testing.T) {
	candidates := []string{"Ana", "Bruno", "Carla", "Diego", "Eva"}
	perPersonCap := 7

	for seed := int64(1); seed <= 25; seed++ {
		t.Run(fmt.Sprintf("seed_%d", seed), func(t *testing.T) {
			rng := rand.New(rand.NewSource(seed))

			eligible := make([]*domain.Account, 0, 60)
			history := PriorHolders{}
			for i := 0; i < 60; i++ {
				root := fmt.Sprintf("%08d", i)
				eligible = append(eligible, eligibleAccount(int64(i), root))
				for _, name := range candidates {
					if rng.Intn(3) == 0 {
						history.Add(root, name)
					}
				}
			}

			assigner := NewAssigner(nil, rand.New(rand.NewSource(seed)))
			result, err := assigner.Rotate(context.Background(), eligible, candidates, history, perPersonCap)
			require.NoError(t, err)

			// partição completa e disjunta
			assert.Equal(t, len(eligible), len(result.Rotated)+len(result.Leftover))
			seen := make(map[string]int)
			for _, a := range append(append([]*domain.Account{}, result.Rotated...), result.Leftover...) {
				seen[a.TaxRootID]++
			}
			for _, a := range eligible {
				assert.Equal(t, 1, seen[a.TaxRootID], "raiz %s", a.TaxRootID)
			}

			counts := make(map[string]int)
			for _, a := range result.Rotated {
				counts[a.SalespersonName]++
				assert.False(t, history.Has(a.TaxRootID, a.SalespersonName),
					"raiz %s devolvida para %s", a.TaxRootID, a.SalespersonName)
			}
			for name, count := range counts {
				assert.LessOrEqual(t, count, perPersonCap, "vendedor %s", name)
			}
		})
	}
}

func TestAssigner_Rotate_SameSeedSameResult(t *testing.T) {
	eligible := make([]*domain.Account, 0, 20)
	for i := 0; i < 20; i++ {
		eligible = append(eligible, eligibleAccount(int64(i), fmt.Sprintf("%d", i)))
	}
	candidates := []string{"Ana", "Bruno", "Carla"}

	run := func() []string {
		assigner := NewAssigner(nil, rand.New(rand.NewSource(99)), WithClock(fixedClock()))
		result, err := assigner.Rotate(context.Background(), eligible, candidates, nil, 10)
		require.NoError(t, err)

		names := make([]string, 0, len(result.Rotated))
		for _, a := range result.Rotated {
			names = append(names, a.SalespersonName)
		}
		return names
	}

	assert.Equal(t, run(), run())
}

func TestPriorHolders_Merge(t *testing.T) {
	holders := PriorHolders{}
	holders.Add("123", "Ana")
	holders.Merge([]*domain.Account{
		{TaxRootID: "00000000000123", SalespersonName: "Bruno"},
		{TaxRootID: "456", SalespersonName: ""},
	})

	assert.True(t, holders.Has("123", "Ana"))
	assert.True(t, holders.Has("123", "Bruno"))
	assert.False(t, holders.Has("456", ""))
	assert.False(t, holders.Has("789", "Ana"))
}
