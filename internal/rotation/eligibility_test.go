package rotation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/portfolio-rotation-api/internal/domain"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := date(year, month, day)
	return &d
}

func stringPtr(s string) *string {
	return &s
}

// eligibleAccount devolve uma conta que atende a todas as regras para o limite de 2025-01-11
func eligibleAccount(id int64, root string) *domain.Account {
	return &domain.Account{
		ID:                id,
		DisplayName:       "Cliente " + root,
		TaxRootID:         domain.NormalizeTaxRoot(root),
		SalespersonName:   "Antigo",
		AccountOpenedDate: date(2023, 5, 1),
		Revenue6Mo:        decimal.Zero,
		Status:            domain.AccountStatusNotPurchasing,
	}
}

func TestCutoff(t *testing.T) {
	now := time.Date(2025, 7, 10, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, date(2025, 1, 11), Cutoff(now, 180))
	assert.Equal(t, date(2025, 7, 10), Cutoff(now, 0))
}

func TestStatus(t *testing.T) {
	cutoff := date(2025, 1, 11)

	tests := []struct {
		name         string
		lastPurchase *time.Time
		expected     domain.AccountStatus
	}{
		{
			name:         "Sem compra registrada - Nao Compra",
			lastPurchase: nil,
			expected:     domain.AccountStatusNotPurchasing,
		},
		{
			name:         "Última compra antes do limite - Nao Compra",
			lastPurchase: datePtr(2024, 12, 31),
			expected:     domain.AccountStatusNotPurchasing,
		},
		{
			name:         "Última compra exatamente no limite - Compra",
			lastPurchase: datePtr(2025, 1, 11),
			expected:     domain.AccountStatusPurchasing,
		},
		{
			name:         "Última compra recente - Compra",
			lastPurchase: datePtr(2025, 6, 1),
			expected:     domain.AccountStatusPurchasing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account := &domain.Account{LastGroupPurchaseDate: tt.lastPurchase}
			assert.Equal(t, tt.expected, Status(account, cutoff))
		})
	}
}

func TestApplySinceEntry(t *testing.T) {
	tests := []struct {
		name     string
		account  *domain.Account
		expected [4]int
	}{
		{
			name: "Datas de atividade nulas - contadores zerados",
			account: &domain.Account{
				EnteredPortfolioDate: datePtr(2025, 1, 10),
				LastRotationDate:     datePtr(2025, 1, 10),
				Contacts:             domain.Activity{Total: 4},
				Followups:            domain.Activity{Total: 2},
				Budgets:              domain.Activity{Total: 1},
				Opportunities:        domain.Activity{Total: 3},
			},
			expected: [4]int{0, 0, 0, 0},
		},
		{
			name: "Atividades depois da entrada - credita o total",
			account: &domain.Account{
				EnteredPortfolioDate: datePtr(2025, 1, 10),
				LastRotationDate:     datePtr(2025, 1, 10),
				Contacts:             domain.Activity{Total: 4, LastDate: datePtr(2025, 1, 10)},
				Followups:            domain.Activity{Total: 2, LastDate: datePtr(2025, 3, 1)},
				Budgets:              domain.Activity{Total: 1, LastDate: datePtr(2024, 12, 1)},
				Opportunities:        domain.Activity{Total: 3, LastDate: datePtr(2025, 2, 1)},
			},
			expected: [4]int{4, 2, 0, 3},
		},
		{
			name: "Sem rotação registrada - contadores zerados",
			account: &domain.Account{
				EnteredPortfolioDate: datePtr(2025, 1, 10),
				Contacts:             domain.Activity{Total: 4, LastDate: datePtr(2025, 2, 1)},
			},
			expected: [4]int{0, 0, 0, 0},
		},
		{
			name: "Sem data de entrada - contadores zerados",
			account: &domain.Account{
				LastRotationDate: datePtr(2025, 1, 10),
				Contacts:         domain.Activity{Total: 4, LastDate: datePtr(2025, 2, 1), SinceEntry: 9},
			},
			expected: [4]int{0, 0, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ApplySinceEntry(tt.account)

			assert.Equal(t, tt.expected[0], tt.account.Contacts.SinceEntry)
			assert.Equal(t, tt.expected[1], tt.account.Followups.SinceEntry)
			assert.Equal(t, tt.expected[2], tt.account.Budgets.SinceEntry)
			assert.Equal(t, tt.expected[3], tt.account.Opportunities.SinceEntry)
		})
	}
}

func TestIsEligible(t *testing.T) {
	cutoff := date(2025, 1, 11)

	tests := []struct {
		name     string
		mutate   func(a *domain.Account)
		expected bool
	}{
		{
			name:     "Conta que atende todas as regras",
			mutate:   func(a *domain.Account) {},
			expected: true,
		},
		{
			name:     "Conta comprando não é elegível",
			mutate:   func(a *domain.Account) { a.Status = domain.AccountStatusPurchasing },
			expected: false,
		},
		{
			name:     "Conta aberta depois do limite não é elegível",
			mutate:   func(a *domain.Account) { a.AccountOpenedDate = date(2025, 2, 1) },
			expected: false,
		},
		{
			name:     "Conta aberta exatamente no limite não é elegível",
			mutate:   func(a *domain.Account) { a.AccountOpenedDate = cutoff },
			expected: false,
		},
		{
			name:     "Data de abertura desconhecida não é elegível",
			mutate:   func(a *domain.Account) { a.AccountOpenedDate = time.Time{} },
			expected: false,
		},
		{
			name:     "Entrou na carteira depois do limite não é elegível",
			mutate:   func(a *domain.Account) { a.EnteredPortfolioDate = datePtr(2025, 3, 20) },
			expected: false,
		},
		{
			name:     "Entrou na carteira antes do limite é elegível",
			mutate:   func(a *domain.Account) { a.EnteredPortfolioDate = datePtr(2024, 10, 1) },
			expected: true,
		},
		{
			name:     "Conta de grupo econômico não é elegível",
			mutate:   func(a *domain.Account) { a.EconomicGroupID = stringPtr("G-10") },
			expected: false,
		},
		{
			name:     "Grupo econômico vazio conta como sem grupo",
			mutate:   func(a *domain.Account) { a.EconomicGroupID = stringPtr("  ") },
			expected: true,
		},
		{
			name:     "Faturamento nos últimos 6 meses não é elegível",
			mutate:   func(a *domain.Account) { a.Revenue6Mo = decimal.NewFromFloat(10.5) },
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account := eligibleAccount(1, "12345678")
			tt.mutate(account)
			assert.Equal(t, tt.expected, IsEligible(account, cutoff))
		})
	}
}

func TestFilterByGroup(t *testing.T) {
	accounts := []*domain.Account{
		{ID: 1, ClassificationCode: 5},
		{ID: 2, ClassificationCode: 1},
		{ID: 3, ClassificationCode: 7},
		{ID: 4, ClassificationCode: 3},
	}
	codes := []int{5, 7}

	ids := func(list []*domain.Account) []int64 {
		result := make([]int64, 0, len(list))
		for _, a := range list {
			result = append(result, a.ID)
		}
		return result
	}

	assert.Equal(t, []int64{1, 3}, ids(FilterByGroup(accounts, domain.SalesGroupDistribution, codes)))
	assert.Equal(t, []int64{2, 4}, ids(FilterByGroup(accounts, domain.SalesGroupCorporate, codes)))
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(FilterByGroup(accounts, domain.SalesGroupOther, codes)))
}

func TestEnrich(t *testing.T) {
	cutoff := date(2025, 1, 11)
	defaultEntry := date(2025, 3, 20)

	t.Run("Aplica referência, última rotação e status sem alterar o snapshot original", func(t *testing.T) {
		source := []*domain.Account{
			{
				ID:              10,
				TaxRootID:       "12345678",
				SalespersonName: "Ana",
				Contacts:        domain.Activity{Total: 5, LastDate: datePtr(2025, 4, 1)},
			},
			{
				ID:                    11,
				TaxRootID:             "87654321",
				SalespersonName:       "Bruno",
				LastGroupPurchaseDate: datePtr(2025, 6, 1),
			},
			{
				ID:              12,
				TaxRootID:       "11111111",
				SalespersonName: "Carla",
			},
		}

		reference := domain.TransferReference{
			"00000012345678": {TaxRootID: "00000012345678", SalespersonName: "Diego"},
			"00000011111111": {TaxRootID: "00000011111111", SalespersonName: "Eva", EnteredAt: datePtr(2025, 2, 2)},
		}

		enriched, err := Enrich(source, EnrichOptions{
			Cutoff:           cutoff,
			LastRotations:    map[int64]time.Time{10: date(2025, 3, 20)},
			Reference:        reference,
			DefaultEntryDate: defaultEntry,
		})
		require.NoError(t, err)
		require.Len(t, enriched, 3)

		assert.Equal(t, "00000012345678", enriched[0].TaxRootID)
		assert.Equal(t, "Diego", enriched[0].SalespersonName)
		assert.Equal(t, defaultEntry, *enriched[0].EnteredPortfolioDate)
		assert.Equal(t, date(2025, 3, 20), *enriched[0].LastRotationDate)
		assert.Equal(t, domain.AccountStatusNotPurchasing, enriched[0].Status)
		assert.Equal(t, 5, enriched[0].Contacts.SinceEntry)

		assert.Equal(t, "Bruno", enriched[1].SalespersonName)
		assert.Nil(t, enriched[1].EnteredPortfolioDate)
		assert.Nil(t, enriched[1].LastRotationDate)
		assert.Equal(t, domain.AccountStatusPurchasing, enriched[1].Status)

		assert.Equal(t, "Eva", enriched[2].SalespersonName)
		assert.Equal(t, date(2025, 2, 2), *enriched[2].EnteredPortfolioDate)

		// snapshot original intacto
		assert.Equal(t, "12345678", source[0].TaxRootID)
		assert.Equal(t, "Ana", source[0].SalespersonName)
		assert.Nil(t, source[0].EnteredPortfolioDate)
		assert.Empty(t, source[0].Status)
	})

	t.Run("Conta sem raiz de CNPJ é rejeitada", func(t *testing.T) {
		_, err := Enrich([]*domain.Account{{ID: 99}}, EnrichOptions{Cutoff: cutoff})
		assert.ErrorIs(t, err, ErrMissingTaxRoot)
	})
}

func TestEligible_PreservesOrder(t *testing.T) {
	cutoff := date(2025, 1, 11)

	purchasing := eligibleAccount(2, "2")
	purchasing.Status = domain.AccountStatusPurchasing

	accounts := []*domain.Account{eligibleAccount(3, "3"), purchasing, eligibleAccount(1, "1")}

	eligible := Eligible(accounts, cutoff)
	require.Len(t, eligible, 2)
	assert.Equal(t, int64(3), eligible[0].ID)
	assert.Equal(t, int64(1), eligible[1].ID)
}

func TestDedupByTaxRoot(t *testing.T) {
	accounts := []*domain.Account{
		{ID: 1, TaxRootID: "123"},
		{ID: 2, TaxRootID: "00000000000123"},
		{ID: 3, TaxRootID: "456"},
	}

	unique := DedupByTaxRoot(accounts)
	require.Len(t, unique, 2)
	assert.Equal(t, int64(1), unique[0].ID)
	assert.Equal(t, int64(3), unique[1].ID)
}
