package rotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/portfolio-rotation-api/internal/domain"
)

func reportAccount(root, name, salesperson string) *domain.Account {
	return &domain.Account{
		TaxRootID:         domain.NormalizeTaxRoot(root),
		DisplayName:       name,
		SalespersonName:   salesperson,
		AccountOpenedDate: date(2020, 1, 1),
	}
}

func reportFixture() (before, after []*domain.Account) {
	rotationDay := date(2025, 7, 10)

	active := reportAccount("1", "Bela Vista", "Ana")
	active.LastGroupPurchaseDate = datePtr(2025, 5, 1)

	group := reportAccount("2", "Alfa Group", "Ana")
	group.EconomicGroupID = stringPtr("G-1")

	entered := reportAccount("3", "Casa Nova", "Ana")
	entered.EnteredPortfolioDate = datePtr(2025, 3, 20)

	registered := reportAccount("4", "Delta", "Ana")
	registered.AccountOpenedDate = date(2025, 2, 1)

	removed := reportAccount("5", "Echo", "Ana")

	untouched := reportAccount("6", "Foxtrot", "Ana")

	incoming := reportAccount("7", "Golf", "Carla")

	before = []*domain.Account{active, group, entered, registered, removed, untouched, incoming}

	movedOut := removed.Clone()
	movedOut.SalespersonName = "Bruno"
	movedOut.EnteredPortfolioDate = &rotationDay

	movedIn := incoming.Clone()
	movedIn.SalespersonName = "Ana"
	movedIn.EnteredPortfolioDate = &rotationDay

	// a conta de grupo econômico sumiu do snapshot "depois"
	after = []*domain.Account{active, entered, registered, movedOut, untouched, movedIn}

	return before, after
}

type bucketRow struct {
	bucket domain.ReportBucket
	name   string
}

func rowsOf(report *domain.SalespersonReport) []bucketRow {
	rows := make([]bucketRow, 0, len(report.Rows))
	for _, r := range report.Rows {
		rows = append(rows, bucketRow{bucket: r.Bucket, name: r.DisplayName})
	}
	return rows
}

func TestBuild(t *testing.T) {
	before, after := reportFixture()
	cutoff := date(2025, 1, 11)
	rotationDay := date(2025, 7, 10)

	report := Build(after, before, cutoff, rotationDay)

	require.Len(t, report.Salespeople, 2)
	assert.Equal(t, "Ana", report.Salespeople[0].SalespersonName)
	assert.Equal(t, "Bruno", report.Salespeople[1].SalespersonName)

	assert.Equal(t, []bucketRow{
		{domain.ReportBucketActive, "Alfa Group"},
		{domain.ReportBucketActive, "Bela Vista"},
		{domain.ReportBucketRecentlyRegistered, "Delta"},
		{domain.ReportBucketRecentlyEntered, "Casa Nova"},
		{domain.ReportBucketNewlyReceived, "Golf"},
		{domain.ReportBucketRemoved, "Echo"},
	}, rowsOf(report.Salespeople[0]))

	assert.Equal(t, []bucketRow{
		{domain.ReportBucketNewlyReceived, "Echo"},
	}, rowsOf(report.Salespeople[1]))

	assert.Equal(t, rotationDay, report.RotationDate)
	assert.Equal(t, cutoff, report.Cutoff)
}

func TestBuild_GroupAccountMissingFromAfterIsActive(t *testing.T) {
	group := reportAccount("10", "Grupo", "Ana")
	group.EconomicGroupID = stringPtr("G-77")
	other := reportAccount("11", "Outra", "Ana")

	before := []*domain.Account{group, other}
	after := []*domain.Account{other}

	report := Build(after, before, date(2025, 1, 11), date(2025, 7, 10))

	require.Len(t, report.Salespeople, 1)
	rows := rowsOf(report.Salespeople[0])
	assert.Equal(t, []bucketRow{{domain.ReportBucketActive, "Grupo"}}, rows)
}

func TestBuild_ClaimOnce(t *testing.T) {
	cutoff := date(2025, 1, 11)
	rotationDay := date(2025, 7, 10)

	tests := []struct {
		name     string
		before   func() []*domain.Account
		after    func(before []*domain.Account) []*domain.Account
		expected []bucketRow
	}{
		{
			name: "Ativa tem precedência sobre entrada recente e cadastro recente",
			before: func() []*domain.Account {
				a := reportAccount("1", "Multi", "Ana")
				a.LastGroupPurchaseDate = datePtr(2025, 6, 1)
				a.EnteredPortfolioDate = datePtr(2025, 4, 1)
				a.AccountOpenedDate = date(2025, 3, 1)
				return []*domain.Account{a}
			},
			after:    func(before []*domain.Account) []*domain.Account { return before },
			expected: []bucketRow{{domain.ReportBucketActive, "Multi"}},
		},
		{
			name: "Entrada no próprio dia da rotação não conta como entrada recente",
			before: func() []*domain.Account {
				a := reportAccount("1", "Hoje", "Ana")
				a.EnteredPortfolioDate = datePtr(2025, 7, 10)
				return []*domain.Account{a}
			},
			after:    func(before []*domain.Account) []*domain.Account { return before },
			expected: []bucketRow{{domain.ReportBucketNewlyReceived, "Hoje"}},
		},
		{
			name: "Entrada exatamente seis meses antes conta como recente",
			before: func() []*domain.Account {
				a := reportAccount("1", "Limite", "Ana")
				a.EnteredPortfolioDate = datePtr(2025, 1, 10)
				return []*domain.Account{a}
			},
			after:    func(before []*domain.Account) []*domain.Account { return before },
			expected: []bucketRow{{domain.ReportBucketRecentlyEntered, "Limite"}},
		},
		{
			name: "Raiz duplicada no snapshot aparece uma única vez",
			before: func() []*domain.Account {
				a := reportAccount("1", "Primeira", "Ana")
				a.LastGroupPurchaseDate = datePtr(2025, 6, 1)
				b := reportAccount("1", "Segunda", "Ana")
				b.LastGroupPurchaseDate = datePtr(2025, 6, 1)
				return []*domain.Account{a, b}
			},
			after:    func(before []*domain.Account) []*domain.Account { return before[:1] },
			expected: []bucketRow{{domain.ReportBucketActive, "Primeira"}},
		},
		{
			name: "Conta sem critério e ainda na carteira não aparece",
			before: func() []*domain.Account {
				return []*domain.Account{reportAccount("1", "Parada", "Ana"), reportAccount("2", "Comprando", "Ana")}
			},
			after: func(before []*domain.Account) []*domain.Account {
				before[1].LastGroupPurchaseDate = datePtr(2025, 6, 1)
				return before
			},
			expected: []bucketRow{{domain.ReportBucketActive, "Comprando"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.before()
			after := tt.after(before)

			report := Build(after, before, cutoff, rotationDay)
			require.Len(t, report.Salespeople, 1)
			assert.Equal(t, tt.expected, rowsOf(report.Salespeople[0]))
		})
	}
}

func TestBuild_SalespersonWithoutRowsIsOmitted(t *testing.T) {
	idle := reportAccount("1", "Parada", "Ana")

	report := Build([]*domain.Account{idle}, []*domain.Account{idle}, date(2025, 1, 11), date(2025, 7, 10))
	assert.Empty(t, report.Salespeople)
}

func TestBuild_IsIdempotentAndExclusive(t *testing.T) {
	before, after := reportFixture()
	cutoff := date(2025, 1, 11)
	rotationDay := date(2025, 7, 10)

	first := Build(after, before, cutoff, rotationDay)
	second := Build(after, before, cutoff, rotationDay)
	assert.Equal(t, first, second)

	for _, salesperson := range first.Salespeople {
		seen := make(map[string]bool)
		for _, row := range salesperson.Rows {
			assert.False(t, seen[row.TaxRootID], "raiz %s repetida para %s", row.TaxRootID, salesperson.SalespersonName)
			seen[row.TaxRootID] = true
		}
	}
}

func TestApplyRotation(t *testing.T) {
	a := reportAccount("1", "A", "Ana")
	b := reportAccount("2", "B", "Ana")
	c := reportAccount("3", "C", "Bruno")

	rotatedB := b.Clone()
	rotatedB.SalespersonName = "Carla"
	outside := reportAccount("9", "Fora", "Diego")

	after := ApplyRotation([]*domain.Account{a, b, c}, []*domain.Account{rotatedB, outside})

	require.Len(t, after, 4)
	assert.Same(t, a, after[0])
	assert.Same(t, rotatedB, after[1])
	assert.Same(t, c, after[2])
	assert.Same(t, outside, after[3])
	assert.Equal(t, "Ana", b.SalespersonName)
}

func TestBuildFromRun(t *testing.T) {
	rotationDay := date(2025, 7, 10)

	active := reportAccount("1", "Bela Vista", "Ana")
	active.LastGroupPurchaseDate = datePtr(2025, 6, 1)
	dormant := reportAccount("2", "Dormente", "Ana")

	moved := dormant.Clone()
	moved.SalespersonName = "Bruno"
	moved.EnteredPortfolioDate = &rotationDay

	run := &domain.RotationRun{
		RotationDate: rotationDay,
		Before:       []*domain.Account{active, dormant},
		Rotated:      []*domain.Account{moved},
	}

	report := BuildFromRun(run, 180)

	assert.Equal(t, rotationDay, report.RotationDate)
	assert.Equal(t, rotationDay.AddDate(0, 0, -180), report.Cutoff)
	require.Len(t, report.Salespeople, 2)

	bySalesperson := make(map[string][]bucketRow)
	for _, salesperson := range report.Salespeople {
		bySalesperson[salesperson.SalespersonName] = rowsOf(salesperson)
	}

	assert.Equal(t, []bucketRow{
		{domain.ReportBucketActive, "Bela Vista"},
		{domain.ReportBucketRemoved, "Dormente"},
	}, bySalesperson["Ana"])
	assert.Equal(t, []bucketRow{
		{domain.ReportBucketNewlyReceived, "Dormente"},
	}, bySalesperson["Bruno"])
}
