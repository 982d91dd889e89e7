package rotation

import (
	"cmp"
	"slices"
	"time"

	"github.com/vfg2006/portfolio-rotation-api/internal/domain"
	"github.com/vfg2006/portfolio-rotation-api/pkg/utils"
)

// ApplyRotation monta o snapshot "depois": as contas rotacionadas substituem, pela raiz do
// CNPJ, as do snapshot "antes"; rotacionadas que não estavam no snapshot são anexadas ao final
func ApplyRotation(before, rotated []*domain.Account) []*domain.Account {
	byRoot := make(map[string]*domain.Account, len(rotated))
	for _, account := range rotated {
		byRoot[domain.NormalizeTaxRoot(account.TaxRootID)] = account
	}

	after := make([]*domain.Account, 0, len(before)+len(rotated))
	used := make(map[string]struct{}, len(rotated))

	for _, account := range before {
		root := domain.NormalizeTaxRoot(account.TaxRootID)
		if replacement, ok := byRoot[root]; ok {
			if _, done := used[root]; !done {
				after = append(after, replacement)
				used[root] = struct{}{}
			}
			continue
		}
		after = append(after, account)
	}

	for _, account := range rotated {
		root := domain.NormalizeTaxRoot(account.TaxRootID)
		if _, done := used[root]; done {
			continue
		}
		after = append(after, account)
		used[root] = struct{}{}
	}

	return after
}

// BuildFromRun monta o relatório de uma rodada: "antes" é a carteira da rodada e "depois"
// aplica as contas rotacionadas sobre ela
func BuildFromRun(run *domain.RotationRun, cutoffDays int) *domain.PortfolioReport {
	return Build(
		ApplyRotation(run.Before, run.Rotated),
		run.Before,
		Cutoff(run.RotationDate, cutoffDays),
		run.RotationDate,
	)
}

// Build compara os snapshots e classifica as contas de cada vendedor presente em "after"
// em exatamente um bucket, seguindo a precedência de domain.ReportBuckets. Cada bucket só
// considera as raízes ainda não reivindicadas pelos anteriores.
func Build(after, before []*domain.Account, cutoff, rotationDate time.Time) *domain.PortfolioReport {
	rotationDay := utils.StartOfDay(rotationDate)
	sixMonthsAgo := rotationDay.AddDate(0, -6, 0)

	report := &domain.PortfolioReport{
		RotationDate: rotationDay,
		Cutoff:       cutoff,
		Salespeople:  make([]*domain.SalespersonReport, 0),
	}

	for _, name := range salespeopleInOrder(after) {
		beforeVend := accountsOf(before, name)
		afterVend := accountsOf(after, name)

		afterRoots := make(map[string]struct{}, len(afterVend))
		for _, account := range afterVend {
			afterRoots[domain.NormalizeTaxRoot(account.TaxRootID)] = struct{}{}
		}

		builder := newBucketBuilder()

		builder.claim(domain.ReportBucketActive, beforeVend, func(a *domain.Account) bool {
			recentPurchase := a.LastGroupPurchaseDate != nil && !a.LastGroupPurchaseDate.Before(cutoff)
			return recentPurchase || a.HasEconomicGroup()
		})

		builder.claim(domain.ReportBucketRecentlyEntered, beforeVend, func(a *domain.Account) bool {
			return a.EnteredPortfolioDate != nil &&
				!a.EnteredPortfolioDate.Before(sixMonthsAgo) &&
				!utils.SameDay(*a.EnteredPortfolioDate, rotationDay)
		})

		builder.claim(domain.ReportBucketNewlyReceived, afterVend, func(a *domain.Account) bool {
			return a.EnteredPortfolioDate != nil && utils.SameDay(*a.EnteredPortfolioDate, rotationDay)
		})

		builder.claim(domain.ReportBucketRecentlyRegistered, beforeVend, func(a *domain.Account) bool {
			return !a.AccountOpenedDate.IsZero() && !a.AccountOpenedDate.Before(sixMonthsAgo)
		})

		builder.claim(domain.ReportBucketRemoved, beforeVend, func(a *domain.Account) bool {
			_, stillThere := afterRoots[domain.NormalizeTaxRoot(a.TaxRootID)]
			return !stillThere
		})

		if len(builder.rows) == 0 {
			continue
		}

		slices.SortStableFunc(builder.rows, func(x, y *domain.ReportRow) int {
			if c := cmp.Compare(x.Bucket, y.Bucket); c != 0 {
				return c
			}
			return cmp.Compare(x.DisplayName, y.DisplayName)
		})

		report.Salespeople = append(report.Salespeople, &domain.SalespersonReport{
			SalespersonName: name,
			Rows:            builder.rows,
		})
	}

	return report
}

type bucketBuilder struct {
	claimed map[string]struct{}
	rows    []*domain.ReportRow
}

func newBucketBuilder() *bucketBuilder {
	return &bucketBuilder{
		claimed: make(map[string]struct{}),
		rows:    make([]*domain.ReportRow, 0),
	}
}

func (b *bucketBuilder) claim(bucket domain.ReportBucket, accounts []*domain.Account, match func(*domain.Account) bool) {
	for _, account := range accounts {
		root := domain.NormalizeTaxRoot(account.TaxRootID)
		if _, taken := b.claimed[root]; taken {
			continue
		}
		if !match(account) {
			continue
		}

		b.claimed[root] = struct{}{}
		b.rows = append(b.rows, domain.NewReportRow(bucket, account))
	}
}

func salespeopleInOrder(accounts []*domain.Account) []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)

	for _, account := range accounts {
		if account.SalespersonName == "" {
			continue
		}
		if _, ok := seen[account.SalespersonName]; ok {
			continue
		}
		seen[account.SalespersonName] = struct{}{}
		names = append(names, account.SalespersonName)
	}

	return names
}

func accountsOf(accounts []*domain.Account, salesperson string) []*domain.Account {
	owned := make([]*domain.Account, 0)
	for _, account := range accounts {
		if account.SalespersonName == salesperson {
			owned = append(owned, account)
		}
	}
	return owned
}
