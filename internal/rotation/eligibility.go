package rotation

import (
	"fmt"
	"time"

	"github.com/vfg2006/portfolio-rotation-api/internal/domain"
	"github.com/vfg2006/portfolio-rotation-api/pkg/utils"
)

// Cutoff retorna o limite D usado para status e elegibilidade (hoje menos cutoffDays)
func Cutoff(now time.Time, cutoffDays int) time.Time {
	return utils.StartOfDay(now).AddDate(0, 0, -cutoffDays)
}

// EnrichOptions agrupa os dados externos aplicados ao snapshot antes da elegibilidade
type EnrichOptions struct {
	Cutoff           time.Time
	LastRotations    map[int64]time.Time
	Reference        domain.TransferReference
	DefaultEntryDate time.Time
}

// Enrich devolve cópias das contas com raiz normalizada, data da última rotação,
// transferências da planilha de referência, status e contadores desde a entrada.
// O snapshot de entrada não é alterado.
func Enrich(accounts []*domain.Account, opts EnrichOptions) ([]*domain.Account, error) {
	enriched := make([]*domain.Account, 0, len(accounts))

	for _, source := range accounts {
		if source == nil {
			continue
		}

		account := source.Clone()
		if account.TaxRootID == "" {
			return nil, fmt.Errorf("%w: conta %d", ErrMissingTaxRoot, account.ID)
		}
		account.TaxRootID = domain.NormalizeTaxRoot(account.TaxRootID)

		if rotatedAt, ok := opts.LastRotations[account.ID]; ok {
			account.LastRotationDate = utils.DatePtr(rotatedAt)
		}

		if transfer, ok := opts.Reference[account.TaxRootID]; ok {
			if transfer.SalespersonName != "" {
				account.SalespersonName = transfer.SalespersonName
			}

			switch {
			case transfer.EnteredAt != nil:
				account.EnteredPortfolioDate = utils.DatePtr(*transfer.EnteredAt)
			case !opts.DefaultEntryDate.IsZero():
				account.EnteredPortfolioDate = utils.DatePtr(opts.DefaultEntryDate)
			}
		}

		account.Status = Status(account, opts.Cutoff)
		ApplySinceEntry(account)

		enriched = append(enriched, account)
	}

	return enriched, nil
}

// Status é "Nao Compra" quando a última compra do grupo é nula ou anterior ao limite
func Status(account *domain.Account, cutoff time.Time) domain.AccountStatus {
	if account.LastGroupPurchaseDate == nil || account.LastGroupPurchaseDate.Before(cutoff) {
		return domain.AccountStatusNotPurchasing
	}
	return domain.AccountStatusPurchasing
}

// ApplySinceEntry só credita a atividade quando todas as datas envolvidas existem
// e a atividade aconteceu a partir da entrada na carteira
func ApplySinceEntry(account *domain.Account) {
	for _, activity := range account.Activities() {
		activity.SinceEntry = 0

		if account.EnteredPortfolioDate == nil || account.LastRotationDate == nil || activity.LastDate == nil {
			continue
		}

		if !activity.LastDate.Before(*account.EnteredPortfolioDate) {
			activity.SinceEntry = activity.Total
		}
	}
}

// IsEligible aplica as cinco regras de elegibilidade
func IsEligible(account *domain.Account, cutoff time.Time) bool {
	if account.Status != domain.AccountStatusNotPurchasing {
		return false
	}

	// Data de abertura desconhecida nunca é considerada antiga
	if account.AccountOpenedDate.IsZero() || !account.AccountOpenedDate.Before(cutoff) {
		return false
	}

	if account.EnteredPortfolioDate != nil && !account.EnteredPortfolioDate.Before(cutoff) {
		return false
	}

	if account.HasEconomicGroup() {
		return false
	}

	return account.Revenue6Mo.IsZero()
}

// Eligible mantém a ordem de entrada
func Eligible(accounts []*domain.Account, cutoff time.Time) []*domain.Account {
	eligible := make([]*domain.Account, 0)
	for _, account := range accounts {
		if IsEligible(account, cutoff) {
			eligible = append(eligible, account)
		}
	}
	return eligible
}

// FilterByGroup restringe as elegíveis pela classificação da conta: Distribuição fica com
// os códigos informados, Corporativo com o complemento e Outro Tipo com todas
func FilterByGroup(accounts []*domain.Account, group domain.SalesGroup, distributionCodes []int) []*domain.Account {
	if group == domain.SalesGroupOther {
		return append([]*domain.Account(nil), accounts...)
	}

	codes := make(map[int]struct{}, len(distributionCodes))
	for _, code := range distributionCodes {
		codes[code] = struct{}{}
	}

	filtered := make([]*domain.Account, 0)
	for _, account := range accounts {
		_, isDistribution := codes[account.ClassificationCode]

		switch group {
		case domain.SalesGroupDistribution:
			if isDistribution {
				filtered = append(filtered, account)
			}
		case domain.SalesGroupCorporate:
			if !isDistribution {
				filtered = append(filtered, account)
			}
		}
	}

	return filtered
}

// BySalespeople devolve as contas cujo vendedor está no conjunto informado
func BySalespeople(accounts []*domain.Account, names []string) []*domain.Account {
	allowed := make(map[string]struct{}, len(names))
	for _, name := range names {
		allowed[name] = struct{}{}
	}

	filtered := make([]*domain.Account, 0)
	for _, account := range accounts {
		if _, ok := allowed[account.SalespersonName]; ok {
			filtered = append(filtered, account)
		}
	}
	return filtered
}

// DedupByTaxRoot mantém a primeira ocorrência de cada raiz de CNPJ
func DedupByTaxRoot(accounts []*domain.Account) []*domain.Account {
	seen := make(map[string]struct{}, len(accounts))
	unique := make([]*domain.Account, 0, len(accounts))

	for _, account := range accounts {
		root := domain.NormalizeTaxRoot(account.TaxRootID)
		if _, ok := seen[root]; ok {
			continue
		}
		seen[root] = struct{}{}
		unique = append(unique, account)
	}

	return unique
}
