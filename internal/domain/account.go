// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TaxRootLength é o tamanho fixo da raiz do CNPJ normalizada
const TaxRootLength = 14

type AccountStatus string

const (
	AccountStatusPurchasing    AccountStatus = "Compra"
	AccountStatusNotPurchasing AccountStatus = "Nao Compra"
)

// Activity agrega um tipo de atividade comercial (contatos, follow-ups, orçamentos, oportunidades)
type Activity struct {
	Total      int        `json:"total"`
	LastDate   *time.Time `json:"last_date"`
	SinceEntry int        `json:"since_entry"`
}

type Account struct {
	ID                         int64           `json:"account_id"`
	AccountType                int             `json:"account_type"`
	DisplayName                string          `json:"display_name"`
	TaxID                      string          `json:"tax_id"`
	TaxRootID                  string          `json:"tax_root_id"`
	EconomicGroupID            *string         `json:"economic_group_id"`
	EconomicGroupName          *string         `json:"economic_group_name"`
	SalespersonName            string          `json:"salesperson_name"`
	LastIndividualPurchaseDate *time.Time      `json:"last_individual_purchase_date"`
	LastGroupPurchaseDate      *time.Time      `json:"last_group_purchase_date"`
	Revenue6Mo                 decimal.Decimal `json:"revenue_6mo"`
	OrderCount                 int             `json:"order_count"`
	AccountOpenedDate          time.Time       `json:"account_opened_date"`
	EnteredPortfolioDate       *time.Time      `json:"entered_portfolio_date"`
	LastRotationDate           *time.Time      `json:"last_rotation_date"`
	ClassificationCode         int             `json:"classification_code"`
	PersonClassificationCode   int             `json:"person_classification_code"`
	CompanySize                *int            `json:"company_size"`
	Contacts                   Activity        `json:"contacts"`
	Followups                  Activity        `json:"followups"`
	Budgets                    Activity        `json:"budgets"`
	Opportunities              Activity        `json:"opportunities"`
	Status                     AccountStatus   `json:"status"`
}

// HasEconomicGroup indica se a conta pertence a um grupo econômico (gerido coletivamente)
func (a *Account) HasEconomicGroup() bool {
	return a.EconomicGroupID != nil && strings.TrimSpace(*a.EconomicGroupID) != ""
}

// Clone devolve uma cópia da conta; ponteiros de data são imutáveis e podem ser compartilhados
func (a *Account) Clone() *Account {
	clone := *a
	return &clone
}

// Activities retorna os ponteiros para as quatro atividades, na ordem do relatório
func (a *Account) Activities() []*Activity {
	return []*Activity{&a.Contacts, &a.Followups, &a.Budgets, &a.Opportunities}
}

// NormalizeTaxRoot remove espaços e completa com zeros à esquerda até TaxRootLength
func NormalizeTaxRoot(raw string) string {
	root := strings.TrimSpace(raw)
	if len(root) >= TaxRootLength {
		return root
	}

	return strings.Repeat("0", TaxRootLength-len(root)) + root
}
