package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ReportBucket string

// Os valores são também o texto exibido na coluna Status do relatório
const (
	ReportBucketActive             ReportBucket = "Ativa"
	ReportBucketRecentlyEntered    ReportBucket = "Entraram Recentemente"
	ReportBucketNewlyReceived      ReportBucket = "Novas Recebidas"
	ReportBucketRecentlyRegistered ReportBucket = "Cadastrado Recentemente"
	ReportBucketRemoved            ReportBucket = "Retiradas"
)

// ReportBuckets respeita a precedência de classificação
var ReportBuckets = []ReportBucket{
	ReportBucketActive,
	ReportBucketRecentlyEntered,
	ReportBucketNewlyReceived,
	ReportBucketRecentlyRegistered,
	ReportBucketRemoved,
}

type ReportActivity struct {
	SinceEntry int        `json:"since_entry"`
	LastDate   *time.Time `json:"last_date"`
}

type ReportRow struct {
	Bucket                ReportBucket    `json:"status"`
	SalespersonName       string          `json:"salesperson_name"`
	DisplayName           string          `json:"display_name"`
	TaxRootID             string          `json:"tax_root_id"`
	Revenue6Mo            decimal.Decimal `json:"revenue_6mo"`
	OrderCount            int             `json:"order_count"`
	LastGroupPurchaseDate *time.Time      `json:"last_group_purchase_date"`
	EnteredPortfolioDate  *time.Time      `json:"entered_portfolio_date"`
	LastRotationDate      *time.Time      `json:"last_rotation_date"`
	Contacts              ReportActivity  `json:"contacts"`
	Followups             ReportActivity  `json:"followups"`
	Budgets               ReportActivity  `json:"budgets"`
	Opportunities         ReportActivity  `json:"opportunities"`
}

type SalespersonReport struct {
	SalespersonName string       `json:"salesperson_name"`
	Rows            []*ReportRow `json:"rows"`
}

// PortfolioReport mantém os vendedores na ordem de primeira aparição no snapshot "depois"
type PortfolioReport struct {
	RotationDate time.Time            `json:"rotation_date"`
	Cutoff       time.Time            `json:"cutoff"`
	Salespeople  []*SalespersonReport `json:"salespeople"`
}

// NewReportRow copia da conta as colunas fixas do relatório
func NewReportRow(bucket ReportBucket, account *Account) *ReportRow {
	return &ReportRow{
		Bucket:                bucket,
		SalespersonName:       account.SalespersonName,
		DisplayName:           account.DisplayName,
		TaxRootID:             account.TaxRootID,
		Revenue6Mo:            account.Revenue6Mo,
		OrderCount:            account.OrderCount,
		LastGroupPurchaseDate: account.LastGroupPurchaseDate,
		EnteredPortfolioDate:  account.EnteredPortfolioDate,
		LastRotationDate:      account.LastRotationDate,
		Contacts:              ReportActivity{SinceEntry: account.Contacts.SinceEntry, LastDate: account.Contacts.LastDate},
		Followups:             ReportActivity{SinceEntry: account.Followups.SinceEntry, LastDate: account.Followups.LastDate},
		Budgets:               ReportActivity{SinceEntry: account.Budgets.SinceEntry, LastDate: account.Budgets.LastDate},
		Opportunities:         ReportActivity{SinceEntry: account.Opportunities.SinceEntry, LastDate: account.Opportunities.LastDate},
	}
}

type ReportBundle struct {
	FileName string `json:"file_name"`
	Content  []byte `json:"-"`
}
