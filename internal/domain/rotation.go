package domain

import "time"

type RotationType string

const (
	RotationTypeAutomatic RotationType = "Automática"
	RotationTypeManual    RotationType = "Manual"
)

// RotationEvent é imutável depois de gravado no histórico
type RotationEvent struct {
	ID              int64        `json:"id"`
	SalespersonName string       `json:"salesperson_name"`
	AccountID       int64        `json:"account_id"`
	TaxRootID       string       `json:"tax_root_id"`
	Type            RotationType `json:"rotation_type"`
	RotationDate    time.Time    `json:"rotation_date"`
	CreatedAt       time.Time    `json:"created_at"`
}

// TransferEntry é uma linha da planilha de referência enviada pelo operador
type TransferEntry struct {
	TaxRootID       string     `json:"tax_root_id"`
	SalespersonName string     `json:"salesperson_name"`
	EnteredAt       *time.Time `json:"entered_at"`
}

// TransferReference indexa as linhas da planilha de referência pela raiz do CNPJ
type TransferReference map[string]TransferEntry

type RotationRun struct {
	ID           string           `json:"id"`
	Group        SalesGroup       `json:"group"`
	RotationDate time.Time        `json:"rotation_date"`
	Cap          int              `json:"cap"`
	Candidates   []string         `json:"candidates"`
	Before       []*Account       `json:"-"`
	Eligible     []*Account       `json:"-"`
	Rotated      []*Account       `json:"rotated"`
	Leftover     []*Account       `json:"leftover"`
	Events       []*RotationEvent `json:"-"`
	StartedAt    time.Time        `json:"started_at"`
	CompletedAt  time.Time        `json:"completed_at"`
}

type RotationRunResponse struct {
	ID            string     `json:"id"`
	Group         SalesGroup `json:"group"`
	RotationDate  string     `json:"rotation_date"`
	EligibleCount int        `json:"eligible_count"`
	RotatedCount  int        `json:"rotated_count"`
	LeftoverCount int        `json:"leftover_count"`
	Message       string     `json:"message"`
	Rotated       []*Account `json:"rotated"`
	Leftover      []*Account `json:"leftover"`
}

type ManualRotationRequest struct {
	AccountID       int64  `json:"account_id"`
	TaxRootID       string `json:"tax_root_id"`
	SalespersonName string `json:"salesperson_name"`
}
