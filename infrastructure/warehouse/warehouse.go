// Package warehouse lê o snapshot de contas e vendedores do banco comercial (SQL Server)
package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/microsoft/go-mssqldb"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/portfolio-rotation-api/internal/config"
	"github.com/vfg2006/portfolio-rotation-api/internal/domain"
)

type Source interface {
	FetchAccounts(ctx context.Context) ([]*domain.Account, error)
	ListActiveSalespeople(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
}

type SQLServerSource struct {
	db *sql.DB
}

// NewSQLServerSource abre o pool sem conectar; a conexão acontece na primeira consulta
func NewSQLServerSource(cfg config.Warehouse) (*SQLServerSource, error) {
	db, err := sql.Open("sqlserver", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir conexão com o SQL Server: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &SQLServerSource{db: db}, nil
}

func (s *SQLServerSource) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLServerSource) Close() error {
	return s.db.Close()
}

func (s *SQLServerSource) FetchAccounts(ctx context.Context) ([]*domain.Account, error) {
	startTime := time.Now()

	rows, err := s.db.QueryContext(ctx, accountsQuery)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar contas no SQL Server: %w", err)
	}
	defer rows.Close()

	accounts := make([]*domain.Account, 0)
	skipped := 0
	for rows.Next() {
		var record accountRecord
		if err := rows.Scan(record.destinations()...); err != nil {
			return nil, fmt.Errorf("erro ao processar conta: %w", err)
		}

		if strings.TrimSpace(record.TaxRootID.String) == "" {
			skipped++
			continue
		}
		accounts = append(accounts, record.toAccount())
	}

	if skipped > 0 {
		logrus.Warnf("%d contas sem CNPJ ignoradas no snapshot", skipped)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante iteração das contas: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"contas":  len(accounts),
		"duracao": time.Since(startTime).String(),
	}).Info("Snapshot de contas carregado do SQL Server")

	return accounts, nil
}

func (s *SQLServerSource) ListActiveSalespeople(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, activeSalespeopleQuery)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar vendedores no SQL Server: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name sql.NullString
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("erro ao processar vendedor: %w", err)
		}

		if trimmed := strings.TrimSpace(name.String); name.Valid && trimmed != "" {
			names = append(names, trimmed)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante iteração dos vendedores: %w", err)
	}

	return names, nil
}

// accountRecord espelha as colunas de accountsQuery, na mesma ordem
type accountRecord struct {
	ID                         int64
	AccountType                sql.NullInt64
	DisplayName                sql.NullString
	TaxID                      sql.NullString
	TaxRootID                  sql.NullString
	EconomicGroupID            sql.NullString
	EconomicGroupName          sql.NullString
	SalespersonName            sql.NullString
	LastIndividualPurchaseDate sql.NullTime
	Revenue6Mo                 decimal.NullDecimal
	AccountOpenedDate          sql.NullTime
	OrderCount                 sql.NullInt64
	LastGroupPurchaseDate      sql.NullTime
	ContactsTotal              sql.NullInt64
	ContactsLastDate           sql.NullTime
	FollowupsTotal             sql.NullInt64
	FollowupsLastDate          sql.NullTime
	BudgetsTotal               sql.NullInt64
	BudgetsLastDate            sql.NullTime
	OpportunitiesTotal         sql.NullInt64
	OpportunitiesLastDate      sql.NullTime
	ClassificationCode         sql.NullInt64
	PersonClassificationCode   sql.NullInt64
	CompanySize                sql.NullInt64
}

func (r *accountRecord) destinations() []any {
	return []any{
		&r.ID,
		&r.AccountType,
		&r.DisplayName,
		&r.TaxID,
		&r.TaxRootID,
		&r.EconomicGroupID,
		&r.EconomicGroupName,
		&r.SalespersonName,
		&r.LastIndividualPurchaseDate,
		&r.Revenue6Mo,
		&r.AccountOpenedDate,
		&r.OrderCount,
		&r.LastGroupPurchaseDate,
		&r.ContactsTotal,
		&r.ContactsLastDate,
		&r.FollowupsTotal,
		&r.FollowupsLastDate,
		&r.BudgetsTotal,
		&r.BudgetsLastDate,
		&r.OpportunitiesTotal,
		&r.OpportunitiesLastDate,
		&r.ClassificationCode,
		&r.PersonClassificationCode,
		&r.CompanySize,
	}
}

func (r *accountRecord) toAccount() *domain.Account {
	account := &domain.Account{
		ID:                         r.ID,
		AccountType:                int(r.AccountType.Int64),
		DisplayName:                strings.TrimSpace(r.DisplayName.String),
		TaxID:                      strings.TrimSpace(r.TaxID.String),
		TaxRootID:                  domain.NormalizeTaxRoot(r.TaxRootID.String),
		EconomicGroupID:            nullString(r.EconomicGroupID),
		EconomicGroupName:          nullString(r.EconomicGroupName),
		SalespersonName:            strings.TrimSpace(r.SalespersonName.String),
		LastIndividualPurchaseDate: nullTime(r.LastIndividualPurchaseDate),
		LastGroupPurchaseDate:      nullTime(r.LastGroupPurchaseDate),
		Revenue6Mo:                 decimal.Zero,
		OrderCount:                 int(r.OrderCount.Int64),
		ClassificationCode:         int(r.ClassificationCode.Int64),
		PersonClassificationCode:   int(r.PersonClassificationCode.Int64),
		Contacts:                   domain.Activity{Total: int(r.ContactsTotal.Int64), LastDate: nullTime(r.ContactsLastDate)},
		Followups:                  domain.Activity{Total: int(r.FollowupsTotal.Int64), LastDate: nullTime(r.FollowupsLastDate)},
		Budgets:                    domain.Activity{Total: int(r.BudgetsTotal.Int64), LastDate: nullTime(r.BudgetsLastDate)},
		Opportunities:              domain.Activity{Total: int(r.OpportunitiesTotal.Int64), LastDate: nullTime(r.OpportunitiesLastDate)},
	}

	if r.Revenue6Mo.Valid {
		account.Revenue6Mo = r.Revenue6Mo.Decimal
	}

	if r.AccountOpenedDate.Valid {
		account.AccountOpenedDate = r.AccountOpenedDate.Time
	}

	if r.CompanySize.Valid {
		size := int(r.CompanySize.Int64)
		account.CompanySize = &size
	}

	return account
}

func nullString(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	trimmed := strings.TrimSpace(value.String)
	return &trimmed
}

func nullTime(value sql.NullTime) *time.Time {
	if !value.Valid {
		return nil
	}
	t := value.Time
	return &t
}
