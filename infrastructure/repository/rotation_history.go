package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/portfolio-rotation-api/infrastructure/database"
	"github.com/vfg2006/portfolio-rotation-api/internal/domain"
)

const (
	rotationHistoryTable = "rotation_history"

	// Limite de parâmetros por cláusula IN, abaixo do máximo do sqlite e do postgres
	inClauseChunkSize = 500
)

type HistoryFilter struct {
	From            *time.Time
	To              *time.Time
	SalespersonName string
	Type            domain.RotationType
}

type RotationHistoryRepository interface {
	Record(ctx context.Context, event *domain.RotationEvent) error
	RecordBatch(ctx context.Context, events []*domain.RotationEvent) error
	LastRotationDates(ctx context.Context, accountIDs []int64) (map[int64]time.Time, error)
	PriorHolders(ctx context.Context, taxRootIDs []string) (map[string][]string, error)
	List(ctx context.Context, filter HistoryFilter) ([]*domain.RotationEvent, error)
}

type rotationHistoryRepository struct {
	conn *database.Connection
}

func NewRotationHistoryRepository(conn *database.Connection) RotationHistoryRepository {
	return &rotationHistoryRepository{
		conn: conn,
	}
}

func (r *rotationHistoryRepository) Record(ctx context.Context, event *domain.RotationEvent) error {
	return r.RecordBatch(ctx, []*domain.RotationEvent{event})
}

// RecordBatch grava todos os eventos numa transação; reenvios do mesmo
// (vendedor, conta, data) são ignorados
func (r *rotationHistoryRepository) RecordBatch(ctx context.Context, events []*domain.RotationEvent) error {
	if len(events) == 0 {
		return nil
	}

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for start := 0; start < len(events); start += inClauseChunkSize {
			end := min(start+inClauseChunkSize, len(events))

			query := r.conn.Builder().
				Insert(rotationHistoryTable).
				Columns("salesperson_name", "account_id", "tax_root_id", "rotation_type", "rotation_date")

			for _, event := range events[start:end] {
				query = query.Values(
					event.SalespersonName,
					event.AccountID,
					event.TaxRootID,
					string(event.Type),
					event.RotationDate.Format(time.DateOnly),
				)
			}

			sqlQuery, args, err := query.
				Suffix("ON CONFLICT (salesperson_name, account_id, rotation_date) DO NOTHING").
				ToSql()
			if err != nil {
				return fmt.Errorf("erro ao construir query de inserção: %w", err)
			}

			if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
				return fmt.Errorf("erro ao executar query de inserção: %w", err)
			}
		}
		return nil
	})
}

// LastRotationDates devolve a data mais recente de rotação de cada conta com histórico
func (r *rotationHistoryRepository) LastRotationDates(ctx context.Context, accountIDs []int64) (map[int64]time.Time, error) {
	result := make(map[int64]time.Time)

	for start := 0; start < len(accountIDs); start += inClauseChunkSize {
		end := min(start+inClauseChunkSize, len(accountIDs))

		query, args, err := r.conn.Builder().
			Select("account_id", "rotation_date").
			From(rotationHistoryTable).
			Where(squirrel.Eq{"account_id": accountIDs[start:end]}).
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("erro ao construir consulta: %w", err)
		}

		rows, err := r.conn.Query(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("erro ao consultar histórico de rotação: %w", err)
		}

		for rows.Next() {
			var (
				accountID int64
				rawDate   any
			)
			if err := rows.Scan(&accountID, &rawDate); err != nil {
				rows.Close()
				return nil, fmt.Errorf("erro ao processar resultado: %w", err)
			}

			rotationDate, err := timeValue(rawDate)
			if err != nil {
				rows.Close()
				return nil, fmt.Errorf("erro ao converter data de rotação: %w", err)
			}

			if current, ok := result[accountID]; !ok || rotationDate.After(current) {
				result[accountID] = rotationDate
			}
		}

		err = rows.Err()
		rows.Close()
		if err != nil {
			return nil, fmt.Errorf("erro durante iteração: %w", err)
		}
	}

	return result, nil
}

// PriorHolders devolve, por raiz de CNPJ, os vendedores que já receberam a conta
func (r *rotationHistoryRepository) PriorHolders(ctx context.Context, taxRootIDs []string) (map[string][]string, error) {
	result := make(map[string][]string)

	for start := 0; start < len(taxRootIDs); start += inClauseChunkSize {
		end := min(start+inClauseChunkSize, len(taxRootIDs))

		query, args, err := r.conn.Builder().
			Select("tax_root_id", "salesperson_name").
			Distinct().
			From(rotationHistoryTable).
			Where(squirrel.Eq{"tax_root_id": taxRootIDs[start:end]}).
			OrderBy("tax_root_id", "salesperson_name").
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("erro ao construir consulta: %w", err)
		}

		rows, err := r.conn.Query(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("erro ao consultar vendedores anteriores: %w", err)
		}

		for rows.Next() {
			var taxRootID, salesperson string
			if err := rows.Scan(&taxRootID, &salesperson); err != nil {
				rows.Close()
				return nil, fmt.Errorf("erro ao processar resultado: %w", err)
			}
			result[taxRootID] = append(result[taxRootID], salesperson)
		}

		err = rows.Err()
		rows.Close()
		if err != nil {
			return nil, fmt.Errorf("erro durante iteração: %w", err)
		}
	}

	return result, nil
}

func (r *rotationHistoryRepository) List(ctx context.Context, filter HistoryFilter) ([]*domain.RotationEvent, error) {
	queryBuilder := r.conn.Builder().
		Select("id", "salesperson_name", "account_id", "tax_root_id", "rotation_type", "rotation_date", "created_at").
		From(rotationHistoryTable).
		OrderBy("rotation_date DESC", "id DESC")

	if filter.From != nil {
		queryBuilder = queryBuilder.Where(squirrel.GtOrEq{"rotation_date": filter.From.Format(time.DateOnly)})
	}

	if filter.To != nil {
		queryBuilder = queryBuilder.Where(squirrel.LtOrEq{"rotation_date": filter.To.Format(time.DateOnly)})
	}

	if filter.SalespersonName != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"salesperson_name": filter.SalespersonName})
	}

	if filter.Type != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"rotation_type": string(filter.Type)})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar histórico de rotação: %w", err)
	}
	defer rows.Close()

	events := make([]*domain.RotationEvent, 0)
	for rows.Next() {
		var (
			event        domain.RotationEvent
			rotationType string
			rawDate      any
			rawCreatedAt any
		)

		if err := rows.Scan(
			&event.ID,
			&event.SalespersonName,
			&event.AccountID,
			&event.TaxRootID,
			&rotationType,
			&rawDate,
			&rawCreatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao processar resultado: %w", err)
		}

		event.Type = domain.RotationType(rotationType)
		if event.RotationDate, err = timeValue(rawDate); err != nil {
			return nil, fmt.Errorf("erro ao converter data de rotação: %w", err)
		}
		if event.CreatedAt, err = timeValue(rawCreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao converter data de criação: %w", err)
		}

		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante iteração: %w", err)
	}

	return events, nil
}
