// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/portfolio-rotation-api/infrastructure/database"
	"github.com/vfg2006/portfolio-rotation-api/internal/domain"
)

const (
	salespeopleTable = "salespeople"
)

// ErrDuplicate indica violação de unicidade no banco
var ErrDuplicate = errors.New("registro duplicado")

type SalespersonRepository interface {
	List(ctx context.Context) ([]*domain.Salesperson, error)
	ListByGroup(ctx context.Context, group domain.SalesGroup) ([]string, error)
	GetByName(ctx context.Context, name string) (*domain.Salesperson, error)
	Create(ctx context.Context, salesperson *domain.Salesperson) (*domain.Salesperson, error)
	Delete(ctx context.Context, name string) (bool, error)
	InsertIgnore(ctx context.Context, names []string, group domain.SalesGroup) (int, error)
}

type salespersonRepository struct {
	conn *database.Connection
}

func NewSalespersonRepository(conn *database.Connection) SalespersonRepository {
	return &salespersonRepository{
		conn: conn,
	}
}

func (r *salespersonRepository) List(ctx context.Context) ([]*domain.Salesperson, error) {
	query, args, err := r.conn.Builder().
		Select("id", "name", "sales_group", "created_at").
		From(salespeopleTable).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar vendedores: %w", err)
	}
	defer rows.Close()

	salespeople := make([]*domain.Salesperson, 0)
	for rows.Next() {
		salesperson, err := scanSalesperson(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao processar resultado: %w", err)
		}
		salespeople = append(salespeople, salesperson)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante iteração: %w", err)
	}

	return salespeople, nil
}

func (r *salespersonRepository) ListByGroup(ctx context.Context, group domain.SalesGroup) ([]string, error) {
	query, args, err := r.conn.Builder().
		Select("name").
		From(salespeopleTable).
		Where(squirrel.Eq{"sales_group": string(group)}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar vendedores do grupo %s: %w", group, err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("erro ao processar resultado: %w", err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante iteração: %w", err)
	}

	return names, nil
}

func (r *salespersonRepository) GetByName(ctx context.Context, name string) (*domain.Salesperson, error) {
	query, args, err := r.conn.Builder().
		Select("id", "name", "sales_group", "created_at").
		From(salespeopleTable).
		Where(squirrel.Eq{"name": name}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	salesperson, err := scanSalesperson(r.conn.QueryRow(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar vendedor: %w", err)
	}

	return salesperson, nil
}

func (r *salespersonRepository) Create(ctx context.Context, salesperson *domain.Salesperson) (*domain.Salesperson, error) {
	query, args, err := r.conn.Builder().
		Insert(salespeopleTable).
		Columns("name", "sales_group").
		Values(salesperson.Name, string(salesperson.Group)).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	var createdAt any
	err = r.conn.QueryRow(ctx, query, args...).Scan(&salesperson.ID, &createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: vendedor %s", ErrDuplicate, salesperson.Name)
		}
		return nil, fmt.Errorf("erro ao cadastrar vendedor: %w", err)
	}

	if salesperson.CreatedAt, err = timeValue(createdAt); err != nil {
		logrus.Warnf("Data de cadastro do vendedor %s em formato inesperado: %v", salesperson.Name, err)
		salesperson.CreatedAt = time.Now()
	}

	return salesperson, nil
}

func (r *salespersonRepository) Delete(ctx context.Context, name string) (bool, error) {
	query, args, err := r.conn.Builder().
		Delete(salespeopleTable).
		Where(squirrel.Eq{"name": name}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	result, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("erro ao remover vendedor: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("erro ao obter linhas afetadas: %w", err)
	}

	return affected > 0, nil
}

// InsertIgnore cadastra os nomes ainda ausentes e devolve quantos foram inseridos
func (r *salespersonRepository) InsertIgnore(ctx context.Context, names []string, group domain.SalesGroup) (int, error) {
	if len(names) == 0 {
		return 0, nil
	}

	inserted := 0
	err := r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for _, name := range names {
			query, args, err := r.conn.Builder().
				Insert(salespeopleTable).
				Columns("name", "sales_group").
				Values(name, string(group)).
				Suffix("ON CONFLICT (name) DO NOTHING").
				ToSql()
			if err != nil {
				return fmt.Errorf("erro ao construir consulta: %w", err)
			}

			result, err := tx.ExecContext(ctx, query, args...)
			if err != nil {
				return fmt.Errorf("erro ao inserir vendedor %s: %w", name, err)
			}

			affected, err := result.RowsAffected()
			if err != nil {
				return fmt.Errorf("erro ao obter linhas afetadas: %w", err)
			}
			inserted += int(affected)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSalesperson(row rowScanner) (*domain.Salesperson, error) {
	var (
		salesperson domain.Salesperson
		group       string
		createdAt   any
	)

	if err := row.Scan(&salesperson.ID, &salesperson.Name, &group, &createdAt); err != nil {
		return nil, err
	}

	salesperson.Group = domain.SalesGroup(group)

	parsed, err := timeValue(createdAt)
	if err != nil {
		return nil, err
	}
	salesperson.CreatedAt = parsed

	return &salesperson, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}

	return false
}

// timeValue aceita as representações de data devolvidas pelos drivers suportados
func timeValue(value any) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case string:
		return parseTimeString(v)
	case []byte:
		return parseTimeString(string(v))
	case nil:
		return time.Time{}, nil
	}

	return time.Time{}, fmt.Errorf("tipo de data não suportado: %T", value)
}

func parseTimeString(value string) (time.Time, error) {
	layouts := []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00", time.DateTime, time.DateOnly}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("data em formato inválido: %q", value)
}
