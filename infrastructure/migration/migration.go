// Package migration cria o esquema do cadastro de vendedores e do histórico de rotação
package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/portfolio-rotation-api/infrastructure/database"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS salespeople (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		sales_group TEXT NOT NULL DEFAULT 'Distribuição'
			CHECK (sales_group IN ('Distribuição', 'Corporativo', 'Outro Tipo')),
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS rotation_history (
		id SERIAL PRIMARY KEY,
		salesperson_name TEXT NOT NULL,
		account_id BIGINT NOT NULL,
		tax_root_id TEXT NOT NULL DEFAULT '',
		rotation_type TEXT NOT NULL,
		rotation_date DATE NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS salespeople (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		sales_group TEXT NOT NULL DEFAULT 'Distribuição'
			CHECK (sales_group IN ('Distribuição', 'Corporativo', 'Outro Tipo')),
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS rotation_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		salesperson_name TEXT NOT NULL,
		account_id INTEGER NOT NULL,
		tax_root_id TEXT NOT NULL DEFAULT '',
		rotation_type TEXT NOT NULL,
		rotation_date DATE NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

// Índices comuns aos dois drivers
var indexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS rotation_history_event_uq
		ON rotation_history (salesperson_name, account_id, rotation_date)`,
	`CREATE INDEX IF NOT EXISTS rotation_history_account_idx ON rotation_history (account_id)`,
	`CREATE INDEX IF NOT EXISTS rotation_history_tax_root_idx ON rotation_history (tax_root_id)`,
}

// Up aplica o esquema numa única transação; pode ser executado várias vezes
func Up(ctx context.Context, conn *database.Connection) error {
	logrus.Infof("Iniciando migração do esquema (driver %s)...", conn.Driver())
	startTime := time.Now()

	statements := postgresSchema
	if conn.Driver() == database.DriverSQLite {
		statements = sqliteSchema
	}
	statements = append(append([]string{}, statements...), indexes...)

	err := conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for i, statement := range statements {
			if _, err := tx.ExecContext(ctx, statement); err != nil {
				return fmt.Errorf("erro ao executar migração [%d/%d]: %w", i+1, len(statements), err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logrus.Infof("Migração concluída em %v", time.Since(startTime))
	return nil
}
