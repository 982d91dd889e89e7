// Package spreadsheet lê a planilha de referência de transferências e grava os
// arquivos xlsx de contas rotacionadas, histórico acumulado e relatórios
package spreadsheet

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/portfolio-rotation-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	ColumnTaxRoot     = "Raiz_CNPJ"
	ColumnSalesperson = "Nome_Vendedor"
	ColumnEnteredAt   = "Data_Entrou_Carteira"
)

// ErrMalformedReference indica que a planilha inteira foi rejeitada
var ErrMalformedReference = errors.New("planilha de referência inválida")

var dateLayouts = []string{time.DateOnly, time.DateTime, "02/01/2006", "2006/01/02", time.RFC3339}

// ReadReference decodifica a planilha de transferências. Raiz_CNPJ e Nome_Vendedor são
// obrigatórias, Data_Entrou_Carteira é opcional. Qualquer linha inválida rejeita o arquivo.
func ReadReference(r io.Reader, sheetName string) (domain.TransferReference, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: arquivo não é um xlsx válido: %v", ErrMalformedReference, err)
	}
	defer file.Close()

	if index, err := file.GetSheetIndex(sheetName); err != nil || index < 0 {
		return nil, fmt.Errorf("%w: aba %q não encontrada", ErrMalformedReference, sheetName)
	}

	rows, err := file.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: erro ao ler a aba %q: %v", ErrMalformedReference, sheetName, err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: aba %q vazia", ErrMalformedReference, sheetName)
	}

	columns := headerIndex(rows[0])
	rootIdx, hasRoot := columns[ColumnTaxRoot]
	nameIdx, hasName := columns[ColumnSalesperson]
	if !hasRoot || !hasName {
		return nil, fmt.Errorf("%w: colunas obrigatórias %s e %s", ErrMalformedReference, ColumnTaxRoot, ColumnSalesperson)
	}
	dateIdx, hasDate := columns[ColumnEnteredAt]

	reference := make(domain.TransferReference)
	for i, row := range rows[1:] {
		line := i + 2

		root := strings.TrimSpace(cell(row, rootIdx))
		name := strings.TrimSpace(cell(row, nameIdx))
		if root == "" && name == "" {
			continue
		}

		root, err := decodeTaxRoot(root)
		if err != nil {
			return nil, fmt.Errorf("%w: linha %d: %v", ErrMalformedReference, line, err)
		}

		if name == "" {
			return nil, fmt.Errorf("%w: linha %d: vendedor vazio", ErrMalformedReference, line)
		}

		entry := domain.TransferEntry{TaxRootID: root, SalespersonName: name}

		if hasDate {
			if raw := strings.TrimSpace(cell(row, dateIdx)); raw != "" {
				enteredAt, err := parseDate(raw)
				if err != nil {
					return nil, fmt.Errorf("%w: linha %d: %v", ErrMalformedReference, line, err)
				}
				entry.EnteredAt = &enteredAt
			}
		}

		if _, exists := reference[root]; exists {
			logrus.Debugf("Raiz %s repetida na referência, mantendo a última linha (%d)", root, line)
		}
		reference[root] = entry
	}

	return reference, nil
}

func headerIndex(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, exists := columns[name]; !exists {
			columns[name] = i
		}
	}
	return columns
}

func cell(row []string, index int) string {
	if index < len(row) {
		return row[index]
	}
	return ""
}

// decodeTaxRoot aceita apenas dígitos; números gravados como decimal ("12345678.0") são aceitos
func decodeTaxRoot(raw string) (string, error) {
	value := strings.TrimSuffix(raw, ".0")

	if value == "" {
		return "", errors.New("raiz de CNPJ vazia")
	}

	for _, r := range value {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("raiz de CNPJ inválida: %q", raw)
		}
	}

	return domain.NormalizeTaxRoot(value), nil
}

// parseDate aceita datas em texto e o número serial de data do Excel
func parseDate(raw string) (time.Time, error) {
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		parsed, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, fmt.Errorf("data inválida: %q", raw)
		}
		year, month, day := parsed.Date()
		return time.Date(year, month, day, 0, 0, 0, 0, time.Local), nil
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			year, month, day := parsed.Date()
			return time.Date(year, month, day, 0, 0, 0, 0, time.Local), nil
		}
	}

	return time.Time{}, fmt.Errorf("data inválida: %q", raw)
}
