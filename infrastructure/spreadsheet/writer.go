package spreadsheet

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/portfolio-rotation-api/internal/domain"
	"github.com/vfg2006/portfolio-rotation-api/pkg/utils"
	"github.com/xuri/excelize/v2"
)

const (
	DefaultSheetName = "Planilha1"

	// Limite de caracteres do Excel para nomes de aba
	maxSheetNameLength = 31
)

// accountColumns mantém Raiz_CNPJ, Nome_Vendedor e Data_Entrou_Carteira para que o arquivo
// de contas rotacionadas sirva de referência na próxima rodada
var accountColumns = []string{
	"Conta_ID",
	ColumnTaxRoot,
	"Razao_Social_Pessoas",
	"CNPJ",
	ColumnSalesperson,
	ColumnEnteredAt,
	"data_ultima_rotacao",
	"Status_Cliente",
	"Faturamento_6_Meses",
	"Total_Pedidos",
	"Data_Ultima_Venda_Grupo_CNPJ",
	"Data_Abertura_Conta",
	"Classificacao_Conta",
	"Grupo_Economico_ID",
}

var reportColumns = []string{
	"Status",
	ColumnSalesperson,
	"Razao_Social_Pessoas",
	ColumnTaxRoot,
	"Faturamento_6_Meses",
	"Total_Pedidos",
	"Data_Ultima_Venda_Grupo_CNPJ",
	ColumnEnteredAt,
	"data_ultima_rotacao",
	"Total_Contatos_Rotacao",
	"Data_Ultimo_Contato",
	"Total_Followups_Rotacao",
	"Data_Ultimo_Followup",
	"Total_Orcamentos_Rotacao",
	"Data_Ultimo_Orcamento",
	"Total_Oportunidades_Rotacao",
	"Data_Ultima_Oportunidade",
}

func accountRow(account *domain.Account) []any {
	groupID := ""
	if account.EconomicGroupID != nil {
		groupID = *account.EconomicGroupID
	}

	return []any{
		account.ID,
		account.TaxRootID,
		account.DisplayName,
		account.TaxID,
		account.SalespersonName,
		utils.FormatDate(account.EnteredPortfolioDate),
		utils.FormatDate(account.LastRotationDate),
		string(account.Status),
		account.Revenue6Mo.InexactFloat64(),
		account.OrderCount,
		utils.FormatDate(account.LastGroupPurchaseDate),
		utils.FormatDate(&account.AccountOpenedDate),
		account.ClassificationCode,
		groupID,
	}
}

func reportRow(row *domain.ReportRow) []any {
	return []any{
		string(row.Bucket),
		row.SalespersonName,
		row.DisplayName,
		row.TaxRootID,
		row.Revenue6Mo.InexactFloat64(),
		row.OrderCount,
		utils.FormatDate(row.LastGroupPurchaseDate),
		utils.FormatDate(row.EnteredPortfolioDate),
		utils.FormatDate(row.LastRotationDate),
		row.Contacts.SinceEntry,
		utils.FormatDate(row.Contacts.LastDate),
		row.Followups.SinceEntry,
		utils.FormatDate(row.Followups.LastDate),
		row.Budgets.SinceEntry,
		utils.FormatDate(row.Budgets.LastDate),
		row.Opportunities.SinceEntry,
		utils.FormatDate(row.Opportunities.LastDate),
	}
}

// WriteAccounts grava as contas numa única aba no formato da planilha de referência
func WriteAccounts(w io.Writer, sheetName string, accounts []*domain.Account) error {
	rows := make([][]any, 0, len(accounts))
	for _, account := range accounts {
		rows = append(rows, accountRow(account))
	}

	book := newWorkbook()
	defer book.Close()

	if err := book.addSheet(sheetName, accountColumns, rows); err != nil {
		return err
	}

	return book.Write(w)
}

// WriteSalespersonReport grava o relatório de um vendedor numa aba única
func WriteSalespersonReport(w io.Writer, report *domain.SalespersonReport) error {
	book := newWorkbook()
	defer book.Close()

	if err := book.addSheet(DefaultSheetName, reportColumns, reportRows(report)); err != nil {
		return err
	}

	return book.Write(w)
}

// WriteConsolidatedReport grava uma aba por vendedor, com o nome truncado para o limite do Excel
func WriteConsolidatedReport(w io.Writer, report *domain.PortfolioReport) error {
	book := newWorkbook()
	defer book.Close()

	used := make(map[string]struct{})
	for _, salesperson := range report.Salespeople {
		sheetName := uniqueSheetName(salesperson.SalespersonName, used)
		if err := book.addSheet(sheetName, reportColumns, reportRows(salesperson)); err != nil {
			return err
		}
	}

	if len(report.Salespeople) == 0 {
		if err := book.addSheet(DefaultSheetName, reportColumns, nil); err != nil {
			return err
		}
	}

	return book.Write(w)
}

func reportRows(report *domain.SalespersonReport) [][]any {
	rows := make([][]any, 0, len(report.Rows))
	for _, row := range report.Rows {
		rows = append(rows, reportRow(row))
	}
	return rows
}

// workbook reaproveita a aba padrão do arquivo novo para a primeira aba gravada
type workbook struct {
	*excelize.File
	fresh bool
}

func newWorkbook() *workbook {
	return &workbook{File: excelize.NewFile(), fresh: true}
}

func (b *workbook) addSheet(sheetName string, header []string, rows [][]any) error {
	if b.fresh {
		if err := b.SetSheetName(b.GetSheetName(0), sheetName); err != nil {
			return fmt.Errorf("erro ao renomear aba %s: %w", sheetName, err)
		}
		b.fresh = false
	} else if _, err := b.NewSheet(sheetName); err != nil {
		return fmt.Errorf("erro ao criar aba %s: %w", sheetName, err)
	}

	headerRow := make([]any, 0, len(header))
	for _, column := range header {
		headerRow = append(headerRow, column)
	}

	if err := b.SetSheetRow(sheetName, "A1", &headerRow); err != nil {
		return fmt.Errorf("erro ao gravar cabeçalho: %w", err)
	}

	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		values := row
		if err := b.SetSheetRow(sheetName, cellName, &values); err != nil {
			return fmt.Errorf("erro ao gravar linha %d: %w", i+2, err)
		}
	}

	return nil
}

var invalidSheetChars = strings.NewReplacer(":", " ", "\\", " ", "/", " ", "?", " ", "*", " ", "[", " ", "]", " ")

func uniqueSheetName(name string, used map[string]struct{}) string {
	base := strings.TrimSpace(invalidSheetChars.Replace(name))
	if base == "" {
		base = DefaultSheetName
	}
	base = truncateRunes(base, maxSheetNameLength)

	candidate := base
	for n := 2; ; n++ {
		if _, taken := used[strings.ToLower(candidate)]; !taken {
			break
		}
		suffix := fmt.Sprintf(" (%d)", n)
		candidate = truncateRunes(base, maxSheetNameLength-len(suffix)) + suffix
	}

	used[strings.ToLower(candidate)] = struct{}{}
	return candidate
}

func truncateRunes(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit])
}

// AppendCumulativeLog acrescenta as contas rotacionadas ao histórico acumulado em disco,
// removendo duplicados por (Raiz_CNPJ, Data_Entrou_Carteira) e mantendo a última linha
func AppendCumulativeLog(path string, accounts []*domain.Account) (int, error) {
	header := append([]string{}, accountColumns...)
	existing := make([][]string, 0)

	if _, err := os.Stat(path); err == nil {
		file, err := excelize.OpenFile(path)
		if err != nil {
			return 0, fmt.Errorf("erro ao abrir histórico acumulado: %w", err)
		}

		rows, err := file.GetRows(file.GetSheetName(0), excelize.Options{RawCellValue: true})
		file.Close()
		if err != nil {
			return 0, fmt.Errorf("erro ao ler histórico acumulado: %w", err)
		}

		if len(rows) > 0 {
			existing = alignRows(rows[0], rows[1:], header)
		}
	}

	for _, account := range accounts {
		values := accountRow(account)
		row := make([]string, len(values))
		for i, value := range values {
			row[i] = fmt.Sprint(value)
		}
		existing = append(existing, row)
	}

	merged := dedupKeepLast(existing, indexOf(header, ColumnTaxRoot), indexOf(header, ColumnEnteredAt))

	rows := make([][]any, 0, len(merged))
	for _, row := range merged {
		values := make([]any, len(row))
		for i, value := range row {
			values[i] = value
		}
		rows = append(rows, values)
	}

	book := newWorkbook()
	defer book.Close()

	if err := book.addSheet(DefaultSheetName, header, rows); err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, fmt.Errorf("erro ao criar diretório do histórico: %w", err)
	}

	tmpPath := fmt.Sprintf("%s.%d.tmp", path, time.Now().UnixNano())
	if err := book.SaveAs(tmpPath); err != nil {
		return 0, fmt.Errorf("erro ao gravar histórico acumulado: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return 0, fmt.Errorf("erro ao substituir histórico acumulado: %w", err)
	}

	logrus.WithField("linhas", len(merged)).Infof("Histórico acumulado atualizado em %s", path)
	return len(merged), nil
}

// alignRows reordena as colunas de um arquivo antigo para o cabeçalho atual
func alignRows(sourceHeader []string, rows [][]string, header []string) [][]string {
	source := headerIndex(sourceHeader)

	aligned := make([][]string, 0, len(rows))
	for _, row := range rows {
		out := make([]string, len(header))
		for i, column := range header {
			if idx, ok := source[column]; ok {
				out[i] = cell(row, idx)
			}
		}
		aligned = append(aligned, out)
	}
	return aligned
}

func dedupKeepLast(rows [][]string, keyColumns ...int) [][]string {
	key := func(row []string) string {
		parts := make([]string, 0, len(keyColumns))
		for _, idx := range keyColumns {
			parts = append(parts, cell(row, idx))
		}
		return strings.Join(parts, "\x00")
	}

	last := make(map[string]int, len(rows))
	for i, row := range rows {
		last[key(row)] = i
	}

	result := make([][]string, 0, len(last))
	for i, row := range rows {
		if last[key(row)] == i {
			result = append(result, row)
		}
	}
	return result
}

func indexOf(values []string, target string) int {
	for i, value := range values {
		if value == target {
			return i
		}
	}
	return -1
}
