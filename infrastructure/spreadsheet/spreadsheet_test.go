package spreadsheet

import (
	"archive/zip"
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/portfolio-rotation-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, sheetName string, rows [][]any) *bytes.Buffer {
	t.Helper()

	file := excelize.NewFile()
	defer file.Close()

	require.NoError(t, file.SetSheetName(file.GetSheetName(0), sheetName))
	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		values := row
		require.NoError(t, file.SetSheetRow(sheetName, cellName, &values))
	}

	var buffer bytes.Buffer
	require.NoError(t, file.Write(&buffer))
	return &buffer
}

func readRows(t *testing.T, content []byte, sheetName string) [][]string {
	t.Helper()

	file, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer file.Close()

	rows, err := file.GetRows(sheetName)
	require.NoError(t, err)
	return rows
}

func TestReadReference(t *testing.T) {
	tests := []struct {
		name      string
		sheetName string
		rows      [][]any
		wantErr   bool
		validate  func(t *testing.T, reference domain.TransferReference)
	}{
		{
			name:      "Raiz é normalizada e a data é opcional",
			sheetName: DefaultSheetName,
			rows: [][]any{
				{ColumnTaxRoot, ColumnSalesperson, ColumnEnteredAt},
				{"12345678", "Ana", "2025-03-10"},
				{"87654321", " Bruno ", ""},
			},
			validate: func(t *testing.T, reference domain.TransferReference) {
				require.Len(t, reference, 2)

				entry := reference["00000012345678"]
				assert.Equal(t, "Ana", entry.SalespersonName)
				require.NotNil(t, entry.EnteredAt)
				assert.Equal(t, "2025-03-10", entry.EnteredAt.Format(time.DateOnly))

				entry = reference["00000087654321"]
				assert.Equal(t, "Bruno", entry.SalespersonName)
				assert.Nil(t, entry.EnteredAt)
			},
		},
		{
			name:      "Raiz repetida mantém a última linha",
			sheetName: DefaultSheetName,
			rows: [][]any{
				{ColumnSalesperson, ColumnTaxRoot},
				{"Ana", "111"},
				{"Bruno", "111"},
			},
			validate: func(t *testing.T, reference domain.TransferReference) {
				require.Len(t, reference, 1)
				assert.Equal(t, "Bruno", reference["00000000000111"].SalespersonName)
			},
		},
		{
			name:      "Raiz gravada como decimal é aceita",
			sheetName: DefaultSheetName,
			rows: [][]any{
				{ColumnTaxRoot, ColumnSalesperson},
				{"12345678.0", "Ana"},
			},
			validate: func(t *testing.T, reference domain.TransferReference) {
				assert.Contains(t, reference, "00000012345678")
			},
		},
		{
			name:      "Linhas totalmente vazias são ignoradas",
			sheetName: DefaultSheetName,
			rows: [][]any{
				{ColumnTaxRoot, ColumnSalesperson},
				{"", ""},
				{"222", "Carla"},
			},
			validate: func(t *testing.T, reference domain.TransferReference) {
				assert.Len(t, reference, 1)
			},
		},
		{
			name:      "Coluna obrigatória ausente rejeita o arquivo",
			sheetName: DefaultSheetName,
			rows: [][]any{
				{ColumnTaxRoot, "Vendedor"},
				{"111", "Ana"},
			},
			wantErr: true,
		},
		{
			name:      "Raiz com letras rejeita o arquivo",
			sheetName: DefaultSheetName,
			rows: [][]any{
				{ColumnTaxRoot, ColumnSalesperson},
				{"111", "Ana"},
				{"12AB", "Bruno"},
			},
			wantErr: true,
		},
		{
			name:      "Vendedor vazio rejeita o arquivo",
			sheetName: DefaultSheetName,
			rows: [][]any{
				{ColumnTaxRoot, ColumnSalesperson},
				{"111", ""},
			},
			wantErr: true,
		},
		{
			name:      "Data inválida rejeita o arquivo",
			sheetName: DefaultSheetName,
			rows: [][]any{
				{ColumnTaxRoot, ColumnSalesperson, ColumnEnteredAt},
				{"111", "Ana", "ontem"},
			},
			wantErr: true,
		},
		{
			name:      "Aba inexistente rejeita o arquivo",
			sheetName: "Outra",
			rows: [][]any{
				{ColumnTaxRoot, ColumnSalesperson},
				{"111", "Ana"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := buildWorkbook(t, tt.sheetName, tt.rows)

			reference, err := ReadReference(content, DefaultSheetName)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMalformedReference)
				assert.Nil(t, reference)
				return
			}

			require.NoError(t, err)
			tt.validate(t, reference)
		})
	}
}

func TestReadReference_NotXLSX(t *testing.T) {
	_, err := ReadReference(strings.NewReader("isso não é um xlsx"), DefaultSheetName)
	assert.ErrorIs(t, err, ErrMalformedReference)
}

func TestParseDate_ExcelSerial(t *testing.T) {
	parsed, err := parseDate("45726")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", parsed.Format(time.DateOnly))
}

func rotatedAccount(id int64, root, salesperson string, enteredAt time.Time) *domain.Account {
	return &domain.Account{
		ID:                   id,
		TaxRootID:            root,
		DisplayName:          "Conta " + root,
		SalespersonName:      salesperson,
		EnteredPortfolioDate: &enteredAt,
		Revenue6Mo:           decimal.Zero,
		Status:               domain.AccountStatusNotPurchasing,
		AccountOpenedDate:    time.Date(2020, 1, 1, 0, 0, 0, 0, time.Local),
	}
}

func TestWriteAccounts_CanBeReadAsReference(t *testing.T) {
	enteredAt := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	accounts := []*domain.Account{
		rotatedAccount(1, "00000000000111", "Ana", enteredAt),
		rotatedAccount(2, "00000000000222", "Bruno", enteredAt),
	}

	var buffer bytes.Buffer
	require.NoError(t, WriteAccounts(&buffer, DefaultSheetName, accounts))

	reference, err := ReadReference(bytes.NewReader(buffer.Bytes()), DefaultSheetName)
	require.NoError(t, err)
	require.Len(t, reference, 2)
	assert.Equal(t, "Bruno", reference["00000000000222"].SalespersonName)
	require.NotNil(t, reference["00000000000111"].EnteredAt)
	assert.Equal(t, "2025-06-01", reference["00000000000111"].EnteredAt.Format(time.DateOnly))
}

func TestWriteConsolidatedReport_SheetNames(t *testing.T) {
	longName := "Maria Aparecida dos Santos Oliveira Pereira"
	report := &domain.PortfolioReport{
		RotationDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.Local),
		Salespeople: []*domain.SalespersonReport{
			{SalespersonName: longName, Rows: []*domain.ReportRow{{Bucket: domain.ReportBucketActive, SalespersonName: longName, TaxRootID: "1"}}},
			{SalespersonName: longName + " Filho", Rows: []*domain.ReportRow{{Bucket: domain.ReportBucketActive, SalespersonName: longName + " Filho", TaxRootID: "2"}}},
			{SalespersonName: "Ana/Bruno", Rows: nil},
		},
	}

	var buffer bytes.Buffer
	require.NoError(t, WriteConsolidatedReport(&buffer, report))

	file, err := excelize.OpenReader(bytes.NewReader(buffer.Bytes()))
	require.NoError(t, err)
	defer file.Close()

	sheets := file.GetSheetList()
	require.Len(t, sheets, 3)
	for _, sheet := range sheets {
		assert.LessOrEqual(t, len([]rune(sheet)), maxSheetNameLength)
	}
	assert.NotEqual(t, sheets[0], sheets[1])
	assert.Equal(t, "Ana Bruno", sheets[2])

	rows, err := file.GetRows(sheets[0])
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, reportColumns[0], rows[0][0])
	assert.Equal(t, string(domain.ReportBucketActive), rows[1][0])
}

func TestUniqueSheetName(t *testing.T) {
	used := make(map[string]struct{})

	assert.Equal(t, "Ana", uniqueSheetName("Ana", used))
	assert.Equal(t, "Ana (2)", uniqueSheetName("ana", used))
	assert.Equal(t, DefaultSheetName, uniqueSheetName("  ", used))

	long := strings.Repeat("x", 40)
	first := uniqueSheetName(long, used)
	second := uniqueSheetName(long, used)
	assert.Len(t, first, maxSheetNameLength)
	assert.Len(t, second, maxSheetNameLength)
	assert.True(t, strings.HasSuffix(second, " (2)"))
}

func TestAppendCumulativeLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "historico", "historico_rotacoes.xlsx")
	june := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	july := time.Date(2025, 7, 1, 0, 0, 0, 0, time.Local)

	total, err := AppendCumulativeLog(path, []*domain.Account{
		rotatedAccount(1, "00000000000111", "Ana", june),
		rotatedAccount(2, "00000000000222", "Bruno", june),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	total, err = AppendCumulativeLog(path, []*domain.Account{
		rotatedAccount(1, "00000000000111", "Carla", june),
		rotatedAccount(1, "00000000000111", "Davi", july),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	file, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := file.GetRows(DefaultSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	nameIdx := indexOf(rows[0], ColumnSalesperson)
	require.GreaterOrEqual(t, nameIdx, 0)
	assert.Equal(t, "Bruno", rows[1][nameIdx])
	assert.Equal(t, "Carla", rows[2][nameIdx])
	assert.Equal(t, "Davi", rows[3][nameIdx])

	matches, err := filepath.Glob(path + ".*.tmp")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestBuildReportFilesAndZip(t *testing.T) {
	rotationDate := time.Date(2025, 7, 1, 0, 0, 0, 0, time.Local)
	report := &domain.PortfolioReport{
		RotationDate: rotationDate,
		Salespeople: []*domain.SalespersonReport{
			{SalespersonName: "Ana Souza", Rows: []*domain.ReportRow{{Bucket: domain.ReportBucketActive, SalespersonName: "Ana Souza", TaxRootID: "1"}}},
			{SalespersonName: "Bruno", Rows: []*domain.ReportRow{{Bucket: domain.ReportBucketRemoved, SalespersonName: "Bruno", TaxRootID: "2"}}},
		},
	}

	files, err := BuildReportFiles(report)
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, "relatorio_Ana_Souza_2025-07-01.xlsx", files[0].Name)
	assert.Equal(t, "relatorio_Bruno_2025-07-01.xlsx", files[1].Name)
	assert.Equal(t, ConsolidatedReportFileName, files[2].Name)

	rows := readRows(t, files[1].Content, DefaultSheetName)
	require.Len(t, rows, 2)
	assert.Equal(t, string(domain.ReportBucketRemoved), rows[1][0])

	var buffer bytes.Buffer
	require.NoError(t, Zip(&buffer, files))

	archive, err := zip.NewReader(bytes.NewReader(buffer.Bytes()), int64(buffer.Len()))
	require.NoError(t, err)
	require.Len(t, archive.File, 3)
	for i, entry := range archive.File {
		assert.Equal(t, files[i].Name, entry.Name)
	}

	dir := filepath.Join(t.TempDir(), "relatorios")
	require.NoError(t, SaveFiles(dir, files))
	saved, err := filepath.Glob(filepath.Join(dir, "*.xlsx"))
	require.NoError(t, err)
	assert.Len(t, saved, 3)
}
