package spreadsheet

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vfg2006/portfolio-rotation-api/internal/domain"
)

const (
	ConsolidatedReportFileName = "relatorio_mensal_completo.xlsx"
	BundleFileName             = "relatorios_rotacao.zip"
)

type File struct {
	Name    string
	Content []byte
}

var fileNameReplacer = strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_")

// ReportFileName segue o padrão relatorio_<Nome_Do_Vendedor>_<AAAA-MM-DD>.xlsx
func ReportFileName(salesperson string, rotationDate time.Time) string {
	return fmt.Sprintf("relatorio_%s_%s.xlsx", fileNameReplacer.Replace(salesperson), rotationDate.Format(time.DateOnly))
}

// RotatedFileName é o nome do download das contas rotacionadas
func RotatedFileName(rotationDate time.Time) string {
	return fmt.Sprintf("historico_%s.xlsx", rotationDate.Format(time.DateOnly))
}

// BuildReportFiles gera um arquivo por vendedor e o consolidado com uma aba por vendedor
func BuildReportFiles(report *domain.PortfolioReport) ([]File, error) {
	files := make([]File, 0, len(report.Salespeople)+1)

	for _, salesperson := range report.Salespeople {
		var buffer bytes.Buffer
		if err := WriteSalespersonReport(&buffer, salesperson); err != nil {
			return nil, fmt.Errorf("erro ao gerar relatório de %s: %w", salesperson.SalespersonName, err)
		}

		files = append(files, File{
			Name:    ReportFileName(salesperson.SalespersonName, report.RotationDate),
			Content: buffer.Bytes(),
		})
	}

	var consolidated bytes.Buffer
	if err := WriteConsolidatedReport(&consolidated, report); err != nil {
		return nil, fmt.Errorf("erro ao gerar relatório consolidado: %w", err)
	}

	files = append(files, File{Name: ConsolidatedReportFileName, Content: consolidated.Bytes()})

	return files, nil
}

// Zip compacta os arquivos na ordem recebida
func Zip(w io.Writer, files []File) error {
	archive := zip.NewWriter(w)

	for _, file := range files {
		entry, err := archive.CreateHeader(&zip.FileHeader{
			Name:     file.Name,
			Method:   zip.Deflate,
			Modified: time.Now(),
		})
		if err != nil {
			return fmt.Errorf("erro ao adicionar %s ao zip: %w", file.Name, err)
		}

		if _, err := entry.Write(file.Content); err != nil {
			return fmt.Errorf("erro ao gravar %s no zip: %w", file.Name, err)
		}
	}

	return archive.Close()
}

// SaveFiles grava os arquivos no diretório informado, criando-o se necessário
func SaveFiles(dir string, files []File) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("erro ao criar diretório %s: %w", dir, err)
	}

	for _, file := range files {
		if err := os.WriteFile(filepath.Join(dir, file.Name), file.Content, 0o644); err != nil {
			return fmt.Errorf("erro ao gravar %s: %w", file.Name, err)
		}
	}

	return nil
}
