// Package rotation implementa o motor de rotação de carteiras: elegibilidade,
// distribuição das contas entre vendedores e o relatório de diferenças de carteira.
package rotation

import "errors"

var (
	// Erros de validação de entrada
	ErrInvalidCap         = errors.New("limite por vendedor não pode ser negativo")
	ErrEmptyCandidatePool = errors.New("nenhum vendedor candidato para a rotação")
	ErrMissingTaxRoot     = errors.New("conta sem raiz de CNPJ")

	// Erros de persistência do histórico
	ErrHistoryWrite = errors.New("erro ao gravar o histórico de rotação")
)
