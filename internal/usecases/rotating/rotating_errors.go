package rotating

import (
	"errors"
	"fmt"
)

// Erros específicos do contexto de rotação
var (
	// Erros de validação
	ErrInvalidGroup   = errors.New("grupo de vendas inválido")
	ErrInvalidRequest = errors.New("requisição de rotação inválida")
	ErrNotRegistered  = errors.New("vendedor não cadastrado")

	// Erros de execução
	ErrRunInProgress = errors.New("já existe uma rotação em andamento")
	ErrRunNotFound   = errors.New("nenhuma rotação executada para o grupo")

	// Erros de serviços externos
	ErrSourceUnavailable = errors.New("erro ao buscar contas no data warehouse")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

// RotationError é um erro com contexto adicional para a rotação
type RotationError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Group   string // Grupo envolvido (quando aplicável)
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *RotationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *RotationError) Unwrap() error {
	return e.Err
}

// NewRotationError cria um novo RotationError
func NewRotationError(err error, code string, details string) *RotationError {
	return &RotationError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// NewGroupRotationError cria um novo RotationError com o grupo da rodada
func NewGroupRotationError(err error, code string, group string, details string) *RotationError {
	return &RotationError{
		Err:     err,
		Code:    code,
		Group:   group,
		Details: details,
	}
}
