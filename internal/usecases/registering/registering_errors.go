package registering

import (
	"errors"
	"fmt"
)

// Erros específicos do cadastro de vendedores
var (
	// Erros de validação
	ErrNameRequired          = errors.New("nome do vendedor é obrigatório")
	ErrInvalidGroup          = errors.New("grupo de vendas inválido")
	ErrDuplicateRegistration = errors.New("vendedor já cadastrado")
	ErrSalespersonNotFound   = errors.New("vendedor não encontrado")

	// Erros de serviços externos
	ErrSourceUnavailable = errors.New("erro ao consultar vendedores no data warehouse")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

// RegistryError é um erro com contexto adicional para o cadastro
type RegistryError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Name    string // Vendedor envolvido (quando aplicável)
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *RegistryError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *RegistryError) Unwrap() error {
	return e.Err
}

// NewRegistryError cria um novo RegistryError
func NewRegistryError(err error, code string, details string) *RegistryError {
	return &RegistryError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// NewRegistryErrorWithName cria um novo RegistryError com o nome do vendedor
func NewRegistryErrorWithName(err error, code string, name string, details string) *RegistryError {
	return &RegistryError{
		Err:     err,
		Code:    code,
		Name:    name,
		Details: details,
	}
}
