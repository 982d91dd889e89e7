package domain

import "time"

type SalesGroup string

const (
	SalesGroupDistribution SalesGroup = "Distribuição"
	SalesGroupCorporate    SalesGroup = "Corporativo"
	SalesGroupOther        SalesGroup = "Outro Tipo"
)

// SalesGroups lista os grupos na ordem exibida ao operador
var SalesGroups = []SalesGroup{SalesGroupDistribution, SalesGroupCorporate, SalesGroupOther}

func (g SalesGroup) IsValid() bool {
	switch g {
	case SalesGroupDistribution, SalesGroupCorporate, SalesGroupOther:
		return true
	}
	return false
}

// Slug é o identificador usado em rotas e nomes de pasta
func (g SalesGroup) Slug() string {
	switch g {
	case SalesGroupDistribution:
		return "distribuicao"
	case SalesGroupCorporate:
		return "corporativo"
	case SalesGroupOther:
		return "outro"
	}
	return ""
}

// SalesGroupFromSlug aceita tanto o slug quanto o nome completo do grupo
func SalesGroupFromSlug(value string) (SalesGroup, bool) {
	for _, group := range SalesGroups {
		if value == group.Slug() || value == string(group) {
			return group, true
		}
	}
	return "", false
}

type Salesperson struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Group     SalesGroup `json:"group"`
	CreatedAt time.Time  `json:"created_at"`
}

type CreateSalespersonRequest struct {
	Name  string     `json:"name"`
	Group SalesGroup `json:"group"`
}

type SalespeopleByGroup struct {
	Distribution []string `json:"distribuicao"`
	Corporate    []string `json:"corporativo"`
	Other        []string `json:"outro"`
}

type SyncSalespeopleResponse struct {
	Quantity int    `json:"quantity"`
	Message  string `json:"message"`
	Error    bool   `json:"error"`
}
