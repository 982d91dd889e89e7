package rotation

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/portfolio-rotation-api/internal/domain"
	"github.com/vfg2006/portfolio-rotation-api/pkg/utils"
)

// EventRecorder persiste todos os eventos de uma rodada numa única transação
type EventRecorder interface {
	RecordBatch(ctx context.Context, events []*domain.RotationEvent) error
}

// PriorHolders indexa, por raiz de CNPJ, todos os vendedores que já tiveram a conta
type PriorHolders map[string]map[string]struct{}

func (h PriorHolders) Add(taxRootID, salesperson string) {
	if salesperson == "" {
		return
	}

	root := domain.NormalizeTaxRoot(taxRootID)
	if h[root] == nil {
		h[root] = make(map[string]struct{})
	}
	h[root][salesperson] = struct{}{}
}

func (h PriorHolders) Has(taxRootID, salesperson string) bool {
	_, ok := h[domain.NormalizeTaxRoot(taxRootID)][salesperson]
	return ok
}

// Merge adiciona ao conjunto os detentores atuais do snapshot
func (h PriorHolders) Merge(accounts []*domain.Account) PriorHolders {
	for _, account := range accounts {
		h.Add(account.TaxRootID, account.SalespersonName)
	}
	return h
}

type Result struct {
	Rotated  []*domain.Account
	Leftover []*domain.Account
	Events   []*domain.RotationEvent
}

type Assigner struct {
	recorder EventRecorder
	rng      *rand.Rand
	now      func() time.Time
}

type AssignerOption func(*Assigner)

// WithClock substitui o relógio usado para a data da rotação
func WithClock(now func() time.Time) AssignerOption {
	return func(a *Assigner) {
		a.now = now
	}
}

// NewAssigner cria o distribuidor. Com recorder nil a rodada é apenas simulada
// e nenhum evento é gravado.
func NewAssigner(recorder EventRecorder, rng *rand.Rand, opts ...AssignerOption) *Assigner {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	assigner := &Assigner{
		recorder: recorder,
		rng:      rng,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(assigner)
	}

	return assigner
}

// Rotate distribui as contas elegíveis numa única passada, na ordem recebida. Para cada
// conta sorteia uniformemente um candidato que nunca teve a raiz do CNPJ e ainda está
// abaixo do limite; sem candidato a conta vai para as sobras sem alteração.
// Os eventos são gravados antes do retorno: se a gravação falhar nenhuma conta é
// reportada como rotacionada.
func (a *Assigner) Rotate(
	ctx context.Context,
	eligible []*domain.Account,
	candidates []string,
	history PriorHolders,
	perPersonCap int,
) (*Result, error) {
	if perPersonCap < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCap, perPersonCap)
	}

	pool := uniqueNames(candidates)
	if len(pool) == 0 && perPersonCap > 0 {
		return nil, ErrEmptyCandidatePool
	}

	if history == nil {
		history = PriorHolders{}
	}

	today := utils.StartOfDay(a.now())
	counters := make(map[string]int, len(pool))
	result := &Result{
		Rotated:  make([]*domain.Account, 0),
		Leftover: make([]*domain.Account, 0),
		Events:   make([]*domain.RotationEvent, 0),
	}

	for _, account := range eligible {
		available := make([]string, 0, len(pool))
		for _, name := range pool {
			if history.Has(account.TaxRootID, name) || counters[name] >= perPersonCap {
				continue
			}
			available = append(available, name)
		}

		if len(available) == 0 {
			result.Leftover = append(result.Leftover, account.Clone())
			continue
		}

		chosen := available[a.rng.Intn(len(available))]
		counters[chosen]++

		rotated := account.Clone()
		rotated.SalespersonName = chosen
		rotated.EnteredPortfolioDate = utils.DatePtr(today)
		rotated.LastRotationDate = utils.DatePtr(today)
		result.Rotated = append(result.Rotated, rotated)

		result.Events = append(result.Events, &domain.RotationEvent{
			SalespersonName: chosen,
			AccountID:       account.ID,
			TaxRootID:       domain.NormalizeTaxRoot(account.TaxRootID),
			Type:            domain.RotationTypeAutomatic,
			RotationDate:    today,
		})
	}

	if a.recorder != nil && len(result.Events) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if err := a.recorder.RecordBatch(ctx, result.Events); err != nil {
			logrus.WithError(err).WithField("eventos", len(result.Events)).
				Error("Falha ao gravar histórico de rotação, nenhuma conta será reportada como rotacionada")
			return nil, fmt.Errorf("%w: %v", ErrHistoryWrite, err)
		}
	}

	logrus.WithFields(logrus.Fields{
		"elegiveis":    len(eligible),
		"rotacionadas": len(result.Rotated),
		"sobras":       len(result.Leftover),
		"limite":       perPersonCap,
		"candidatos":   len(pool),
		"data_rotacao": today.Format(time.DateOnly),
	}).Info("Rotação concluída")

	return result, nil
}

func uniqueNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	unique := make([]string, 0, len(names))

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		unique = append(unique, name)
	}

	return unique
}
