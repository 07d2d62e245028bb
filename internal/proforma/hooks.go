package proforma

import (
	"gonum.org/v1/gonum/mat"

	"github.com/proforma-service/internal/domain"
)

// WorkingSite is a site row as the evaluator sees it, after the engine has copied it
type WorkingSite struct {
	domain.Site
	WeightedRent float64
}

// Hooks are optional caller overrides applied during a lookup. Matrices are
// far candidates (rows, in grid order) by sites (columns, aligned with the
// sites slice). A hook must return a value of the same shape it was given.
type Hooks struct {
	ModifySites    func(p *ProForma, form string, sites []WorkingSite) ([]WorkingSite, error)
	ModifyRevenues func(p *ProForma, form string, sites []WorkingSite, revenues *mat.Dense) (*mat.Dense, error)
	ModifyCosts    func(p *ProForma, form string, sites []WorkingSite, costs *mat.Dense) (*mat.Dense, error)
	ModifyProfits  func(p *ProForma, form string, sites []WorkingSite, profits *mat.Dense) (*mat.Dense, error)
}

type matrixHook func(p *ProForma, form string, sites []WorkingSite, m *mat.Dense) (*mat.Dense, error)

func (p *ProForma) applySitesHook(h *Hooks, formName string, sites []WorkingSite) ([]WorkingSite, error) {
	if h == nil || h.ModifySites == nil {
		return sites, nil
	}
	out, err := h.ModifySites(p, formName, sites)
	if err != nil {
		return nil, &HookContractError{Hook: "modify_sites", Reason: "hook failed", Err: err}
	}
	if len(out) != len(sites) {
		return nil, &HookContractError{Hook: "modify_sites", Reason: "returned a different number of sites"}
	}
	return out, nil
}

func (p *ProForma) applyMatrixHook(name string, fn matrixHook, formName string, sites []WorkingSite, m *mat.Dense) (*mat.Dense, error) {
	if fn == nil {
		return m, nil
	}
	r, c := m.Dims()
	out, err := fn(p, formName, sites, m)
	if err != nil {
		return nil, &HookContractError{Hook: name, Reason: "hook failed", Err: err}
	}
	if out == nil {
		return nil, &HookContractError{Hook: name, Reason: "returned nil"}
	}
	if or, oc := out.Dims(); or != r || oc != c {
		return nil, &HookContractError{Hook: name, Reason: "returned a matrix of a different shape"}
	}
	return out, nil
}

func (h *Hooks) revenues() matrixHook {
	if h == nil {
		return nil
	}
	return h.ModifyRevenues
}

func (h *Hooks) costs() matrixHook {
	if h == nil {
		return nil
	}
	return h.ModifyCosts
}

func (h *Hooks) profits() matrixHook {
	if h == nil {
		return nil
	}
	return h.ModifyProfits
}
