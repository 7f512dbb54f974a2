// Package econ evaluates closed-form economic models. Every model is a pure
// function from a numeric parameter set to a set of named outputs, or an
// explicit infeasibility when the parameters admit no economically valid
// solution.
package econ

// ModelKind selects which closed-form model to evaluate.
type ModelKind string

// Supported model kinds.
const (
	DemandSupply         ModelKind = "demand_supply"
	Elasticity           ModelKind = "elasticity"
	Monopoly             ModelKind = "monopoly"
	PerUnitTax           ModelKind = "per_unit_tax"
	PriceCeiling         ModelKind = "price_ceiling"
	CobbDouglas          ModelKind = "cobb_douglas"
	CostQuadratic        ModelKind = "cost_quadratic"
	KuhnTucker           ModelKind = "kuhn_tucker"
	CornerSubstitutes    ModelKind = "corner_substitutes"
	ConcaveUnconstrained ModelKind = "concave_unconstrained"
	ParetoExchange       ModelKind = "pareto_exchange"
	ExpectedUtility      ModelKind = "expected_utility"
	RiskAversion         ModelKind = "risk_aversion"
	CESUtility           ModelKind = "ces_utility"
	SlutskyDecomposition ModelKind = "slutsky_decomposition"
	PigouvianTax         ModelKind = "pigouvian_tax"
)

// ModelSpec describes a model kind for catalog listings: the parameters it
// requires and the outputs it produces.
type ModelSpec struct {
	Kind        ModelKind `json:"kind"`
	Description string    `json:"description"`
	Params      []string  `json:"params"`
	Outputs     []string  `json:"outputs"`
}

// catalog enumerates every supported kind. Order is the presentation order
// used by the /models endpoint.
var catalog = []ModelSpec{
	{
		Kind:        DemandSupply,
		Description: "linear market equilibrium for Qd = a - bP, Qs = c + dP",
		Params:      []string{"a", "b", "c", "d"},
		Outputs:     []string{"P", "Q"},
	},
	{
		Kind:        Elasticity,
		Description: "demand and supply elasticity at the market equilibrium",
		Params:      []string{"a", "b", "c", "d"},
		Outputs:     []string{"P", "Q", "ed", "es"},
	},
	{
		Kind:        Monopoly,
		Description: "monopoly with inverse demand P = a - bQ and constant marginal cost",
		Params:      []string{"a", "b", "c"},
		Outputs:     []string{"Qm", "Pm", "CS", "PS", "DWL"},
	},
	{
		Kind:        PerUnitTax,
		Description: "incidence of a per-unit tax levied on sellers",
		Params:      []string{"a", "b", "c", "d", "t"},
		Outputs:     []string{"Pd", "Ps", "Q", "revenue", "DWL", "consumer_share", "producer_share"},
	},
	{
		Kind:        PriceCeiling,
		Description: "binding or non-binding price ceiling on a linear market",
		Params:      []string{"a", "b", "c", "d", "p_ceil"},
		Outputs:     []string{"P", "Q", "shortage", "binding"},
	},
	{
		Kind:        CobbDouglas,
		Description: "Cobb-Douglas utility maximization on a linear budget",
		Params:      []string{"alpha", "beta", "i", "p_x", "p_y"},
		Outputs:     []string{"x", "y", "u"},
	},
	{
		Kind:        CostQuadratic,
		Description: "profit maximization with quadratic cost, including shutdown",
		Params:      []string{"f", "v", "k", "p"},
		Outputs:     []string{"q", "profit"},
	},
	{
		Kind:        KuhnTucker,
		Description: "interior optimum of max xy subject to the budget constraint",
		Params:      []string{"p_x", "p_y", "i"},
		Outputs:     []string{"x", "y", "lambda", "u"},
	},
	{
		Kind:        CornerSubstitutes,
		Description: "corner solution for perfect substitutes u = ax + by",
		Params:      []string{"a", "b", "p_x", "p_y", "i"},
		Outputs:     []string{"x", "y", "u", "corner"},
	},
	{
		Kind:        ConcaveUnconstrained,
		Description: "unconstrained maximum of -(x-ax)^2 - (y-ay)^2",
		Params:      []string{"a_x", "a_y"},
		Outputs:     []string{"x", "y", "value"},
	},
	{
		Kind:        ParetoExchange,
		Description: "contract-curve allocation in a 2x2 Cobb-Douglas exchange economy",
		Params:      []string{"alpha", "beta", "endow_x", "endow_y", "x1"},
		Outputs:     []string{"x1", "y1", "x2", "y2", "u1", "u2"},
	},
	{
		Kind:        ExpectedUtility,
		Description: "expected utility of a two-outcome lottery under CRRA utility",
		Params:      []string{"p", "x1", "x2", "gamma"},
		Outputs:     []string{"eu", "ev"},
	},
	{
		Kind:        RiskAversion,
		Description: "certainty equivalent and risk premium under CRRA utility",
		Params:      []string{"p", "x1", "x2", "gamma"},
		Outputs:     []string{"eu", "ev", "ce", "rp", "risk_averse"},
	},
	{
		Kind:        CESUtility,
		Description: "CES utility maximization on a linear budget",
		Params:      []string{"alpha", "beta", "rho", "p_x", "p_y", "i"},
		Outputs:     []string{"x", "y", "u", "sigma"},
	},
	{
		Kind:        SlutskyDecomposition,
		Description: "total, income and substitution effects of a price change",
		Params:      []string{"alpha", "beta", "i", "p_x", "p_y", "dp_x"},
		Outputs:     []string{"x0", "x1", "total", "income", "substitution"},
	},
	{
		Kind:        PigouvianTax,
		Description: "corrective tax for a constant marginal external cost",
		Params:      []string{"a", "b", "c", "d", "e"},
		Outputs:     []string{"P", "Q", "Q_opt", "P_opt", "P_sup", "tax", "revenue", "DWL"},
	},
}

// Catalog returns the specs of all supported model kinds.
func Catalog() []ModelSpec {
	out := make([]ModelSpec, len(catalog))
	copy(out, catalog)
	return out
}

// Known reports whether kind names a supported model.
func Known(kind ModelKind) bool {
	for i := range catalog {
		if catalog[i].Kind == kind {
			return true
		}
	}
	return false
}
