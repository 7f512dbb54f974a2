package econ

import (
	"context"
	"fmt"
	"math"
)

// Params maps parameter names to values, as received from clients.
type Params map[string]float64

// Outputs maps output names to computed values. Boolean outputs such as
// "binding" are encoded as 0 or 1.
type Outputs map[string]float64

// Result is the outcome of a successful evaluation. Tags carry the few
// non-numeric outputs, such as which good a corner solution lands on.
type Result struct {
	Kind    ModelKind         `json:"kind"`
	Outputs Outputs           `json:"outputs"`
	Tags    map[string]string `json:"tags,omitempty"`
}

// reader extracts required parameters from a Params map, accumulating the
// first error it hits so call sites stay flat.
type reader struct {
	params Params
	err    error
}

func (r *reader) get(name string) float64 {
	if r.err != nil {
		return 0
	}
	v, ok := r.params[name]
	if !ok {
		r.err = fmt.Errorf("%w: %s", ErrMissingParam, name)
		return 0
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		r.err = fmt.Errorf("%w: %s is not finite", ErrBadParam, name)
		return 0
	}
	return v
}

// Evaluate dispatches a generic parameter map to the typed solver for kind
// and flattens the typed result into named outputs. Evaluation is pure and
// completes in constant time; ctx is checked once for early cancellation.
func Evaluate(ctx context.Context, kind ModelKind, params Params) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("evaluation cancelled: %w", err)
	}

	r := &reader{params: params}
	res := Result{Kind: kind}

	switch kind {
	case DemandSupply:
		m := MarketParams{A: r.get("a"), B: r.get("b"), C: r.get("c"), D: r.get("d")}
		if r.err != nil {
			return Result{}, r.err
		}
		eq, err := SolveEquilibrium(m)
		if err != nil {
			return Result{}, err
		}
		res.Outputs = Outputs{"P": eq.P, "Q": eq.Q}

	case Elasticity:
		m := MarketParams{A: r.get("a"), B: r.get("b"), C: r.get("c"), D: r.get("d")}
		if r.err != nil {
			return Result{}, r.err
		}
		el, err := SolveElasticity(m)
		if err != nil {
			return Result{}, err
		}
		res.Outputs = Outputs{"P": el.P, "Q": el.Q, "ed": el.Demand, "es": el.Supply}

	case Monopoly:
		p := MonopolyParams{A: r.get("a"), B: r.get("b"), C: r.get("c")}
		if r.err != nil {
			return Result{}, r.err
		}
		mr, err := SolveMonopoly(p)
		if err != nil {
			return Result{}, err
		}
		res.Outputs = Outputs{"Qm": mr.Qm, "Pm": mr.Pm, "CS": mr.CS, "PS": mr.PS, "DWL": mr.DWL}

	case PerUnitTax:
		p := TaxParams{
			Market: MarketParams{A: r.get("a"), B: r.get("b"), C: r.get("c"), D: r.get("d")},
			T:      r.get("t"),
		}
		if r.err != nil {
			return Result{}, r.err
		}
		tr, err := SolveTax(p)
		if err != nil {
			return Result{}, err
		}
		res.Outputs = Outputs{
			"Pd": tr.Pd, "Ps": tr.Ps, "Q": tr.Q,
			"revenue": tr.Revenue, "DWL": tr.DWL,
			"consumer_share": tr.ConsumerShare, "producer_share": tr.ProducerShare,
		}

	case PriceCeiling:
		p := CeilingParams{
			Market: MarketParams{A: r.get("a"), B: r.get("b"), C: r.get("c"), D: r.get("d")},
			PCeil:  r.get("p_ceil"),
		}
		if r.err != nil {
			return Result{}, r.err
		}
		cr, err := SolveCeiling(p)
		if err != nil {
			return Result{}, err
		}
		res.Outputs = Outputs{"P": cr.P, "Q": cr.Q, "shortage": cr.Shortage, "binding": boolOutput(cr.Binding)}

	case CobbDouglas:
		p := CobbDouglasParams{
			Alpha: r.get("alpha"), Beta: r.get("beta"),
			I: r.get("i"), Px: r.get("p_x"), Py: r.get("p_y"),
		}
		if r.err != nil {
			return Result{}, r.err
		}
		b, err := SolveCobbDouglas(p)
		if err != nil {
			return Result{}, err
		}
		res.Outputs = Outputs{"x": b.X, "y": b.Y, "u": b.U}

	case CostQuadratic:
		p := QuadraticCostParams{F: r.get("f"), V: r.get("v"), K: r.get("k"), P: r.get("p")}
		if r.err != nil {
			return Result{}, r.err
		}
		q, err := SolveQuadraticCost(p)
		if err != nil {
			return Result{}, err
		}
		res.Outputs = Outputs{"q": q.Q, "profit": q.Profit}

	case KuhnTucker:
		p := KuhnTuckerParams{Px: r.get("p_x"), Py: r.get("p_y"), I: r.get("i")}
		if r.err != nil {
			return Result{}, r.err
		}
		kt, err := SolveKuhnTucker(p)
		if err != nil {
			return Result{}, err
		}
		res.Outputs = Outputs{"x": kt.X, "y": kt.Y, "lambda": kt.Lambda, "u": kt.U}

	case CornerSubstitutes:
		p := CornerParams{
			A: r.get("a"), B: r.get("b"),
			Px: r.get("p_x"), Py: r.get("p_y"), I: r.get("i"),
		}
		if r.err != nil {
			return Result{}, r.err
		}
		c, err := SolveCorner(p)
		if err != nil {
			return Result{}, err
		}
		res.Outputs = Outputs{"x": c.X, "y": c.Y, "u": c.U}
		res.Tags = map[string]string{"corner": c.Corner}

	case ConcaveUnconstrained:
		p := ConcaveParams{AX: r.get("a_x"), AY: r.get("a_y")}
		if r.err != nil {
			return Result{}, r.err
		}
		c, err := SolveConcave(p)
		if err != nil {
			return Result{}, err
		}
		res.Outputs = Outputs{"x": c.X, "y": c.Y, "value": c.Value}

	case ParetoExchange:
		p := ParetoParams{
			Alpha: r.get("alpha"), Beta: r.get("beta"),
			EndowX: r.get("endow_x"), EndowY: r.get("endow_y"), X1: r.get("x1"),
		}
		if r.err != nil {
			return Result{}, r.err
		}
		pr, err := SolvePareto(p)
		if err != nil {
			return Result{}, err
		}
		res.Outputs = Outputs{"x1": pr.X1, "y1": pr.Y1, "x2": pr.X2, "y2": pr.Y2, "u1": pr.U1, "u2": pr.U2}

	case ExpectedUtility:
		p := LotteryParams{P: r.get("p"), X1: r.get("x1"), X2: r.get("x2"), Gamma: r.get("gamma")}
		if r.err != nil {
			return Result{}, r.err
		}
		eu, err := SolveExpectedUtility(p)
		if err != nil {
			return Result{}, err
		}
		res.Outputs = Outputs{"eu": eu.EU, "ev": eu.EV}

	case RiskAversion:
		p := LotteryParams{P: r.get("p"), X1: r.get("x1"), X2: r.get("x2"), Gamma: r.get("gamma")}
		if r.err != nil {
			return Result{}, r.err
		}
		ra, err := SolveRiskAversion(p)
		if err != nil {
			return Result{}, err
		}
		res.Outputs = Outputs{
			"eu": ra.EU, "ev": ra.EV, "ce": ra.CE, "rp": ra.RP,
			"risk_averse": boolOutput(ra.RiskAverse),
		}

	case CESUtility:
		p := CESParams{
			Alpha: r.get("alpha"), Beta: r.get("beta"), Rho: r.get("rho"),
			Px: r.get("p_x"), Py: r.get("p_y"), I: r.get("i"),
		}
		if r.err != nil {
			return Result{}, r.err
		}
		c, err := SolveCES(p)
		if err != nil {
			return Result{}, err
		}
		res.Outputs = Outputs{"x": c.X, "y": c.Y, "u": c.U, "sigma": c.Sigma}

	case SlutskyDecomposition:
		p := SlutskyParams{
			Alpha: r.get("alpha"), Beta: r.get("beta"), I: r.get("i"),
			Px: r.get("p_x"), Py: r.get("p_y"), DPx: r.get("dp_x"),
		}
		if r.err != nil {
			return Result{}, r.err
		}
		s, err := SolveSlutsky(p)
		if err != nil {
			return Result{}, err
		}
		res.Outputs = Outputs{
			"x0": s.X0, "x1": s.X1, "total": s.Total,
			"income": s.Income, "substitution": s.Substitution,
		}

	case PigouvianTax:
		p := PigouvianParams{
			Market: MarketParams{A: r.get("a"), B: r.get("b"), C: r.get("c"), D: r.get("d")},
			E:      r.get("e"),
		}
		if r.err != nil {
			return Result{}, r.err
		}
		pg, err := SolvePigouvian(p)
		if err != nil {
			return Result{}, err
		}
		res.Outputs = Outputs{
			"P": pg.P, "Q": pg.Q, "Q_opt": pg.QOpt, "P_opt": pg.POpt, "P_sup": pg.PSup,
			"tax": pg.Tax, "revenue": pg.Revenue, "DWL": pg.DWL,
		}

	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownModel, kind)
	}

	// Guards above should keep every closed form inside its domain; anything
	// non-finite slipping through is an internal fault, not infeasibility.
	for name, v := range res.Outputs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Result{}, fmt.Errorf("%w: output %s of %s", ErrNotFinite, name, kind)
		}
	}
	return res, nil
}

func boolOutput(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
