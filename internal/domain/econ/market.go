package econ

import "math"

// MarketParams describes a linear market with demand Qd = a - bP and supply
// Qs = c + dP. The same four parameters feed the elasticity, tax, ceiling
// and Pigouvian models.
type MarketParams struct {
	A float64 // demand intercept
	B float64 // demand slope
	C float64 // supply intercept
	D float64 // supply slope
}

// EquilibriumResult holds the market-clearing price and quantity.
type EquilibriumResult struct {
	P float64
	Q float64
}

// SolveEquilibrium computes the market-clearing price P = (a-c)/(b+d) and
// the quantity traded at that price. Negative price or quantity is reported
// as infeasible.
func SolveEquilibrium(m MarketParams) (EquilibriumResult, error) {
	if m.B+m.D <= 0 {
		return EquilibriumResult{}, infeasible("b+d must be positive, got %g", m.B+m.D)
	}
	p := (m.A - m.C) / (m.B + m.D)
	q := m.A - m.B*p
	if p < 0 {
		return EquilibriumResult{}, infeasible("equilibrium price %g is negative", p)
	}
	if q < 0 {
		return EquilibriumResult{}, infeasible("equilibrium quantity %g is negative", q)
	}
	return EquilibriumResult{P: p, Q: q}, nil
}

// ElasticityResult holds point elasticities evaluated at the equilibrium.
type ElasticityResult struct {
	P      float64
	Q      float64
	Demand float64 // ed = -b*P/Q
	Supply float64 // es = d*P/Q
}

// SolveElasticity evaluates demand and supply elasticity at the market
// equilibrium. Requires a strictly positive equilibrium quantity.
func SolveElasticity(m MarketParams) (ElasticityResult, error) {
	eq, err := SolveEquilibrium(m)
	if err != nil {
		return ElasticityResult{}, err
	}
	if eq.Q <= 0 {
		return ElasticityResult{}, infeasible("elasticity undefined at zero quantity")
	}
	return ElasticityResult{
		P:      eq.P,
		Q:      eq.Q,
		Demand: -m.B * eq.P / eq.Q,
		Supply: m.D * eq.P / eq.Q,
	}, nil
}

// MonopolyParams describes a monopolist facing inverse demand P = a - bQ
// with constant marginal cost c.
type MonopolyParams struct {
	A float64 // inverse demand intercept
	B float64 // inverse demand slope
	C float64 // constant marginal cost
}

// MonopolyResult holds the monopoly outcome and its welfare measures.
type MonopolyResult struct {
	Qm  float64
	Pm  float64
	CS  float64
	PS  float64
	DWL float64
}

// SolveMonopoly computes the profit-maximizing quantity Qm = (a-c)/(2b),
// the monopoly price Pm = (a+c)/2, consumer and producer surplus, and the
// deadweight loss relative to the competitive quantity (a-c)/b.
func SolveMonopoly(m MonopolyParams) (MonopolyResult, error) {
	if m.B <= 0 {
		return MonopolyResult{}, infeasible("demand slope b must be positive, got %g", m.B)
	}
	if m.A <= m.C {
		return MonopolyResult{}, infeasible("demand intercept a=%g must exceed marginal cost c=%g", m.A, m.C)
	}
	qm := (m.A - m.C) / (2 * m.B)
	pm := (m.A + m.C) / 2
	qc := (m.A - m.C) / m.B
	return MonopolyResult{
		Qm:  qm,
		Pm:  pm,
		CS:  0.5 * (m.A - pm) * qm,
		PS:  (pm - m.C) * qm,
		DWL: 0.5 * (pm - m.C) * (qc - qm),
	}, nil
}

// TaxParams describes a per-unit tax t levied on sellers in a linear market.
type TaxParams struct {
	Market MarketParams
	T      float64 // per-unit tax
}

// TaxResult holds the post-tax prices, quantity, revenue, deadweight loss
// and the incidence split between buyers and sellers.
type TaxResult struct {
	Pd            float64 // price paid by buyers
	Ps            float64 // price received by sellers
	Q             float64
	Revenue       float64
	DWL           float64
	ConsumerShare float64
	ProducerShare float64
}

// SolveTax computes the incidence of a per-unit tax on sellers. The seller
// price solves Ps = (a-c-bt)/(b+d); the deadweight loss uses the pre-tax
// equilibrium quantity.
func SolveTax(p TaxParams) (TaxResult, error) {
	m := p.Market
	if m.B+m.D <= 0 {
		return TaxResult{}, infeasible("b+d must be positive, got %g", m.B+m.D)
	}
	eq, err := SolveEquilibrium(m)
	if err != nil {
		return TaxResult{}, err
	}
	ps := (m.A - m.C - m.B*p.T) / (m.B + m.D)
	pd := ps + p.T
	q := m.C + m.D*ps
	if q < 0 {
		return TaxResult{}, infeasible("post-tax quantity %g is negative", q)
	}
	if pd < 0 {
		return TaxResult{}, infeasible("post-tax buyer price %g is negative", pd)
	}
	res := TaxResult{
		Pd:      pd,
		Ps:      ps,
		Q:       q,
		Revenue: p.T * q,
		DWL:     0.5 * p.T * math.Abs(eq.Q-q),
	}
	if p.T != 0 {
		res.ConsumerShare = (pd - eq.P) / p.T
		res.ProducerShare = (eq.P - ps) / p.T
	}
	return res, nil
}

// CeilingParams describes a price ceiling imposed on a linear market.
type CeilingParams struct {
	Market MarketParams
	PCeil  float64
}

// CeilingResult holds the traded quantity and shortage under the ceiling.
// Binding is false when the ceiling sits at or above the equilibrium price.
type CeilingResult struct {
	P        float64 // effective price: min(p_ceil, P*)
	Q        float64 // quantity traded
	Shortage float64
	Binding  bool
}

// SolveCeiling evaluates a price ceiling. A ceiling at or above the
// equilibrium price leaves the market at its unconstrained equilibrium; a
// binding ceiling caps trade at supply and leaves excess demand unserved.
func SolveCeiling(p CeilingParams) (CeilingResult, error) {
	m := p.Market
	eq, err := SolveEquilibrium(m)
	if err != nil {
		return CeilingResult{}, err
	}
	if p.PCeil >= eq.P {
		return CeilingResult{P: eq.P, Q: eq.Q, Shortage: 0, Binding: false}, nil
	}
	qs := m.C + m.D*p.PCeil
	qd := m.A - m.B*p.PCeil
	return CeilingResult{
		P:        p.PCeil,
		Q:        math.Max(0, qs),
		Shortage: math.Max(0, qd-qs),
		Binding:  true,
	}, nil
}

// PigouvianParams describes a market whose production carries a constant
// marginal external cost e.
type PigouvianParams struct {
	Market MarketParams
	E      float64 // marginal external cost
}

// PigouvianResult holds the private equilibrium, the social optimum, and
// the corrective tax that internalizes the externality.
type PigouvianResult struct {
	P       float64 // private equilibrium price
	Q       float64 // private equilibrium quantity
	QOpt    float64 // socially optimal quantity
	POpt    float64 // demand-side price at the optimum
	PSup    float64 // supply-side price at the optimum
	Tax     float64 // corrective tax: equals e
	Revenue float64
	DWL     float64 // surplus lost by the unregulated market
}

// SolvePigouvian computes the socially optimal quantity
// Q_opt = (ad+bc-bde)/(b+d) and the Pigouvian tax t* = e that moves the
// market there. The deadweight loss measures the unregulated market's
// overproduction against the marginal external cost.
func SolvePigouvian(p PigouvianParams) (PigouvianResult, error) {
	m := p.Market
	if p.E < 0 {
		return PigouvianResult{}, infeasible("marginal external cost e=%g must be non-negative", p.E)
	}
	if m.B <= 0 || m.D <= 0 {
		return PigouvianResult{}, infeasible("slopes b=%g and d=%g must be positive", m.B, m.D)
	}
	eq, err := SolveEquilibrium(m)
	if err != nil {
		return PigouvianResult{}, err
	}
	qOpt := (m.A*m.D + m.B*m.C - m.B*m.D*p.E) / (m.B + m.D)
	if qOpt < 0 {
		return PigouvianResult{}, infeasible("socially optimal quantity %g is negative", qOpt)
	}
	return PigouvianResult{
		P:       eq.P,
		Q:       eq.Q,
		QOpt:    qOpt,
		POpt:    (m.A - qOpt) / m.B,
		PSup:    (qOpt - m.C) / m.D,
		Tax:     p.E,
		Revenue: p.E * qOpt,
		DWL:     0.5 * (eq.Q - qOpt) * p.E,
	}, nil
}
