package econ

import "math"

// LotteryParams describes a two-outcome lottery paying x1 with probability
// p and x2 otherwise, evaluated under CRRA utility u(w) = w^gamma for
// gamma != 1 and u(w) = ln(w) for gamma = 1.
type LotteryParams struct {
	P     float64 // probability of the first outcome
	X1    float64
	X2    float64
	Gamma float64 // CRRA parameter
}

// ExpectedUtilityResult holds the lottery's expected utility and expected
// value.
type ExpectedUtilityResult struct {
	EU float64
	EV float64
}

// RiskAversionResult extends the expected-utility computation with the
// certainty equivalent and risk premium. RiskAverse is true when the agent
// would pay a strictly positive premium to avoid the lottery.
type RiskAversionResult struct {
	EU         float64
	EV         float64
	CE         float64
	RP         float64
	RiskAverse bool
}

func (p LotteryParams) validate() error {
	if p.P < 0 || p.P > 1 {
		return infeasible("probability p=%g must lie in [0,1]", p.P)
	}
	if p.X1 < 0 || p.X2 < 0 {
		return infeasible("outcomes x1=%g, x2=%g must be non-negative", p.X1, p.X2)
	}
	if p.Gamma <= 0 {
		return infeasible("gamma=%g must be positive", p.Gamma)
	}
	// The log branch is undefined at zero wealth.
	if p.Gamma == 1 && (p.X1 == 0 || p.X2 == 0) {
		return infeasible("log utility requires strictly positive outcomes")
	}
	return nil
}

// crra evaluates u(w) under the CRRA specification.
func crra(w, gamma float64) float64 {
	if gamma == 1 {
		return math.Log(w)
	}
	return math.Pow(w, gamma)
}

// crraInv inverts the CRRA utility function.
func crraInv(u, gamma float64) float64 {
	if gamma == 1 {
		return math.Exp(u)
	}
	return math.Pow(u, 1/gamma)
}

// SolveExpectedUtility computes EU = p*u(x1) + (1-p)*u(x2) and the
// lottery's expected value.
func SolveExpectedUtility(p LotteryParams) (ExpectedUtilityResult, error) {
	if err := p.validate(); err != nil {
		return ExpectedUtilityResult{}, err
	}
	return ExpectedUtilityResult{
		EU: p.P*crra(p.X1, p.Gamma) + (1-p.P)*crra(p.X2, p.Gamma),
		EV: p.P*p.X1 + (1-p.P)*p.X2,
	}, nil
}

// SolveRiskAversion computes the certainty equivalent CE = u^-1(EU) and the
// risk premium RP = E[x] - CE.
func SolveRiskAversion(p LotteryParams) (RiskAversionResult, error) {
	eu, err := SolveExpectedUtility(p)
	if err != nil {
		return RiskAversionResult{}, err
	}
	ce := crraInv(eu.EU, p.Gamma)
	rp := eu.EV - ce
	return RiskAversionResult{
		EU:         eu.EU,
		EV:         eu.EV,
		CE:         ce,
		RP:         rp,
		RiskAverse: rp > 0,
	}, nil
}
