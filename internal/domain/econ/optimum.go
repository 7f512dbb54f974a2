package econ

import "math"

// ConcaveParams describes the unconstrained objective
// f(x, y) = -(x-ax)^2 - (y-ay)^2.
type ConcaveParams struct {
	AX float64
	AY float64
}

// ConcaveResult holds the unique maximizer and the optimum value.
type ConcaveResult struct {
	X     float64
	Y     float64
	Value float64
}

// SolveConcave returns the stationary point of the strictly concave
// objective: the target point itself, with optimum value zero.
func SolveConcave(p ConcaveParams) (ConcaveResult, error) {
	return ConcaveResult{X: p.AX, Y: p.AY, Value: 0}, nil
}

// ParetoParams describes a 2-agent, 2-good exchange economy with
// Cobb-Douglas preferences u1 = x1^alpha * y1^(1-alpha),
// u2 = x2^beta * y2^(1-beta), total endowments (X, Y), and agent 1's
// x-allocation as the free parameter tracing the contract curve.
type ParetoParams struct {
	Alpha  float64
	Beta   float64
	EndowX float64
	EndowY float64
	X1     float64
}

// ParetoResult holds the efficient allocation at the chosen point on the
// contract curve and both agents' utilities.
type ParetoResult struct {
	X1 float64
	Y1 float64
	X2 float64
	Y2 float64
	U1 float64
	U2 float64
}

// SolvePareto equates the two agents' marginal rates of substitution
// MRS1 = (alpha/(1-alpha))*(y1/x1) and MRS2 = (beta/(1-beta))*(y2/x2)
// with x2 = X-x1, y2 = Y-y1, and solves for y1.
func SolvePareto(p ParetoParams) (ParetoResult, error) {
	if p.Alpha <= 0 || p.Alpha >= 1 || p.Beta <= 0 || p.Beta >= 1 {
		return ParetoResult{}, infeasible("exponents alpha=%g, beta=%g must lie in (0,1)", p.Alpha, p.Beta)
	}
	if p.EndowX <= 0 || p.EndowY <= 0 {
		return ParetoResult{}, infeasible("endowments X=%g, Y=%g must be positive", p.EndowX, p.EndowY)
	}
	if p.X1 < 0 || p.X1 > p.EndowX {
		return ParetoResult{}, infeasible("x1=%g must lie in [0, %g]", p.X1, p.EndowX)
	}
	// MRS1 = MRS2 reduces to y1*(A*(X-x1) + B*x1) = B*Y*x1 with
	// A = alpha/(1-alpha), B = beta/(1-beta).
	ca := p.Alpha / (1 - p.Alpha)
	cb := p.Beta / (1 - p.Beta)
	den := ca*(p.EndowX-p.X1) + cb*p.X1
	var y1 float64
	if den > 0 {
		y1 = cb * p.EndowY * p.X1 / den
	}
	x2 := p.EndowX - p.X1
	y2 := p.EndowY - y1
	if y1 < 0 || y2 < 0 {
		return ParetoResult{}, infeasible("allocation y1=%g, y2=%g is negative", y1, y2)
	}
	return ParetoResult{
		X1: p.X1,
		Y1: y1,
		X2: x2,
		Y2: y2,
		U1: math.Pow(p.X1, p.Alpha) * math.Pow(y1, 1-p.Alpha),
		U2: math.Pow(x2, p.Beta) * math.Pow(y2, 1-p.Beta),
	}, nil
}
