package econ

// QuadraticCostParams describes a price-taking firm with cost
// C(q) = f + v*q + k*q^2 selling at market price p.
type QuadraticCostParams struct {
	F float64 // fixed cost
	V float64 // linear cost coefficient
	K float64 // quadratic cost coefficient
	P float64 // market price
}

// QuadraticCostResult holds the profit-maximizing quantity and profit.
// A firm facing a price below its minimum marginal cost shuts down and
// eats the fixed cost.
type QuadraticCostResult struct {
	Q      float64
	Profit float64
}

// SolveQuadraticCost computes q = (p-v)/(2k) from the first-order condition
// p = v + 2kq, or the shutdown outcome when p < v.
func SolveQuadraticCost(p QuadraticCostParams) (QuadraticCostResult, error) {
	if p.K <= 0 {
		return QuadraticCostResult{}, infeasible("quadratic coefficient k=%g must be positive", p.K)
	}
	if p.P < p.V {
		return QuadraticCostResult{Q: 0, Profit: -p.F}, nil
	}
	q := (p.P - p.V) / (2 * p.K)
	cost := p.F + p.V*q + p.K*q*q
	return QuadraticCostResult{Q: q, Profit: p.P*q - cost}, nil
}
