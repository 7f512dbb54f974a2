package econ

import "math"

// CobbDouglasParams describes utility u = x^alpha * y^beta maximized on the
// budget px*x + py*y = i.
type CobbDouglasParams struct {
	Alpha float64
	Beta  float64
	I     float64 // income
	Px    float64
	Py    float64
}

// BundleResult holds an optimal consumption bundle and its utility.
type BundleResult struct {
	X float64
	Y float64
	U float64
}

// SolveCobbDouglas computes the Cobb-Douglas demand
// x = alpha*i/((alpha+beta)*px), y = beta*i/((alpha+beta)*py). The bundle
// exhausts the budget exactly.
func SolveCobbDouglas(p CobbDouglasParams) (BundleResult, error) {
	if p.Alpha <= 0 || p.Beta <= 0 {
		return BundleResult{}, infeasible("exponents alpha=%g, beta=%g must be positive", p.Alpha, p.Beta)
	}
	if p.Px <= 0 || p.Py <= 0 {
		return BundleResult{}, infeasible("prices must be positive, got p_x=%g p_y=%g", p.Px, p.Py)
	}
	if p.I < 0 {
		return BundleResult{}, infeasible("income %g is negative", p.I)
	}
	x := p.Alpha * p.I / ((p.Alpha + p.Beta) * p.Px)
	y := p.Beta * p.I / ((p.Alpha + p.Beta) * p.Py)
	return BundleResult{X: x, Y: y, U: math.Pow(x, p.Alpha) * math.Pow(y, p.Beta)}, nil
}

// CESParams describes CES utility u = (alpha*x^rho + beta*y^rho)^(1/rho)
// with substitution parameter rho < 1, maximized on a linear budget.
type CESParams struct {
	Alpha float64
	Beta  float64
	Rho   float64
	Px    float64
	Py    float64
	I     float64
}

// CESResult holds the optimal CES bundle, its utility, and the elasticity
// of substitution sigma = 1/(1-rho).
type CESResult struct {
	X     float64
	Y     float64
	U     float64
	Sigma float64
}

// SolveCES solves the CES first-order condition: the demand ratio
// x/y = ((beta*px)/(alpha*py))^(1/(rho-1)), then x from the budget.
// rho = 0 is the Cobb-Douglas limit and is not handled here; use the
// CobbDouglas kind for that case.
func SolveCES(p CESParams) (CESResult, error) {
	if p.Rho >= 1 {
		return CESResult{}, infeasible("rho=%g must be below 1", p.Rho)
	}
	if p.Rho == 0 {
		return CESResult{}, infeasible("rho=0 is the Cobb-Douglas limit; not a CES closed form")
	}
	if p.Alpha <= 0 || p.Beta <= 0 {
		return CESResult{}, infeasible("weights alpha=%g, beta=%g must be positive", p.Alpha, p.Beta)
	}
	if p.Px <= 0 || p.Py <= 0 {
		return CESResult{}, infeasible("prices must be positive, got p_x=%g p_y=%g", p.Px, p.Py)
	}
	if p.I < 0 {
		return CESResult{}, infeasible("income %g is negative", p.I)
	}
	ratio := math.Pow((p.Beta*p.Px)/(p.Alpha*p.Py), 1/(p.Rho-1)) // x per unit of y
	x := p.I / (p.Px + p.Py/ratio)
	y := x / ratio
	if x < 0 || y < 0 {
		return CESResult{}, infeasible("bundle (%g, %g) is negative", x, y)
	}
	u := math.Pow(p.Alpha*math.Pow(x, p.Rho)+p.Beta*math.Pow(y, p.Rho), 1/p.Rho)
	return CESResult{X: x, Y: y, U: u, Sigma: 1 / (1 - p.Rho)}, nil
}

// KuhnTuckerParams describes max xy subject to px*x + py*y = i.
type KuhnTuckerParams struct {
	Px float64
	Py float64
	I  float64
}

// KuhnTuckerResult holds the interior optimum and the budget constraint's
// shadow price.
type KuhnTuckerResult struct {
	X      float64
	Y      float64
	Lambda float64
	U      float64
}

// SolveKuhnTucker computes the interior optimum x = i/(2px), y = i/(2py).
// When either coordinate fails to be strictly positive there is no interior
// solution and the model is reported infeasible; a corner model applies.
func SolveKuhnTucker(p KuhnTuckerParams) (KuhnTuckerResult, error) {
	if p.Px <= 0 || p.Py <= 0 {
		return KuhnTuckerResult{}, infeasible("prices must be positive, got p_x=%g p_y=%g", p.Px, p.Py)
	}
	if p.I < 0 {
		return KuhnTuckerResult{}, infeasible("income %g is negative", p.I)
	}
	x := p.I / (2 * p.Px)
	y := p.I / (2 * p.Py)
	if x <= 0 || y <= 0 {
		return KuhnTuckerResult{}, infeasible("no interior solution at bundle (%g, %g)", x, y)
	}
	return KuhnTuckerResult{X: x, Y: y, Lambda: y / p.Px, U: x * y}, nil
}

// CornerParams describes perfect-substitutes utility u = a*x + b*y on a
// linear budget.
type CornerParams struct {
	A  float64 // marginal utility of x
	B  float64 // marginal utility of y
	Px float64
	Py float64
	I  float64
}

// CornerResult holds the corner bundle and which good the consumer
// specializes in ("x" or "y").
type CornerResult struct {
	X      float64
	Y      float64
	U      float64
	Corner string
}

// SolveCorner spends the entire income on the good with the higher marginal
// utility per dollar. Ties go to good x.
func SolveCorner(p CornerParams) (CornerResult, error) {
	if p.Px <= 0 || p.Py <= 0 {
		return CornerResult{}, infeasible("prices must be positive, got p_x=%g p_y=%g", p.Px, p.Py)
	}
	if p.I < 0 {
		return CornerResult{}, infeasible("income %g is negative", p.I)
	}
	if p.A/p.Px >= p.B/p.Py {
		x := p.I / p.Px
		return CornerResult{X: x, Y: 0, U: p.A * x, Corner: "x"}, nil
	}
	y := p.I / p.Py
	return CornerResult{X: 0, Y: y, U: p.B * y, Corner: "y"}, nil
}

// SlutskyParams describes a Cobb-Douglas consumer facing a change dpx in
// the price of x.
type SlutskyParams struct {
	Alpha float64
	Beta  float64
	I     float64
	Px    float64
	Py    float64
	DPx   float64 // price change for x
}

// SlutskyResult decomposes the demand response into income and substitution
// effects.
type SlutskyResult struct {
	X0           float64 // demand at px
	X1           float64 // demand at px + dpx
	Total        float64
	Income       float64
	Substitution float64
}

// SolveSlutsky computes the Slutsky decomposition of the change in x-demand.
// The income effect is evaluated at the pre-change demand and price:
// income = -x0 * (alpha/(alpha+beta)) * dpx / px.
func SolveSlutsky(p SlutskyParams) (SlutskyResult, error) {
	if p.Alpha <= 0 || p.Beta <= 0 {
		return SlutskyResult{}, infeasible("exponents alpha=%g, beta=%g must be positive", p.Alpha, p.Beta)
	}
	if p.Px <= 0 || p.Py <= 0 {
		return SlutskyResult{}, infeasible("prices must be positive, got p_x=%g p_y=%g", p.Px, p.Py)
	}
	if p.Px+p.DPx <= 0 {
		return SlutskyResult{}, infeasible("post-change price %g must be positive", p.Px+p.DPx)
	}
	if p.I < 0 {
		return SlutskyResult{}, infeasible("income %g is negative", p.I)
	}
	share := p.Alpha / (p.Alpha + p.Beta)
	x0 := share * p.I / p.Px
	x1 := share * p.I / (p.Px + p.DPx)
	total := x1 - x0
	income := -x0 * share * p.DPx / p.Px
	return SlutskyResult{
		X0:           x0,
		X1:           x1,
		Total:        total,
		Income:       income,
		Substitution: total - income,
	}, nil
}
