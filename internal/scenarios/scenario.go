package scenarios

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is a single model evaluation with expectations.
type Scenario struct {
	Name             string             `yaml:"name"`
	Model            string             `yaml:"model"`
	Params           map[string]float64 `yaml:"params"`
	Expect           map[string]float64 `yaml:"expect,omitempty"`
	ExpectInfeasible bool               `yaml:"expect_infeasible,omitempty"`
}

func (s Scenario) validate() error {
	switch {
	case s.Name == "":
		return fmt.Errorf("scenario missing name")
	case s.Model == "":
		return fmt.Errorf("scenario %q missing model", s.Name)
	case s.ExpectInfeasible && len(s.Expect) > 0:
		return fmt.Errorf("scenario %q expects both outputs and infeasibility", s.Name)
	}
	return nil
}

// Suite is a named collection of scenarios.
type Suite struct {
	Name      string     `yaml:"name"`
	Scenarios []Scenario `yaml:"scenarios"`
}

// Load reads a scenario suite from a YAML file.
func Load(path string) (Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Suite{}, fmt.Errorf("read scenario file: %w", err)
	}

	var suite Suite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return Suite{}, fmt.Errorf("parse scenario file: %w", err)
	}
	if len(suite.Scenarios) == 0 {
		return Suite{}, fmt.Errorf("scenario file %s contains no scenarios", path)
	}
	for _, s := range suite.Scenarios {
		if err := s.validate(); err != nil {
			return Suite{}, err
		}
	}
	return suite, nil
}

// DefaultSuite returns the built-in scenarios covering every model kind.
func DefaultSuite() Suite {
	return Suite{
		Name: "builtin",
		Scenarios: []Scenario{
			{
				Name:   "market equilibrium",
				Model:  "demand_supply",
				Params: map[string]float64{"a": 100, "b": 2, "c": -20, "d": 3},
				Expect: map[string]float64{"P": 24, "Q": 52},
			},
			{
				Name:   "elasticities at equilibrium",
				Model:  "elasticity",
				Params: map[string]float64{"a": 100, "b": 2, "c": -20, "d": 3},
				Expect: map[string]float64{
					"ed": -2 * 24.0 / 52.0,
					"es": 3 * 24.0 / 52.0,
				},
			},
			{
				Name:   "monopoly optimum",
				Model:  "monopoly",
				Params: map[string]float64{"a": 100, "b": 1, "c": 10},
				Expect: map[string]float64{"Qm": 45, "Pm": 55},
			},
			{
				Name:   "per-unit tax incidence",
				Model:  "per_unit_tax",
				Params: map[string]float64{"a": 100, "b": 2, "c": -20, "d": 3, "t": 5},
				Expect: map[string]float64{"Pd": 27, "Ps": 22, "Q": 46},
			},
			{
				Name:   "binding price ceiling",
				Model:  "price_ceiling",
				Params: map[string]float64{"a": 100, "b": 2, "c": -20, "d": 3, "p_ceil": 15},
				Expect: map[string]float64{"binding": 1, "P": 15, "Q": 25, "shortage": 45},
			},
			{
				Name:   "cobb-douglas optimum",
				Model:  "cobb_douglas",
				Params: map[string]float64{"alpha": 1, "beta": 1, "i": 100, "p_x": 2, "p_y": 4},
				Expect: map[string]float64{"x": 25, "y": 12.5},
			},
			{
				Name:   "quadratic cost supply",
				Model:  "cost_quadratic",
				Params: map[string]float64{"f": 10, "v": 2, "k": 1, "p": 10},
				Expect: map[string]float64{"q": 4, "profit": 6},
			},
			{
				Name:   "kuhn-tucker interior",
				Model:  "kuhn_tucker",
				Params: map[string]float64{"i": 100, "p_x": 2, "p_y": 4},
				Expect: map[string]float64{"x": 25, "y": 12.5},
			},
			{
				Name:   "corner solution picks the cheaper utility",
				Model:  "corner_substitutes",
				Params: map[string]float64{"a": 3, "b": 1, "i": 60, "p_x": 2, "p_y": 1},
				Expect: map[string]float64{"x": 30, "y": 0},
			},
			{
				Name:   "concave peak",
				Model:  "concave_unconstrained",
				Params: map[string]float64{"a_x": 4, "a_y": 9},
				Expect: map[string]float64{"x": 4, "y": 9, "value": 0},
			},
			{
				Name:   "pareto exchange contract curve",
				Model:  "pareto_exchange",
				Params: map[string]float64{"alpha": 0.5, "beta": 0.5, "endow_x": 10, "endow_y": 10, "x1": 5},
				Expect: map[string]float64{"y1": 5, "x2": 5, "y2": 5},
			},
			{
				Name:   "expected utility of a fair lottery",
				Model:  "expected_utility",
				Params: map[string]float64{"p": 0.5, "x1": 100, "x2": 0, "gamma": 0.5},
				Expect: map[string]float64{"ev": 50, "eu": 5},
			},
			{
				Name:   "risk premium of a concave gambler",
				Model:  "risk_aversion",
				Params: map[string]float64{"p": 0.5, "x1": 100, "x2": 0, "gamma": 0.5},
				Expect: map[string]float64{"ce": 25, "rp": 25, "risk_averse": 1},
			},
			{
				Name:   "ces demand",
				Model:  "ces_utility",
				Params: map[string]float64{"alpha": 0.5, "beta": 0.5, "rho": 0.5, "i": 100, "p_x": 2, "p_y": 2},
				Expect: map[string]float64{"x": 25, "y": 25},
			},
			{
				Name:   "slutsky decomposition",
				Model:  "slutsky_decomposition",
				Params: map[string]float64{"alpha": 1, "beta": 1, "i": 100, "p_x": 2, "p_y": 1, "dp_x": 2},
				Expect: map[string]float64{"total": -12.5, "income": -12.5, "substitution": 0},
			},
			{
				Name:   "pigouvian tax internalizes the externality",
				Model:  "pigouvian_tax",
				Params: map[string]float64{"a": 100, "b": 2, "c": -20, "d": 3, "e": 5},
				Expect: map[string]float64{"tax": 5, "Q_opt": 46, "revenue": 230},
			},
			{
				Name:             "no non-negative equilibrium",
				Model:            "demand_supply",
				Params:           map[string]float64{"a": 10, "b": 1, "c": 50, "d": 1},
				ExpectInfeasible: true,
			},
			{
				Name:             "monopoly with cost above demand",
				Model:            "monopoly",
				Params:           map[string]float64{"a": 10, "b": 1, "c": 50},
				ExpectInfeasible: true,
			},
		},
	}
}
