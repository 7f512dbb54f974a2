package econ_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"econlab/internal/domain/econ"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEvaluate(t *testing.T) {
	Convey("Given the generic evaluation entry point", t, func() {
		ctx := context.Background()

		Convey("When evaluating a demand-supply market", func() {
			res, err := econ.Evaluate(ctx, econ.DemandSupply, econ.Params{"a": 100, "b": 2, "c": -20, "d": 3})

			Convey("Then the named outputs should carry the equilibrium", func() {
				So(err, ShouldBeNil)
				So(res.Kind, ShouldEqual, econ.DemandSupply)
				So(res.Outputs["P"], ShouldAlmostEqual, 24, tol)
				So(res.Outputs["Q"], ShouldAlmostEqual, 52, tol)
			})
		})

		Convey("When evaluating a monopoly", func() {
			res, err := econ.Evaluate(ctx, econ.Monopoly, econ.Params{"a": 100, "b": 1, "c": 10})

			Convey("Then the outputs should include the welfare measures", func() {
				So(err, ShouldBeNil)
				So(res.Outputs["Qm"], ShouldAlmostEqual, 45, tol)
				So(res.Outputs["Pm"], ShouldAlmostEqual, 55, tol)
				So(res.Outputs, ShouldContainKey, "CS")
				So(res.Outputs, ShouldContainKey, "PS")
				So(res.Outputs, ShouldContainKey, "DWL")
			})
		})

		Convey("When evaluating a corner solution", func() {
			res, err := econ.Evaluate(ctx, econ.CornerSubstitutes, econ.Params{"a": 3, "b": 1, "p_x": 1, "p_y": 1, "i": 60})

			Convey("Then the tag should name the specialized good", func() {
				So(err, ShouldBeNil)
				So(res.Tags["corner"], ShouldEqual, "x")
				So(res.Outputs["x"], ShouldAlmostEqual, 60, tol)
			})
		})

		Convey("When evaluating a binding price ceiling", func() {
			res, err := econ.Evaluate(ctx, econ.PriceCeiling, econ.Params{"a": 100, "b": 2, "c": -20, "d": 3, "p_ceil": 15})

			Convey("Then binding should be encoded as 1", func() {
				So(err, ShouldBeNil)
				So(res.Outputs["binding"], ShouldEqual, 1)
				So(res.Outputs["shortage"], ShouldBeGreaterThan, 0)
			})
		})

		Convey("When the kind is unknown", func() {
			_, err := econ.Evaluate(ctx, econ.ModelKind("laffer_curve"), econ.Params{})

			Convey("Then it should report an unknown model", func() {
				So(err, ShouldWrap, econ.ErrUnknownModel)
			})
		})

		Convey("When a required parameter is missing", func() {
			_, err := econ.Evaluate(ctx, econ.DemandSupply, econ.Params{"a": 100, "b": 2, "c": -20})

			Convey("Then it should report the missing parameter", func() {
				So(err, ShouldWrap, econ.ErrMissingParam)
				So(err.Error(), ShouldContainSubstring, "d")
			})
		})

		Convey("When a parameter is NaN", func() {
			_, err := econ.Evaluate(ctx, econ.DemandSupply, econ.Params{"a": math.NaN(), "b": 2, "c": -20, "d": 3})

			Convey("Then it should be rejected as a bad parameter, not infeasible", func() {
				So(err, ShouldWrap, econ.ErrBadParam)
				So(errors.Is(err, econ.ErrInfeasible), ShouldBeFalse)
			})
		})

		Convey("When a parameter is infinite", func() {
			_, err := econ.Evaluate(ctx, econ.Monopoly, econ.Params{"a": math.Inf(1), "b": 1, "c": 10})

			Convey("Then it should be rejected as a bad parameter", func() {
				So(err, ShouldWrap, econ.ErrBadParam)
			})
		})

		Convey("When the parameters are infeasible", func() {
			_, err := econ.Evaluate(ctx, econ.Monopoly, econ.Params{"a": 10, "b": 1, "c": 10})

			Convey("Then the infeasibility should surface through the dispatcher", func() {
				So(err, ShouldWrap, econ.ErrInfeasible)
			})
		})

		Convey("When the context is already cancelled", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()
			_, err := econ.Evaluate(cancelled, econ.DemandSupply, econ.Params{"a": 100, "b": 2, "c": -20, "d": 3})

			Convey("Then evaluation should not run", func() {
				So(err, ShouldNotBeNil)
				So(err, ShouldWrap, context.Canceled)
			})
		})

		Convey("When every cataloged kind gets valid parameters", func() {
			valid := map[econ.ModelKind]econ.Params{
				econ.DemandSupply:         {"a": 100, "b": 2, "c": -20, "d": 3},
				econ.Elasticity:           {"a": 100, "b": 2, "c": -20, "d": 3},
				econ.Monopoly:             {"a": 100, "b": 1, "c": 10},
				econ.PerUnitTax:           {"a": 100, "b": 2, "c": -20, "d": 3, "t": 5},
				econ.PriceCeiling:         {"a": 100, "b": 2, "c": -20, "d": 3, "p_ceil": 15},
				econ.CobbDouglas:          {"alpha": 0.5, "beta": 0.5, "i": 100, "p_x": 2, "p_y": 4},
				econ.CostQuadratic:        {"f": 10, "v": 2, "k": 1, "p": 10},
				econ.KuhnTucker:           {"p_x": 2, "p_y": 4, "i": 100},
				econ.CornerSubstitutes:    {"a": 3, "b": 1, "p_x": 1, "p_y": 1, "i": 60},
				econ.ConcaveUnconstrained: {"a_x": 3, "a_y": -7},
				econ.ParetoExchange:       {"alpha": 0.5, "beta": 0.5, "endow_x": 10, "endow_y": 10, "x1": 4},
				econ.ExpectedUtility:      {"p": 0.5, "x1": 100, "x2": 25, "gamma": 0.5},
				econ.RiskAversion:         {"p": 0.5, "x1": 100, "x2": 25, "gamma": 0.5},
				econ.CESUtility:           {"alpha": 1, "beta": 1, "rho": 0.5, "p_x": 2, "p_y": 2, "i": 100},
				econ.SlutskyDecomposition: {"alpha": 0.5, "beta": 0.5, "i": 100, "p_x": 2, "p_y": 4, "dp_x": 1},
				econ.PigouvianTax:         {"a": 100, "b": 2, "c": -20, "d": 3, "e": 4},
			}

			Convey("Then every kind should evaluate with finite outputs", func() {
				for _, spec := range econ.Catalog() {
					params, ok := valid[spec.Kind]
					So(ok, ShouldBeTrue)
					res, err := econ.Evaluate(ctx, spec.Kind, params)
					So(err, ShouldBeNil)
					So(len(res.Outputs), ShouldBeGreaterThan, 0)
					for _, v := range res.Outputs {
						So(math.IsNaN(v), ShouldBeFalse)
						So(math.IsInf(v, 0), ShouldBeFalse)
					}
				}
			})
		})
	})
}

func TestCatalog(t *testing.T) {
	Convey("Given the model catalog", t, func() {
		specs := econ.Catalog()

		Convey("Then it should cover all sixteen kinds", func() {
			So(len(specs), ShouldEqual, 16)
		})

		Convey("And every spec should name its parameters and outputs", func() {
			for _, s := range specs {
				So(s.Kind, ShouldNotBeEmpty)
				So(len(s.Params), ShouldBeGreaterThan, 0)
				So(len(s.Outputs), ShouldBeGreaterThan, 0)
				So(econ.Known(s.Kind), ShouldBeTrue)
			}
		})

		Convey("And unknown kinds should not be reported as known", func() {
			So(econ.Known(econ.ModelKind("nope")), ShouldBeFalse)
		})
	})
}
