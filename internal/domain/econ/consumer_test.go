package econ_test

import (
	"math"
	"testing"

	"econlab/internal/domain/econ"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSolveCobbDouglas(t *testing.T) {
	Convey("Given a Cobb-Douglas consumer", t, func() {
		p := econ.CobbDouglasParams{Alpha: 0.5, Beta: 0.5, I: 100, Px: 2, Py: 4}

		Convey("When maximizing utility on the budget", func() {
			b, err := econ.SolveCobbDouglas(p)

			Convey("Then the bundle should be x=25, y=12.5", func() {
				So(err, ShouldBeNil)
				So(b.X, ShouldAlmostEqual, 25, tol)
				So(b.Y, ShouldAlmostEqual, 12.5, tol)
			})

			Convey("And the bundle should exhaust the budget exactly", func() {
				So(err, ShouldBeNil)
				So(p.Px*b.X+p.Py*b.Y, ShouldAlmostEqual, p.I, tol)
			})
		})

		Convey("When income is zero", func() {
			b, err := econ.SolveCobbDouglas(econ.CobbDouglasParams{Alpha: 0.3, Beta: 0.7, I: 0, Px: 1, Py: 1})

			Convey("Then the bundle should be empty with zero utility", func() {
				So(err, ShouldBeNil)
				So(b.X, ShouldAlmostEqual, 0, tol)
				So(b.Y, ShouldAlmostEqual, 0, tol)
				So(b.U, ShouldAlmostEqual, 0, tol)
			})
		})

		Convey("When a price is non-positive", func() {
			_, err := econ.SolveCobbDouglas(econ.CobbDouglasParams{Alpha: 0.5, Beta: 0.5, I: 100, Px: 0, Py: 4})

			Convey("Then the model should be infeasible", func() {
				So(err, ShouldWrap, econ.ErrInfeasible)
			})
		})

		Convey("When income is negative", func() {
			_, err := econ.SolveCobbDouglas(econ.CobbDouglasParams{Alpha: 0.5, Beta: 0.5, I: -1, Px: 2, Py: 4})

			Convey("Then the model should be infeasible", func() {
				So(err, ShouldWrap, econ.ErrInfeasible)
			})
		})

		Convey("When the budget shares are asymmetric", func() {
			b, err := econ.SolveCobbDouglas(econ.CobbDouglasParams{Alpha: 0.75, Beta: 0.25, I: 120, Px: 3, Py: 2})

			Convey("Then spending should split by exponent shares", func() {
				So(err, ShouldBeNil)
				So(b.X*3, ShouldAlmostEqual, 90, tol) // 0.75 of income on x
				So(b.Y*2, ShouldAlmostEqual, 30, tol)
			})
		})
	})
}

func TestSolveCES(t *testing.T) {
	Convey("Given a CES consumer", t, func() {
		Convey("When weights and prices are symmetric", func() {
			p := econ.CESParams{Alpha: 1, Beta: 1, Rho: 0.5, Px: 2, Py: 2, I: 100}
			c, err := econ.SolveCES(p)

			Convey("Then the bundle should split evenly", func() {
				So(err, ShouldBeNil)
				So(c.X, ShouldAlmostEqual, 25, tol)
				So(c.Y, ShouldAlmostEqual, 25, tol)
			})

			Convey("And the bundle should exhaust the budget", func() {
				So(err, ShouldBeNil)
				So(p.Px*c.X+p.Py*c.Y, ShouldAlmostEqual, p.I, tol)
			})

			Convey("And sigma should be 1/(1-rho)", func() {
				So(err, ShouldBeNil)
				So(c.Sigma, ShouldAlmostEqual, 2, tol)
			})
		})

		Convey("When prices differ", func() {
			p := econ.CESParams{Alpha: 1, Beta: 1, Rho: 0.5, Px: 1, Py: 4, I: 100}
			c, err := econ.SolveCES(p)

			Convey("Then demand should satisfy the first-order condition", func() {
				So(err, ShouldBeNil)
				// alpha*x^(rho-1)/(beta*y^(rho-1)) = px/py at the optimum.
				mrs := (p.Alpha * math.Pow(c.X, p.Rho-1)) / (p.Beta * math.Pow(c.Y, p.Rho-1))
				So(mrs, ShouldAlmostEqual, p.Px/p.Py, 1e-9)
			})

			Convey("And the budget should hold", func() {
				So(err, ShouldBeNil)
				So(p.Px*c.X+p.Py*c.Y, ShouldAlmostEqual, p.I, 1e-9)
			})
		})

		Convey("When rho reaches 1", func() {
			_, err := econ.SolveCES(econ.CESParams{Alpha: 1, Beta: 1, Rho: 1, Px: 1, Py: 1, I: 10})

			Convey("Then the model should be infeasible", func() {
				So(err, ShouldWrap, econ.ErrInfeasible)
			})
		})

		Convey("When rho is zero", func() {
			_, err := econ.SolveCES(econ.CESParams{Alpha: 1, Beta: 1, Rho: 0, Px: 1, Py: 1, I: 10})

			Convey("Then the Cobb-Douglas limit should be rejected", func() {
				So(err, ShouldWrap, econ.ErrInfeasible)
			})
		})
	})
}

func TestSolveKuhnTucker(t *testing.T) {
	Convey("Given max xy on a budget", t, func() {
		Convey("When an interior optimum exists", func() {
			kt, err := econ.SolveKuhnTucker(econ.KuhnTuckerParams{Px: 2, Py: 4, I: 100})

			Convey("Then it should match the symmetric Cobb-Douglas bundle", func() {
				So(err, ShouldBeNil)
				So(kt.X, ShouldAlmostEqual, 25, tol)
				So(kt.Y, ShouldAlmostEqual, 12.5, tol)
			})

			Convey("And the shadow price should be y/px", func() {
				So(err, ShouldBeNil)
				So(kt.Lambda, ShouldAlmostEqual, 12.5/2.0, tol)
			})

			Convey("And it should agree with Cobb-Douglas at alpha=beta", func() {
				So(err, ShouldBeNil)
				cd, cerr := econ.SolveCobbDouglas(econ.CobbDouglasParams{Alpha: 0.5, Beta: 0.5, I: 100, Px: 2, Py: 4})
				So(cerr, ShouldBeNil)
				So(kt.X, ShouldAlmostEqual, cd.X, tol)
				So(kt.Y, ShouldAlmostEqual, cd.Y, tol)
			})
		})

		Convey("When income is zero", func() {
			_, err := econ.SolveKuhnTucker(econ.KuhnTuckerParams{Px: 2, Py: 4, I: 0})

			Convey("Then there should be no interior solution", func() {
				So(err, ShouldWrap, econ.ErrInfeasible)
			})
		})
	})
}

func TestSolveCorner(t *testing.T) {
	Convey("Given perfect substitutes", t, func() {
		Convey("When x offers more utility per dollar", func() {
			c, err := econ.SolveCorner(econ.CornerParams{A: 3, B: 1, Px: 1, Py: 1, I: 60})

			Convey("Then the whole budget should go to x", func() {
				So(err, ShouldBeNil)
				So(c.Corner, ShouldEqual, "x")
				So(c.X, ShouldAlmostEqual, 60, tol)
				So(c.Y, ShouldAlmostEqual, 0, tol)
				So(c.U, ShouldAlmostEqual, 180, tol)
			})
		})

		Convey("When y offers more utility per dollar", func() {
			c, err := econ.SolveCorner(econ.CornerParams{A: 1, B: 5, Px: 2, Py: 2, I: 40})

			Convey("Then the whole budget should go to y", func() {
				So(err, ShouldBeNil)
				So(c.Corner, ShouldEqual, "y")
				So(c.X, ShouldAlmostEqual, 0, tol)
				So(c.Y, ShouldAlmostEqual, 20, tol)
			})
		})

		Convey("When the ratios tie", func() {
			c, err := econ.SolveCorner(econ.CornerParams{A: 2, B: 2, Px: 1, Py: 1, I: 10})

			Convey("Then the tie should go to x", func() {
				So(err, ShouldBeNil)
				So(c.Corner, ShouldEqual, "x")
				So(c.X, ShouldAlmostEqual, 10, tol)
			})
		})
	})
}

func TestSolveSlutsky(t *testing.T) {
	Convey("Given a Cobb-Douglas consumer facing a price increase", t, func() {
		p := econ.SlutskyParams{Alpha: 0.5, Beta: 0.5, I: 100, Px: 2, Py: 4, DPx: 1}

		Convey("When decomposing the demand change", func() {
			s, err := econ.SolveSlutsky(p)

			Convey("Then the effects should sum to the total", func() {
				So(err, ShouldBeNil)
				So(s.Income+s.Substitution, ShouldAlmostEqual, s.Total, tol)
			})

			Convey("And demand should fall overall", func() {
				So(err, ShouldBeNil)
				So(s.X0, ShouldAlmostEqual, 25, tol)
				So(s.X1, ShouldAlmostEqual, 100.0/6.0, tol)
				So(s.Total, ShouldBeLessThan, 0)
			})

			Convey("And the income effect should follow the documented convention", func() {
				So(err, ShouldBeNil)
				// income = -x0 * share * dpx / px, at pre-change values.
				So(s.Income, ShouldAlmostEqual, -25*0.5*1/2.0, tol)
			})
		})

		Convey("When the price change wipes out the price", func() {
			_, err := econ.SolveSlutsky(econ.SlutskyParams{Alpha: 0.5, Beta: 0.5, I: 100, Px: 2, Py: 4, DPx: -2})

			Convey("Then the model should be infeasible", func() {
				So(err, ShouldWrap, econ.ErrInfeasible)
			})
		})
	})
}
