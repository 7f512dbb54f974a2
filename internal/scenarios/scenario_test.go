package scenarios

import (
	"os"
	"path/filepath"
	"testing"

	"econlab/internal/domain/econ"
	"econlab/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestDefaultSuite(t *testing.T) {
	Convey("Given the built-in suite", t, func() {
		suite := DefaultSuite()

		Convey("Then every scenario should validate", func() {
			for _, sc := range suite.Scenarios {
				So(sc.validate(), ShouldBeNil)
			}
		})

		Convey("And every cataloged model kind should be covered", func() {
			covered := make(map[string]bool, len(suite.Scenarios))
			for _, sc := range suite.Scenarios {
				covered[sc.Model] = true
			}
			for _, spec := range econ.Catalog() {
				So(covered[string(spec.Kind)], ShouldBeTrue)
			}
		})

		Convey("And infeasible scenarios should be present", func() {
			infeasible := 0
			for _, sc := range suite.Scenarios {
				if sc.ExpectInfeasible {
					infeasible++
				}
			}
			So(infeasible, ShouldBeGreaterThan, 0)
		})
	})
}

func TestLoad(t *testing.T) {
	Convey("Given a scenario file on disk", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "suite.yaml")
		content := `name: markets
scenarios:
  - name: equilibrium
    model: demand_supply
    params: {a: 100, b: 2, c: -20, d: 3}
    expect: {P: 24, Q: 52}
  - name: dead market
    model: demand_supply
    params: {a: 10, b: 1, c: 50, d: 1}
    expect_infeasible: true
`
		So(os.WriteFile(path, []byte(content), 0o600), ShouldBeNil)

		Convey("When loading it", func() {
			suite, err := Load(path)

			Convey("Then the suite should parse", func() {
				So(err, ShouldBeNil)
				So(suite.Name, ShouldEqual, "markets")
				So(suite.Scenarios, ShouldHaveLength, 2)
				So(suite.Scenarios[0].Expect["P"], ShouldAlmostEqual, 24)
				So(suite.Scenarios[1].ExpectInfeasible, ShouldBeTrue)
			})
		})

		Convey("When the file does not exist", func() {
			_, err := Load(filepath.Join(dir, "missing.yaml"))
			So(err, ShouldNotBeNil)
		})

		Convey("When the file has no scenarios", func() {
			empty := filepath.Join(dir, "empty.yaml")
			So(os.WriteFile(empty, []byte("name: hollow\n"), 0o600), ShouldBeNil)
			_, err := Load(empty)
			So(err, ShouldNotBeNil)
		})

		Convey("When a scenario is malformed", func() {
			bad := filepath.Join(dir, "bad.yaml")
			content := `name: broken
scenarios:
  - name: contradictory
    model: demand_supply
    params: {a: 100, b: 2, c: -20, d: 3}
    expect: {P: 24}
    expect_infeasible: true
`
			So(os.WriteFile(bad, []byte(content), 0o600), ShouldBeNil)
			_, err := Load(bad)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestScenarioValidate(t *testing.T) {
	Convey("Given scenario validation", t, func() {
		Convey("A nameless scenario should be rejected", func() {
			sc := Scenario{Model: "monopoly"}
			So(sc.validate(), ShouldNotBeNil)
		})

		Convey("A modelless scenario should be rejected", func() {
			sc := Scenario{Name: "anonymous"}
			So(sc.validate(), ShouldNotBeNil)
		})

		Convey("A plain expectation should be accepted", func() {
			sc := Scenario{Name: "ok", Model: "monopoly", Expect: map[string]float64{"Qm": 45}}
			So(sc.validate(), ShouldBeNil)
		})
	})
}
