package scenarios

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"econlab/internal/domain/econ"
	. "github.com/smartystreets/goconvey/convey"
)

// newStubService serves the evaluation surface the runner talks to.
func newStubService() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/evaluate", func(w http.ResponseWriter, r *http.Request) {
		var req evaluateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		result, err := econ.Evaluate(r.Context(), econ.ModelKind(req.Model), econ.Params(req.Params))
		w.Header().Set("Content-Type", "application/json")
		switch {
		case errors.Is(err, econ.ErrInfeasible):
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(errorResponse{Code: "infeasible", Message: err.Error()})
		case err != nil:
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(errorResponse{Code: "bad_param", Message: err.Error()})
		default:
			json.NewEncoder(w).Encode(evaluateResponse{
				Model:   req.Model,
				Outputs: result.Outputs,
				Tags:    result.Tags,
			})
		}
	})
	return httptest.NewServer(mux)
}

func testConfig(baseURL string) *Config {
	return &Config{
		BaseURL:   baseURL,
		Workers:   2,
		Timeout:   5 * time.Second,
		Tolerance: DefaultTolerance,
	}
}

func TestRun(t *testing.T) {
	Convey("Given a live service", t, func() {
		ts := newStubService()
		defer ts.Close()
		ctx := context.Background()

		Convey("When running the built-in suite", func() {
			err := Run(ctx, testConfig(ts.URL))

			Convey("Then every scenario should pass", func() {
				So(err, ShouldBeNil)
			})
		})

		Convey("When running a suite with a wrong expectation", func() {
			dir := t.TempDir()
			path := filepath.Join(dir, "wrong.yaml")
			content := `name: wrong
scenarios:
  - name: off by one
    model: demand_supply
    params: {a: 100, b: 2, c: -20, d: 3}
    expect: {P: 25}
`
			So(os.WriteFile(path, []byte(content), 0o600), ShouldBeNil)

			cfg := testConfig(ts.URL)
			cfg.File = path
			err := Run(ctx, cfg)

			Convey("Then the run should fail", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "1 of 1 scenarios failed")
			})
		})

		Convey("When a feasible scenario expects infeasibility", func() {
			dir := t.TempDir()
			path := filepath.Join(dir, "feasible.yaml")
			content := `name: misjudged
scenarios:
  - name: healthy market
    model: demand_supply
    params: {a: 100, b: 2, c: -20, d: 3}
    expect_infeasible: true
`
			So(os.WriteFile(path, []byte(content), 0o600), ShouldBeNil)

			cfg := testConfig(ts.URL)
			cfg.File = path
			err := Run(ctx, cfg)

			Convey("Then the run should fail", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})

	Convey("Given no service at the base URL", t, func() {
		cfg := testConfig("http://127.0.0.1:1")
		cfg.Timeout = time.Second

		Convey("When running", func() {
			err := Run(context.Background(), cfg)

			Convey("Then the health check should fail", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "health check")
			})
		})
	})
}
