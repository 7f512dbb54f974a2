package scenarios

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"sort"
	"sync"
	"time"

	"econlab/pkg/logger"
)

// Stats tracks the results of a run.
type Stats struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	Total    int
	Passed   int
	Failed   int
	Failures []string

	mu sync.Mutex
}

func (s *Stats) pass() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Passed++
}

func (s *Stats) fail(name string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Failed++
	s.Failures = append(s.Failures, fmt.Sprintf("%s: %v", name, err))
}

// Run executes a scenario suite against a live service.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{StartTime: time.Now()}

	suite, err := loadSuite(config)
	if err != nil {
		return err
	}
	stats.Total = len(suite.Scenarios)

	logger.Get().Info(ctx, "starting scenario run",
		logger.String("baseURL", config.BaseURL),
		logger.String("suite", suite.Name),
		logger.Int("scenarios", len(suite.Scenarios)),
		logger.Int("workers", config.Workers),
		logger.Float64("tolerance", config.Tolerance))

	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	runScenarios(ctx, config, suite.Scenarios, stats)

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	if stats.Failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed", stats.Failed, stats.Total)
	}

	logger.Get().Info(ctx, "all scenarios passed")
	return nil
}

func loadSuite(config *Config) (Suite, error) {
	if config.File == "" {
		return DefaultSuite(), nil
	}
	return Load(config.File)
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	client := newHTTPClient(config.Timeout)

	resp, err := client.get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// runScenarios fans the suite out over a pool of submitters.
func runScenarios(ctx context.Context, config *Config, list []Scenario, stats *Stats) {
	client := newHTTPClient(config.Timeout)

	workers := config.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	jobs := make(chan Scenario)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sc := range jobs {
				if err := runOne(ctx, client, config, sc); err != nil {
					stats.fail(sc.Name, err)
					logger.Get().Warn(ctx, "scenario failed",
						logger.String("scenario", sc.Name),
						logger.Error(err))
					continue
				}
				stats.pass()
				if config.Verbose {
					logger.Get().Info(ctx, "scenario passed",
						logger.String("scenario", sc.Name),
						logger.String("model", sc.Model))
				}
			}
		}()
	}

	for _, sc := range list {
		select {
		case jobs <- sc:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return
		}
	}
	close(jobs)
	wg.Wait()
}

type evaluateRequest struct {
	Model  string             `json:"model"`
	Params map[string]float64 `json:"params"`
}

type evaluateResponse struct {
	Model   string             `json:"model"`
	Outputs map[string]float64 `json:"outputs"`
	Tags    map[string]string  `json:"tags,omitempty"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// runOne submits a single scenario and verifies the outcome.
func runOne(ctx context.Context, client *httpClient, config *Config, sc Scenario) error {
	resp, err := client.postJSON(ctx, config.BaseURL+"/evaluate", evaluateRequest{
		Model:  sc.Model,
		Params: sc.Params,
	})
	if err != nil {
		return fmt.Errorf("submit: %w", err)
	}

	body, err := readBody(resp)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if sc.ExpectInfeasible {
		return verifyInfeasible(resp.StatusCode, body)
	}
	return verifyOutputs(resp.StatusCode, body, sc, config.Tolerance)
}

func verifyInfeasible(status int, body []byte) error {
	if status != http.StatusUnprocessableEntity {
		return fmt.Errorf("expected status 422, got %d: %s", status, body)
	}
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		return fmt.Errorf("parse error response: %w", err)
	}
	if errResp.Code != "infeasible" {
		return fmt.Errorf("expected infeasible code, got %q", errResp.Code)
	}
	return nil
}

func verifyOutputs(status int, body []byte, sc Scenario, tolerance float64) error {
	if status != http.StatusOK {
		return fmt.Errorf("expected status 200, got %d: %s", status, body)
	}

	var result evaluateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}

	keys := make([]string, 0, len(sc.Expect))
	for key := range sc.Expect {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		want := sc.Expect[key]
		got, ok := result.Outputs[key]
		if !ok {
			return fmt.Errorf("output %q missing from response", key)
		}
		if math.Abs(got-want) > tolerance {
			return fmt.Errorf("output %q: expected %v, got %v", key, want, got)
		}
	}
	return nil
}

// displayFinalStats logs the run summary.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var passRate float64
	if stats.Total > 0 {
		passRate = float64(stats.Passed) / float64(stats.Total) * 100
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("total", stats.Total),
		logger.Int("passed", stats.Passed),
		logger.Int("failed", stats.Failed),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("passRate", passRate))

	for _, failure := range stats.Failures {
		logger.Get().Warn(ctx, "failure detail", logger.String("failure", failure))
	}
}
