package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/okian/introeval/internal/adapters/http/api"
	service "github.com/okian/introeval/internal/app"
	"github.com/okian/introeval/internal/domain/model"
	"github.com/okian/introeval/internal/domain/scoring"
	"github.com/okian/introeval/internal/domain/sentiment"
	"github.com/okian/introeval/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// mockDependencies records calls and delegates to a real evaluator.
type mockDependencies struct {
	mu        sync.Mutex
	evaluator *scoring.Evaluator
	durations []int
	err       error
	batchErr  error
}

func newMockDependencies() *mockDependencies {
	return &mockDependencies{
		evaluator: scoring.NewEvaluator(scoring.WithSentimentAnalyzer(sentiment.Fixed{Pos: 0.3, Neu: 0.7})),
	}
}

func (m *mockDependencies) Evaluate(ctx context.Context, transcript string, durationSec int) (*model.Report, error) {
	m.mu.Lock()
	m.durations = append(m.durations, durationSec)
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.evaluator.Evaluate(ctx, transcript, durationSec)
}

func (m *mockDependencies) EvaluateBatch(ctx context.Context, items []model.BatchItem) ([]model.BatchResult, error) {
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	if len(items) == 0 {
		return nil, service.ErrEmptyBatch
	}
	results := make([]model.BatchResult, len(items))
	for i, it := range items {
		results[i].ID = it.ID
		report, err := m.Evaluate(ctx, it.Transcript, it.DurationSec)
		if err != nil {
			results[i].Error = err.Error()
			continue
		}
		results[i].Report = report
	}
	return results, nil
}

func (m *mockDependencies) DefaultDuration() int { return 52 }

func (m *mockDependencies) Rubric() []scoring.Section { return scoring.Sections() }

func (m *mockDependencies) lastDuration() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.durations) == 0 {
		return -1
	}
	return m.durations[len(m.durations)-1]
}

type mockStatsProvider struct {
	stats service.Stats
}

func (m *mockStatsProvider) GetStats() service.Stats {
	return m.stats
}

func newMux(deps *mockDependencies, opts ...api.Option) *http.ServeMux {
	server := api.NewServer(deps, &mockStatsProvider{stats: service.Stats{Started: true, Evaluated: 3}}, opts...)
	mux := http.NewServeMux()
	server.Register(context.Background(), mux)
	return mux
}

func do(mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func errorBody(w *httptest.ResponseRecorder) string {
	var body map[string]string
	So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
	return body["error"]
}

func TestServer_Register(t *testing.T) {
	Convey("Given a new API server", t, func() {
		mux := newMux(newMockDependencies())

		Convey("Then the health endpoint should be accessible", func() {
			w := do(mux, http.MethodGet, "/healthz", "")
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("And the metrics endpoint should expose evaluator metrics", func() {
			do(mux, http.MethodPost, "/evaluate", `{"transcript":"Hello, my name is Ravi."}`)
			w := do(mux, http.MethodGet, "/metrics", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "introeval_scoring_http_requests_total")
		})

		Convey("And the stats endpoint should return the provider snapshot", func() {
			w := do(mux, http.MethodGet, "/stats", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			var stats service.Stats
			So(json.Unmarshal(w.Body.Bytes(), &stats), ShouldBeNil)
			So(stats.Started, ShouldBeTrue)
			So(stats.Evaluated, ShouldEqual, 3)
		})

		Convey("And wrong methods should be rejected", func() {
			So(do(mux, http.MethodGet, "/evaluate", "").Code, ShouldEqual, http.StatusNotFound)
			So(do(mux, http.MethodPost, "/stats", "").Code, ShouldEqual, http.StatusNotFound)
			So(do(mux, http.MethodPost, "/rubric", "").Code, ShouldEqual, http.StatusNotFound)
		})
	})

	Convey("Given a nil mux", t, func() {
		server := api.NewServer(newMockDependencies(), &mockStatsProvider{})

		Convey("Then Register should panic", func() {
			So(func() { server.Register(context.Background(), nil) }, ShouldPanic)
		})
	})
}

func TestEvaluateHandler_HandleEvaluate(t *testing.T) {
	Convey("Given an API server", t, func() {
		deps := newMockDependencies()
		mux := newMux(deps)

		Convey("When posting a valid transcript with a duration", func() {
			w := do(mux, http.MethodPost, "/evaluate",
				`{"transcript":"Good morning everyone. My name is Ravi and I am 12 years old. Thank you.","duration":30}`)

			Convey("Then it should return the report", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldStartWith, "application/json")
				var report model.Report
				So(json.Unmarshal(w.Body.Bytes(), &report), ShouldBeNil)
				So(report.MaxScore, ShouldEqual, 100)
				So(report.DurationSec, ShouldEqual, 30)
				So(report.Categories.ContentStructure.Salutation.Score, ShouldEqual, 4)
				So(report.Percentage, ShouldEqual, float64(report.OverallScore))
			})

			Convey("And it should carry a generated request id", func() {
				So(w.Header().Get(api.RequestIDHeader), ShouldNotBeEmpty)
			})
		})

		Convey("When the duration is omitted or null", func() {
			w1 := do(mux, http.MethodPost, "/evaluate", `{"transcript":"Hello there"}`)
			d1 := deps.lastDuration()
			w2 := do(mux, http.MethodPost, "/evaluate", `{"transcript":"Hello there","duration":null}`)
			d2 := deps.lastDuration()

			Convey("Then the default duration should be used", func() {
				So(w1.Code, ShouldEqual, http.StatusOK)
				So(w2.Code, ShouldEqual, http.StatusOK)
				So(d1, ShouldEqual, 52)
				So(d2, ShouldEqual, 52)
			})
		})

		Convey("When the transcript is empty or missing", func() {
			for _, body := range []string{`{"transcript":""}`, `{"transcript":"   "}`, `{"duration":52}`} {
				w := do(mux, http.MethodPost, "/evaluate", body)

				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(errorBody(w), ShouldEqual, "Transcript cannot be empty")
			}
		})

		Convey("When the duration is not a positive integer", func() {
			for _, d := range []string{"0", "-5", "12.5", `"52"`, "true"} {
				w := do(mux, http.MethodPost, "/evaluate", fmt.Sprintf(`{"transcript":"hello","duration":%s}`, d))

				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(errorBody(w), ShouldEqual, "Duration must be a positive integer")
			}
		})

		Convey("When the body is not valid JSON", func() {
			w := do(mux, http.MethodPost, "/evaluate", `{"transcript":`)

			Convey("Then it should return 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(errorBody(w), ShouldStartWith, "invalid JSON")
			})
		})

		Convey("When the body is empty", func() {
			w := do(mux, http.MethodPost, "/evaluate", "")

			Convey("Then it should return 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the evaluation fails internally", func() {
			deps.err = fmt.Errorf("%w: lexicon corrupted", scoring.ErrEvaluation)
			w := do(mux, http.MethodPost, "/evaluate", `{"transcript":"hello"}`)

			Convey("Then it should return 500 with the message", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				So(errorBody(w), ShouldEqual, "evaluation failed: lexicon corrupted")
			})
		})

		Convey("When the caller supplies a request id", func() {
			req := httptest.NewRequest(http.MethodPost, "/evaluate", strings.NewReader(`{"transcript":"hello"}`))
			req.Header.Set(api.RequestIDHeader, "req-42")
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should be echoed back", func() {
				So(w.Header().Get(api.RequestIDHeader), ShouldEqual, "req-42")
			})
		})

		Convey("When the same request is sent twice", func() {
			body := `{"transcript":"Hi, I am Meera. I like to dance. Thank you.","duration":20}`
			w1 := do(mux, http.MethodPost, "/evaluate", body)
			w2 := do(mux, http.MethodPost, "/evaluate", body)

			Convey("Then the bodies should be identical", func() {
				So(w2.Body.String(), ShouldEqual, w1.Body.String())
			})
		})
	})

	Convey("Given an API server with a small body cap", t, func() {
		mux := newMux(newMockDependencies(), api.WithMaxBodyBytes(64))

		Convey("When the transcript exceeds the cap", func() {
			w := do(mux, http.MethodPost, "/evaluate", fmt.Sprintf(`{"transcript":%q}`, strings.Repeat("word ", 40)))

			Convey("Then it should return 413", func() {
				So(w.Code, ShouldEqual, http.StatusRequestEntityTooLarge)
				So(errorBody(w), ShouldContainSubstring, "exceeds 64 bytes")
			})
		})
	})
}

func TestEvaluateHandler_HandleBatch(t *testing.T) {
	Convey("Given an API server", t, func() {
		deps := newMockDependencies()
		mux := newMux(deps)

		Convey("When posting a batch with mixed items", func() {
			w := do(mux, http.MethodPost, "/evaluate/batch", `{"items":[
				{"id":"one","transcript":"Hello, my name is Ravi.","duration":10},
				{"id":"two","transcript":""},
				{"transcript":"Good morning, I am Asha.","duration":"fast"}
			]}`)

			Convey("Then every item should have a result", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var resp struct {
					Results []model.BatchResult `json:"results"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.Results, ShouldHaveLength, 3)
				So(resp.Results[0].ID, ShouldEqual, "one")
				So(resp.Results[0].Report.DurationSec, ShouldEqual, 10)
				So(resp.Results[1].Error, ShouldEqual, "Transcript cannot be empty")
				So(resp.Results[2].ID, ShouldNotBeEmpty)
				So(resp.Results[2].Error, ShouldEqual, "Duration must be a positive integer")
			})
		})

		Convey("When posting an empty batch", func() {
			w := do(mux, http.MethodPost, "/evaluate/batch", `{"items":[]}`)

			Convey("Then it should return 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(errorBody(w), ShouldEqual, service.ErrEmptyBatch.Error())
			})
		})

		Convey("When the batch is aborted", func() {
			deps.batchErr = fmt.Errorf("batch aborted: %w", context.DeadlineExceeded)
			w := do(mux, http.MethodPost, "/evaluate/batch", `{"items":[{"transcript":"hi"}]}`)

			Convey("Then it should return 500", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
			})
		})
	})
}

func TestRubricHandler_HandleRubric(t *testing.T) {
	Convey("Given an API server", t, func() {
		mux := newMux(newMockDependencies())

		Convey("When requesting the rubric", func() {
			w := do(mux, http.MethodGet, "/rubric", "")

			Convey("Then it should list sections and category maxima", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var resp struct {
					MaxScore int `json:"max_score"`
					Sections []struct {
						Name       string `json:"name"`
						Max        int    `json:"max"`
						Categories []struct {
							Name string `json:"name"`
							Max  int    `json:"max"`
						} `json:"categories"`
					} `json:"sections"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.MaxScore, ShouldEqual, 100)
				So(resp.Sections, ShouldHaveLength, 5)
				So(resp.Sections[0].Name, ShouldEqual, "content_structure")
				So(resp.Sections[0].Max, ShouldEqual, 40)
				So(resp.Sections[0].Categories[1].Name, ShouldEqual, "keywords")
				So(resp.Sections[0].Categories[1].Max, ShouldEqual, 30)
			})
		})
	})
}

func TestKindError(t *testing.T) {
	Convey("Given a wrapped kind error", t, func() {
		cause := errors.New("Transcript cannot be empty")
		err := api.WrapKind("api.evaluate", api.ErrBadRequest, cause)

		Convey("Then it should match both the kind and the cause", func() {
			So(errors.Is(err, api.ErrBadRequest), ShouldBeTrue)
			So(errors.Is(err, cause), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "api.evaluate: bad request: Transcript cannot be empty")
		})

		Convey("And wrapping nil should yield nil", func() {
			So(api.WrapKind("op", api.ErrBadRequest, nil), ShouldBeNil)
		})

		Convey("And a bare kind should render without a cause", func() {
			So(api.NewKind("op", api.ErrInternal).Error(), ShouldEqual, "op: internal error")
			So(errors.Is(api.NewKind("op", api.ErrInternal), api.ErrInternal), ShouldBeTrue)
		})
	})
}
