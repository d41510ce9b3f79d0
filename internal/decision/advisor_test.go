package decision

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func oracleReply(t *testing.T, w http.ResponseWriter, text string) {
	t.Helper()
	resp := map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	}
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(resp))
}

func testOracle(srvURL string) *OracleAdvisor {
	return NewOracleAdvisor(OracleConfig{
		Endpoint:     srvURL,
		APIKey:       "test-key",
		Model:        "gemini-2.0-flash",
		Timeout:      2 * time.Second,
		RetryBackoff: 10 * time.Millisecond,
	}, zap.NewNop())
}

func sampleInput() AdvisoryInput {
	return AdvisoryInput{
		Justification: "Recovering from dental surgery, dentist advised two days of rest.",
		Category:      "SICK",
		StartDate:     "2026-03-12",
		EndDate:       "2026-03-13",
		Days:          2,
		Stats:         AggregateStats{RiskLevel: RiskLow},
	}
}

func TestOracleAdvisor_ParsesWellFormedOpinion(t *testing.T) {
	var gotPath atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath.Store(r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		oracleReply(t, w, `{
			"reason_category": "MEDICAL",
			"validity_score": 85,
			"risk_flags": [],
			"recommended_action": "APPROVE",
			"rationale": "Specific medical reason with a stated recovery window."
		}`)
	}))
	defer srv.Close()

	opinion, err := testOracle(srv.URL).Score(context.Background(), sampleInput())
	require.NoError(t, err)

	assert.Equal(t, 85, opinion.ValidityScore)
	assert.Equal(t, AdvisoryApprove, opinion.RecommendedAction)
	assert.Equal(t, "MEDICAL", opinion.ReasonCategory)
	assert.Equal(t, "/models/gemini-2.0-flash:generateContent", gotPath.Load())
}

func TestOracleAdvisor_StripsMarkdownFences(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		oracleReply(t, w, "```json\n{\"validity_score\": 42, \"recommended_action\": \"MANUAL_REVIEW\", \"rationale\": \"ambiguous\"}\n```")
	}))
	defer srv.Close()

	opinion, err := testOracle(srv.URL).Score(context.Background(), sampleInput())
	require.NoError(t, err)
	assert.Equal(t, 42, opinion.ValidityScore)
	assert.Equal(t, AdvisoryManualReview, opinion.RecommendedAction)
}

func TestOracleAdvisor_ExtractsObjectFromSurroundingProse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		oracleReply(t, w, `Here is my assessment: {"validity_score": 90, "recommended_action": "APPROVE", "rationale": "ok"} hope that helps`)
	}))
	defer srv.Close()

	opinion, err := testOracle(srv.URL).Score(context.Background(), sampleInput())
	require.NoError(t, err)
	assert.Equal(t, 90, opinion.ValidityScore)
}

func TestOracleAdvisor_ClampsOutOfRangeScore(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		oracleReply(t, w, `{"validity_score": 250, "recommended_action": "APPROVE", "rationale": "x"}`)
	}))
	defer srv.Close()

	opinion, err := testOracle(srv.URL).Score(context.Background(), sampleInput())
	require.NoError(t, err)
	assert.Equal(t, 100, opinion.ValidityScore)
}

func TestOracleAdvisor_UnknownActionBecomesManualReview(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		oracleReply(t, w, `{"validity_score": 70, "recommended_action": "ESCALATE", "rationale": "x"}`)
	}))
	defer srv.Close()

	opinion, err := testOracle(srv.URL).Score(context.Background(), sampleInput())
	require.NoError(t, err)
	assert.Equal(t, AdvisoryManualReview, opinion.RecommendedAction)
}

func TestOracleAdvisor_MalformedOpinionIsUnavailable(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"not json", "the request looks fine to me"},
		{"missing score", `{"recommended_action": "APPROVE", "rationale": "x"}`},
		{"missing action", `{"validity_score": 80, "rationale": "x"}`},
		{"score wrong type", `{"validity_score": "high", "recommended_action": "APPROVE"}`},
		{"risk flags wrong type", `{"validity_score": 80, "recommended_action": "APPROVE", "risk_flags": "none"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				oracleReply(t, w, tc.text)
			}))
			defer srv.Close()

			_, err := testOracle(srv.URL).Score(context.Background(), sampleInput())
			assert.ErrorIs(t, err, ErrAdvisoryUnavailable)
		})
	}
}

func TestOracleAdvisor_RetriesOnceThenSucceeds(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		oracleReply(t, w, `{"validity_score": 75, "recommended_action": "MANUAL_REVIEW", "rationale": "x"}`)
	}))
	defer srv.Close()

	opinion, err := testOracle(srv.URL).Score(context.Background(), sampleInput())
	require.NoError(t, err)
	assert.Equal(t, 75, opinion.ValidityScore)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestOracleAdvisor_GivesUpAfterSecondFailure(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := testOracle(srv.URL).Score(context.Background(), sampleInput())
	assert.ErrorIs(t, err, ErrAdvisoryUnavailable)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestOracleAdvisor_TimeoutIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer srv.Close()

	advisor := NewOracleAdvisor(OracleConfig{
		Endpoint:     srv.URL,
		APIKey:       "k",
		Timeout:      50 * time.Millisecond,
		RetryBackoff: 10 * time.Millisecond,
	}, zap.NewNop())

	_, err := advisor.Score(context.Background(), sampleInput())
	assert.ErrorIs(t, err, ErrAdvisoryUnavailable)
}

func TestOracleAdvisor_CancelledContextStopsRetry(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	advisor := testOracle(srv.URL)

	go func() {
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()

	_, err := advisor.Score(ctx, sampleInput())
	assert.ErrorIs(t, err, ErrAdvisoryUnavailable)
	assert.LessOrEqual(t, atomic.LoadInt32(&calls), int32(2))
}

func TestOracleAdvisor_PromptCarriesRubricAndData(t *testing.T) {
	var captured atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req oracleRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.Contents)
		require.NotEmpty(t, req.Contents[0].Parts)
		captured.Store(req.Contents[0].Parts[0].Text)
		oracleReply(t, w, `{"validity_score": 80, "recommended_action": "APPROVE", "rationale": "x"}`)
	}))
	defer srv.Close()

	_, err := testOracle(srv.URL).Score(context.Background(), sampleInput())
	require.NoError(t, err)

	prompt, _ := captured.Load().(string)
	assert.Contains(t, prompt, "STRICT JSON ONLY")
	assert.Contains(t, prompt, "dental surgery")
	assert.Contains(t, prompt, "SECURITY")
}
