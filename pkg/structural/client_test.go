package structural

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFrame() FrameRequest {
	return FrameRequest{
		Joints: []Joint{
			{ID: "A", Support: "fixed"},
			{ID: "B"},
			{ID: "C", Support: "pinned"},
		},
		Members: []Member{
			{ID: "AB", StartID: "A", EndID: "B", LengthM: 4},
			{ID: "BC", StartID: "B", EndID: "C", LengthM: 6},
		},
		Loads: []Load{
			{MemberID: "AB", Kind: "udl", Magnitude: 12},
			{MemberID: "BC", Kind: "point", Magnitude: 40, PositionM: 3},
		},
	}
}

func TestAnalyze(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/analyze", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req FrameRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Len(t, req.Members, 2)

		json.NewEncoder(w).Encode(AnalysisResult{
			FinalMoments:        map[string]float64{"AB": -16.0, "BA": 16.0},
			DistributionFactors: map[string]float64{"BA": 0.6, "BC": 0.4},
			IterationHistory:    []map[string]float64{{"BA": 8.0}},
			Members: []MemberDiagram{
				{MemberID: "AB", MomentData: []DiagramPoint{{X: 0, Y: -16}}, ShearForceData: []DiagramPoint{{X: 0, Y: 24}}},
			},
		})
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL), WithRateLimit(100))

	res, err := c.Analyze(context.Background(), testFrame())
	require.NoError(t, err)
	assert.InDelta(t, -16.0, res.FinalMoments["AB"], 0.001)
	assert.InDelta(t, 0.6, res.DistributionFactors["BA"], 0.001)
	require.Len(t, res.Members, 1)
	assert.Equal(t, "AB", res.Members[0].MemberID)
}

func TestAnalyzeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unstable frame", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	c := NewClient("", WithBaseURL(srv.URL), WithRateLimit(100))

	_, err := c.Analyze(context.Background(), testFrame())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 422")
}

func TestAnalyzeContextCancelled(t *testing.T) {
	c := NewClient("", WithRateLimit(0.0001))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Analyze(ctx, testFrame())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit wait")
}
