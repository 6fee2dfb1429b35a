// Package structural is a thin client for the remote frame-analysis
// service. The moment-distribution algorithm itself runs remotely; this
// package only ships the loading model over and decodes the results.
package structural

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "http://localhost:9000"

// Client performs frame analysis against the remote service.
type Client interface {
	Analyze(ctx context.Context, req FrameRequest) (*AnalysisResult, error)
}

// Joint is a frame node.
type Joint struct {
	ID      string `json:"id" yaml:"id"`
	Support string `json:"support,omitempty" yaml:"support,omitempty"`
}

// Member spans two joints.
type Member struct {
	ID        string  `json:"id" yaml:"id"`
	StartID   string  `json:"start_id" yaml:"start_id"`
	EndID     string  `json:"end_id" yaml:"end_id"`
	LengthM   float64 `json:"length_m" yaml:"length_m"`
	Stiffness float64 `json:"stiffness,omitempty" yaml:"stiffness,omitempty"`
}

// Load is an applied load on a member.
type Load struct {
	MemberID  string  `json:"member_id" yaml:"member_id"`
	Kind      string  `json:"kind" yaml:"kind"`
	Magnitude float64 `json:"magnitude" yaml:"magnitude"`
	PositionM float64 `json:"position_m,omitempty" yaml:"position_m,omitempty"`
}

// FrameRequest is the request body for POST /analyze.
type FrameRequest struct {
	Joints  []Joint  `json:"joints" yaml:"joints"`
	Members []Member `json:"members" yaml:"members"`
	Loads   []Load   `json:"loads" yaml:"loads"`
}

// DiagramPoint is one sample of a member diagram.
type DiagramPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// MemberDiagram holds the plotted results for one member.
type MemberDiagram struct {
	MemberID       string         `json:"member_id"`
	MomentData     []DiagramPoint `json:"moment_data"`
	ShearForceData []DiagramPoint `json:"shear_force_data"`
}

// AnalysisResult is the response from POST /analyze.
type AnalysisResult struct {
	FinalMoments        map[string]float64   `json:"final_moments"`
	DistributionFactors map[string]float64   `json:"distribution_factors"`
	IterationHistory    []map[string]float64 `json:"iteration_history"`
	Members             []MemberDiagram      `json:"members"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default service base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit caps outgoing requests per second.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a structural analysis client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 60 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(2), 1),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) Analyze(ctx context.Context, req FrameRequest) (*AnalysisResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "structural: rate limit wait")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, eris.Wrap(err, "structural: marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "structural: create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, eris.Wrap(err, "structural: send request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "structural: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("structural: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var result AnalysisResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, eris.Wrap(err, "structural: unmarshal response")
	}

	return &result, nil
}
