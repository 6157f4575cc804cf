package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"go-content-cache/internal/interfaces"
	"go-content-cache/internal/metrics"
	"go-content-cache/internal/models"
)

// requestTimeout bounds every outbound query.
const requestTimeout = 10 * time.Second

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Ensure Client implements both executor contracts
var _ interfaces.QueryExecutor = (*Client)(nil)
var _ interfaces.ContentSource = (*Client)(nil)

// Client executes named content queries against the origin GraphQL endpoint.
// It owns the network-level concerns: headers, timeout, bearer credential.
// One outbound call per Execute; retry is the caller's concern.
type Client struct {
	endpoint   string
	authToken  string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a query client. authToken may be empty for public read
// access.
func NewClient(endpoint, authToken string, logger *zap.Logger) *Client {
	return &Client{
		endpoint:  endpoint,
		authToken: authToken,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		logger: logger,
	}
}

// envelope is the GraphQL response shape: data plus optional errors.
type envelope struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

type wireRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// Execute runs one named query and returns the raw payload of its root
// field. Every failure mode is normalized to *models.QueryError.
func (c *Client) Execute(ctx context.Context, query models.ContentQuery) (*models.QueryResult, error) {
	spec, ok := queries[query.Name]
	if !ok {
		err := models.NewQueryError(models.ErrorKindInvalidQuery, fmt.Sprintf("unknown query %q", query.Name), nil)
		c.logger.Error("Unknown content query", zap.String("query", string(query.Name)))
		metrics.RecordQueryFailure(string(models.ErrorKindInvalidQuery))
		return nil, err
	}

	body, err := json.Marshal(wireRequest{Query: spec.Document, Variables: query.Variables})
	if err != nil {
		return nil, c.fail(query, models.ErrorKindInvalidQuery, "marshal request", err)
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, c.fail(query, models.ErrorKindInvalidQuery, "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.fail(query, classifyTransportError(err), "request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.fail(query, models.ErrorKindUpstreamError,
			fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.fail(query, classifyTransportError(err), "read response", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, c.fail(query, models.ErrorKindInvalidResponse, "malformed response body", err)
	}

	root, hasRoot := env.Data[spec.RootField]
	rootPresent := hasRoot && !isJSONNull(root)

	// A data+errors response collapses to failure when the requested root
	// field carries nothing usable.
	if len(env.Errors) > 0 && !rootPresent {
		return nil, c.fail(query, models.ErrorKindUpstreamError, env.Errors[0].Message, nil)
	}
	if !hasRoot {
		return nil, c.fail(query, models.ErrorKindInvalidResponse,
			fmt.Sprintf("response missing root field %q", spec.RootField), nil)
	}

	return &models.QueryResult{Data: root}, nil
}

// fail logs, records and wraps one failure.
func (c *Client) fail(query models.ContentQuery, kind models.ErrorKind, message string, err error) error {
	qe := models.NewQueryError(kind, fmt.Sprintf("%s: %s", query.Name, message), err)
	c.logger.Warn("Content query failed",
		zap.String("query", string(query.Name)),
		zap.String("kind", string(kind)),
		zap.Error(qe))
	metrics.RecordQueryFailure(string(kind))
	return qe
}

// classifyTransportError maps a raw transport error to the taxonomy.
func classifyTransportError(err error) models.ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return models.ErrorKindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return models.ErrorKindTimeout
	}
	return models.ErrorKindNetwork
}

func isJSONNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
