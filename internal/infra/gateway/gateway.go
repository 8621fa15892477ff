// Package gateway fetches question batches from the trivia source and photo
// candidates from the image source behind a single request/response contract.
package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultTriviaURL = "https://opentdb.com/api.php"
	DefaultImagesURL = "https://api.unsplash.com/search/photos"

	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 4 << 20
)

// Request is a fetch request. It is implemented by TriviaRequest and ImageRequest only.
type Request interface {
	op() string
	buildURL(g *Gateway) (string, error)
	decode(body []byte) (Payload, error)
}

// Payload is a decoded response. It is implemented by TriviaPayload and ImagePayload only.
type Payload interface {
	payload()
}

// Config holds endpoints and credentials of the external sources.
type Config struct {
	TriviaURL      string
	ImagesURL      string
	ImageAccessKey string
	Timeout        time.Duration
}

// Gateway performs single-attempt HTTP fetches against the trivia and image sources.
type Gateway struct {
	client    *http.Client
	triviaURL string
	imagesURL string
	accessKey string
	logger    *zap.Logger
}

// New creates a Gateway. Empty endpoints fall back to the public sources.
func New(cfg Config, logger *zap.Logger) *Gateway {
	if cfg.TriviaURL == "" {
		cfg.TriviaURL = DefaultTriviaURL
	}
	if cfg.ImagesURL == "" {
		cfg.ImagesURL = DefaultImagesURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Gateway{
		client:    &http.Client{Timeout: cfg.Timeout},
		triviaURL: cfg.TriviaURL,
		imagesURL: cfg.ImagesURL,
		accessKey: cfg.ImageAccessKey,
		logger:    logger,
	}
}

// Fetch performs one request and decodes its response.
// Every failure is returned as *Error; Fetch never retries.
func (g *Gateway) Fetch(ctx context.Context, req Request) (Payload, error) {
	if req == nil {
		return nil, newError("unknown", KindInvalidParameters, fmt.Errorf("nil request"))
	}
	op := req.op()

	endpoint, err := req.buildURL(g)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, newError(op, KindMalformedEndpoint, err)
	}
	httpReq.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := g.client.Do(httpReq)
	if err != nil {
		g.logger.Warn("fetch failed",
			zap.String("op", op),
			zap.Error(err),
		)
		return nil, newError(op, KindTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, newError(op, KindTransport, fmt.Errorf("read body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newError(op, KindTransport, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	payload, err := req.decode(body)
	if err != nil {
		return nil, newError(op, KindDecode, err)
	}

	g.logger.Debug("fetch completed",
		zap.String("op", op),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(started)),
	)

	return payload, nil
}

// buildEndpoint appends query parameters to a base URL.
func buildEndpoint(op, base string, params url.Values) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", newError(op, KindMalformedEndpoint, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", newError(op, KindMalformedEndpoint, fmt.Errorf("base url %q is not absolute", base))
	}

	q := u.Query()
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	// Spaces are sent as %20 rather than "+"; a literal "+" is already escaped as %2B.
	u.RawQuery = strings.ReplaceAll(q.Encode(), "+", "%20")

	return u.String(), nil
}
