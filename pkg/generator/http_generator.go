package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/ebookmarket/pkg/clients"
)

const (
	maxRetries    = 3
	retryInterval = time.Second * 1
)

// HTTPGenerator delegates generation to an external service.
type HTTPGenerator struct {
	url           string
	client        clients.HTTPClientI
	retryInterval time.Duration
}

func NewHTTPGenerator(url string, client clients.HTTPClientI) *HTTPGenerator {
	return &HTTPGenerator{
		url:           url,
		client:        client,
		retryInterval: retryInterval,
	}
}

func (g *HTTPGenerator) Generate(ctx context.Context, req Request) (*Content, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	url := g.url + "/api/generate"

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		statusCode, respBody, _, err := g.client.Post(url, nil, body)
		switch {
		case err != nil:
			lastErr = err
		case statusCode == http.StatusOK:
			return g.decode(req, respBody)
		case statusCode >= http.StatusInternalServerError || statusCode == http.StatusTooManyRequests:
			lastErr = fmt.Errorf("unexpected status code %d", statusCode)
		default:
			return nil, fmt.Errorf("%w: status code %d", ErrGenerationFailed, statusCode)
		}

		zap.L().Warn("content generation attempt failed", zap.Int("attempt", attempt), zap.Error(lastErr))
		if attempt < maxRetries {
			if err := sleep(ctx, g.retryInterval*time.Duration(attempt)); err != nil {
				return nil, err
			}
		}
	}
	return nil, fmt.Errorf("%w: after %d retries: %v", ErrGenerationFailed, maxRetries, lastErr)
}

func (g *HTTPGenerator) decode(req Request, respBody []byte) (*Content, error) {
	var content Content
	if err := json.Unmarshal(respBody, &content); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response body: %v", ErrGenerationFailed, err)
	}
	if content.CoverImage == "" {
		content.CoverImage = CoverImageFor(req.Title)
	}
	if content.PDFURL == "" {
		content.PDFURL = PDFURLFor(req.Title)
	}
	return &content, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
