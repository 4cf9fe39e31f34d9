// Package classifier contains the HTTP adapter for the external sentiment
// model collaborator. Model loading, caching and versioning happen on the
// inference server; this client only submits preprocessed text and decodes
// label/score pairs.
package classifier

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/baditaflorin/go_sentiment_flow/internal/core/domain"
	"github.com/baditaflorin/go_sentiment_flow/internal/ports"
)

// ErrEmptyResponse is returned when the inference server answers without
// any scores.
var ErrEmptyResponse = errors.New("classifier: empty response from inference server")

// Config holds configuration for the inference client.
type Config struct {
	// BaseURL of the inference server, e.g. https://api-inference.example.com.
	BaseURL string
	// Token is sent as a bearer token when set.
	Token string
	// Timeout per classification request.
	Timeout time.Duration
	// RetryCount for transient failures.
	RetryCount int
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("classifier: base URL is required")
	}
	if _, err := url.Parse(c.BaseURL); err != nil {
		return fmt.Errorf("classifier: invalid base URL: %w", err)
	}
	return nil
}

// HTTPClient implements ports.Classifier against a hosted inference
// endpoint speaking the common text-classification wire shape:
// request {"inputs": "..."}, response [[{"label": ..., "score": ...}]].
type HTTPClient struct {
	client *resty.Client
	logger ports.Logger
}

type inferenceRequest struct {
	Inputs string `json:"inputs"`
}

// NewHTTPClient creates an inference client.
func NewHTTPClient(config Config, logger ports.Logger) (*HTTPClient, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	client := resty.New().
		SetBaseURL(config.BaseURL).
		SetTimeout(timeout).
		SetRetryCount(config.RetryCount).
		SetRetryWaitTime(500*time.Millisecond).
		SetHeader("Content-Type", "application/json")
	if config.Token != "" {
		client.SetAuthToken(config.Token)
	}

	return &HTTPClient{client: client, logger: logger}, nil
}

// Classify submits preprocessed text to the inference server and returns
// the model's label/score pairs.
func (hc *HTTPClient) Classify(ctx context.Context, model, text string) ([]domain.Score, error) {
	var decoded [][]domain.Score

	resp, err := hc.client.R().
		SetContext(ctx).
		SetBody(inferenceRequest{Inputs: text}).
		SetResult(&decoded).
		Post("/models/" + model)
	if err != nil {
		return nil, fmt.Errorf("classifier: request failed: %w", err)
	}
	if resp.IsError() {
		hc.logger.Error("Inference server returned an error",
			"model", model,
			"status", resp.StatusCode(),
			"body", resp.String(),
		)
		return nil, fmt.Errorf("classifier: inference server returned status %d", resp.StatusCode())
	}

	if len(decoded) == 0 || len(decoded[0]) == 0 {
		return nil, ErrEmptyResponse
	}
	return decoded[0], nil
}
