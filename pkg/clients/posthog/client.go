package posthog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/decocms/website/pkg/apperrors"
)

// PersonProfilesIdentifiedOnly restricts person profiles to identified users
const PersonProfilesIdentifiedOnly = "identified_only"

// Options mirrors the options the browser snippet is initialized with
type Options struct {
	APIHost        string `json:"api_host"`
	PersonProfiles string `json:"person_profiles"`
}

// Client defines the interface for sending events to PostHog
type Client interface {
	Capture(ctx context.Context, event, distinctID string, properties map[string]any) error
	Options() Options
}

type clientImpl struct {
	apiKey     string
	options    Options
	httpClient *http.Client
	logger     *zap.Logger
	now        func() time.Time
}

// New creates a PostHog client for apiKey. The host must be an absolute URL.
func New(apiKey string, options Options, httpClient *http.Client, logger *zap.Logger) (Client, error) {
	if apiKey == "" {
		return nil, &apperrors.ConfigurationError{Setting: "POSTHOG_KEY", Message: "is not set"}
	}
	u, err := url.Parse(options.APIHost)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, &apperrors.ConfigurationError{Setting: "POSTHOG_HOST", Message: fmt.Sprintf("invalid host %q", options.APIHost)}
	}
	options.APIHost = strings.TrimRight(options.APIHost, "/")
	if options.PersonProfiles == "" {
		options.PersonProfiles = PersonProfilesIdentifiedOnly
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &clientImpl{
		apiKey:     apiKey,
		options:    options,
		httpClient: httpClient,
		logger:     logger,
		now:        time.Now,
	}, nil
}

func (c *clientImpl) Options() Options {
	return c.options
}

type captureEvent struct {
	APIKey     string         `json:"api_key"`
	Event      string         `json:"event"`
	DistinctID string         `json:"distinct_id"`
	UUID       string         `json:"uuid"`
	Timestamp  time.Time      `json:"timestamp"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Capture sends a single event to the capture endpoint
func (c *clientImpl) Capture(ctx context.Context, event, distinctID string, properties map[string]any) error {
	jsonPayload, err := json.Marshal(captureEvent{
		APIKey:     c.apiKey,
		Event:      event,
		DistinctID: distinctID,
		UUID:       uuid.NewString(),
		Timestamp:  c.now().UTC(),
		Properties: properties,
	})
	if err != nil {
		return fmt.Errorf("error creating payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.options.APIHost+"/capture/", bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Add("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error capturing PostHog event: %w", err)
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		// an unreadable body falls back to the reason phrase
		text := ""
		if readErr == nil {
			text = strings.TrimSpace(string(body))
		}
		return apperrors.NewRemoteServiceError("PostHog", resp.StatusCode, text)
	}

	if readErr != nil {
		return fmt.Errorf("error reading response: %w", readErr)
	}

	c.logger.Debug("captured PostHog event", zap.String("event", event))
	return nil
}
