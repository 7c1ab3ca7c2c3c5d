package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/decocms/website/pkg/apperrors"
	"github.com/decocms/website/pkg/models"
)

const defaultBaseURL = "https://api.resend.com"

// Client defines the interface for interacting with the Resend contacts API
type Client interface {
	CreateContact(ctx context.Context, contact models.ContactRecord) (map[string]any, error)
}

type clientImpl struct {
	apiKey          string
	defaultAudience string
	baseURL         string
	httpClient      *http.Client
	logger          *zap.Logger
}

// Option configures a client
type Option func(*clientImpl)

// WithBaseURL points the client at another API root, e.g. a test server
func WithBaseURL(baseURL string) Option {
	return func(c *clientImpl) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithHTTPClient replaces http.DefaultClient
func WithHTTPClient(hc *http.Client) Option {
	return func(c *clientImpl) { c.httpClient = hc }
}

// WithLogger sets the logger, zap.NewNop() by default
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientImpl) { c.logger = logger }
}

// NewClient creates a new Resend client. Either argument may be empty; the
// missing setting is reported as a ConfigurationError on first use.
func NewClient(apiKey, defaultAudienceID string, opts ...Option) Client {
	c := &clientImpl{
		apiKey:          apiKey,
		defaultAudience: defaultAudienceID,
		baseURL:         defaultBaseURL,
		httpClient:      http.DefaultClient,
		logger:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type createContactPayload struct {
	Email        string `json:"email"`
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
	Unsubscribed bool   `json:"unsubscribed"`
}

// CreateContact adds contact to its audience. It makes a single attempt.
func (c *clientImpl) CreateContact(ctx context.Context, contact models.ContactRecord) (map[string]any, error) {
	if strings.TrimSpace(contact.Email) == "" {
		return nil, &apperrors.ValidationError{Field: "email", Message: "is required"}
	}

	if c.apiKey == "" {
		return nil, &apperrors.ConfigurationError{Setting: "RESEND_API_KEY", Message: "is not set"}
	}

	audienceID := contact.AudienceID
	if audienceID == "" {
		audienceID = c.defaultAudience
	}
	if audienceID == "" {
		return nil, &apperrors.ConfigurationError{Setting: "RESEND_AUDIENCE_ID", Message: "no audience id given or configured"}
	}

	jsonPayload, err := json.Marshal(createContactPayload{
		Email:        contact.Email,
		FirstName:    contact.FirstName,
		LastName:     contact.LastName,
		Unsubscribed: contact.Unsubscribed,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/audiences/%s/contacts", c.baseURL, url.PathEscape(audienceID))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	// Add authentication and content type headers
	req.Header.Add("Authorization", "Bearer "+c.apiKey)
	req.Header.Add("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error creating Resend contact: %w", err)
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Body is best effort here; an unreadable body falls back to the reason phrase
		text := ""
		if readErr == nil {
			text = strings.TrimSpace(string(body))
		}
		return nil, apperrors.NewRemoteServiceError("Resend", resp.StatusCode, text)
	}

	if readErr != nil {
		return nil, fmt.Errorf("error reading response: %w", readErr)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("error parsing response: %w", err)
	}

	c.logger.Info("created Resend contact", zap.String("audience_id", audienceID))
	return result, nil
}
