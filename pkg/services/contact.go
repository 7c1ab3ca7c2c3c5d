package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/decocms/website/pkg/clients/posthog"
	"github.com/decocms/website/pkg/clients/resend"
	"github.com/decocms/website/pkg/models"
	"github.com/decocms/website/pkg/utils"
)

// ContactCreatedEvent is captured after a successful submission
const ContactCreatedEvent = "contact_created"

// ContactService defines the interface for handling contact form submissions
type ContactService interface {
	Submit(ctx context.Context, form models.ContactForm) (map[string]any, error)
}

type contactServiceImpl struct {
	resendClient resend.Client
	analytics    *posthog.Guard
	logger       *zap.Logger
}

// NewContactService creates a new contact service. analytics may be nil.
func NewContactService(resendClient resend.Client, analytics *posthog.Guard, logger *zap.Logger) ContactService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &contactServiceImpl{
		resendClient: resendClient,
		analytics:    analytics,
		logger:       logger,
	}
}

// Submit creates the contact in the CRM and returns the CRM response. Errors
// from the CRM client are returned unchanged so callers can match the taxonomy.
func (s *contactServiceImpl) Submit(ctx context.Context, form models.ContactForm) (map[string]any, error) {
	record := form.Record()
	record.Email = strings.TrimSpace(record.Email)

	result, err := s.resendClient.CreateContact(ctx, record)
	if err != nil {
		return nil, err
	}

	// Email is hashed so no address reaches the analytics provider
	distinctID := utils.HashString(strings.ToLower(record.Email))
	s.logger.Info("contact submitted", zap.String("contact", distinctID))

	s.capture(ctx, distinctID, record)
	return result, nil
}

func (s *contactServiceImpl) capture(ctx context.Context, distinctID string, record models.ContactRecord) {
	if s.analytics == nil {
		return
	}
	client := s.analytics.Client()
	if client == nil {
		return
	}

	err := client.Capture(ctx, ContactCreatedEvent, distinctID, map[string]any{
		"unsubscribed": record.Unsubscribed,
		"has_name":     record.FirstName != "" || record.LastName != "",
	})
	if err != nil {
		s.logger.Warn("failed to capture analytics event", zap.String("event", ContactCreatedEvent), zap.Error(err))
	}
}
