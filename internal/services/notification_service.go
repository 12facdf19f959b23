package services

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/gamenest/cafe-booking-backend/internal/apperrors"
	"github.com/gamenest/cafe-booking-backend/pkg/mailer"
)

// MailSender is the outbound email provider contract
type MailSender interface {
	Send(emailType mailer.EmailType, data map[string]interface{}) (*mailer.SendResponse, error)
}

// NotificationService dispatches transactional email for booking and
// account lifecycle events
type NotificationService struct {
	sender MailSender
	logger *logrus.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(sender MailSender, logger *logrus.Logger) *NotificationService {
	return &NotificationService{sender: sender, logger: logger}
}

// Dispatch sends one email and reports success or failure to the caller.
// The event kind must be recognized and the data must carry a recipient
// address; both are validated before any network call.
func (s *NotificationService) Dispatch(emailType mailer.EmailType, data map[string]interface{}) error {
	if !mailer.ValidType(emailType) {
		return apperrors.NewValidation("type", fmt.Sprintf("unknown email type %q", emailType))
	}

	recipient, _ := data["email"].(string)
	if recipient == "" {
		return apperrors.NewValidation("email", "recipient email address is required")
	}

	resp, err := s.sender.Send(emailType, data)
	if err != nil {
		return &apperrors.GatewayError{Provider: "email", Err: err}
	}
	if !resp.Success {
		return &apperrors.GatewayError{Provider: "email", Message: resp.Error}
	}

	s.logger.WithFields(logrus.Fields{
		"type":      emailType,
		"recipient": recipient,
	}).Info("Email dispatched")
	return nil
}

// DispatchLogged sends an email on a best-effort basis: failures are logged
// and never propagated, so booking flows are never blocked on email.
func (s *NotificationService) DispatchLogged(emailType mailer.EmailType, data map[string]interface{}) {
	if err := s.Dispatch(emailType, data); err != nil {
		s.logger.WithError(err).WithField("type", emailType).Error("Email dispatch failed")
	}
}
