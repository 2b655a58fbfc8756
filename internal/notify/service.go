package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/reyescuts/booking-api/internal/httperr"
	"github.com/reyescuts/booking-api/internal/validators"
)

// Sender is what the rest of the service depends on; tests swap it for a
// fake so nothing leaves the process.
type Sender interface {
	SendEmail(ctx context.Context, req EmailRequest) error
	SendSMS(ctx context.Context, phone, message string) error
}

// Service resolves recipients, renders templates and relays to the
// provider client.
type Service struct {
	client    *BrevoClient
	shopName  string
	shopEmail string
	smsSender string
	logger    *zap.Logger
}

var _ Sender = (*Service)(nil)

func NewService(client *BrevoClient, shopName, shopEmail, smsSender string, logger *zap.Logger) *Service {
	return &Service{
		client:    client,
		shopName:  shopName,
		shopEmail: shopEmail,
		smsSender: smsSender,
		logger:    logger,
	}
}

// SendEmail validates the request, resolves the recipient by type and
// relays the rendered template.
func (s *Service) SendEmail(ctx context.Context, req EmailRequest) error {
	if !IsKnownType(req.Type) {
		return httperr.ErrBusiness("unknown_email_type")
	}
	if req.Name == "" {
		return httperr.ErrBusiness("missing_name")
	}

	toName := s.shopName
	toEmail := s.shopEmail

	switch req.Type {
	case TypeCustomerConfirmation, TypeReminder, TypeContactReply:
		if !validators.IsValidEmail(req.Email) {
			return httperr.ErrBusiness("invalid_email")
		}
		toName = req.Name
		toEmail = req.Email
	}

	subject, body, err := BuildEmail(req, s.shopName)
	if err != nil {
		return err
	}

	if err := s.client.SendEmail(
		ctx,
		s.shopName, s.shopEmail,
		toName, toEmail,
		subject, body,
	); err != nil {
		s.logger.Error("email send failed",
			zap.String("type", req.Type),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("email sent",
		zap.String("type", req.Type),
		zap.String("to", toEmail),
	)
	return nil
}

// SendSMS normalizes the phone, truncates the body and relays it.
func (s *Service) SendSMS(ctx context.Context, phone, message string) error {
	if !validators.IsValidPhone(phone) {
		return httperr.ErrBusiness("invalid_phone")
	}
	if message == "" {
		return httperr.ErrBusiness("missing_message")
	}

	recipient := FormatSMSNumber(phone)

	if err := s.client.SendSMS(
		ctx,
		s.smsSender,
		recipient,
		TruncateSMS(message),
	); err != nil {
		s.logger.Error("sms send failed",
			zap.String("recipient", recipient),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("sms sent", zap.String("recipient", recipient))
	return nil
}
