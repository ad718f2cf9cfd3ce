package utils

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"nambikkai-store/models"
)

// EmailService sends customer notifications through SendGrid. With no
// API key it stays disabled and every send is a logged no-op. Sends are
// best-effort: failures are logged, never returned to the request path.
type EmailService struct {
	client *sendgrid.Client
	from   *mail.Email
	logger zerolog.Logger
}

// NewEmailService creates an EmailService. An empty apiKey disables it.
func NewEmailService(apiKey, fromAddress string, logger zerolog.Logger) *EmailService {
	svc := &EmailService{
		from:   mail.NewEmail("Nambikkai Store", fromAddress),
		logger: logger,
	}
	if apiKey != "" {
		svc.client = sendgrid.NewSendClient(apiKey)
	}
	return svc
}

// OrderPlaced emails an order confirmation.
func (es *EmailService) OrderPlaced(user models.User, order models.Order) {
	subject := "Order Confirmation - Nambikkai Store"
	content := fmt.Sprintf(
		"Dear %s,\n\nThank you for your purchase! Your order %s has been placed successfully.\n\nTotal Amount: ₹%.2f\nPayment Method: %s\n\nThank you for shopping with us!\n",
		user.Name, order.ID.Hex(), order.TotalAmount, order.PaymentMethod,
	)
	es.send(user.Email, subject, content)
}

// OrderStatusChanged emails a lifecycle update.
func (es *EmailService) OrderStatusChanged(user models.User, order models.Order) {
	subject := "Order Update - Nambikkai Store"
	content := fmt.Sprintf(
		"Dear %s,\n\nYour order %s is now '%s' (payment: %s).\n\nThank you for shopping with us!\n",
		user.Name, order.ID.Hex(), order.Status, order.PaymentStatus,
	)
	es.send(user.Email, subject, content)
}

func (es *EmailService) send(to, subject, content string) {
	if es.client == nil {
		es.logger.Debug().Str("to", to).Str("subject", subject).Msg("email disabled, skipping send")
		return
	}
	message := mail.NewSingleEmail(es.from, subject, mail.NewEmail("", to), content, content)
	response, err := es.client.Send(message)
	if err != nil {
		es.logger.Error().Err(err).Str("to", to).Msg("failed to send email")
		return
	}
	if response.StatusCode >= 400 {
		es.logger.Error().Int("status", response.StatusCode).Str("to", to).Msg("email rejected")
	}
}
