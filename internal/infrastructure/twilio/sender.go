package twilio

import (
	"context"
	"fmt"

	"github.com/exposure-verify-api/internal/config"
	"github.com/exposure-verify-api/internal/domain"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Sender sends SMS messages via the Twilio messaging API. It is the
// alternate provider to SNS, selected when ENABLE_SNS is off.
type Sender struct {
	client              *twilio.RestClient
	messagingServiceSID string
}

func NewSender(cfg *config.Config) *Sender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioAccountSID,
		Password: cfg.TwilioAuthToken,
	})
	return &Sender{client: client, messagingServiceSID: cfg.TwilioMessagingServiceSID}
}

// SendSMS dispatches one message. The Twilio SDK is blocking; ctx is
// accepted for interface symmetry with the SNS sender but cancellation is
// bounded by the SDK client's own HTTP timeout.
func (s *Sender) SendSMS(_ context.Context, to, message string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetMessagingServiceSid(s.messagingServiceSID)
	params.SetBody(message)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("twilio send: %v: %w", err, domain.ErrDelivery)
	}
	return nil
}
