// Package ses sends follow-up emails through Amazon SES v2.
package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"gstbill/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesSender{
		client:      sesv2.NewFromConfig(cfg),
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) Send(ctx context.Context, msg port.EmailMessage) error {
	_, err := s.client.SendEmail(ctx, buildInput(s.fromName, s.fromAddress, msg))
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildInput(fromName, fromAddress string, msg port.EmailMessage) *sesv2.SendEmailInput {
	from := formatAddress(fromName, fromAddress)
	to := formatAddress(msg.ToName, msg.ToAddress)
	subject := msg.Subject
	textBody := msg.TextBody

	body := &types.Body{Text: &types.Content{Data: &textBody}}
	if msg.HTMLBody != "" {
		htmlBody := msg.HTMLBody
		body.Html = &types.Content{Data: &htmlBody}
	}

	return &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body:    body,
			},
		},
	}
}

func formatAddress(name, address string) string {
	if name == "" {
		return address
	}
	return fmt.Sprintf("%s <%s>", name, address)
}
