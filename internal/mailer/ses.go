// Package mailer delivers confirmation codes by email through AWS SES.
package mailer

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const codeSubject = "Schedule University Code"

type SESSender struct {
	client *ses.Client
	sender string
}

func NewSESSender(client *ses.Client, sender string) *SESSender {
	return &SESSender{client: client, sender: sender}
}

func (s *SESSender) SendCode(ctx context.Context, email, code string) error {
	input := &ses.SendEmailInput{
		Source: aws.String(s.sender),
		Destination: &types.Destination{
			ToAddresses: []string{email},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(codeSubject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data:    aws.String("Email confirmation code " + code),
					Charset: aws.String("UTF-8"),
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send confirmation code: %w", err)
	}

	return nil
}
