package remindersender

import (
	"context"
	c "medremind/internal/core/domain/common"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const charsetUTF8 = "UTF-8"

type EmailSender struct {
	ses *ses.Client
	// This address must be verified with Amazon SES.
	sender string
}

func NewEmail(awsConfig aws.Config, sender string) *EmailSender {
	return &EmailSender{
		ses:    ses.NewFromConfig(awsConfig),
		sender: sender,
	}
}

func (s *EmailSender) Send(ctx context.Context, address c.Email, subject string, body string) error {
	charset := charsetUTF8
	email := string(address)
	_, err := s.ses.SendEmail(
		ctx,
		&ses.SendEmailInput{
			Source: &s.sender,
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{email},
			},
			Message: &types.Message{
				Subject: &types.Content{Charset: &charset, Data: &subject},
				Body: &types.Body{
					Text: &types.Content{Charset: &charset, Data: &body},
				},
			},
		},
	)
	return err
}
