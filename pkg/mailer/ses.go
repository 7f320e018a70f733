package mailer

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/spf13/viper"
)

// Mailer sends internal notification mail through AWS SES. The site itself
// never mails customers, it only notifies the sales and HR inboxes.
type Mailer struct {
	ses  *ses.Client
	from string
	to   string
}

// NewMailer builds a mailer from AWS_REGION, AWS_ACCESS_KEY, AWS_SECRET_KEY,
// MAIL_FROM_ADDRESS and MAIL_NOTIFY_ADDRESS.
func NewMailer(ctx context.Context) (*Mailer, error) {
	from := viper.GetString("MAIL_FROM_ADDRESS")
	to := viper.GetString("MAIL_NOTIFY_ADDRESS")
	if from == "" || to == "" {
		return nil, fmt.Errorf("mailer: MAIL_FROM_ADDRESS and MAIL_NOTIFY_ADDRESS must be set")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(viper.GetString("AWS_REGION")),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			viper.GetString("AWS_ACCESS_KEY"),
			viper.GetString("AWS_SECRET_KEY"),
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("mailer: load aws config: %w", err)
	}

	return &Mailer{ses: ses.NewFromConfig(cfg), from: from, to: to}, nil
}

// Notify sends a plain notification mail to the configured inbox.
func (m *Mailer) Notify(ctx context.Context, subject, htmlBody string) error {
	_, err := m.ses.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(m.from),
		Destination: &types.Destination{
			ToAddresses: []string{m.to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject), Charset: aws.String("UTF-8")},
			Body: &types.Body{
				Html: &types.Content{Data: aws.String(htmlBody), Charset: aws.String("UTF-8")},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("mailer: send %q: %w", subject, err)
	}
	return nil
}
