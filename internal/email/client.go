package email

import (
	"context"
	"fmt"
	"html"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	appconfig "github.com/lumiforge/tierhub-backend/internal/config"
)

// EmailType представляет тип email
type EmailType string

const (
	EmailTypeVerification EmailType = "verification"
	EmailTypeSubscription EmailType = "subscription"
)

// EmailStatus представляет статус email
type EmailStatus string

const (
	EmailStatusSent   EmailStatus = "sent"
	EmailStatusFailed EmailStatus = "failed"
)

// EmailMessage описывает отправленное письмо для журнала email_logs
type EmailMessage struct {
	Type      EmailType
	Recipient string
	Subject   string
	Body      string
	Status    EmailStatus
	MessageID string
	SentAt    time.Time
	Error     string
}

// Mailer отправляет транзакционные письма
type Mailer interface {
	IsConfigured() bool
	SendVerificationEmail(ctx context.Context, toEmail, firstName, verificationCode string) (*EmailMessage, error)
	SendSubscriptionEmail(ctx context.Context, toEmail, firstName, planName string, endDate *time.Time) (*EmailMessage, error)
}

type Client struct {
	SESClient *sesv2.Client
	Sender    string
	LoginURL  string
}

// NewClient создает SES клиент. Без отправителя или endpoint клиент остаётся ненастроенным.
func NewClient(appCfg *appconfig.Config) *Client {
	c := &Client{
		Sender:   appCfg.EmailFrom,
		LoginURL: appCfg.AppLoginURL,
	}
	if appCfg.EmailFrom == "" || appCfg.SESEndpoint == "" {
		return c
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(appCfg.SESAccessKeyID, appCfg.SESSecretAccessKey, "")),
		config.WithRegion(appCfg.SESRegion),
	)
	if err != nil {
		log.Fatalf("failed to load SES config: %v", err)
	}

	c.SESClient = sesv2.NewFromConfig(cfg, func(o *sesv2.Options) {
		o.BaseEndpoint = aws.String(appCfg.SESEndpoint)
	})
	return c
}

// IsConfigured проверяет, настроен ли email сервис
func (c *Client) IsConfigured() bool {
	return c != nil && c.Sender != "" && c.SESClient != nil
}

// SendVerificationEmail отправляет код подтверждения email
func (c *Client) SendVerificationEmail(ctx context.Context, toEmail, firstName, verificationCode string) (*EmailMessage, error) {
	subject := "Confirm your email - TierHub"
	body := fmt.Sprintf(`
		<html>
		<body>
			<h2>Welcome to TierHub, %s!</h2>
			<p>Your verification code: <strong>%s</strong></p>
			<p>The code is valid for 24 hours.</p>
			<p>If you did not sign up, please ignore this email.</p>
		</body>
		</html>
	`, html.EscapeString(firstName), html.EscapeString(verificationCode))

	return c.send(ctx, EmailTypeVerification, toEmail, subject, body)
}

// SendSubscriptionEmail отправляет письмо об активации подписки
func (c *Client) SendSubscriptionEmail(ctx context.Context, toEmail, firstName, planName string, endDate *time.Time) (*EmailMessage, error) {
	subject := fmt.Sprintf("Your %s membership is active - TierHub", planName)

	term := "Your access does not expire."
	if endDate != nil {
		term = "Your access is valid until " + endDate.Format("January 2, 2006") + "."
	}

	body := fmt.Sprintf(`
		<html>
		<body>
			<h2>Hi %s,</h2>
			<p>Your <strong>%s</strong> membership has been activated.</p>
			<p>%s</p>
			<p><a href="%s">Sign in to explore your content</a></p>
		</body>
		</html>
	`, html.EscapeString(firstName), html.EscapeString(planName), term, c.LoginURL)

	return c.send(ctx, EmailTypeSubscription, toEmail, subject, body)
}

func (c *Client) send(ctx context.Context, emailType EmailType, toEmail, subject, body string) (*EmailMessage, error) {
	message := &EmailMessage{
		Type:      emailType,
		Recipient: toEmail,
		Subject:   subject,
		Body:      body,
		Status:    EmailStatusSent,
		SentAt:    time.Now(),
	}

	messageID, err := c.sendHTMLEmail(ctx, toEmail, subject, body)
	if err != nil {
		message.Status = EmailStatusFailed
		message.Error = err.Error()
		return message, err
	}
	message.MessageID = messageID

	return message, nil
}

// sendHTMLEmail отправляет HTML email через SES
func (c *Client) sendHTMLEmail(ctx context.Context, toEmail, subject, htmlBody string) (string, error) {
	if !c.IsConfigured() {
		return "", fmt.Errorf("email client is not configured")
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: &c.Sender,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data: &subject,
				},
				Body: &types.Body{
					Html: &types.Content{
						Data: &htmlBody,
					},
				},
			},
		},
	}

	out, err := c.SESClient.SendEmail(ctx, input)
	if err != nil {
		return "", err
	}
	return aws.ToString(out.MessageId), nil
}
