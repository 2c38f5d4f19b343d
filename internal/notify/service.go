package notify

import (
	"context"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"

	appconfig "github.com/wheelhouse-ai/dealership-ai-platform/internal/config"
	"github.com/wheelhouse-ai/dealership-ai-platform/pkg/logging"
)

// NewEmailSenderFromConfig picks the configured email provider. Falls back
// to the stub sender when nothing is configured so callers never hold a nil.
func NewEmailSenderFromConfig(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) EmailSender {
	if logger == nil {
		logger = logging.Default()
	}

	switch cfg.EmailProvider {
	case "sendgrid":
		if sender := NewSendGridSender(SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger); sender != nil {
			logger.Info("notify: using sendgrid email sender")
			return sender
		}
	case "ses":
		client, err := newSESClient(ctx, cfg)
		if err != nil {
			logger.Error("notify: ses client init failed, falling back to stub", "error", err)
			break
		}
		if sender := NewSESSender(client, SESConfig{
			FromEmail: cfg.SESFromEmail,
			FromName:  cfg.SESFromName,
		}, logger); sender != nil {
			logger.Info("notify: using ses email sender")
			return sender
		}
	}

	logger.Warn("notify: email not configured, using stub sender")
	return NewStubEmailSender(logger)
}

// NewSMSSenderFromConfig picks the SMS provider, defaulting to the stub.
func NewSMSSenderFromConfig(cfg *appconfig.Config, logger *logging.Logger) SMSSender {
	if logger == nil {
		logger = logging.Default()
	}

	if cfg.SMSAccountSID != "" && cfg.SMSAuthToken != "" && cfg.SMSFromNumber != "" {
		logger.Info("notify: using twilio sms sender")
		return NewTwilioSender(cfg.SMSAccountSID, cfg.SMSAuthToken, cfg.SMSFromNumber, logger).
			WithBaseURL(cfg.SMSProviderURL)
	}

	logger.Warn("notify: sms not configured, using stub sender")
	return NewStubSMSSender(logger)
}

func newSESClient(ctx context.Context, cfg *appconfig.Config) (*sesv2.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}
	if cfg.AWSAccessKeyID != "" && cfg.AWSSecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return sesv2.NewFromConfig(awsCfg), nil
}
