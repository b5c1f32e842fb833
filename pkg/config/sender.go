package config

import (
	"context"

	"github.com/Abraxas-365/cheapalerts/pkg/fsx"
	"github.com/Abraxas-365/cheapalerts/pkg/fsx/fsxs3"
	"github.com/Abraxas-365/cheapalerts/pkg/mailx/mailxsendmail"
	"github.com/Abraxas-365/cheapalerts/pkg/mailx/mailxsmtp"
	"github.com/Abraxas-365/cheapalerts/pkg/smsx"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ses"
)

// Sender runs the builder calls the config describes. A missing or invalid
// from address fails with smsx.ErrMissingEmail before any backend is set up.
func (c *Config) Sender(ctx context.Context) (*smsx.Sender, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	b := smsx.NewBuilder().Address(c.From).Subject(c.Subject)
	if err := b.Ready(); err != nil {
		return nil, err
	}

	t := c.Transport
	switch t.Kind {
	case KindFile:
		if loc, ok := fsx.ParseS3(t.Path); ok {
			awsCfg, err := c.aws(ctx)
			if err != nil {
				return nil, err
			}
			return b.FileSystem(fsxs3.NewS3FileSystem(s3.NewFromConfig(awsCfg), loc.Bucket, loc.Prefix))
		}
		return b.File(t.Path)

	case KindSendmail:
		var opts []mailxsendmail.Option
		if t.Command != "" {
			opts = append(opts, mailxsendmail.WithCommand(t.Command))
		}
		return b.Sendmail(opts...)

	case KindSMTPLocalhost:
		return b.SMTPUnencryptedLocalhost()

	case KindSMTPSimple:
		return b.SMTPSimple(t.Domain)

	case KindSMTP:
		mode, err := t.securityMode()
		if err != nil {
			return nil, err
		}
		return b.SMTPFull(t.Address, mailxsmtp.Security{Mode: mode})

	case KindConsole:
		return b.Console()

	case KindSES:
		awsCfg, err := c.aws(ctx)
		if err != nil {
			return nil, err
		}
		return b.SES(ses.NewFromConfig(awsCfg))

	case KindResend:
		return b.Resend(t.APIKey)
	}

	// unreachable after Validate
	return nil, configErrors.New(ErrInvalid).WithDetail("kind", string(t.Kind))
}

func (c *Config) aws(ctx context.Context) (aws.Config, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if c.Transport.Region != "" {
		opts = append(opts, awsconfig.WithRegion(c.Transport.Region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, configErrors.NewWithCause(ErrAWS, err)
	}
	return cfg, nil
}
