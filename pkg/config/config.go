package config

import (
	"fmt"

	"github.com/Abraxas-365/cheapalerts/pkg/mailx/mailxsmtp"
	"gopkg.in/yaml.v3"
)

// Kind names a delivery backend.
type Kind string

const (
	KindFile          Kind = "file"
	KindSendmail      Kind = "sendmail"
	KindSMTPLocalhost Kind = "smtp_localhost"
	KindSMTPSimple    Kind = "smtp_simple"
	KindSMTP          Kind = "smtp"
	KindConsole       Kind = "console"
	KindSES           Kind = "ses"
	KindResend        Kind = "resend"
)

// Config is a declarative description of a sender.
type Config struct {
	From      string    `yaml:"from"`
	Subject   string    `yaml:"subject,omitempty"`
	Transport Transport `yaml:"transport"`
}

// Transport selects the backend. Only the fields relevant to Kind are used.
type Transport struct {
	Kind     Kind   `yaml:"kind"`
	Path     string `yaml:"path,omitempty"`
	Domain   string `yaml:"domain,omitempty"`
	Address  string `yaml:"address,omitempty"`
	Security string `yaml:"security,omitempty"`
	Command  string `yaml:"command,omitempty"`
	Region   string `yaml:"region,omitempty"`
	APIKey   string `yaml:"api_key,omitempty"`
}

// Defaults returns plain SMTP to localhost with no from address.
func Defaults() Config {
	return Config{
		Transport: Transport{Kind: KindSMTPLocalhost},
	}
}

// Parse decodes YAML over Defaults and validates the result. Environment
// variables are not consulted.
func Parse(data []byte) (*Config, error) {
	cfg := Defaults()
	if err := decode(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func decode(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return configErrors.NewWithCause(ErrParse, err)
	}
	return nil
}

// Marshal encodes the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate checks that the selected backend has what it needs. The from
// address is checked later, when the sender is built.
func (c *Config) Validate() error {
	t := c.Transport
	invalid := func(field, reason string) error {
		msg := fmt.Sprintf("%s: %s %s", ErrInvalid.Message, field, reason)
		return configErrors.NewWithMessage(ErrInvalid, msg).
			WithDetail("kind", string(t.Kind)).
			WithDetail("field", field).
			WithDetail("reason", reason)
	}

	switch t.Kind {
	case KindFile:
		if t.Path == "" {
			return invalid("transport.path", "required for file transport")
		}
	case KindSMTPSimple:
		if t.Domain == "" {
			return invalid("transport.domain", "required for smtp_simple transport")
		}
	case KindSMTP:
		if t.Address == "" {
			return invalid("transport.address", "required for smtp transport")
		}
		if _, err := t.securityMode(); err != nil {
			return invalid("transport.security", err.Error())
		}
	case KindResend:
		if t.APIKey == "" {
			return invalid("transport.api_key", "required for resend transport")
		}
	case KindSendmail, KindSMTPLocalhost, KindConsole, KindSES:
	default:
		return invalid("transport.kind", "unknown transport kind")
	}
	return nil
}

// securityMode defaults to required STARTTLS.
func (t Transport) securityMode() (mailxsmtp.Mode, error) {
	if t.Security == "" {
		return mailxsmtp.ModeRequired, nil
	}
	return mailxsmtp.ParseMode(t.Security)
}
