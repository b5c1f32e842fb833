package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/Abraxas-365/cheapalerts/pkg/logx"
	"github.com/joho/godotenv"
)

// Override adjusts a loaded Config before it is validated. Command-line
// flags are applied this way so they can complete a partial file.
type Override func(*Config)

// Load builds a Config from defaults < YAML file < environment < overrides.
// A .env file in the working directory, if present, is loaded into the
// environment first. An empty path skips the YAML layer; a named file must
// exist. Validation runs once, on the merged result.
func Load(path string, overrides ...Override) (*Config, error) {
	loadDotEnv()

	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, configErrors.NewWithCause(ErrRead, err).WithDetail("path", path)
		}
		if err := decode(data, &cfg); err != nil {
			return nil, err
		}
	}

	loadEnv(&cfg)
	for _, o := range overrides {
		o(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logx.WithError(err).Warn("config: could not load .env")
	}
}

// loadEnv overlays non-empty environment variables onto cfg.
func loadEnv(cfg *Config) {
	setString(&cfg.From, "CHEAPALERTS_FROM")
	setString(&cfg.Subject, "CHEAPALERTS_SUBJECT")
	setKind(&cfg.Transport.Kind, "CHEAPALERTS_TRANSPORT")
	setString(&cfg.Transport.Path, "CHEAPALERTS_FILE_PATH")
	setString(&cfg.Transport.Domain, "CHEAPALERTS_SMTP_DOMAIN")
	setString(&cfg.Transport.Address, "CHEAPALERTS_SMTP_ADDRESS")
	setString(&cfg.Transport.Security, "CHEAPALERTS_SMTP_SECURITY")
	setString(&cfg.Transport.Command, "CHEAPALERTS_SENDMAIL_COMMAND")
	setString(&cfg.Transport.Region, "CHEAPALERTS_AWS_REGION")
	setString(&cfg.Transport.APIKey, "RESEND_API_KEY")

	if cfg.Transport.Region == "" {
		setString(&cfg.Transport.Region, "AWS_REGION")
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setKind(dst *Kind, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = Kind(v)
	}
}
