package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Abraxas-365/cheapalerts/pkg/config"
	"github.com/Abraxas-365/cheapalerts/pkg/errx"
	"github.com/Abraxas-365/cheapalerts/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/cheapalerts/pkg/mailx/mailxfile"
	"github.com/Abraxas-365/cheapalerts/pkg/smsx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := config.Defaults()
	assert.Equal(t, config.KindSMTPLocalhost, cfg.Transport.Kind)
	assert.Empty(t, cfg.From)
	assert.NoError(t, cfg.Validate())
}

func TestParse(t *testing.T) {
	cfg, err := config.Parse([]byte(`
from: alerts@example.com
subject: pizza
transport:
  kind: smtp
  address: mail.example.com:465
  security: wrapper
`))
	require.NoError(t, err)
	assert.Equal(t, "alerts@example.com", cfg.From)
	assert.Equal(t, "pizza", cfg.Subject)
	assert.Equal(t, config.Transport{
		Kind:     config.KindSMTP,
		Address:  "mail.example.com:465",
		Security: "wrapper",
	}, cfg.Transport)
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"bad yaml":        "from: [",
		"unknown kind":    "transport: {kind: carrier-pigeon}",
		"file no path":    "transport: {kind: file}",
		"simple no host":  "transport: {kind: smtp_simple}",
		"smtp bad policy": "transport: {kind: smtp, address: 'h:25', security: maybe}",
		"resend no key":   "transport: {kind: resend}",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Parse([]byte(doc))
			require.Error(t, err)
			assert.True(t, errx.IsCode(err, config.ErrParse) || errx.IsCode(err, config.ErrInvalid), err.Error())
		})
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	configs := []config.Config{
		{From: "a@b.com", Transport: config.Transport{Kind: config.KindFile, Path: "./outbox"}},
		{From: "a@b.com", Transport: config.Transport{Kind: config.KindSendmail}},
		{From: "a@b.com", Transport: config.Transport{Kind: config.KindSMTPLocalhost}},
		{From: "a@b.com", Subject: "s", Transport: config.Transport{Kind: config.KindSMTPSimple, Domain: "smtp.example.com"}},
		{From: "a@b.com", Transport: config.Transport{Kind: config.KindSMTP, Address: "h:587", Security: "opportunistic"}},
		{From: "a@b.com", Transport: config.Transport{Kind: config.KindSES, Region: "us-west-2"}},
		{From: "a@b.com", Transport: config.Transport{Kind: config.KindResend, APIKey: "re_123"}},
	}

	for _, c := range configs {
		t.Run(string(c.Transport.Kind), func(t *testing.T) {
			data, err := c.Marshal()
			require.NoError(t, err)

			back, err := config.Parse(data)
			require.NoError(t, err)
			assert.Equal(t, c, *back)
		})
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cheapalerts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
from: file@example.com
transport:
  kind: file
  path: ./outbox
`), 0o644))

	t.Setenv("CHEAPALERTS_FROM", "env@example.com")
	t.Setenv("CHEAPALERTS_FILE_PATH", "/tmp/elsewhere")
	t.Setenv("CHEAPALERTS_AWS_REGION", "")
	t.Setenv("AWS_REGION", "eu-west-1")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env@example.com", cfg.From)
	assert.Equal(t, config.KindFile, cfg.Transport.Kind)
	assert.Equal(t, "/tmp/elsewhere", cfg.Transport.Path)
	assert.Equal(t, "eu-west-1", cfg.Transport.Region)
}

func TestLoad_WithoutFile(t *testing.T) {
	t.Setenv("CHEAPALERTS_TRANSPORT", "smtp_simple")
	t.Setenv("CHEAPALERTS_SMTP_DOMAIN", "smtp.example.com")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.KindSMTPSimple, cfg.Transport.Kind)
	assert.Equal(t, "smtp.example.com", cfg.Transport.Domain)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.True(t, errx.IsCode(err, config.ErrRead))
}

func TestLoad_EnvCompletesFile(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		env  map[string]string
		want config.Transport
	}{
		{
			name: "resend key from env",
			doc:  "transport: {kind: resend}",
			env:  map[string]string{"RESEND_API_KEY": "re_env"},
			want: config.Transport{Kind: config.KindResend, APIKey: "re_env"},
		},
		{
			name: "smtp domain from env",
			doc:  "transport: {kind: smtp_simple}",
			env:  map[string]string{"CHEAPALERTS_SMTP_DOMAIN": "smtp.example.com"},
			want: config.Transport{Kind: config.KindSMTPSimple, Domain: "smtp.example.com"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "cheapalerts.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tc.doc), 0o644))
			for _, k := range []string{"RESEND_API_KEY", "CHEAPALERTS_SMTP_DOMAIN", "CHEAPALERTS_AWS_REGION", "AWS_REGION"} {
				t.Setenv(k, "")
			}
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			cfg, err := config.Load(path)
			require.NoError(t, err)
			assert.Equal(t, tc.want, cfg.Transport)
		})
	}
}

func TestLoad_OverridesCompleteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cheapalerts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("transport: {kind: file}"), 0o644))

	cfg, err := config.Load(path, func(c *config.Config) {
		c.Transport = config.Transport{Kind: config.KindSMTPSimple, Domain: "smtp.example.com"}
	})
	require.NoError(t, err)
	assert.Equal(t, config.KindSMTPSimple, cfg.Transport.Kind)

	_, err = config.Load(path)
	assert.True(t, errx.IsCode(err, config.ErrInvalid))
}

func TestValidate_MessageNamesField(t *testing.T) {
	cfg := config.Config{Transport: config.Transport{Kind: config.KindResend}}
	err := cfg.Validate()

	require.Error(t, err)
	assert.True(t, errx.IsCode(err, config.ErrInvalid))
	assert.Contains(t, err.Error(), "transport.api_key")
	assert.Contains(t, err.Error(), "required for resend transport")
}

func TestSender_File(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	cfg := config.Config{From: "a@b.com", Transport: config.Transport{Kind: config.KindFile, Path: dir}}
	s, err := cfg.Sender(ctx)
	require.NoError(t, err)
	assert.Equal(t, "file", s.Transport().Name())

	require.NoError(t, s.SendTo(ctx, smsx.NewDestination("(612) 555-0111", smsx.Verizon), "hi"))

	fs, err := fsxlocal.NewLocalFileSystem(dir)
	require.NoError(t, err)
	names, err := fs.List(ctx, ".")
	require.NoError(t, err)
	require.Len(t, names, 1)

	rec, err := mailxfile.ReadRecord(ctx, fs, names[0])
	require.NoError(t, err)
	assert.Equal(t, []string{"6125550111@vtext.com"}, rec.Envelope.To)
	assert.Equal(t, "hi", rec.Message)
}

func TestSender_SelectsBackend(t *testing.T) {
	cases := map[config.Kind]config.Transport{
		"sendmail": {Kind: config.KindSendmail, Command: "/usr/sbin/sendmail"},
		"smtp":     {Kind: config.KindSMTPLocalhost},
		"console":  {Kind: config.KindConsole},
		"resend":   {Kind: config.KindResend, APIKey: "re_test"},
	}
	for want, tr := range cases {
		cfg := config.Config{From: "a@b.com", Transport: tr}
		s, err := cfg.Sender(context.Background())
		require.NoError(t, err)
		assert.Equal(t, string(want), s.Transport().Name())
	}
}

func TestSender_MissingEmailFirst(t *testing.T) {
	for _, from := range []string{"", "nope"} {
		cfg := config.Config{From: from, Transport: config.Transport{Kind: config.KindSES}}
		_, err := cfg.Sender(context.Background())
		assert.Equal(t, smsx.KindMissingEmail, smsx.KindOf(err))
	}
}
