package mailxconsole_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/Abraxas-365/cheapalerts/pkg/logx"
	"github.com/Abraxas-365/cheapalerts/pkg/mailx"
	"github.com/Abraxas-365/cheapalerts/pkg/mailx/mailxconsole"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransport_LogsEnvelopeAndBody(t *testing.T) {
	var buf bytes.Buffer
	cfg := logx.DefaultConfig()
	cfg.EnableColors = false
	cfg.EnableTimestamp = false
	cfg.Output = &buf

	tr := mailxconsole.New(mailxconsole.WithLogger(logx.NewLogger(cfg)))
	assert.Equal(t, "console", tr.Name())

	from, err := mailx.ParseAddress("alerts@example.com")
	require.NoError(t, err)
	to, err := mailx.ParseAddress("5551234567@txt.att.net")
	require.NoError(t, err)
	env, err := mailx.NewEnvelope(from, to)
	require.NoError(t, err)
	email := mailx.NewEmail(env, time.Now(), []byte("pizza is ready"))

	require.NoError(t, tr.Send(context.Background(), email))

	out := buf.String()
	assert.Contains(t, out, "[INFO ]")
	assert.Contains(t, out, "from=alerts@example.com")
	assert.Contains(t, out, "to=5551234567@txt.att.net")
	assert.Contains(t, out, "pizza is ready")
	assert.NotContains(t, out, "subject=")
}
