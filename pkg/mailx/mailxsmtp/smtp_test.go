package mailxsmtp_test

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/Abraxas-365/cheapalerts/pkg/errx"
	"github.com/Abraxas-365/cheapalerts/pkg/mailx"
	"github.com/Abraxas-365/cheapalerts/pkg/mailx/mailxsmtp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/mail.v2"
)

type session struct {
	from string
	rcpt []string
	data string
}

// fakeServer accepts a single plain-text SMTP session.
func fakeServer(t *testing.T) (string, <-chan session) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	out := make(chan session, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		_ = conn.SetDeadline(time.Now().Add(5 * time.Second))

		r := bufio.NewReader(conn)
		reply := func(s string) { fmt.Fprintf(conn, "%s\r\n", s) }
		reply("220 fake ESMTP")

		var s session
		var data strings.Builder
		inData := false
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			if inData {
				if line == ".\r\n" {
					inData = false
					s.data = data.String()
					reply("250 queued")
					continue
				}
				data.WriteString(line)
				continue
			}

			cmd := strings.TrimSpace(line)
			upper := strings.ToUpper(cmd)
			switch {
			case strings.HasPrefix(upper, "EHLO"), strings.HasPrefix(upper, "HELO"):
				reply("250 fake")
			case strings.HasPrefix(upper, "MAIL FROM:"):
				s.from = cmd[len("MAIL FROM:"):]
				reply("250 ok")
			case strings.HasPrefix(upper, "RCPT TO:"):
				s.rcpt = append(s.rcpt, cmd[len("RCPT TO:"):])
				reply("250 ok")
			case upper == "DATA":
				inData = true
				reply("354 go ahead")
			case upper == "QUIT":
				reply("221 bye")
				out <- s
				return
			default:
				reply("250 ok")
			}
		}
	}()

	return ln.Addr().String(), out
}

func testEmail(t *testing.T) *mailx.Email {
	t.Helper()
	from, err := mailx.ParseAddress("alerts@example.com")
	require.NoError(t, err)
	to, err := mailx.ParseAddress("6125550111@vtext.com")
	require.NoError(t, err)
	env, err := mailx.NewEnvelope(from, to)
	require.NoError(t, err)
	e := mailx.NewEmail(env, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), []byte("pizza is here"))
	e.Subject = "alert"
	return e
}

func TestTransport_DeliversOverPlainSMTP(t *testing.T) {
	addr, sessions := fakeServer(t)

	tr, err := mailxsmtp.New(addr, mailxsmtp.None(), mailxsmtp.WithTimeout(2*time.Second))
	require.NoError(t, err)
	assert.Equal(t, "smtp", tr.Name())
	assert.Equal(t, addr, tr.Addr())

	email := testEmail(t)
	require.NoError(t, tr.Send(context.Background(), email))

	select {
	case s := <-sessions:
		assert.Equal(t, "<alerts@example.com>", s.from)
		assert.Equal(t, []string{"<6125550111@vtext.com>"}, s.rcpt)
		assert.Contains(t, s.data, "pizza is here")
		assert.Contains(t, s.data, "Subject: alert")
		assert.Contains(t, s.data, "Message-ID: "+email.MessageID())
	case <-time.After(5 * time.Second):
		t.Fatal("server never saw QUIT")
	}
}

func TestTransport_ConnectFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	tr, err := mailxsmtp.New(addr, mailxsmtp.None(), mailxsmtp.WithTimeout(time.Second))
	require.NoError(t, err)

	err = tr.Send(context.Background(), testEmail(t))
	require.Error(t, err)
	assert.True(t, errx.IsCode(err, mailxsmtp.ErrConnect))
	assert.True(t, mailxsmtp.Errors().Owns(err))
}

func TestTransport_CanceledContextDoesNotDial(t *testing.T) {
	tr := mailxsmtp.NewUnencryptedLocalhost()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := tr.Send(ctx, testEmail(t))
	assert.True(t, errx.IsCode(err, mailxsmtp.ErrConnect))
}

func TestNew_RejectsBadAddresses(t *testing.T) {
	for _, addr := range []string{"no-port", "host:abc", ":25", "host:70000"} {
		_, err := mailxsmtp.New(addr, mailxsmtp.None())
		assert.True(t, errx.IsCode(err, mailxsmtp.ErrAddress), addr)
	}
}

func TestConstructors_ApplySecurity(t *testing.T) {
	local := mailxsmtp.NewUnencryptedLocalhost()
	assert.Equal(t, "localhost:25", local.Addr())
	assert.Equal(t, mail.StartTLSPolicy(mail.NoStartTLS), local.Dialer().StartTLSPolicy)
	assert.False(t, local.Dialer().SSL)

	simple, err := mailxsmtp.NewSimple("smtp.example.com")
	require.NoError(t, err)
	assert.Equal(t, "smtp.example.com:587", simple.Addr())
	assert.Equal(t, mail.MandatoryStartTLS, simple.Dialer().StartTLSPolicy)
	require.NotNil(t, simple.Dialer().TLSConfig)
	assert.Equal(t, "smtp.example.com", simple.Dialer().TLSConfig.ServerName)

	_, err = mailxsmtp.NewSimple("")
	assert.True(t, errx.IsCode(err, mailxsmtp.ErrAddress))

	wrapped, err := mailxsmtp.New("smtp.example.com:465", mailxsmtp.Wrapper(nil))
	require.NoError(t, err)
	assert.True(t, wrapped.Dialer().SSL)
	assert.Equal(t, "smtp.example.com", wrapped.Dialer().TLSConfig.ServerName)

	// port 465 alone must not imply implicit TLS when the caller said otherwise
	plain465, err := mailxsmtp.New("smtp.example.com:465", mailxsmtp.Opportunistic(nil))
	require.NoError(t, err)
	assert.False(t, plain465.Dialer().SSL)
	assert.Equal(t, mail.OpportunisticStartTLS, plain465.Dialer().StartTLSPolicy)
}

func TestFromDialer_UsesDialerAsIs(t *testing.T) {
	d := mail.NewDialer("relay.internal", 2525, "u", "p")
	tr := mailxsmtp.FromDialer(d)
	assert.Same(t, d, tr.Dialer())
	assert.Equal(t, "relay.internal:2525", tr.Addr())
}

func TestParseMode(t *testing.T) {
	cases := map[string]mailxsmtp.Mode{
		"none":          mailxsmtp.ModeNone,
		"Opportunistic": mailxsmtp.ModeOpportunistic,
		"REQUIRED":      mailxsmtp.ModeRequired,
		"wrapper":       mailxsmtp.ModeWrapper,
	}
	for in, want := range cases {
		got, err := mailxsmtp.ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
		assert.Equal(t, strings.ToLower(in), got.String())
	}

	_, err := mailxsmtp.ParseMode("starttls-ish")
	assert.True(t, errx.IsCode(err, mailxsmtp.ErrSecurity))
}
