package mailxsendmail

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/Abraxas-365/cheapalerts/pkg/logx"
	"github.com/Abraxas-365/cheapalerts/pkg/mailx"
)

// DefaultCommand is looked up on PATH when no command is configured.
const DefaultCommand = "sendmail"

// Transport pipes each rendered message into a local sendmail-compatible
// command: <command> -i -f <from> -- <to...>
type Transport struct {
	command string
}

var _ mailx.Transport = (*Transport)(nil)

// Option configures the transport.
type Option func(*Transport)

// WithCommand sets the binary to run instead of DefaultCommand.
func WithCommand(command string) Option {
	return func(t *Transport) {
		if command != "" {
			t.command = command
		}
	}
}

// New creates a sendmail transport. The command is resolved at send time.
func New(opts ...Option) *Transport {
	t := &Transport{command: DefaultCommand}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Name returns the transport name.
func (t *Transport) Name() string {
	return "sendmail"
}

// Command returns the configured command.
func (t *Transport) Command() string {
	return t.command
}

// Args returns the arguments passed to the command for env.
func Args(env mailx.Envelope) []string {
	args := []string{"-i", "-f", env.From.String(), "--"}
	return append(args, env.Recipients()...)
}

// Send runs the command once with the message on stdin.
func (t *Transport) Send(ctx context.Context, email *mailx.Email) error {
	path, err := exec.LookPath(t.command)
	if err != nil {
		return sendmailErrors.NewWithCause(ErrNotFound, err).WithDetail("command", t.command)
	}

	raw, err := email.Bytes()
	if err != nil {
		return err
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, Args(email.Envelope)...)
	cmd.Stdin = bytes.NewReader(raw)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return sendmailErrors.NewWithCause(ErrExec, err).
			WithDetail("command", path).
			WithDetail("stderr", strings.TrimSpace(stderr.String())).
			WithDetail("to", email.Envelope.Recipients())
	}

	logx.WithFields(logx.Fields{
		"command":    path,
		"message_id": email.MessageID(),
	}).Debug("mailx/sendmail: message handed off")

	return nil
}
