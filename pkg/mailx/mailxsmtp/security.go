package mailxsmtp

import (
	"crypto/tls"
	"strings"

	"gopkg.in/mail.v2"
)

// Mode selects how TLS is negotiated with the server.
type Mode int

const (
	// ModeNone never uses TLS.
	ModeNone Mode = iota
	// ModeOpportunistic upgrades with STARTTLS when the server offers it.
	ModeOpportunistic
	// ModeRequired fails unless STARTTLS succeeds.
	ModeRequired
	// ModeWrapper speaks TLS from the first byte (SMTPS, usually port 465).
	ModeWrapper
)

var modeNames = map[Mode]string{
	ModeNone:          "none",
	ModeOpportunistic: "opportunistic",
	ModeRequired:      "required",
	ModeWrapper:       "wrapper",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return "unknown"
}

// ParseMode accepts the names returned by Mode.String.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if strings.EqualFold(s, name) {
			return m, nil
		}
	}
	return ModeNone, smtpErrors.New(ErrSecurity).WithDetail("security", s)
}

// Security is a TLS mode plus the TLS parameters used for it. A nil
// TLSConfig means "verify against the server host name".
type Security struct {
	Mode      Mode
	TLSConfig *tls.Config
}

// None disables TLS.
func None() Security { return Security{Mode: ModeNone} }

// Opportunistic uses STARTTLS when available.
func Opportunistic(cfg *tls.Config) Security { return Security{Mode: ModeOpportunistic, TLSConfig: cfg} }

// Required insists on STARTTLS.
func Required(cfg *tls.Config) Security { return Security{Mode: ModeRequired, TLSConfig: cfg} }

// Wrapper uses implicit TLS.
func Wrapper(cfg *tls.Config) Security { return Security{Mode: ModeWrapper, TLSConfig: cfg} }

func (s Security) apply(d *mail.Dialer) {
	d.SSL = false
	switch s.Mode {
	case ModeNone:
		d.StartTLSPolicy = mail.NoStartTLS
		return
	case ModeOpportunistic:
		d.StartTLSPolicy = mail.OpportunisticStartTLS
	case ModeRequired:
		d.StartTLSPolicy = mail.MandatoryStartTLS
	case ModeWrapper:
		d.SSL = true
	}

	if s.TLSConfig != nil {
		d.TLSConfig = s.TLSConfig
	} else {
		d.TLSConfig = &tls.Config{ServerName: d.Host, MinVersion: tls.VersionTLS12}
	}
}
