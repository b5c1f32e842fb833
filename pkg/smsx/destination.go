package smsx

import "strings"

// Destination is a phone number paired with its carrier.
type Destination struct {
	// Number holds ASCII digits only. It is never validated for length.
	Number  string
	Carrier Carrier
}

// NewDestination strips everything but 0-9 from raw. An input with no digits
// yields an empty number; no error is reported.
func NewDestination(raw string, carrier Carrier) Destination {
	return Destination{Number: digitsOnly(raw), Carrier: carrier}
}

// Address returns "<digits>@<carrier domain>".
func (d Destination) Address() string {
	return d.Number + "@" + d.Carrier.Domain()
}

func (d Destination) String() string {
	return d.Address()
}

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}
