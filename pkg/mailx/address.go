package mailx

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Address is a syntactically valid email address. The zero value is empty
// and never produced by ParseAddress.
type Address string

// ParseAddress validates s as a bare email address (no display name).
// Dotless domains are rejected except for localhost, which local MTAs
// deliver to.
func ParseAddress(s string) (Address, error) {
	err := validate.Var(s, "required,email")
	if err != nil && isLocalhost(s) {
		err = nil
	}
	if err != nil {
		return "", mailxErrors.NewWithCause(ErrInvalidAddress, err).WithDetail("address", s)
	}
	return Address(s), nil
}

// isLocalhost checks the local part with the same rules as any other
// address by pinning it to a dotted stand-in domain.
func isLocalhost(s string) bool {
	i := strings.LastIndexByte(s, '@')
	if i <= 0 || !strings.EqualFold(s[i+1:], "localhost") {
		return false
	}
	return validate.Var(s[:i]+"@localhost.localdomain", "email") == nil
}

// String returns the address as written.
func (a Address) String() string {
	return string(a)
}

// IsZero reports whether the address is unset.
func (a Address) IsZero() bool {
	return a == ""
}

// Domain returns the part after the last '@'.
func (a Address) Domain() string {
	s := string(a)
	if i := strings.LastIndexByte(s, '@'); i >= 0 {
		return s[i+1:]
	}
	return ""
}
