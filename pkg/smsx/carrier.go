package smsx

// Carrier is a mobile network identified either by one of the well-known
// US carriers below or by an arbitrary gateway domain (see Other). Carriers
// are small comparable values and are safe to copy.
type Carrier struct {
	tag    string
	name   string
	domain string
}

var (
	ATT          = Carrier{tag: "att", name: "AT&T", domain: "txt.att.net"}
	Sprint       = Carrier{tag: "sprint", name: "Sprint", domain: "messaging.sprintpcs.com"}
	TMobile      = Carrier{tag: "tmobile", name: "T-Mobile", domain: "tmomail.net"}
	Verizon      = Carrier{tag: "verizon", name: "Verizon", domain: "vtext.com"}
	BoostMobile  = Carrier{tag: "boost", name: "Boost Mobile", domain: "myboostmobile.com"}
	Cricket      = Carrier{tag: "cricket", name: "Cricket", domain: "sms.mycricket.com"}
	MetroPCS     = Carrier{tag: "metropcs", name: "MetroPCS", domain: "mymetropcs.com"}
	Tracfone     = Carrier{tag: "tracfone", name: "Tracfone", domain: "mmst5.tracfone.com"}
	USCellular   = Carrier{tag: "uscellular", name: "US Cellular", domain: "email.uscc.net"}
	VirginMobile = Carrier{tag: "virgin", name: "Virgin Mobile", domain: "vmobl.com"}
)

var knownCarriers = []Carrier{
	ATT,
	Sprint,
	TMobile,
	Verizon,
	BoostMobile,
	Cricket,
	MetroPCS,
	Tracfone,
	USCellular,
	VirginMobile,
}

// Other is a carrier whose gateway domain is given verbatim.
func Other(domain string) Carrier {
	return Carrier{domain: domain}
}

// ParseCarrier maps a short tag ("att", "verizon", ...) to a carrier. It never
// fails: unknown tags, including typos, become Other(tag). Matching is exact
// and case-sensitive.
func ParseCarrier(tag string) Carrier {
	for _, c := range knownCarriers {
		if c.tag == tag {
			return c
		}
	}
	return Other(tag)
}

// Carriers returns the well-known carriers in a stable order.
func Carriers() []Carrier {
	out := make([]Carrier, len(knownCarriers))
	copy(out, knownCarriers)
	return out
}

// Domain returns the SMS gateway domain.
func (c Carrier) Domain() string {
	return c.domain
}

// Tag returns the short tag ParseCarrier accepts. For Other it is the domain,
// so ParseCarrier(c.Tag()) == c holds for every carrier.
func (c Carrier) Tag() string {
	if c.IsOther() {
		return c.domain
	}
	return c.tag
}

// Name returns a display name.
func (c Carrier) Name() string {
	if c.IsOther() {
		return "Other(" + c.domain + ")"
	}
	return c.name
}

// IsOther reports whether c is a custom domain rather than a known carrier.
func (c Carrier) IsOther() bool {
	return c.tag == ""
}

func (c Carrier) String() string {
	return c.Name()
}

func (c Carrier) MarshalText() ([]byte, error) {
	return []byte(c.Tag()), nil
}

func (c *Carrier) UnmarshalText(text []byte) error {
	*c = ParseCarrier(string(text))
	return nil
}
