package domain

// Reason classifies the verdict for one child. The zero value means accepted.
type Reason int

const (
	Accepted          Reason = iota
	MissingFields            // pos or size attribute absent
	NonNumeric               // a component is not an integer
	NonPositive              // a component is < 1
	OriginOutOfBounds        // top-left cell outside the grid
	ExtentOutOfBounds        // span runs past the last grid line
)

var reasonNames = [...]string{
	Accepted:          "Accepted",
	MissingFields:     "MissingFields",
	NonNumeric:        "NonNumeric",
	NonPositive:       "NonPositive",
	OriginOutOfBounds: "OriginOutOfBounds",
	ExtentOutOfBounds: "ExtentOutOfBounds",
}

func (r Reason) String() string {
	if r < 0 || int(r) >= len(reasonNames) {
		return "Unknown"
	}
	return reasonNames[r]
}

// MarshalText lets reasons travel as their code name in JSON.
func (r Reason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Format names the syntax a board was declared in.
type Format string

const (
	FormatHTML Format = "html"
	FormatHCL  Format = "hcl"
)
