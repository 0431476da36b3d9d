package srcls

import (
	"fmt"
	"strings"
)

// ErrorPolicy decides what happens when a directory cannot be read mid-walk.
type ErrorPolicy int

const (
	// PolicyAbort stops the listing at the first traversal error.
	PolicyAbort ErrorPolicy = iota
	// PolicySkip logs the error, skips the unreadable subtree and continues.
	PolicySkip
)

// PolicyNames lists the accepted spellings, in declaration order.
var PolicyNames = []string{"abort", "skip"}

func (p ErrorPolicy) String() string {
	switch p {
	case PolicyAbort:
		return "abort"
	case PolicySkip:
		return "skip"
	default:
		return fmt.Sprintf("ErrorPolicy(%d)", int(p))
	}
}

// ParseErrorPolicy converts a policy name into an ErrorPolicy.
// Matching is case-insensitive. An empty string yields PolicyAbort.
func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "abort":
		return PolicyAbort, nil
	case "skip":
		return PolicySkip, nil
	default:
		return PolicyAbort, fmt.Errorf("%w: unknown error policy %q (want one of %s)",
			ErrInvalidConfig, s, strings.Join(PolicyNames, ", "))
	}
}
