package domain

import (
	"fmt"
	"math/rand"
	"time"
)

// Display-number prefixes. The POL-/CLM- formats are kept for compatibility
// with numbers already issued by the legacy system; uniqueness is carried by
// the record's UUID, not by these.
const (
	policyNumberPrefix = "POL"
	claimNumberPrefix  = "CLM"
)

// NewPolicyNumber returns a display number of the form POL-<8-digit-epoch-suffix>-<3-digit-random>.
func NewPolicyNumber(now time.Time) string {
	return referenceNumber(policyNumberPrefix, now)
}

// NewClaimNumber returns a display number of the form CLM-<8-digit-epoch-suffix>-<3-digit-random>.
func NewClaimNumber(now time.Time) string {
	return referenceNumber(claimNumberPrefix, now)
}

func referenceNumber(prefix string, now time.Time) string {
	millis := fmt.Sprintf("%d", now.UnixMilli())
	if len(millis) > 8 {
		millis = millis[len(millis)-8:]
	}
	return fmt.Sprintf("%s-%s-%03d", prefix, millis, rand.Intn(1000))
}
