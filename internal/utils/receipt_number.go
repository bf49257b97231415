package utils

import (
	mathrand "math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Receipt numbers follow the historical RC<identifier> format. The ULID body
// keeps them lexicographically time-ordered and collision-free without a
// round trip to the store.
const receiptPrefix = "RC"

var (
	receiptEntropyMu sync.Mutex
	receiptEntropy   = ulid.Monotonic(mathrand.New(mathrand.NewSource(time.Now().UnixNano())), 0)
)

// NewReceiptNumber returns a fresh unique receipt reference.
func NewReceiptNumber() string {
	receiptEntropyMu.Lock()
	defer receiptEntropyMu.Unlock()
	return receiptPrefix + ulid.MustNew(ulid.Timestamp(time.Now()), receiptEntropy).String()
}
