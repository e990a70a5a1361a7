package utils

import (
	"fmt"
	"math/rand"
	"strconv"
	"sync/atomic"
	"time"
)

var idCounter uint32

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateID returns "{prefix}_{unixMillis}_{suffix}". The millisecond
// timestamp keeps ids sortable by creation order; the suffix mixes a
// process-local counter with random characters so two ids minted in the
// same millisecond never collide.
func GenerateID(prefix string) string {
	now := time.Now().UnixMilli()
	n := atomic.AddUint32(&idCounter, 1)

	suffix := make([]byte, 0, 6)
	suffix = append(suffix, base36[rand.Intn(36)], base36[rand.Intn(36)])
	counterPart := strconv.FormatUint(uint64(n%1679616), 36) // 36^4
	for len(counterPart) < 4 {
		counterPart = "0" + counterPart
	}
	suffix = append(suffix, counterPart...)

	return fmt.Sprintf("%s_%d_%s", prefix, now, string(suffix))
}
