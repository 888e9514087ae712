package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"time"
)

const (
	idSuffixLen = 9
	base36      = "0123456789abcdefghijklmnopqrstuvwxyz"
)

var timeNow = func() time.Time {
	return time.Now()
}

// newRecordID returns "<prefix>_<unix ms>_<9 random base36 chars>"
func newRecordID(prefix string, now time.Time) (string, error) {
	suffix := make([]byte, idSuffixLen)
	max := big.NewInt(int64(len(base36)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate record id: %w", err)
		}
		suffix[i] = base36[n.Int64()]
	}

	return prefix + "_" + strconv.FormatInt(now.UnixMilli(), 10) + "_" + string(suffix), nil
}
