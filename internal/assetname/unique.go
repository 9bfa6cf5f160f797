package assetname

import (
	"fmt"
	"strconv"
)

// maxUniqueAttempts bounds suffix probing. Reaching it means the validity
// callback can never succeed, which is a caller bug, not a property of
// the input.
const maxUniqueAttempts = 10000

// UniqueName returns the first name accepted by valid among base, base2,
// base3, and so on. The suffix-less base is always tried first so an
// already-free name passes through untouched.
//
// It panics after 10000 attempts: with a working validator the numeric
// suffix must eventually miss every existing name, so exhaustion can only
// mean the validator rejects everything.
func UniqueName(base string, valid func(string) bool) string {
	for i := 1; i <= maxUniqueAttempts; i++ {
		name := base
		if i > 1 {
			name = base + strconv.Itoa(i)
		}
		if valid(name) {
			return name
		}
	}
	panic(fmt.Sprintf("assetname: no valid name derived from %q after %d attempts", base, maxUniqueAttempts))
}
