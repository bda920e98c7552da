package activation

import (
	"math/big"
	"strings"
)

// Alphabet is the symbol set for every human-facing code character.
// 0, O, 1, I and L are left out so a code read aloud or copied by hand
// cannot be mistyped into another valid code.
const Alphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

var alphabetBase = big.NewInt(int64(len(Alphabet)))

// EncodeToBase renders digest as n alphabet characters, least significant
// base-31 digit first. The digest is read as one big-endian unsigned integer,
// which is the same number as its hex form. Only the low n digits are kept.
func EncodeToBase(digest []byte, n int) string {
	if n <= 0 {
		return ""
	}
	num := new(big.Int).SetBytes(digest)
	rem := new(big.Int)

	var sb strings.Builder
	sb.Grow(n)
	for i := 0; i < n; i++ {
		num.QuoRem(num, alphabetBase, rem)
		sb.WriteByte(Alphabet[rem.Int64()])
	}
	return sb.String()
}

func inAlphabet(c byte) bool {
	return strings.IndexByte(Alphabet, c) >= 0
}
