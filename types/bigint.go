package types

import (
	"fmt"
	"math/big"
	"strings"
)

// BigInt is an arbitrary-precision integer that marshals to and from its
// decimal string representation, which is how proof scalars travel on the
// wire. Plain JSON numbers are accepted too.
type BigInt big.Int

// NewBigInt returns a *BigInt containing the given int64 value
func NewBigInt(i int64) *BigInt {
	return (*BigInt)(big.NewInt(i))
}

// BigInt returns the value as a *big.Int
func (b *BigInt) BigInt() *big.Int {
	return (*big.Int)(b)
}

// String returns the decimal string representation of the value
func (b *BigInt) String() string {
	return (*big.Int)(b).String()
}

// MarshalJSON implements the json.Marshaler interface for BigInt
func (b *BigInt) MarshalJSON() ([]byte, error) {
	return []byte(`"` + b.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface for BigInt
func (b *BigInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	s = strings.TrimSpace(s)
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return fmt.Errorf("can not parse %q as a decimal integer", s)
	}
	*b = BigInt(*v)
	return nil
}
