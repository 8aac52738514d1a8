// Package test provides generators of test proof payloads shared by the
// package tests
package test

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/clubaccess/zkauth-node/types"
	qt "github.com/frankban/quicktest"
)

// GenProofCode returns a deterministic comma-separated proof code of 9
// values derived from the given seed
func GenProofCode(seed int64) string {
	values := make([]string, 9)
	for i := range values {
		values[i] = strconv.FormatInt(seed+int64(i)+1, 10)
	}
	return strings.Join(values, ",")
}

// GenProofJSON returns the JSON object encoding of the same proof that
// GenProofCode returns for the given seed
func GenProofJSON(seed int64) string {
	v := func(i int64) int64 { return seed + i }
	return fmt.Sprintf(`{"a":[%d,%d],"b":[[%d,%d],[%d,%d]],"c":[%d,%d],"input":[%d]}`,
		v(1), v(2), v(3), v(4), v(5), v(6), v(7), v(8), v(9))
}

// GenProof returns the parsed types.Proof for the given seed
func GenProof(c *qt.C, seed int64) *types.Proof {
	proof, err := types.ParseProofCode(GenProofCode(seed))
	c.Assert(err, qt.IsNil)
	return proof
}
