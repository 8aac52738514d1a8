package types

import (
	"encoding/json"
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"
)

func assertProofValues(c *qt.C, p *Proof) {
	c.Assert(p.A[0].String(), qt.Equals, "1")
	c.Assert(p.A[1].String(), qt.Equals, "2")
	c.Assert(p.B[0][0].String(), qt.Equals, "3")
	c.Assert(p.B[0][1].String(), qt.Equals, "4")
	c.Assert(p.B[1][0].String(), qt.Equals, "5")
	c.Assert(p.B[1][1].String(), qt.Equals, "6")
	c.Assert(p.C[0].String(), qt.Equals, "7")
	c.Assert(p.C[1].String(), qt.Equals, "8")
	c.Assert(p.Input[0].String(), qt.Equals, "9")
}

func TestParseProofCodeValues(t *testing.T) {
	c := qt.New(t)

	p, err := ParseProofCode("1,2,3,4,5,6,7,8,9")
	c.Assert(err, qt.IsNil)
	assertProofValues(c, p)
	c.Assert(p.PublicInput(), qt.Equals, "9")

	// interior whitespace and zero-width characters are tolerated
	p, err = ParseProofCode(" 1 ,\t2 , 3,4,5,6,7,8, \u200b9\ufeff ")
	c.Assert(err, qt.IsNil)
	assertProofValues(c, p)

	// values larger than 64 bits
	p, err = ParseProofCode("1,2,3,4,5,6,7,8," +
		"21888242871839275222246405745257275088548364400416034343698204186575808495617")
	c.Assert(err, qt.IsNil)
	c.Assert(p.PublicInput(), qt.Equals,
		"21888242871839275222246405745257275088548364400416034343698204186575808495617")
}

func TestParseProofCodeValuesErrors(t *testing.T) {
	c := qt.New(t)

	// 8 values
	_, err := ParseProofCode("1,2,3,4,5,6,7,8")
	c.Assert(errors.Is(err, ErrInvalidZKPCode), qt.IsTrue)

	// 10 values
	_, err = ParseProofCode("1,2,3,4,5,6,7,8,9,10")
	c.Assert(errors.Is(err, ErrInvalidZKPCode), qt.IsTrue)

	// non-numeric value
	_, err = ParseProofCode("1,2,3,4,x,6,7,8,9")
	c.Assert(errors.Is(err, ErrInvalidZKPCode), qt.IsTrue)

	// negative value
	_, err = ParseProofCode("1,2,3,4,-5,6,7,8,9")
	c.Assert(errors.Is(err, ErrInvalidZKPCode), qt.IsTrue)

	// empty
	_, err = ParseProofCode("")
	c.Assert(errors.Is(err, ErrInvalidZKPCode), qt.IsTrue)
}

func TestParseProofCodeJSON(t *testing.T) {
	c := qt.New(t)

	p, err := ParseProofCode(`{"a":[1,2],"b":[[3,4],[5,6]],"c":[7,8],"input":[9]}`)
	c.Assert(err, qt.IsNil)
	assertProofValues(c, p)

	// decimal strings are accepted too
	p, err = ParseProofCode(`{"a":["1","2"],"b":[["3","4"],["5","6"]],"c":["7","8"],"input":["9"]}`)
	c.Assert(err, qt.IsNil)
	assertProofValues(c, p)
}

func TestParseProofCodeJSONErrors(t *testing.T) {
	c := qt.New(t)

	// missing input field
	_, err := ParseProofCode(`{"a":[1,2],"b":[[3,4],[5,6]],"c":[7,8]}`)
	c.Assert(errors.Is(err, ErrInvalidZKPFormat), qt.IsTrue)

	// null field
	_, err = ParseProofCode(`{"a":null,"b":[[3,4],[5,6]],"c":[7,8],"input":[9]}`)
	c.Assert(errors.Is(err, ErrInvalidZKPFormat), qt.IsTrue)

	// incomplete b matrix leaves values unset
	_, err = ParseProofCode(`{"a":[1,2],"b":[[3,4]],"c":[7,8],"input":[9]}`)
	c.Assert(errors.Is(err, ErrInvalidZKPFormat), qt.IsTrue)

	// malformed JSON
	_, err = ParseProofCode(`{"a":[1,2,`)
	c.Assert(errors.Is(err, ErrInvalidJSON), qt.IsTrue)
}

func TestParseProofSource(t *testing.T) {
	c := qt.New(t)

	// JSON string carrying the comma encoding
	p, err := ParseProofSource(json.RawMessage(`"1,2,3,4,5,6,7,8,9"`))
	c.Assert(err, qt.IsNil)
	assertProofValues(c, p)

	// structured object
	p, err = ParseProofSource(json.RawMessage(`{"a":[1,2],"b":[[3,4],[5,6]],"c":[7,8],"input":[9]}`))
	c.Assert(err, qt.IsNil)
	assertProofValues(c, p)

	// JSON string carrying the object encoding
	p, err = ParseProofSource(json.RawMessage(`"{\"a\":[1,2],\"b\":[[3,4],[5,6]],\"c\":[7,8],\"input\":[9]}"`))
	c.Assert(err, qt.IsNil)
	assertProofValues(c, p)

	// empty payloads
	_, err = ParseProofSource(nil)
	c.Assert(errors.Is(err, ErrInvalidZKPCode), qt.IsTrue)
	_, err = ParseProofSource(json.RawMessage(`null`))
	c.Assert(errors.Is(err, ErrInvalidZKPCode), qt.IsTrue)
}

func TestProofJSONRoundTrip(t *testing.T) {
	c := qt.New(t)

	p, err := ParseProofCode("1,2,3,4,5,6,7,8,9")
	c.Assert(err, qt.IsNil)

	// proof scalars travel as decimal strings
	b, err := json.Marshal(p)
	c.Assert(err, qt.IsNil)
	c.Assert(string(b), qt.Equals,
		`{"a":["1","2"],"b":[["3","4"],["5","6"]],"c":["7","8"],"input":["9"]}`)

	p2, err := ParseProofCode(string(b))
	c.Assert(err, qt.IsNil)
	assertProofValues(c, p2)
}
