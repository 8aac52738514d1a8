package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// proofNumValues is the number of scalar values of a flattened proof code:
// 2 (a) + 4 (b) + 2 (c) + 1 (public input)
const proofNumValues = 9

var (
	// ErrInvalidZKPCode is returned when the comma-separated proof
	// encoding does not follow the expected grammar
	ErrInvalidZKPCode = errors.New("invalid zkp code")
	// ErrInvalidZKPFormat is returned when a JSON proof object misses any
	// of the a, b, c, input fields
	ErrInvalidZKPFormat = errors.New("invalid zkp format")
	// ErrInvalidJSON is returned when a proof payload starting with '{'
	// is not well-formed JSON
	ErrInvalidJSON = errors.New("invalid json")
)

// Proof represents a Groth16 zkSNARK proof together with its single public
// input, as consumed by the on-chain verifier
type Proof struct {
	A     [2]*BigInt    `json:"a"`
	B     [2][2]*BigInt `json:"b"`
	C     [2]*BigInt    `json:"c"`
	Input [1]*BigInt    `json:"input"`
}

// PublicInput returns the decimal string form of the proof's public input,
// which is the value persisted as the account's rolling proof input
func (p *Proof) PublicInput() string {
	return p.Input[0].String()
}

// ParseProofSource parses the polymorphic zkpCode field of a login request.
// A JSON string carries the textual proof encoding; a JSON object is the
// already-structured proof.
func ParseProofSource(raw json.RawMessage) (*Proof, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil, fmt.Errorf("%w: empty proof payload", ErrInvalidZKPCode)
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
		return ParseProofCode(s)
	}
	return ParseProofCode(string(trimmed))
}

// ParseProofCode parses the textual proof encoding. Text starting with '{'
// is parsed as a JSON proof object, anything else as a comma-separated list
// of exactly 9 decimal values. Parsing is pure and performs no network
// access.
func ParseProofCode(code string) (*Proof, error) {
	code = strings.TrimSpace(code)
	if strings.HasPrefix(code, "{") {
		return parseProofJSON(code)
	}
	return parseProofValues(code)
}

// parseProofJSON parses a JSON proof object, requiring the a, b, c and input
// fields to be present and non-empty
func parseProofJSON(code string) (*Proof, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(code), &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	for _, name := range []string{"a", "b", "c", "input"} {
		v, ok := fields[name]
		if !ok || emptyJSONValue(v) {
			return nil, fmt.Errorf("%w: missing field %q", ErrInvalidZKPFormat, name)
		}
	}
	var p Proof
	if err := json.Unmarshal([]byte(code), &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidZKPFormat, err)
	}
	if err := p.checkValues(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidZKPFormat, err)
	}
	return &p, nil
}

// parseProofValues parses the comma-separated proof encoding, mapping the 9
// values positionally into a, b, c, input
func parseProofValues(code string) (*Proof, error) {
	code = stripInvisible(code)
	tokens := strings.Split(code, ",")
	if len(tokens) != proofNumValues {
		return nil, fmt.Errorf("%w: expected %d comma-separated values, got %d",
			ErrInvalidZKPCode, proofNumValues, len(tokens))
	}
	var values [proofNumValues]*BigInt
	for i := 0; i < len(tokens); i++ {
		v, ok := new(big.Int).SetString(strings.TrimSpace(tokens[i]), 10)
		if !ok {
			return nil, fmt.Errorf("%w: value %d is not a decimal integer",
				ErrInvalidZKPCode, i)
		}
		values[i] = (*BigInt)(v)
	}
	p := &Proof{
		A:     [2]*BigInt{values[0], values[1]},
		B:     [2][2]*BigInt{{values[2], values[3]}, {values[4], values[5]}},
		C:     [2]*BigInt{values[6], values[7]},
		Input: [1]*BigInt{values[8]},
	}
	if err := p.checkValues(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidZKPCode, err)
	}
	return p, nil
}

// checkValues checks that all 9 scalar values are set and non-negative
func (p *Proof) checkValues() error {
	values := []*BigInt{
		p.A[0], p.A[1],
		p.B[0][0], p.B[0][1], p.B[1][0], p.B[1][1],
		p.C[0], p.C[1],
		p.Input[0],
	}
	for i, v := range values {
		if v == nil {
			return fmt.Errorf("value %d is not set", i)
		}
		if v.BigInt().Sign() < 0 {
			return fmt.Errorf("value %d is negative", i)
		}
	}
	return nil
}

// emptyJSONValue reports whether the given raw JSON value is null, false,
// zero or an empty string
func emptyJSONValue(v json.RawMessage) bool {
	switch string(bytes.TrimSpace(v)) {
	case "", "null", "false", "0", `""`:
		return true
	}
	return false
}

// stripInvisible removes the zero-width unicode characters (U+200B..U+200D,
// U+FEFF) that copy-pasted proof codes tend to carry
func stripInvisible(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\u200b', '\u200c', '\u200d', '\ufeff':
			return -1
		}
		return r
	}, s)
}
