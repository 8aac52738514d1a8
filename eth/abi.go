package eth

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Contract ABIs of the deployment, limited to the operations this node
// calls.

// verifier contract: checks a Groth16 proof and reports the recovered
// signer address and the proof validity
const verifierABIJSON = `[{
	"name": "verifyProof",
	"type": "function",
	"stateMutability": "nonpayable",
	"inputs": [
		{"name": "a", "type": "uint256[2]"},
		{"name": "b", "type": "uint256[2][2]"},
		{"name": "c", "type": "uint256[2]"},
		{"name": "input", "type": "uint256[1]"}
	],
	"outputs": [
		{"name": "signer", "type": "address"},
		{"name": "valid", "type": "bool"}
	]
}]`

// club registry contract: descriptive club records keyed by name
const clubRegistryABIJSON = `[{
	"name": "getClub",
	"type": "function",
	"stateMutability": "view",
	"inputs": [
		{"name": "name", "type": "string"}
	],
	"outputs": [
		{"name": "admin", "type": "address"},
		{"name": "name", "type": "string"},
		{"name": "description", "type": "string"},
		{"name": "active", "type": "bool"}
	]
}]`

// membership registry contract: the four membership categories of a member
// in a club, read in one combined call
const membershipABIJSON = `[{
	"name": "membershipStatus",
	"type": "function",
	"stateMutability": "view",
	"inputs": [
		{"name": "member", "type": "address"},
		{"name": "club", "type": "string"}
	],
	"outputs": [
		{"name": "permanent", "type": "bool"},
		{"name": "temporary", "type": "bool"},
		{"name": "tokenBased", "type": "bool"},
		{"name": "crossChain", "type": "bool"}
	]
}]`

var (
	verifierABI     = mustParseABI(verifierABIJSON)
	clubRegistryABI = mustParseABI(clubRegistryABIJSON)
	membershipABI   = mustParseABI(membershipABIJSON)
)

func mustParseABI(def string) abi.ABI {
	a, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic(err)
	}
	return a
}
