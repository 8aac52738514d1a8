package types

import (
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// User roles. The very first account created in the system gets RoleAdmin,
// every later one gets RoleUser.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// VerificationOutcome contains the result of checking a proof against the
// verifier contract. SignerAddress and ProofInput are only set when Valid is
// true; TxHash is only set when the best-effort verification transaction was
// submitted.
type VerificationOutcome struct {
	Valid         bool
	SignerAddress common.Address
	ProofInput    string
	TxHash        string
}

// MembershipDecision contains the club membership status of a candidate
// address. Member is the OR of the four registry membership flags and Owner.
type MembershipDecision struct {
	Member   bool
	Owner    bool
	ClubName string
}

// User represents an account record stored in the database, keyed by its
// wallet address
type User struct {
	ID               uint64
	Address          string
	Role             string
	EmailVerified    bool
	ProofInput       string
	InsertedDatetime time.Time
}

// PublicUser is the sanitized projection of a User returned to API callers.
// The rolling proof input stays server-side.
type PublicUser struct {
	ID            uint64 `json:"id"`
	Address       string `json:"address"`
	Role          string `json:"role"`
	EmailVerified bool   `json:"emailVerified"`
}

// Public returns the sanitized projection of the User
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:            u.ID,
		Address:       u.Address,
		Role:          u.Role,
		EmailVerified: u.EmailVerified,
	}
}

// NormalizeAddress returns the canonical lowercase hex form of an address,
// used as the account store key so that address equality is case-insensitive
func NormalizeAddress(addr common.Address) string {
	return strings.ToLower(addr.Hex())
}
