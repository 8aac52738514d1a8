package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/clubaccess/zkauth-node/db"
	"github.com/clubaccess/zkauth-node/types"
	"github.com/ethereum/go-ethereum/common"
	"go.vocdoni.io/dvote/log"
)

// ChainClient covers the on-chain calls made during one login attempt
type ChainClient interface {
	// VerifyProof runs the verifier contract's proof check as a read-only
	// simulation, plus the best-effort audit transaction when valid
	VerifyProof(ctx context.Context, proof *types.Proof) (*types.VerificationOutcome, error)
	// ClubMembership reads the candidate's membership status for the
	// configured club
	ClubMembership(ctx context.Context, candidate common.Address) (*types.MembershipDecision, error)
}

// ChainProvider returns a fresh ChainClient for one login attempt
type ChainProvider func() (ChainClient, error)

// Options is used to pass the parameters to load a new Service
type Options struct {
	SQLite   *db.SQLite
	Chain    ChainProvider
	Tokens   *TokenService
	ClubName string
}

// Service sequences one login attempt: parse the proof payload, verify the
// proof on-chain, confirm club membership, reconcile the account record and
// issue a session token. Each attempt is an independent sequential flow; the
// only shared state is the account store.
type Service struct {
	sqlite   *db.SQLite
	chain    ChainProvider
	tokens   *TokenService
	clubName string
}

// New loads a new Service
func New(opts Options) (*Service, error) {
	if opts.SQLite == nil || opts.Chain == nil || opts.Tokens == nil {
		return nil, fmt.Errorf("can not create the auth service:" +
			" SQLite, Chain and Tokens are all required")
	}
	if opts.ClubName == "" {
		return nil, fmt.Errorf("can not create the auth service:" +
			" ClubName is required")
	}
	return &Service{
		sqlite:   opts.SQLite,
		chain:    opts.Chain,
		tokens:   opts.Tokens,
		clubName: opts.ClubName,
	}, nil
}

// LoginResult is the successful outcome of a login attempt
type LoginResult struct {
	Token   string
	User    types.PublicUser
	Address string
	// TxHash is only set when the best-effort verification transaction
	// was submitted
	TxHash string
}

// Login runs one login attempt for the given raw zkpCode field. It is
// terminal on first failure and every failure is mapped to the Error
// taxonomy; there are no retries.
func (s *Service) Login(ctx context.Context, zkpCode json.RawMessage) (*LoginResult, *Error) {
	if trimmed := bytes.TrimSpace(zkpCode); len(trimmed) == 0 ||
		string(trimmed) == "null" {
		return nil, invalidPayload("missing zkpCode")
	}

	proof, err := types.ParseProofSource(zkpCode)
	if err != nil {
		return nil, invalidZKPCode(err)
	}

	chain, err := s.chain()
	if err != nil {
		return nil, serverError("can not connect to the chain", err)
	}

	// a transport failure during the verification call surfaces with the
	// same code as a malformed proof, matching the deployed behavior
	outcome, err := chain.VerifyProof(ctx, proof)
	if err != nil {
		return nil, invalidZKPCode(err)
	}
	if !outcome.Valid {
		return nil, proofInvalid()
	}
	address := types.NormalizeAddress(outcome.SignerAddress)
	log.Debugf("proof verified for address %s", address)

	decision, err := chain.ClubMembership(ctx, outcome.SignerAddress)
	if err != nil {
		return nil, clubCheckFailed(err)
	}
	if !decision.Member && !decision.Owner {
		return nil, notClubMember(s.clubName)
	}

	user, authErr := s.reconcileUser(address, outcome.ProofInput)
	if authErr != nil {
		return nil, authErr
	}

	token, err := s.tokens.Issue(user.ID, user.Address, user.Role)
	if err != nil {
		return nil, serverError("can not issue session token", err)
	}

	return &LoginResult{
		Token:   token,
		User:    user.Public(),
		Address: address,
		TxHash:  outcome.TxHash,
	}, nil
}

// reconcileUser creates the account on the first proof for an address and
// overwrites the rolling proof input on every later one. The very first
// account ever created gets the admin role. Ownership of the address has
// been proven on-chain, so the account is created as verified.
func (s *Service) reconcileUser(address, proofInput string) (*types.User, *Error) {
	user, err := s.sqlite.FindUserByAddress(address)
	if err == nil {
		if err := s.sqlite.UpdateUserProofInput(user.ID, proofInput); err != nil {
			return nil, serverError("can not update user", err)
		}
		user.ProofInput = proofInput
		return user, nil
	}
	if !errors.Is(err, db.ErrUserNotFound) {
		return nil, serverError("can not read user", err)
	}

	n, err := s.sqlite.CountUsers()
	if err != nil {
		return nil, serverError("can not count users", err)
	}
	role := types.RoleUser
	if n == 0 {
		role = types.RoleAdmin
	}
	user, err = s.sqlite.StoreUser(address, role, true, proofInput)
	if err != nil {
		// a lost create race surfaces here through the UNIQUE
		// address constraint
		return nil, serverError("can not create user", err)
	}
	log.Debugf("created user %d with role %s for address %s", user.ID,
		user.Role, user.Address)
	return user, nil
}

// UserByAddress returns the sanitized projection of the stored account for
// the given address. Returns db.ErrUserNotFound when no account exists.
func (s *Service) UserByAddress(address string) (*types.PublicUser, error) {
	user, err := s.sqlite.FindUserByAddress(address)
	if err != nil {
		return nil, err
	}
	pub := user.Public()
	return &pub, nil
}

// Tokens returns the Service's TokenService
func (s *Service) Tokens() *TokenService {
	return s.tokens
}

// ClubName returns the name of the club gating access
func (s *Service) ClubName() string {
	return s.clubName
}
