// Package auth implements the login orchestration: proof parsing, on-chain
// proof verification, club membership gating, account reconciliation and
// session token issuance.
package auth

import (
	"fmt"
	"net/http"
)

// Code identifies a login failure class exposed to API callers
type Code string

// The login failure taxonomy. Input errors are 400-class, an invalid proof
// is a 401 authentication failure, a valid identity outside the club is a
// 403, and dependency or unexpected failures are 500-class.
const (
	CodeInvalidPayload  Code = "INVALID_PAYLOAD"
	CodeInvalidZKPCode  Code = "INVALID_ZKP_CODE"
	CodeProofInvalid    Code = "PROOF_INVALID"
	CodeClubCheckFailed Code = "CLUB_CHECK_FAILED"
	CodeNotClubMember   Code = "NOT_CLUB_MEMBER"
	CodeServerError     Code = "SERVER_ERROR"
)

// Error is a login failure carrying its taxonomy code and HTTP status
type Error struct {
	Code    Code
	Status  int
	Message string
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error, if any
func (e *Error) Unwrap() error {
	return e.Err
}

func invalidPayload(msg string) *Error {
	return &Error{Code: CodeInvalidPayload, Status: http.StatusBadRequest, Message: msg}
}

func invalidZKPCode(err error) *Error {
	return &Error{Code: CodeInvalidZKPCode, Status: http.StatusBadRequest,
		Message: err.Error(), Err: err}
}

func proofInvalid() *Error {
	return &Error{Code: CodeProofInvalid, Status: http.StatusUnauthorized,
		Message: "proof verification failed"}
}

func clubCheckFailed(err error) *Error {
	return &Error{Code: CodeClubCheckFailed, Status: http.StatusInternalServerError,
		Message: "club membership check failed", Err: err}
}

func notClubMember(clubName string) *Error {
	return &Error{Code: CodeNotClubMember, Status: http.StatusForbidden,
		Message: fmt.Sprintf("not a member of club %q", clubName)}
}

func serverError(msg string, err error) *Error {
	return &Error{Code: CodeServerError, Status: http.StatusInternalServerError,
		Message: msg, Err: err}
}
