package db

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/clubaccess/zkauth-node/types"
)

// ErrUserNotFound is returned when the queried address has no account yet
var ErrUserNotFound = errors.New("user not found in the db")

// StoreUser stores a new user with the given address, role and proof input.
// The address is stored in its lowercase form, so lookups are
// case-insensitive.
func (r *SQLite) StoreUser(address, role string, emailVerified bool,
	proofInput string) (*types.User, error) {
	sqlAddUser := `
	INSERT INTO users(
		address,
		role,
		emailVerified,
		proofInput,
		insertedDatetime
	) values(?, ?, ?, ?, CURRENT_TIMESTAMP)
	`

	stmt, err := r.db.Prepare(sqlAddUser)
	if err != nil {
		return nil, err
	}
	defer stmt.Close() //nolint:errcheck

	address = strings.ToLower(address)
	res, err := stmt.Exec(address, role, emailVerified, proofInput)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.FindUserByID(uint64(id))
}

// FindUserByID reads the stored user with the given id
func (r *SQLite) FindUserByID(id uint64) (*types.User, error) {
	row := r.db.QueryRow(
		"SELECT id, address, role, emailVerified, proofInput,"+
			" insertedDatetime FROM users WHERE id = ?", id)
	return scanUser(row)
}

// FindUserByAddress reads the stored user for the given address. The lookup
// is case-insensitive. Returns ErrUserNotFound when no account exists for
// the address.
func (r *SQLite) FindUserByAddress(address string) (*types.User, error) {
	row := r.db.QueryRow(
		"SELECT id, address, role, emailVerified, proofInput,"+
			" insertedDatetime FROM users WHERE address = ?",
		strings.ToLower(address))
	return scanUser(row)
}

// UpdateUserProofInput overwrites the rolling proof input of the user with
// the given id. Called on every successful login of an existing account.
func (r *SQLite) UpdateUserProofInput(id uint64, proofInput string) error {
	sqlUpdate := `
	UPDATE users
	SET proofInput = ?
	WHERE id = ?
	`

	stmt, err := r.db.Prepare(sqlUpdate)
	if err != nil {
		return err
	}
	defer stmt.Close() //nolint:errcheck

	_, err = stmt.Exec(proofInput, id)
	if err != nil {
		return err
	}
	return nil
}

// CountUsers returns the total number of stored users
func (r *SQLite) CountUsers() (uint64, error) {
	row := r.db.QueryRow("SELECT COUNT(*) FROM users")
	var n uint64
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanUser(row *sql.Row) (*types.User, error) {
	var user types.User
	err := row.Scan(&user.ID, &user.Address, &user.Role, &user.EmailVerified,
		&user.ProofInput, &user.InsertedDatetime)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
