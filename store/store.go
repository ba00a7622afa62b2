// Package store persists speaker accounts, groups, and profiles in SQLite.
// File: store/store.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"

	"go-cfp/models"
	"go-cfp/store/migrations"
)

// SpeakersGroup is the group every new signup is assigned to.
const SpeakersGroup = "Speakers"

var (
	// ErrAccountExists reports that an account with the same email already
	// exists. Email uniqueness is enforced here, by the UNIQUE constraint,
	// never by callers doing their own lookups first.
	ErrAccountExists = errors.New("store: account already exists")

	// ErrNotFound reports a missing account, profile, or group.
	ErrNotFound = errors.New("store: not found")
)

// Store wraps the SQLite database handle.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the SQLite database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// modernc.org/sqlite serializes writes; a single connection avoids
	// SQLITE_BUSY under concurrent requests.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// ApplyMigrations applies any pending schema migrations using the embedded
// migration files compiled into the binary.
func (s *Store) ApplyMigrations() error {
	driver, err := migratesqlite.WithInstance(s.db, &migratesqlite.Config{})
	if err != nil {
		return err
	}

	src, err := iofs.New(migrations.Migrations, ".")
	if err != nil {
		return err
	}

	instance, err := migrate.NewWithInstance("iofs", src, "", driver)
	if err != nil {
		return err
	}

	if err := instance.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// ------------------- accounts -------------------

// CreateAccount inserts a new account and returns its ID. Returns
// ErrAccountExists when the email is already taken.
func (s *Store) CreateAccount(ctx context.Context, acct models.Account) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (email, password_hash, first_name, last_name, company, twitter, activated, is_admin)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		acct.Email, acct.PasswordHash, acct.FirstName, acct.LastName,
		acct.Company, acct.Twitter, acct.Activated, acct.IsAdmin,
	)
	if err != nil {
		if isUniqueViolation(err, "accounts.email") {
			return 0, ErrAccountExists
		}
		return 0, err
	}
	return res.LastInsertId()
}

// GetAccountByEmail fetches an account by its email address.
func (s *Store) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, first_name, last_name, company, twitter, activated, is_admin, created_at
		FROM accounts WHERE email = ?`, email)
	return scanAccount(row)
}

// ------------------- groups -------------------

// AssignGroup adds the account to the named group.
func (s *Store) AssignGroup(ctx context.Context, accountID int64, groupName string) error {
	var groupID int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM groups WHERE name = ?`, groupName).Scan(&groupID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: group %q", ErrNotFound, groupName)
	}
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO account_groups (account_id, group_id) VALUES (?, ?)
		ON CONFLICT (account_id, group_id) DO NOTHING`, accountID, groupID)
	return err
}

// AccountGroups returns the names of all groups the account belongs to.
func (s *Store) AccountGroups(ctx context.Context, accountID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT g.name FROM groups g
		JOIN account_groups ag ON ag.group_id = g.id
		WHERE ag.account_id = ? ORDER BY g.name`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// ------------------- speaker profiles -------------------

// SaveProfile inserts or updates the profile attached to an account.
func (s *Store) SaveProfile(ctx context.Context, p models.SpeakerProfile) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO speaker_profiles (account_id, bio, info, airport, photo_path)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (account_id) DO UPDATE SET
			bio = excluded.bio,
			info = excluded.info,
			airport = excluded.airport,
			photo_path = excluded.photo_path`,
		p.AccountID, p.Bio, p.Info, p.Airport, p.PhotoPath)
	return err
}

// GetProfile fetches the profile attached to an account.
func (s *Store) GetProfile(ctx context.Context, accountID int64) (*models.SpeakerProfile, error) {
	var p models.SpeakerProfile
	err := s.db.QueryRowContext(ctx, `
		SELECT account_id, bio, info, airport, photo_path
		FROM speaker_profiles WHERE account_id = ?`, accountID).
		Scan(&p.AccountID, &p.Bio, &p.Info, &p.Airport, &p.PhotoPath)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ------------------- admin queries -------------------

// ListSpeakers returns one page of speakers ordered by last name, plus the
// total number of speaker accounts.
func (s *Store) ListSpeakers(ctx context.Context, page, perPage int) ([]models.Speaker, int, error) {
	if page < 1 {
		page = 1
	}

	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM accounts WHERE is_admin = 0`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT a.id, a.email, a.password_hash, a.first_name, a.last_name, a.company, a.twitter,
		       a.activated, a.is_admin, a.created_at,
		       COALESCE(p.bio, ''), COALESCE(p.info, ''), COALESCE(p.airport, ''), COALESCE(p.photo_path, '')
		FROM accounts a
		LEFT JOIN speaker_profiles p ON p.account_id = a.id
		WHERE a.is_admin = 0
		ORDER BY a.last_name ASC, a.first_name ASC
		LIMIT ? OFFSET ?`, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var speakers []models.Speaker
	for rows.Next() {
		sp, err := scanSpeaker(rows)
		if err != nil {
			return nil, 0, err
		}
		speakers = append(speakers, sp)
	}
	return speakers, total, rows.Err()
}

// GetSpeaker fetches a single speaker (account + profile) by account ID.
func (s *Store) GetSpeaker(ctx context.Context, id int64) (*models.Speaker, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT a.id, a.email, a.password_hash, a.first_name, a.last_name, a.company, a.twitter,
		       a.activated, a.is_admin, a.created_at,
		       COALESCE(p.bio, ''), COALESCE(p.info, ''), COALESCE(p.airport, ''), COALESCE(p.photo_path, '')
		FROM accounts a
		LEFT JOIN speaker_profiles p ON p.account_id = a.id
		WHERE a.id = ?`, id)

	sp, err := scanSpeaker(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sp, nil
}

// DeleteSpeaker removes the account; group memberships and the profile go
// with it via ON DELETE CASCADE.
func (s *Store) DeleteSpeaker(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ------------------- helpers -------------------

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*models.Account, error) {
	var a models.Account
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.FirstName, &a.LastName,
		&a.Company, &a.Twitter, &a.Activated, &a.IsAdmin, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func scanSpeaker(row rowScanner) (models.Speaker, error) {
	var sp models.Speaker
	err := row.Scan(&sp.Account.ID, &sp.Account.Email, &sp.Account.PasswordHash,
		&sp.Account.FirstName, &sp.Account.LastName, &sp.Account.Company,
		&sp.Account.Twitter, &sp.Account.Activated, &sp.Account.IsAdmin,
		&sp.Account.CreatedAt,
		&sp.Profile.Bio, &sp.Profile.Info, &sp.Profile.Airport, &sp.Profile.PhotoPath)
	sp.Profile.AccountID = sp.Account.ID
	return sp, err
}

// isUniqueViolation reports whether err is a SQLite unique-constraint
// failure on the given column.
func isUniqueViolation(err error, column string) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: "+column)
}
