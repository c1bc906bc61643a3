package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"contacts-api/internal/model"
)

// ContactStore scopes every read and write by the owning user id, so a
// caller can never reach another user's contacts.
type ContactStore struct {
	db *sql.DB
}

func NewContactStore(db *sql.DB) *ContactStore {
	return &ContactStore{db: db}
}

const contactCols = `id, user_id, first_name, last_name, email, phone, created_at, updated_at`

func scanContact(scanner interface{ Scan(...any) error }) (*model.Contact, error) {
	var c model.Contact
	err := scanner.Scan(&c.ID, &c.UserID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *ContactStore) Create(userID, firstName, lastName, email, phone string) (*model.Contact, error) {
	id := uuid.New().String()
	_, err := s.db.Exec(
		`INSERT INTO contacts (id, user_id, first_name, last_name, email, phone) VALUES (?, ?, ?, ?, ?, ?)`,
		id, userID, firstName, lastName, email, phone,
	)
	if err != nil {
		return nil, fmt.Errorf("insert contact: %w", err)
	}
	return s.GetByID(id, userID)
}

func (s *ContactStore) GetByID(id, userID string) (*model.Contact, error) {
	row := s.db.QueryRow(
		`SELECT `+contactCols+` FROM contacts WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	c, err := scanContact(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return c, nil
}

// ListByUser returns the user's contacts, most recently created first.
func (s *ContactStore) ListByUser(userID string) ([]model.Contact, error) {
	rows, err := s.db.Query(
		`SELECT `+contactCols+` FROM contacts WHERE user_id = ? ORDER BY created_at DESC, rowid DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []model.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, *c)
	}
	return contacts, rows.Err()
}

// EmailTaken reports whether the user already owns a contact with the given
// email. Uniqueness is per owner; two users may each hold the same address.
func (s *ContactStore) EmailTaken(userID, email, excludeID string) (bool, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM contacts WHERE user_id = ? AND email = ? AND id != ?`,
		userID, email, excludeID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check contact email: %w", err)
	}
	return n > 0, nil
}

func (s *ContactStore) Update(id, userID, firstName, lastName, email, phone string) (*model.Contact, error) {
	_, err := s.db.Exec(
		`UPDATE contacts SET first_name = ?, last_name = ?, email = ?, phone = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND user_id = ?`,
		firstName, lastName, email, phone, id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("update contact: %w", err)
	}
	return s.GetByID(id, userID)
}

func (s *ContactStore) Delete(id, userID string) error {
	_, err := s.db.Exec(`DELETE FROM contacts WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	return nil
}
