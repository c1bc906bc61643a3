package service

import (
	"fmt"

	"contacts-api/internal/model"
	"contacts-api/internal/store"
)

// ContactService is CRUD over contacts, always scoped by the owning user id
// taken from the verified claim. Contact emails are unique per owner only.
type ContactService struct {
	contacts *store.ContactStore
}

func NewContactService(contacts *store.ContactStore) *ContactService {
	return &ContactService{contacts: contacts}
}

func (s *ContactService) Create(userID, firstName, lastName, email, phone string) (*model.Contact, error) {
	taken, err := s.contacts.EmailTaken(userID, email, "")
	if err != nil {
		return nil, fmt.Errorf("check contact email: %w", err)
	}
	if taken {
		return nil, ErrContactEmailTaken
	}

	contact, err := s.contacts.Create(userID, firstName, lastName, email, phone)
	if err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	return contact, nil
}

func (s *ContactService) List(userID string) ([]model.Contact, error) {
	contacts, err := s.contacts.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	if contacts == nil {
		contacts = []model.Contact{}
	}
	return contacts, nil
}

func (s *ContactService) Get(id, userID string) (*model.Contact, error) {
	contact, err := s.contacts.GetByID(id, userID)
	if err != nil {
		return nil, fmt.Errorf("get contact: %w", err)
	}
	if contact == nil {
		return nil, ErrContactNotFound
	}
	return contact, nil
}

// Update applies a partial update: empty fields keep their current value.
func (s *ContactService) Update(id, userID, firstName, lastName, email, phone string) (*model.Contact, error) {
	existing, err := s.Get(id, userID)
	if err != nil {
		return nil, err
	}

	if firstName == "" {
		firstName = existing.FirstName
	}
	if lastName == "" {
		lastName = existing.LastName
	}
	if email == "" {
		email = existing.Email
	}
	if phone == "" {
		phone = existing.Phone
	}

	if email != existing.Email {
		taken, err := s.contacts.EmailTaken(userID, email, id)
		if err != nil {
			return nil, fmt.Errorf("check contact email: %w", err)
		}
		if taken {
			return nil, ErrContactEmailTaken
		}
	}

	contact, err := s.contacts.Update(id, userID, firstName, lastName, email, phone)
	if err != nil {
		return nil, fmt.Errorf("update contact: %w", err)
	}
	return contact, nil
}

// Delete removes the contact and returns the deleted record.
func (s *ContactService) Delete(id, userID string) (*model.Contact, error) {
	existing, err := s.Get(id, userID)
	if err != nil {
		return nil, err
	}
	if err := s.contacts.Delete(id, userID); err != nil {
		return nil, fmt.Errorf("delete contact: %w", err)
	}
	return existing, nil
}
