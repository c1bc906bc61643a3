package store

import "testing"

func setupContactStores(t *testing.T) (*UserStore, *ContactStore) {
	t.Helper()
	db := setupTestDB(t)
	return NewUserStore(db), NewContactStore(db)
}

func TestContactCreate(t *testing.T) {
	us, cs := setupContactStores(t)

	owner, err := us.Create("Alice", "alice@example.com", "h")
	if err != nil {
		t.Fatalf("create owner: %v", err)
	}

	c, err := cs.Create(owner.ID, "John", "Doe", "john.doe@example.com", "555-0000")
	if err != nil {
		t.Fatalf("create contact: %v", err)
	}
	if c.ID == "" {
		t.Error("expected non-empty ID")
	}
	if c.UserID != owner.ID {
		t.Errorf("user_id = %q, want %q", c.UserID, owner.ID)
	}
	if c.Phone != "555-0000" {
		t.Errorf("phone = %q, want %q", c.Phone, "555-0000")
	}
}

func TestContactEmailUniquePerOwner(t *testing.T) {
	us, cs := setupContactStores(t)

	alice, err := us.Create("Alice", "alice@example.com", "h")
	if err != nil {
		t.Fatalf("create alice: %v", err)
	}
	bob, err := us.Create("Bob", "bob@example.com", "h")
	if err != nil {
		t.Fatalf("create bob: %v", err)
	}

	if _, err := cs.Create(alice.ID, "X", "Y", "x@example.com", ""); err != nil {
		t.Fatalf("create alice's contact: %v", err)
	}

	// Same address under a different owner is fine.
	if _, err := cs.Create(bob.ID, "X", "Y", "x@example.com", ""); err != nil {
		t.Errorf("bob should be able to own x@example.com: %v", err)
	}

	// Same address under the same owner violates the unique constraint.
	if _, err := cs.Create(alice.ID, "X2", "Y2", "x@example.com", ""); err == nil {
		t.Error("expected error for duplicate contact email under same owner")
	}
}

func TestContactOwnerScoping(t *testing.T) {
	us, cs := setupContactStores(t)

	alice, _ := us.Create("Alice", "alice@example.com", "h")
	bob, _ := us.Create("Bob", "bob@example.com", "h")

	c, err := cs.Create(alice.ID, "John", "Doe", "john@example.com", "")
	if err != nil {
		t.Fatalf("create contact: %v", err)
	}

	// Bob cannot see Alice's contact.
	got, err := cs.GetByID(c.ID, bob.ID)
	if err != nil {
		t.Fatalf("get as bob: %v", err)
	}
	if got != nil {
		t.Error("expected nil when reading another user's contact")
	}

	// Bob's delete is a no-op on Alice's row.
	if err := cs.Delete(c.ID, bob.ID); err != nil {
		t.Fatalf("delete as bob: %v", err)
	}
	still, err := cs.GetByID(c.ID, alice.ID)
	if err != nil {
		t.Fatalf("get as alice: %v", err)
	}
	if still == nil {
		t.Error("contact should survive a delete scoped to the wrong owner")
	}
}

func TestContactListByUserNewestFirst(t *testing.T) {
	us, cs := setupContactStores(t)

	alice, _ := us.Create("Alice", "alice@example.com", "h")
	bob, _ := us.Create("Bob", "bob@example.com", "h")

	if _, err := cs.Create(alice.ID, "John", "Doe", "john@example.com", ""); err != nil {
		t.Fatalf("create john: %v", err)
	}
	if _, err := cs.Create(alice.ID, "Jane", "Doe", "jane@example.com", ""); err != nil {
		t.Fatalf("create jane: %v", err)
	}
	if _, err := cs.Create(bob.ID, "Charlie", "Brown", "charlie@example.com", ""); err != nil {
		t.Fatalf("create charlie: %v", err)
	}

	contacts, err := cs.ListByUser(alice.ID)
	if err != nil {
		t.Fatalf("list contacts: %v", err)
	}
	if len(contacts) != 2 {
		t.Fatalf("len = %d, want 2", len(contacts))
	}
	if contacts[0].Email != "jane@example.com" {
		t.Errorf("first contact = %q, want most recent (jane)", contacts[0].Email)
	}
}

func TestContactEmailTakenExcludesSelf(t *testing.T) {
	us, cs := setupContactStores(t)

	alice, _ := us.Create("Alice", "alice@example.com", "h")
	c, err := cs.Create(alice.ID, "John", "Doe", "john@example.com", "")
	if err != nil {
		t.Fatalf("create contact: %v", err)
	}

	taken, err := cs.EmailTaken(alice.ID, "john@example.com", "")
	if err != nil {
		t.Fatalf("email taken: %v", err)
	}
	if !taken {
		t.Error("expected john@example.com to be taken for alice")
	}

	taken, err = cs.EmailTaken(alice.ID, "john@example.com", c.ID)
	if err != nil {
		t.Fatalf("email taken excluding self: %v", err)
	}
	if taken {
		t.Error("expected contact's own email to be free when excluding itself")
	}
}

func TestContactUpdate(t *testing.T) {
	us, cs := setupContactStores(t)

	alice, _ := us.Create("Alice", "alice@example.com", "h")
	c, err := cs.Create(alice.ID, "John", "Doe", "john@example.com", "")
	if err != nil {
		t.Fatalf("create contact: %v", err)
	}

	updated, err := cs.Update(c.ID, alice.ID, "Johnny", "Doe", "johnny@example.com", "555-1111")
	if err != nil {
		t.Fatalf("update contact: %v", err)
	}
	if updated.FirstName != "Johnny" {
		t.Errorf("first name = %q, want %q", updated.FirstName, "Johnny")
	}
	if updated.Email != "johnny@example.com" {
		t.Errorf("email = %q, want %q", updated.Email, "johnny@example.com")
	}
	if updated.Phone != "555-1111" {
		t.Errorf("phone = %q, want %q", updated.Phone, "555-1111")
	}
}

func TestContactCascadeOnUserDelete(t *testing.T) {
	us, cs := setupContactStores(t)

	alice, _ := us.Create("Alice", "alice@example.com", "h")
	if _, err := cs.Create(alice.ID, "John", "Doe", "john@example.com", ""); err != nil {
		t.Fatalf("create contact: %v", err)
	}
	if _, err := cs.Create(alice.ID, "Jane", "Doe", "jane@example.com", ""); err != nil {
		t.Fatalf("create contact: %v", err)
	}

	if err := us.Delete(alice.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	contacts, err := cs.ListByUser(alice.ID)
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(contacts) != 0 {
		t.Errorf("len = %d, want 0 (contacts should cascade)", len(contacts))
	}
}
