package service

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"contacts-api/internal/database"
	"contacts-api/internal/store"
)

func setupUserService(t *testing.T) (*UserService, *ContactService) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewUserService(store.NewUserStore(db)), NewContactService(store.NewContactStore(db))
}

func TestUserServiceCreate(t *testing.T) {
	svc, _ := setupUserService(t)

	u, err := svc.Create("Alice", "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.Email != "alice@example.com" {
		t.Errorf("email = %q, want %q", u.Email, "alice@example.com")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("password123")); err != nil {
		t.Error("stored password is not a bcrypt hash of the input")
	}
}

func TestUserServiceCreateConflict(t *testing.T) {
	svc, _ := setupUserService(t)

	if _, err := svc.Create("Alice", "alice@example.com", "password123"); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := svc.Create("Other", "alice@example.com", "password123")
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
}

func TestUserServiceGetNotFound(t *testing.T) {
	svc, _ := setupUserService(t)

	_, err := svc.Get("no-such-id")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

func TestUserServicePartialUpdate(t *testing.T) {
	svc, _ := setupUserService(t)

	u, err := svc.Create("Alice", "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(u.ID, "Alice B", "", "")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Alice B" {
		t.Errorf("name = %q, want %q", updated.Name, "Alice B")
	}
	if updated.Email != "alice@example.com" {
		t.Errorf("email changed unexpectedly to %q", updated.Email)
	}
	if updated.Password != u.Password {
		t.Error("password hash changed without a new password")
	}
}

func TestUserServiceUpdatePasswordRehashed(t *testing.T) {
	svc, _ := setupUserService(t)

	u, err := svc.Create("Alice", "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(u.ID, "", "", "newpassword")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Password == u.Password {
		t.Error("expected a new password hash")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("newpassword")); err != nil {
		t.Error("new hash does not verify against the new password")
	}
}

func TestUserServiceUpdateEmailConflict(t *testing.T) {
	svc, _ := setupUserService(t)

	if _, err := svc.Create("Alice", "alice@example.com", "password123"); err != nil {
		t.Fatalf("create alice: %v", err)
	}
	bob, err := svc.Create("Bob", "bob@example.com", "password123")
	if err != nil {
		t.Fatalf("create bob: %v", err)
	}

	_, err = svc.Update(bob.ID, "", "alice@example.com", "")
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}

	// Re-submitting your own email is not a conflict.
	if _, err := svc.Update(bob.ID, "", "bob@example.com", ""); err != nil {
		t.Errorf("updating to own email: %v", err)
	}
}

func TestUserServiceUpdateNotFound(t *testing.T) {
	svc, _ := setupUserService(t)

	_, err := svc.Update("no-such-id", "Name", "", "")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

func TestUserServiceDeleteReturnsRecordAndCascades(t *testing.T) {
	users, contacts := setupUserService(t)

	u, err := users.Create("Alice", "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := contacts.Create(u.ID, "John", "Doe", "john@example.com", ""); err != nil {
		t.Fatalf("create contact: %v", err)
	}

	deleted, err := users.Delete(u.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted.ID != u.ID {
		t.Errorf("deleted id = %q, want %q", deleted.ID, u.ID)
	}

	if _, err := users.Get(u.ID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("get after delete err = %v, want ErrUserNotFound", err)
	}
	remaining, err := contacts.List(u.ID)
	if err != nil {
		t.Fatalf("list contacts: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("contacts remaining = %d, want 0", len(remaining))
	}
}

func TestUserServiceListNewestFirst(t *testing.T) {
	svc, _ := setupUserService(t)

	if _, err := svc.Create("Alice", "alice@example.com", "password123"); err != nil {
		t.Fatalf("create alice: %v", err)
	}
	if _, err := svc.Create("Bob", "bob@example.com", "password123"); err != nil {
		t.Fatalf("create bob: %v", err)
	}

	users, err := svc.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("len = %d, want 2", len(users))
	}
	if users[0].Email != "bob@example.com" {
		t.Errorf("first = %q, want bob (newest first)", users[0].Email)
	}
}
