// Command seed loads a small set of development fixtures: two users, each
// with a couple of contacts. It is idempotent; rerunning skips records that
// already exist.
package main

import (
	"errors"
	"log/slog"
	"os"

	"contacts-api/internal/config"
	"contacts-api/internal/database"
	"contacts-api/internal/logging"
	"contacts-api/internal/service"
	"contacts-api/internal/store"
)

type fixture struct {
	name     string
	email    string
	password string
	contacts []contactFixture
}

type contactFixture struct {
	firstName string
	lastName  string
	email     string
	phone     string
}

var fixtures = []fixture{
	{
		name:     "Alice Example",
		email:    "alice@example.com",
		password: "password123",
		contacts: []contactFixture{
			{"Carol", "Jones", "carol@example.com", "555-0100"},
			{"Dan", "Smith", "dan@example.com", "555-0101"},
		},
	},
	{
		name:     "Bob Example",
		email:    "bob@example.com",
		password: "password123",
		contacts: []contactFixture{
			{"Erin", "Brown", "erin@example.com", "555-0102"},
			{"Frank", "Davis", "frank@example.com", ""},
		},
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.LogLevel)

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	userStore := store.NewUserStore(db)
	contactStore := store.NewContactStore(db)
	users := service.NewUserService(userStore)
	contacts := service.NewContactService(contactStore)

	for _, f := range fixtures {
		user, err := userStore.GetByEmail(f.email)
		if err != nil {
			logger.Error("lookup user", "email", f.email, "error", err)
			os.Exit(1)
		}
		if user == nil {
			user, err = users.Create(f.name, f.email, f.password)
			if err != nil {
				logger.Error("create user", "email", f.email, "error", err)
				os.Exit(1)
			}
			logger.Info("created user", "email", f.email, "id", user.ID)
		} else {
			logger.Info("user exists", "email", f.email, "id", user.ID)
		}

		for _, c := range f.contacts {
			_, err := contacts.Create(user.ID, c.firstName, c.lastName, c.email, c.phone)
			switch {
			case errors.Is(err, service.ErrContactEmailTaken):
				logger.Info("contact exists", "owner", f.email, "email", c.email)
			case err != nil:
				logger.Error("create contact", "owner", f.email, "email", c.email, "error", err)
				os.Exit(1)
			default:
				logger.Info("created contact", "owner", f.email, "email", c.email)
			}
		}
	}
}
