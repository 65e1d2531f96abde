package storage

import (
	"context"
	"fmt"

	"github.com/ArowuTest/skillprize-backend/internal/config"
	"github.com/ArowuTest/skillprize-backend/internal/repositories"
	"github.com/ArowuTest/skillprize-backend/internal/repositories/memory"
	mongorepo "github.com/ArowuTest/skillprize-backend/internal/repositories/mongodb"
	"github.com/ArowuTest/skillprize-backend/pkg/mongodb"
	"golang.org/x/exp/slog"
)

// Repositories bundles the repositories for the configured storage driver
type Repositories struct {
	Users     repositories.UserRepository
	Contests  repositories.ContestRepository
	Questions repositories.QuestionRepository
	Entries   repositories.EntryRepository
	Payments  repositories.PaymentRepository

	client *mongodb.Client
}

// Open builds the repositories selected by cfg.Storage.Driver.
// For MongoDB it connects, pings and ensures the indexes exist.
func Open(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		slog.Warn("Using in-memory storage, data is lost on restart")
		return NewMemory(), nil
	case config.DriverMongoDB:
		client, err := mongodb.NewClient(ctx, cfg.MongoDB.URI, cfg.MongoDB.Database)
		if err != nil {
			return nil, err
		}
		db := client.Database()
		if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		slog.Info("Connected to MongoDB", "database", cfg.MongoDB.Database)
		return &Repositories{
			Users:     mongorepo.NewUserRepository(db),
			Contests:  mongorepo.NewContestRepository(db),
			Questions: mongorepo.NewQuestionRepository(db),
			Entries:   mongorepo.NewEntryRepository(db),
			Payments:  mongorepo.NewPaymentRepository(db),
			client:    client,
		}, nil
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.Storage.Driver)
	}
}

// NewMemory returns empty in-process repositories
func NewMemory() *Repositories {
	return &Repositories{
		Users:     memory.NewUserRepository(),
		Contests:  memory.NewContestRepository(),
		Questions: memory.NewQuestionRepository(),
		Entries:   memory.NewEntryRepository(),
		Payments:  memory.NewPaymentRepository(),
	}
}

// Close releases the database connection, if any
func (r *Repositories) Close(ctx context.Context) error {
	if r.client == nil {
		return nil
	}
	return r.client.Disconnect(ctx)
}
