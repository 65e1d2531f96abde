package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ArowuTest/skillprize-backend/internal/models"
	"github.com/ArowuTest/skillprize-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var _ repositories.EntryRepository = (*EntryRepository)(nil)

type entryKey struct {
	userID    string
	contestID primitive.ObjectID
}

type EntryRepository struct {
	mu      sync.RWMutex
	entries map[primitive.ObjectID]models.Entry
	byPair  map[entryKey]primitive.ObjectID
}

func NewEntryRepository() *EntryRepository {
	return &EntryRepository{
		entries: make(map[primitive.ObjectID]models.Entry),
		byPair:  make(map[entryKey]primitive.ObjectID),
	}
}

func (r *EntryRepository) Create(_ context.Context, entry *models.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := entryKey{userID: entry.UserID, contestID: entry.ContestID}
	if _, exists := r.byPair[key]; exists {
		return repositories.ErrDuplicate
	}
	entry.ID = primitive.NewObjectID()
	entry.CreatedAt = time.Now()
	entry.UpdatedAt = entry.CreatedAt
	r.entries[entry.ID] = *entry
	r.byPair[key] = entry.ID
	return nil
}

func (r *EntryRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &e, nil
}

func (r *EntryRepository) FindByUserAndContest(_ context.Context, userID string, contestID primitive.ObjectID) (*models.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byPair[entryKey{userID: userID, contestID: contestID}]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	e := r.entries[id]
	return &e, nil
}

func (r *EntryRepository) FindByUser(_ context.Context, userID string) ([]*models.Entry, error) {
	return r.filter(func(e *models.Entry) bool { return e.UserID == userID }), nil
}

func (r *EntryRepository) FindByContest(_ context.Context, contestID primitive.ObjectID) ([]*models.Entry, error) {
	return r.filter(func(e *models.Entry) bool { return e.ContestID == contestID }), nil
}

func (r *EntryRepository) FindAll(_ context.Context) ([]*models.Entry, error) {
	return r.filter(func(*models.Entry) bool { return true }), nil
}

func (r *EntryRepository) Settle(_ context.Context, id primitive.ObjectID, settlement models.Settlement) (*models.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok || e.QuizAttempted || e.PaymentStatus != models.PaymentStatusCompleted {
		return nil, repositories.ErrConditionFailed
	}
	selected := settlement.SelectedAnswer
	submittedAt := settlement.SubmittedAt
	e.QuizAttempted = true
	e.QuizPassed = settlement.QuizPassed
	e.Qualified = settlement.QuizPassed
	e.SelectedAnswer = &selected
	e.SubmittedAt = &submittedAt
	e.UpdatedAt = submittedAt
	r.entries[id] = e
	return &e, nil
}

func (r *EntryRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.entries)), nil
}

func (r *EntryRepository) CountQualified(_ context.Context) (int64, error) {
	return int64(len(r.filter(func(e *models.Entry) bool { return e.Qualified }))), nil
}

func (r *EntryRepository) filter(keep func(*models.Entry) bool) []*models.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := []*models.Entry{}
	for _, e := range r.entries {
		e := e
		if keep(&e) {
			entries = append(entries, &e)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].CreatedAt.After(entries[j].CreatedAt) })
	return entries
}
