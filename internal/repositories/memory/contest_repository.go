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

var _ repositories.ContestRepository = (*ContestRepository)(nil)

type ContestRepository struct {
	mu       sync.RWMutex
	contests map[primitive.ObjectID]models.Contest
}

func NewContestRepository() *ContestRepository {
	return &ContestRepository{contests: make(map[primitive.ObjectID]models.Contest)}
}

func (r *ContestRepository) Create(_ context.Context, contest *models.Contest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if contest.ID.IsZero() {
		contest.ID = primitive.NewObjectID()
	}
	if _, exists := r.contests[contest.ID]; exists {
		return repositories.ErrDuplicate
	}
	contest.CreatedAt = time.Now()
	contest.UpdatedAt = contest.CreatedAt
	r.contests[contest.ID] = *contest
	return nil
}

func (r *ContestRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.Contest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.contests[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &c, nil
}

func (r *ContestRepository) FindAll(_ context.Context) ([]*models.Contest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	contests := make([]*models.Contest, 0, len(r.contests))
	for _, c := range r.contests {
		c := c
		contests = append(contests, &c)
	}
	sort.Slice(contests, func(i, j int) bool { return contests[i].EndDate.Before(contests[j].EndDate) })
	return contests, nil
}

func (r *ContestRepository) Update(_ context.Context, contest *models.Contest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.contests[contest.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	contest.CurrentEntries = existing.CurrentEntries
	contest.CreatedAt = existing.CreatedAt
	contest.CreatedBy = existing.CreatedBy
	contest.UpdatedAt = time.Now()
	r.contests[contest.ID] = *contest
	return nil
}

func (r *ContestRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.contests[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.contests, id)
	return nil
}

func (r *ContestRepository) IncrementEntries(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.contests[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if c.IsFull() {
		return repositories.ErrConditionFailed
	}
	c.CurrentEntries++
	c.UpdatedAt = time.Now()
	r.contests[id] = c
	return nil
}

func (r *ContestRepository) DecrementEntries(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.contests[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if c.CurrentEntries == 0 {
		return repositories.ErrConditionFailed
	}
	c.CurrentEntries--
	c.UpdatedAt = time.Now()
	r.contests[id] = c
	return nil
}

func (r *ContestRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.contests)), nil
}
