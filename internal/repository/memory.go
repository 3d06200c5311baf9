package repository

import (
	"context"
	"sort"
	"sync"

	"plantdefender/internal/models"
)

type MemoryUserRepository struct {
	mu          sync.RWMutex
	users       map[string]models.User
	uniqueEmail bool
}

func NewMemoryUserRepository(uniqueEmail bool) *MemoryUserRepository {
	return &MemoryUserRepository{
		users:       make(map[string]models.User),
		uniqueEmail: uniqueEmail,
	}
}

func (r *MemoryUserRepository) Create(_ context.Context, user models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.uniqueEmail {
		for _, existing := range r.users {
			if existing.Email == user.Email {
				return ErrDuplicateEmail
			}
		}
	}
	r.users[user.ID] = user
	return nil
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		found models.User
		ok    bool
	)
	// Oldest account wins when the registration race produced duplicates.
	for _, user := range r.users {
		if user.Email != email {
			continue
		}
		if !ok || user.CreatedAt.Before(found.CreatedAt) {
			found, ok = user, true
		}
	}
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return found, nil
}

func (r *MemoryUserRepository) GetByID(_ context.Context, id string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

type MemoryScanRepository struct {
	mu    sync.RWMutex
	scans []models.Scan
}

func NewMemoryScanRepository() *MemoryScanRepository {
	return &MemoryScanRepository{}
}

func (r *MemoryScanRepository) Create(_ context.Context, scan models.Scan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	scan.Recommendations = append([]string{}, scan.Recommendations...)
	r.scans = append(r.scans, scan)
	return nil
}

func (r *MemoryScanRepository) FindByOwner(_ context.Context, userID string, scanID string) (models.Scan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, scan := range r.scans {
		if scan.ID == scanID && scan.UserID == userID {
			return scan, nil
		}
	}
	return models.Scan{}, ErrScanNotFound
}

func (r *MemoryScanRepository) ListByUser(_ context.Context, userID string, limit int) ([]models.Scan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	scans := make([]models.Scan, 0)
	// Walk newest insert first so equal timestamps keep recency order.
	for i := len(r.scans) - 1; i >= 0; i-- {
		if r.scans[i].UserID == userID {
			scans = append(scans, r.scans[i])
		}
	}

	sort.SliceStable(scans, func(i, j int) bool {
		return scans[i].CreatedAt.After(scans[j].CreatedAt)
	})

	if n := clampLimit(limit); len(scans) > n {
		scans = scans[:n]
	}
	return scans, nil
}
