package repository

import (
	"context"
	"errors"

	"plantdefender/internal/models"
)

// MaxScanPage bounds history listings.
const MaxScanPage = 100

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrScanNotFound   = errors.New("scan not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

type UserRepository interface {
	Create(ctx context.Context, user models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
}

// ScanRepository stores scans. Reads are always scoped to the owning user.
type ScanRepository interface {
	Create(ctx context.Context, scan models.Scan) error
	FindByOwner(ctx context.Context, userID string, scanID string) (models.Scan, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]models.Scan, error)
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > MaxScanPage {
		return MaxScanPage
	}
	return limit
}
