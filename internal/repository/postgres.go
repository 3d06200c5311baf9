package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"plantdefender/internal/models"
)

const uniqueViolation = "23505"

// Querier is the subset of *pgxpool.Pool the repositories use.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresUserRepository struct {
	db Querier
}

func NewPostgresUserRepository(db Querier) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, user models.User) error {
	const query = `
		INSERT INTO users (id, email, name, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.PasswordHash,
		user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	const query = `
		SELECT id, email, name, password_hash, created_at
		FROM users WHERE email = $1
		ORDER BY created_at ASC
		LIMIT 1
	`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (models.User, error) {
	const query = `
		SELECT id, email, name, password_hash, created_at
		FROM users WHERE id = $1
	`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&user.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("scan user: %w", err)
	}
	return user, nil
}

type PostgresScanRepository struct {
	db Querier
}

func NewPostgresScanRepository(db Querier) *PostgresScanRepository {
	return &PostgresScanRepository{db: db}
}

func (r *PostgresScanRepository) Create(ctx context.Context, scan models.Scan) error {
	const query = `
		INSERT INTO scans (
			id, user_id, image_base64, disease_detected, confidence, severity,
			treatment, recommendations, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
	`

	recommendations := scan.Recommendations
	if recommendations == nil {
		recommendations = []string{}
	}

	_, err := r.db.Exec(ctx, query,
		scan.ID,
		scan.UserID,
		scan.ImageBase64,
		scan.DiseaseDetected,
		scan.Confidence,
		scan.Severity,
		scan.Treatment,
		recommendations,
		scan.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert scan: %w", err)
	}
	return nil
}

func (r *PostgresScanRepository) FindByOwner(ctx context.Context, userID string, scanID string) (models.Scan, error) {
	const query = `
		SELECT id, user_id, image_base64, disease_detected, confidence, severity,
		       treatment, recommendations, created_at
		FROM scans
		WHERE id = $1 AND user_id = $2
	`

	scan, err := scanScan(r.db.QueryRow(ctx, query, scanID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Scan{}, ErrScanNotFound
		}
		return models.Scan{}, fmt.Errorf("find scan: %w", err)
	}
	return scan, nil
}

func (r *PostgresScanRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.Scan, error) {
	const query = `
		SELECT id, user_id, image_base64, disease_detected, confidence, severity,
		       treatment, recommendations, created_at
		FROM scans
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, userID, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list scans: %w", err)
	}
	defer rows.Close()

	scans := make([]models.Scan, 0)
	for rows.Next() {
		scan, err := scanScan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		scans = append(scans, scan)
	}
	return scans, rows.Err()
}

func scanScan(row pgx.Row) (models.Scan, error) {
	var scan models.Scan
	if err := row.Scan(
		&scan.ID,
		&scan.UserID,
		&scan.ImageBase64,
		&scan.DiseaseDetected,
		&scan.Confidence,
		&scan.Severity,
		&scan.Treatment,
		&scan.Recommendations,
		&scan.CreatedAt,
	); err != nil {
		return models.Scan{}, err
	}
	if scan.Recommendations == nil {
		scan.Recommendations = []string{}
	}
	return scan, nil
}
