package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"oesters_backend/internal/models"
)

// AuthRepository defines the database operations for admin accounts.
type AuthRepository interface {
	GetUserByEmail(email string) (*models.AdminUser, error)
	GetUserByID(id int64) (*models.AdminUser, error)
	CreateUser(user *models.AdminUser) (int64, error)
}

type authRepository struct {
	db *sql.DB
}

// NewAuthRepository creates a new instance of AuthRepository.
func NewAuthRepository(db *sql.DB) AuthRepository {
	return &authRepository{db: db}
}

func (r *authRepository) GetUserByEmail(email string) (*models.AdminUser, error) {
	var u models.AdminUser
	err := r.db.QueryRow(
		`SELECT id, email, password_hash, role, created_at FROM admin_users WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting user by email: %v", ErrDatabaseError, err)
	}
	return &u, nil
}

func (r *authRepository) GetUserByID(id int64) (*models.AdminUser, error) {
	var u models.AdminUser
	err := r.db.QueryRow(
		`SELECT id, email, password_hash, role, created_at FROM admin_users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting user by ID %d: %v", ErrDatabaseError, id, err)
	}
	return &u, nil
}

func (r *authRepository) CreateUser(user *models.AdminUser) (int64, error) {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	err := r.db.QueryRow(
		`INSERT INTO admin_users (email, password_hash, role, created_at)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		user.Email, user.PasswordHash, user.Role, user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return 0, fmt.Errorf("%w: email %s", ErrDuplicateKey, user.Email)
		}
		return 0, fmt.Errorf("%w: creating user: %v", ErrDatabaseError, err)
	}
	return user.ID, nil
}
