// repository/user_repository.go
package repository

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/baseelze-maker/wasel-backend/models"
)

// UserRepository handles database operations for users
type UserRepository struct {
	DB *sql.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository() *UserRepository {
	return &UserRepository{
		DB: GetDB(),
	}
}

// StoreUser saves a new user. Returns ErrDuplicate if the email is taken.
func (r *UserRepository) StoreUser(user *models.User) error {
	_, err := r.DB.Exec(
		`INSERT INTO users (id, full_name, email, password_hash, role, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.FullName, user.Email, user.PasswordHash, user.Role, user.CreatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == uniqueViolation {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert user: %v", err)
	}
	return nil
}

// GetUserByEmail retrieves a user by email
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	row := r.DB.QueryRow(
		"SELECT id, full_name, email, password_hash, role, created_at FROM users WHERE email = $1",
		email,
	)
	return scanUser(row)
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(id string) (*models.User, error) {
	row := r.DB.QueryRow(
		"SELECT id, full_name, email, password_hash, role, created_at FROM users WHERE id = $1",
		id,
	)
	return scanUser(row)
}

func scanUser(s scanner) (*models.User, error) {
	var user models.User
	err := s.Scan(&user.ID, &user.FullName, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %v", err)
	}
	return &user, nil
}
