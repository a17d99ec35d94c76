package repository

import (
	"errors"

	"user-posts-api/internal/auth"
	"user-posts-api/internal/models"

	"gorm.io/gorm"
)

// UserRepository handles user rows and credential checks.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository constructs a UserRepository on top of the given DB handle.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser hashes the password and inserts a new user. Returns
// ErrDuplicateEmail when the email is already registered.
func (r *UserRepository) CreateUser(email, password string) (*models.User, error) {
	var existing models.User
	err := r.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateEmail
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &PersistenceError{Op: "lookup user by email", Err: err}
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:        email,
		PasswordHash: hash,
	}
	if err := r.db.Create(&user).Error; err != nil {
		return nil, &PersistenceError{Op: "create user", Err: err}
	}
	return &user, nil
}

// Authenticate returns the user when email and password match, or (nil, nil)
// on no match. Unknown email and wrong password are deliberately
// indistinguishable so callers cannot enumerate accounts.
func (r *UserRepository) Authenticate(email, password string) (*models.User, error) {
	user, err := r.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, nil
	}
	return user, nil
}

// GetByEmail returns the user for an email, or (nil, nil) when absent.
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, &PersistenceError{Op: "lookup user by email", Err: err}
	}
	return &user, nil
}
