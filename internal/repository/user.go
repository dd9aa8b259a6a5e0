package repository

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/lawdesk/advocate-diary/internal/database"
	"github.com/lawdesk/advocate-diary/pkg/logger"
)

// UserRepository manages diary logins. There is no lockout or
// throttling; a failed login just reports invalid credentials without
// saying which half was wrong.
type UserRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepository(db *gorm.DB, log *logger.Logger) *UserRepository {
	return &UserRepository{db: db, log: log}
}

// Register creates a user with a bcrypt password hash. The salt column
// is populated for schema compatibility; bcrypt embeds its own salt.
func (r *UserRepository) Register(username, email, password string) error {
	if username == "" {
		return fmt.Errorf("%w: username", ErrValidation)
	}
	if password == "" {
		return fmt.Errorf("%w: password", ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	saltBytes := make([]byte, 16)
	if _, err := rand.Read(saltBytes); err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&database.User{}).
			Where("username = ?", username).
			Count(&count).Error
		if err != nil {
			return storageErr("user existence check", err)
		}
		if count > 0 {
			return ErrDuplicateUser
		}

		user := &database.User{
			Username:     username,
			Email:        email,
			PasswordHash: string(hash),
			Salt:         hex.EncodeToString(saltBytes),
		}
		if err := tx.Create(user).Error; err != nil {
			return storageErr("create user", err)
		}

		r.log.Info("user registered", "username", username)
		return nil
	})
}

// Login verifies the password and stamps last_login on success. A
// missing user and a wrong password both return ErrInvalidCredentials.
func (r *UserRepository) Login(username, password string) (*database.User, error) {
	var user database.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, storageErr("fetch user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	err := r.db.Model(&database.User{}).Where("username = ?", username).
		Update("last_login", now).Error
	if err != nil {
		return nil, storageErr("update last login", err)
	}
	user.LastLogin = &now

	r.log.Info("user logged in", "username", username)
	return &user, nil
}

// GetByUsername fetches a user by name.
func (r *UserRepository) GetByUsername(username string) (*database.User, error) {
	var user database.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storageErr("fetch user", err)
	}
	return &user, nil
}
