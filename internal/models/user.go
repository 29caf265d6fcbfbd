package models

import (
	"errors"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/taskboard-dev/taskboard/db"
	"gorm.io/gorm"
)

type User struct {
	ID              int64   `gorm:"column:id;primaryKey" json:"id"`
	Username        string  `gorm:"column:username" json:"username"`
	Hash            string  `gorm:"column:hash" json:"-"`
	Email           string  `gorm:"column:email" json:"email"`
	InscriptionDate string  `gorm:"column:inscription_date" json:"inscription_date"`
	ProfilePicture  string  `gorm:"column:profile_picture" json:"profile_picture"`
	Bio             *string `gorm:"column:bio" json:"bio"`
	LastLogin       *string `gorm:"column:last_login" json:"last_login"`
}

func (User) TableName() string {
	return "users"
}

// isUniqueViolation reports whether err is the driver's UNIQUE constraint
// failure, which the users table raises on username or email collisions.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error

	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}

	return false
}

// CreateUser inserts a new user with an already-hashed password. Username
// and email collisions surface as ErrDuplicateUnique.
func CreateUser(username, email, hash string) (*User, error) {
	user := User{
		Username:        username,
		Email:           email,
		Hash:            hash,
		InscriptionDate: time.Now().Format(TimestampLayout),
		ProfilePicture:  "default-avatar.png",
	}

	if err := db.DB.Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateUnique
		}

		return nil, err
	}

	return &user, nil
}

// GetUserByID retrieves a user by primary key.
func GetUserByID(userID int64) (*User, error) {
	var user User

	err := db.DB.Where("id = ?", userID).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return &user, nil
}

// GetUserByUsername retrieves a user by username.
func GetUserByUsername(username string) (*User, error) {
	var user User

	err := db.DB.Where("username = ?", username).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return &user, nil
}

// GetUserByEmail retrieves a user by email.
func GetUserByEmail(email string) (*User, error) {
	var user User

	err := db.DB.Where("email = ?", email).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return &user, nil
}

// UpdateUserProfile updates the user's username and email, and the password
// hash when one is supplied.
func UpdateUserProfile(userID int64, username, email string, hash *string) error {
	updates := map[string]interface{}{
		"username": username,
		"email":    email,
	}

	if hash != nil {
		updates["hash"] = *hash
	}

	result := db.DB.Model(&User{}).Where("id = ?", userID).Updates(updates)

	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return ErrDuplicateUnique
		}

		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// UpdateLastLogin stamps the user's last_login to now in canonical form.
func UpdateLastLogin(userID int64) error {
	return db.DB.Model(&User{}).
		Where("id = ?", userID).
		Update("last_login", time.Now().Format(TimestampLayout)).Error
}
