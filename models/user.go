package models

import (
	"errors"

	goval "github.com/go-passwd/validator"
	"github.com/leebenson/conform"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleUser      = "user"
	RoleCollector = "collector"
	RoleAdmin     = "admin"
)

// User represents a user of the application
type User struct {
	Model
	Fullname       string `json:"fullname" binding:"required,min=2" conform:"trim"`
	Email          string `json:"email" gorm:"unique;not null" binding:"required,email" conform:"trim,lower"`
	Password       string `json:"password,omitempty" gorm:"-"`
	HashedPassword string `json:"-"`
	IsSocial       bool   `json:"-"`
	Role           string `json:"role" gorm:"default:user"`
}

// Blacklist holds access tokens revoked by logout.
type Blacklist struct {
	Model
	Token string `json:"token" gorm:"type:text"`
}

type SignupRequest struct {
	Fullname string `json:"fullname" binding:"required,min=2" conform:"trim"`
	Email    string `json:"email" binding:"required,email" conform:"trim,lower"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID       uint   `json:"id"`
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type LoginResponse struct {
	UserResponse
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// GoogleAuthResponse mirrors the userinfo payload returned by Google.
type GoogleAuthResponse struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func ValidatePassword(password string) error {
	passwordValidator := goval.New(
		goval.MinLength(6, errors.New("password cant be less than 6 characters")),
		goval.MaxLength(72, errors.New("password cant be more than 72 characters")))
	return passwordValidator.Validate(password)
}

// ConformInput trims and normalizes struct fields tagged with conform.
func ConformInput(data interface{}) error {
	return conform.Strings(data)
}

// VerifyPassword compares the given password with the user's stored hash.
func (u *User) VerifyPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password))
}

func (u *User) Response() UserResponse {
	return UserResponse{
		ID:       u.ID,
		Fullname: u.Fullname,
		Email:    u.Email,
		Role:     u.Role,
	}
}
