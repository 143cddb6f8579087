package services

import (
	"errors"
	"log"
	"net/http"

	"github.com/wasteeasy/api/config"
	"github.com/wasteeasy/api/db"
	apiError "github.com/wasteeasy/api/errors"
	"github.com/wasteeasy/api/models"
	"github.com/wasteeasy/api/services/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService interface
type AuthService interface {
	SignupUser(request *models.User) (*models.User, error)
	LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error)
	GoogleLoginUser(authResponse *models.GoogleAuthResponse) (*models.LoginResponse, *apiError.Error)
	LogoutUser(accessToken string) *apiError.Error
	GetUserProfile(userID uint) (*models.UserResponse, error)
}

// authService struct
type authService struct {
	Config   *config.Config
	authRepo db.AuthRepository
}

// NewAuthService instantiate an authService
func NewAuthService(authRepo db.AuthRepository, conf *config.Config) AuthService {
	return &authService{
		Config:   conf,
		authRepo: authRepo,
	}
}

func (a *authService) SignupUser(user *models.User) (*models.User, error) {
	if user == nil {
		log.Println("SignupUser error: user is nil")
		return nil, errors.New("user is nil")
	}

	if err := a.authRepo.IsEmailExist(user.Email); err != nil {
		log.Printf("SignupUser error: %v", err)
		return nil, apiError.GetUniqueContraintError(err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("SignupUser error hashing password: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	user.HashedPassword = string(hashedPassword)
	user.Password = ""

	createdUser, err := a.authRepo.CreateUser(user)
	if err != nil {
		log.Printf("SignupUser error creating user: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	return createdUser, nil
}

// LoginUser logs in a user and returns the login response
func (a *authService) LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error) {
	foundUser, err := a.authRepo.FindUserByEmail(loginRequest.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("invalid email or password", http.StatusUnprocessableEntity)
		}
		log.Printf("Error finding user by email: %v", err)
		return nil, apiError.New("unable to find user", http.StatusInternalServerError)
	}

	if err := foundUser.VerifyPassword(loginRequest.Password); err != nil {
		log.Printf("Invalid password for user %s", foundUser.Email)
		return nil, apiError.ErrInvalidPassword
	}

	return a.loginResponse(foundUser)
}

// GoogleLoginUser signs the Google account in, creating a local user on first
// contact.
func (a *authService) GoogleLoginUser(authResponse *models.GoogleAuthResponse) (*models.LoginResponse, *apiError.Error) {
	foundUser, err := a.authRepo.FindUserByEmail(authResponse.Email)
	switch {
	case err == nil:
	case errors.Is(err, gorm.ErrRecordNotFound):
		newUser := &models.User{
			Fullname: authResponse.Name,
			Email:    authResponse.Email,
			IsSocial: true,
			Role:     models.RoleUser,
		}
		foundUser, err = a.authRepo.CreateUser(newUser)
		if err != nil {
			log.Printf("Error creating google user: %v", err)
			return nil, apiError.ErrInternalServerError
		}
	default:
		log.Printf("Error finding user by email: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	return a.loginResponse(foundUser)
}

func (a *authService) loginResponse(user *models.User) (*models.LoginResponse, *apiError.Error) {
	accessToken, refreshToken, err := jwt.GenerateTokenPair(user.Email, a.Config.JWTSecret, user.Role == models.RoleAdmin, user.ID, user.Role)
	if err != nil {
		log.Printf("Error generating token pair for user %s: %v", user.Email, err)
		return nil, apiError.ErrInternalServerError
	}

	return &models.LoginResponse{
		UserResponse: user.Response(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// LogoutUser revokes the access token by adding it to the blacklist.
func (a *authService) LogoutUser(accessToken string) *apiError.Error {
	blacklist := &models.Blacklist{Token: accessToken}
	if err := a.authRepo.AddToBlackList(blacklist); err != nil {
		log.Printf("Error adding token to blacklist: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}

func (a *authService) GetUserProfile(userID uint) (*models.UserResponse, error) {
	user, err := a.authRepo.FindUserByID(userID)
	if err != nil {
		return nil, err
	}
	resp := user.Response()
	return &resp, nil
}
