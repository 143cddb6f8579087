package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/wasteeasy/api/errors"
	errs "github.com/wasteeasy/api/errors"
	"github.com/wasteeasy/api/models"
	"github.com/wasteeasy/api/server/response"
)

// decode binds the JSON body and normalizes conform-tagged fields.
func decode(c *gin.Context, v interface{}) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return err
	}
	return models.ConformInput(v)
}

func (s *Server) handleSignup() gin.HandlerFunc {
	return func(c *gin.Context) {
		var signupRequest models.SignupRequest
		if err := decode(c, &signupRequest); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		if err := models.ValidatePassword(signupRequest.Password); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		user := models.User{
			Fullname: signupRequest.Fullname,
			Email:    signupRequest.Email,
			Password: signupRequest.Password,
			Role:     models.RoleUser,
		}

		createdUser, err := s.AuthService.SignupUser(&user)
		if err != nil {
			if apiErr, ok := err.(*errs.Error); ok {
				response.JSON(c, "", apiErr.Status, nil, apiErr)
				return
			}
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}

		response.JSON(c, "Signup successful", http.StatusCreated, createdUser.Response(), nil)
	}
}

func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var loginRequest models.LoginRequest
		if err := decode(c, &loginRequest); err != nil {
			response.JSON(c, "", errors.ErrBadRequest.Status, nil, err)
			return
		}
		userResponse, err := s.AuthService.LoginUser(&loginRequest)
		if err != nil {
			response.JSON(c, "", err.Status, nil, err)
			return
		}
		response.JSON(c, "login successful", http.StatusOK, userResponse, nil)
	}
}

func (s *Server) handleLogout() gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken := getTokenFromHeader(c)
		if accessToken == "" {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}
		if err := s.AuthService.LogoutUser(accessToken); err != nil {
			response.JSON(c, "", err.Status, nil, err)
			return
		}
		response.JSON(c, "logout successful", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleShowProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}
		profile, err := s.AuthService.GetUserProfile(userID)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "", http.StatusOK, profile, nil)
	}
}

func generateJWTState(secret string) (string, error) {
	claims := jwt.MapClaims{
		"exp":   time.Now().Add(10 * time.Minute).Unix(),
		"iat":   time.Now().Unix(),
		"state": uuid.New().String(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign JWT token: %w", err)
	}
	return signedToken, nil
}

func verifyState(state string, secret string) bool {
	token, err := jwt.Parse(state, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	return err == nil && token.Valid
}

func (s *Server) googleOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.Config.GoogleClientID,
		ClientSecret: s.Config.GoogleClientSecret,
		RedirectURL:  s.Config.GoogleRedirectURL,
		Endpoint:     google.Endpoint,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
	}
}

func (s *Server) HandleGoogleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := generateJWTState(s.Config.JWTSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate state"})
			return
		}

		authURL := s.googleOAuthConfig().AuthCodeURL(state, oauth2.AccessTypeOffline)
		c.Redirect(http.StatusTemporaryRedirect, authURL)
	}
}

func (s *Server) HandleGoogleCallback() gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Query("code")
		state := c.Query("state")

		if !verifyState(state, s.Config.JWTSecret) {
			log.Println("Invalid or expired state")
			c.JSON(http.StatusForbidden, gin.H{"error": "Invalid or expired state"})
			return
		}

		token, err := s.googleOAuthConfig().Exchange(c.Request.Context(), code)
		if err != nil {
			log.Printf("Token exchange failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token exchange failed"})
			return
		}

		googleUser, err := getUserDataFromGoogle(token.AccessToken)
		if err != nil {
			log.Printf("Failed to fetch google user: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user info"})
			return
		}

		loginResponse, apiErr := s.AuthService.GoogleLoginUser(googleUser)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "login successful", http.StatusOK, loginResponse, nil)
	}
}

// getUserDataFromGoogle retrieves the user data from Google using the access token
func getUserDataFromGoogle(accessToken string) (*models.GoogleAuthResponse, error) {
	resp, err := http.Get("https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo request failed with status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read user info response: %v", err)
	}

	var googleUser models.GoogleAuthResponse
	if err := json.Unmarshal(body, &googleUser); err != nil {
		return nil, fmt.Errorf("failed to parse user info: %v", err)
	}
	if googleUser.Email == "" {
		return nil, fmt.Errorf("google userinfo missing email")
	}
	return &googleUser, nil
}
