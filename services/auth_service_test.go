package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wasteeasy/api/config"
	"github.com/wasteeasy/api/models"
	"github.com/wasteeasy/api/services/jwt"
	"golang.org/x/crypto/bcrypt"
)

func newAuthServiceForTest() (AuthService, *fakeAuthRepo) {
	repo := newFakeAuthRepo()
	conf := &config.Config{JWTSecret: "test-secret"}
	return NewAuthService(repo, conf), repo
}

func TestSignupHashesAndStripsPassword(t *testing.T) {
	svc, repo := newAuthServiceForTest()

	user, err := svc.SignupUser(&models.User{
		Fullname: "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	assert.Empty(t, user.Password)
	require.NotEmpty(t, user.HashedPassword)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte("correct-horse")))
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Contains(t, repo.users, "ada@example.com")
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _ := newAuthServiceForTest()

	_, err := svc.SignupUser(&models.User{Fullname: "Ada", Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.SignupUser(&models.User{Fullname: "Imposter", Email: "ada@example.com", Password: "secret2"})
	require.Error(t, err)
}

func TestLoginRoundTripClaims(t *testing.T) {
	svc, _ := newAuthServiceForTest()

	_, err := svc.SignupUser(&models.User{Fullname: "Ada", Email: "ada@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	resp, apiErr := svc.LoginUser(&models.LoginRequest{Email: "ada@example.com", Password: "correct-horse"})
	require.Nil(t, apiErr)
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)

	claims, err := jwt.ValidateAndGetClaims(resp.AccessToken, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, float64(resp.ID), claims["id"])
	assert.Equal(t, "ada@example.com", claims["email"])
	assert.Equal(t, models.RoleUser, claims["role"])
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthServiceForTest()

	_, err := svc.SignupUser(&models.User{Fullname: "Ada", Email: "ada@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	_, apiErr := svc.LoginUser(&models.LoginRequest{Email: "ada@example.com", Password: "wrong"})
	require.NotNil(t, apiErr)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newAuthServiceForTest()

	_, apiErr := svc.LoginUser(&models.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	require.NotNil(t, apiErr)
}

func TestGoogleLoginCreatesUserOnFirstContact(t *testing.T) {
	svc, repo := newAuthServiceForTest()

	resp, apiErr := svc.GoogleLoginUser(&models.GoogleAuthResponse{
		Email: "ada@example.com",
		Name:  "Ada Lovelace",
	})
	require.Nil(t, apiErr)
	assert.NotEmpty(t, resp.AccessToken)

	created, ok := repo.users["ada@example.com"]
	require.True(t, ok)
	assert.True(t, created.IsSocial)

	// second login reuses the same account
	resp2, apiErr := svc.GoogleLoginUser(&models.GoogleAuthResponse{Email: "ada@example.com", Name: "Ada"})
	require.Nil(t, apiErr)
	assert.Equal(t, resp.ID, resp2.ID)
}

func TestLogoutBlacklistsToken(t *testing.T) {
	svc, repo := newAuthServiceForTest()

	require.Nil(t, svc.LogoutUser("some-access-token"))
	assert.True(t, repo.IsTokenInBlacklist("some-access-token"))
}
