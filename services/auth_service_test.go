package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baseelze-maker/wasel-backend/models"
	"github.com/baseelze-maker/wasel-backend/utils"
)

func newAuthFixture() (*AuthService, *fakeUserStore) {
	users := newFakeUserStore()
	return NewAuthService(users, "test-signing-key"), users
}

func TestSignUpSignIn_RoundTrip(t *testing.T) {
	auth, _ := newAuthFixture()

	user, err := auth.SignUp(&models.SignUpRequest{
		FullName: "Basel Zeid",
		Email:    "Basel@Example.com",
		Password: "correct horse",
		Role:     utils.RoleTraveler,
	})
	require.NoError(t, err)
	assert.Equal(t, "basel@example.com", user.Email)
	assert.NotEqual(t, "correct horse", user.PasswordHash)

	token, signedIn, err := auth.SignIn("basel@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID, signedIn.ID)

	claims, err := auth.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, utils.RoleTraveler, claims.Role)
}

func TestSignIn_WrongPassword(t *testing.T) {
	auth, _ := newAuthFixture()

	_, err := auth.SignUp(&models.SignUpRequest{
		FullName: "Basel Zeid",
		Email:    "basel@example.com",
		Password: "correct horse",
		Role:     utils.RoleSender,
	})
	require.NoError(t, err)

	_, _, err = auth.SignIn("basel@example.com", "wrong horse")
	assertAppCode(t, err, "invalid_credentials")

	// Unknown accounts fail the same way as bad passwords.
	_, _, err = auth.SignIn("nobody@example.com", "correct horse")
	assertAppCode(t, err, "invalid_credentials")
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	auth, _ := newAuthFixture()

	req := &models.SignUpRequest{
		FullName: "Basel Zeid",
		Email:    "basel@example.com",
		Password: "correct horse",
		Role:     utils.RoleSender,
	}
	_, err := auth.SignUp(req)
	require.NoError(t, err)

	_, err = auth.SignUp(req)
	assertAppCode(t, err, "validation")
}

func TestSignUp_Validation(t *testing.T) {
	auth, _ := newAuthFixture()

	cases := []struct {
		name string
		req  models.SignUpRequest
	}{
		{"missing name", models.SignUpRequest{Email: "a@b.com", Password: "long enough", Role: utils.RoleSender}},
		{"bad email", models.SignUpRequest{FullName: "A", Email: "not-an-email", Password: "long enough", Role: utils.RoleSender}},
		{"bad role", models.SignUpRequest{FullName: "A", Email: "a@b.com", Password: "long enough", Role: "admin"}},
		{"short password", models.SignUpRequest{FullName: "A", Email: "a@b.com", Password: "short", Role: utils.RoleSender}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := auth.SignUp(&tc.req)
			assertAppCode(t, err, "validation")
		})
	}
}

func TestParseToken_RejectsForgedTokens(t *testing.T) {
	auth, users := newAuthFixture()

	_, err := auth.SignUp(&models.SignUpRequest{
		FullName: "Basel Zeid",
		Email:    "basel@example.com",
		Password: "correct horse",
		Role:     utils.RoleTraveler,
	})
	require.NoError(t, err)

	token, _, err := auth.SignIn("basel@example.com", "correct horse")
	require.NoError(t, err)

	// A token minted under a different key must not validate.
	other := NewAuthService(users, "another-signing-key")
	_, err = other.ParseToken(token)
	assertAppCode(t, err, "unauthenticated")

	_, err = auth.ParseToken("not.a.token")
	assertAppCode(t, err, "unauthenticated")
}
