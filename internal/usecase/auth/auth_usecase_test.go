package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/swappi-app/swappi-backend/internal/domain"
	"github.com/swappi-app/swappi-backend/internal/repository"
	"github.com/swappi-app/swappi-backend/internal/repository/memory"
)

const testSecret = "test-secret-that-is-at-least-32-characters"

type fixture struct {
	uc       *AuthUseCase
	profiles repository.ProfileRepository
	users    repository.UserRepository
}

func newFixture() *fixture {
	users := memory.NewUserRepository()
	profiles := memory.NewProfileRepository()
	uc := NewAuthUseCase(users, profiles, memory.NewSessionRepository(), testSecret, time.Hour, zap.NewNop())
	return &fixture{uc: uc, profiles: profiles, users: users}
}

func validSignUp() *SignUpRequest {
	return &SignUpRequest{
		FirstName:       " Ada ",
		LastName:        "Lovelace",
		Email:           " ada@example.com ",
		Phone:           "+44 20 0000",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

func TestSignUpSeedsProfile(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	resp, err := f.uc.SignUp(ctx, validSignUp())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, domain.SessionOnboarding, resp.Session.State)
	assert.Equal(t, "Ada Lovelace", resp.Session.DisplayName)
	assert.Equal(t, "ada@example.com", resp.Session.Email)

	profile, err := f.profiles.GetByID(ctx, resp.Session.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", profile.Name)
	assert.NotNil(t, profile.SkillsKnown)
	assert.Empty(t, profile.ProfilePhotos)
	assert.Empty(t, profile.IntroMediaURL)

	user, err := f.users.GetByID(ctx, resp.Session.UserID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", user.PasswordHash)
}

func TestSignUpReportsEveryRule(t *testing.T) {
	f := newFixture()

	_, err := f.uc.SignUp(context.Background(), &SignUpRequest{
		FirstName: "  ", Email: "nope", Password: "abc", ConfirmPassword: "abd",
	})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{
		MsgFirstNameRequired, MsgLastNameRequired, MsgInvalidEmail, MsgPasswordTooShort, MsgPasswordMismatch,
	}, verr.Problems)
}

func TestSignUpRejectsDuplicateEmail(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.SignUp(ctx, validSignUp())
	require.NoError(t, err)

	req := validSignUp()
	req.Email = "ADA@example.com"
	_, err = f.uc.SignUp(ctx, req)
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
}

func TestSignIn(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	signedUp, err := f.uc.SignUp(ctx, validSignUp())
	require.NoError(t, err)

	t.Run("incomplete profile resumes onboarding", func(t *testing.T) {
		resp, err := f.uc.SignIn(ctx, "ada@example.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, domain.SessionOnboarding, resp.Session.State)
		assert.Equal(t, signedUp.Session.UserID, resp.Session.UserID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := f.uc.SignIn(ctx, "ada@example.com", "wrong!!")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := f.uc.SignIn(ctx, "bob@example.com", "secret1")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := f.uc.SignIn(ctx, " ", "")
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []string{MsgCredentialsRequired}, verr.Problems)
	})

	t.Run("complete profile lands active", func(t *testing.T) {
		p, err := f.profiles.GetByID(ctx, signedUp.Session.UserID)
		require.NoError(t, err)
		p.ProfilePhotos = []string{"a", "b", "c"}
		p.SkillsKnown = []string{"1", "2", "3", "4", "5"}
		p.SkillsWanted = []string{"1", "2", "3", "4", "5"}
		p.IntroMediaURL = "intro.mp4"
		require.NoError(t, f.profiles.Upsert(ctx, p))

		resp, err := f.uc.SignIn(ctx, "ada@example.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, domain.SessionActive, resp.Session.State)
	})
}

func TestSignInWithoutProfile(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	resp, err := f.uc.SignUp(ctx, validSignUp())
	require.NoError(t, err)

	// account exists but the profile record was never written
	other := newFixture()
	user, err := f.users.GetByID(ctx, resp.Session.UserID)
	require.NoError(t, err)
	require.NoError(t, other.users.Create(ctx, user))

	_, err = other.uc.SignIn(ctx, "ada@example.com", "secret1")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestValidateTokenAndLogout(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	resp, err := f.uc.SignUp(ctx, validSignUp())
	require.NoError(t, err)

	claims, err := f.uc.ValidateToken(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.Session.UserID, claims.Subject)
	assert.Equal(t, "Ada Lovelace", claims.Name)
	assert.Equal(t, "ada@example.com", claims.Email)

	require.NoError(t, f.uc.Logout(ctx, claims))

	_, err = f.uc.ValidateToken(ctx, resp.Token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	profile, err := f.profiles.GetByID(ctx, resp.Session.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", profile.Name)
}

func TestValidateTokenRejectsBadTokens(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	resp, err := f.uc.SignUp(ctx, validSignUp())
	require.NoError(t, err)

	_, err = f.uc.ValidateToken(ctx, "garbage")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	other := NewAuthUseCase(memory.NewUserRepository(), memory.NewProfileRepository(), memory.NewSessionRepository(),
		"another-secret-that-is-at-least-32-chars", time.Hour, zap.NewNop())
	_, err = other.ValidateToken(ctx, resp.Token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	f.uc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = f.uc.ValidateToken(ctx, resp.Token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestValidateTokenRejectsOtherAlgorithms(t *testing.T) {
	f := newFixture()
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u1",
			ID:        "jti",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = f.uc.ValidateToken(context.Background(), signed)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestSession(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	resp, err := f.uc.SignUp(ctx, validSignUp())
	require.NoError(t, err)

	session, err := f.uc.Session(ctx, resp.Session.UserID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionOnboarding, session.State)

	_, err = f.uc.Session(ctx, "")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = f.uc.Session(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogoutRequiresClaims(t *testing.T) {
	f := newFixture()
	assert.ErrorIs(t, f.uc.Logout(context.Background(), nil), domain.ErrUnauthenticated)
}

// flakySeedRepo fails profile writes while failing is set.
type flakySeedRepo struct {
	repository.ProfileRepository
	failing bool
}

func (r *flakySeedRepo) Upsert(ctx context.Context, p *domain.Profile) error {
	if r.failing {
		return errors.New("write conflict")
	}
	return r.ProfileRepository.Upsert(ctx, p)
}

func TestSignUpRollsBackAccountWhenSeedFails(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserRepository()
	profiles := &flakySeedRepo{ProfileRepository: memory.NewProfileRepository(), failing: true}
	uc := NewAuthUseCase(users, profiles, memory.NewSessionRepository(), testSecret, time.Hour, zap.NewNop())

	_, err := uc.SignUp(ctx, validSignUp())
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrUserAlreadyExists)

	_, err = users.GetByEmail(ctx, "ada@example.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	// the same email can register once the store recovers
	profiles.failing = false
	resp, err := uc.SignUp(ctx, validSignUp())
	require.NoError(t, err)

	signedIn, err := uc.SignIn(ctx, "ada@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, resp.Session.UserID, signedIn.Session.UserID)
	assert.Equal(t, domain.SessionOnboarding, signedIn.Session.State)
}
