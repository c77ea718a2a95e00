package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/swappi-app/swappi-backend/internal/domain"
	"github.com/swappi-app/swappi-backend/internal/repository"
)

const (
	MsgFirstNameRequired   = "First name is required."
	MsgLastNameRequired    = "Last name is required."
	MsgInvalidEmail        = "Enter a valid email address."
	MsgPasswordTooShort    = "Password must be at least 6 characters."
	MsgPasswordMismatch    = "Passwords do not match."
	MsgCredentialsRequired = "Email and password are required."

	minPasswordLength = 6
)

type AuthUseCase struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	sessionRepo repository.SessionRepository
	jwtSecret   []byte
	tokenTTL    time.Duration
	log         *zap.Logger
	now         func() time.Time
}

func NewAuthUseCase(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	sessionRepo repository.SessionRepository,
	jwtSecret string,
	tokenTTL time.Duration,
	log *zap.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		sessionRepo: sessionRepo,
		jwtSecret:   []byte(jwtSecret),
		tokenTTL:    tokenTTL,
		log:         log,
		now:         time.Now,
	}
}

// Claims are carried in every access token.
type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type SignUpRequest struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type AuthResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Session   *domain.Session `json:"session"`
}

// SignUp creates the account and its empty profile. Every failing rule is reported.
func (uc *AuthUseCase) SignUp(ctx context.Context, req *SignUpRequest) (*AuthResponse, error) {
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	email := strings.TrimSpace(req.Email)

	var problems []string
	if firstName == "" {
		problems = append(problems, MsgFirstNameRequired)
	}
	if lastName == "" {
		problems = append(problems, MsgLastNameRequired)
	}
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		problems = append(problems, MsgInvalidEmail)
	}
	if len([]rune(req.Password)) < minPasswordLength {
		problems = append(problems, MsgPasswordTooShort)
	}
	if req.Password != req.ConfirmPassword {
		problems = append(problems, MsgPasswordMismatch)
	}
	if len(problems) > 0 {
		return nil, domain.NewValidationError(problems)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: string(hash),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := uc.profileRepo.Upsert(ctx, domain.NewSeedProfile(user.ID, user.DisplayName(), user.Email)); err != nil {
		// an account without a profile can neither sign in nor sign up again
		if delErr := uc.userRepo.Delete(ctx, user.ID); delErr != nil {
			uc.log.Error("failed to roll back account",
				zap.String("user_id", user.ID),
				zap.Error(delErr),
			)
		}
		return nil, fmt.Errorf("failed to seed profile: %w", err)
	}

	uc.log.Info("account created", zap.String("user_id", user.ID))
	return uc.issue(user, domain.SessionOnboarding)
}

// SignIn checks credentials and resolves where the client should land.
func (uc *AuthUseCase) SignIn(ctx context.Context, email, password string) (*AuthResponse, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domain.NewValidationError([]string{MsgCredentialsRequired})
	}

	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	state, err := uc.resolveState(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return uc.issue(user, state)
}

// Logout revokes the token until it would have expired. The profile is untouched.
func (uc *AuthUseCase) Logout(ctx context.Context, claims *Claims) error {
	if claims == nil || claims.ID == "" {
		return domain.ErrUnauthenticated
	}
	var ttl time.Duration
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Time.Sub(uc.now())
	}
	if err := uc.sessionRepo.Revoke(ctx, claims.ID, ttl); err != nil {
		return err
	}
	uc.log.Info("logged out", zap.String("user_id", claims.Subject))
	return nil
}

// Session reports the signed-in user's current state.
func (uc *AuthUseCase) Session(ctx context.Context, userID string) (*domain.Session, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	state, err := uc.resolveState(ctx, userID)
	if err != nil {
		return nil, err
	}
	return sessionFor(user, state), nil
}

// ValidateToken parses an access token and rejects revoked ones.
func (uc *AuthUseCase) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return uc.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(uc.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid || claims.Subject == "" || claims.ID == "" {
		return nil, domain.ErrInvalidToken
	}

	revoked, err := uc.sessionRepo.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check session: %w", err)
	}
	if revoked {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

func (uc *AuthUseCase) resolveState(ctx context.Context, userID string) (domain.SessionState, error) {
	profile, err := uc.profileRepo.GetByID(ctx, userID)
	switch {
	case err == nil:
		return domain.ResolveSessionState(true, profile), nil
	case errors.Is(err, domain.ErrDecode):
		// an unreadable profile is redone through onboarding
		return domain.SessionOnboarding, nil
	default:
		return domain.SessionLoggedOut, err
	}
}

func (uc *AuthUseCase) issue(user *domain.User, state domain.SessionState) (*AuthResponse, error) {
	now := uc.now()
	expiresAt := now.Add(uc.tokenTTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Name:  user.DisplayName(),
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	tokenString, err := token.SignedString(uc.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &AuthResponse{
		Token:     tokenString,
		ExpiresAt: expiresAt,
		Session:   sessionFor(user, state),
	}, nil
}

func sessionFor(user *domain.User, state domain.SessionState) *domain.Session {
	return &domain.Session{
		UserID:      user.ID,
		DisplayName: user.DisplayName(),
		Email:       user.Email,
		State:       state,
	}
}
