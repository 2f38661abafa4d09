package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	authrepo "github.com/yungbote/storefront-backend/internal/data/repos/auth"
	types "github.com/yungbote/storefront-backend/internal/domain"
	"github.com/yungbote/storefront-backend/internal/pkg/apperr"
	"github.com/yungbote/storefront-backend/internal/pkg/ctxutil"
	"github.com/yungbote/storefront-backend/internal/pkg/logger"
)

type RegisterInput struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	ClientIP string `json:"-"`
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*types.User, string, error)
	Login(ctx context.Context, input LoginInput) (*types.User, string, error)
	Logout(ctx context.Context) error
	Authenticate(ctx context.Context, tokenString string) (context.Context, error)
	CurrentUser(ctx context.Context) (*types.User, error)
	TokenTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      authrepo.UserRepo
	userTokenRepo authrepo.UserTokenRepo
	limiter       LoginLimiter
	jwtSecretKey  string
	tokenTTL      time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo authrepo.UserRepo,
	userTokenRepo authrepo.UserTokenRepo,
	limiter LoginLimiter,
	jwtSecretKey string,
	tokenTTL time.Duration,
) AuthService {
	return &authService{
		db:            db,
		log:           log.With("service", "AuthService"),
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		limiter:       limiter,
		jwtSecretKey:  jwtSecretKey,
		tokenTTL:      tokenTTL,
	}
}

var (
	nameRe   = regexp.MustCompile(`^[\p{L} .'-]+$`)
	emailRe  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	digitRe  = regexp.MustCompile(`[0-9]`)
	letterRe = regexp.MustCompile(`\p{L}`)
)

func (as *authService) validateRegistration(ctx context.Context, input RegisterInput) error {
	verr := apperr.NewValidationError()

	name := strings.TrimSpace(input.Name)
	switch {
	case name == "":
		verr.Add("name", "The name field is required.")
	case len(name) < 2 || len(name) > 255:
		verr.Add("name", "The name must be between 2 and 255 characters.")
	case !nameRe.MatchString(name):
		verr.Add("name", "The name may only contain letters, spaces, dots, apostrophes and dashes.")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	switch {
	case email == "":
		verr.Add("email", "The email field is required.")
	case len(email) > 255 || !emailRe.MatchString(email):
		verr.Add("email", "The email must be a valid email address.")
	default:
		exists, err := as.userRepo.EmailExists(ctx, nil, email)
		if err != nil {
			return fmt.Errorf("check email uniqueness: %w", err)
		}
		if exists {
			verr.Add("email", "The email has already been taken.")
		}
	}

	switch {
	case input.Password == "":
		verr.Add("password", "The password field is required.")
	case len(input.Password) < 8:
		verr.Add("password", "The password must be at least 8 characters.")
	case !digitRe.MatchString(input.Password) || !letterRe.MatchString(input.Password):
		verr.Add("password", "The password must contain letters and numbers.")
	}
	if input.Password != input.PasswordConfirmation {
		verr.Add("password", "The password confirmation does not match.")
	}

	return verr.OrNil()
}

// Register creates the user and signs them in, persisting an initial token
// in the same transaction.
func (as *authService) Register(ctx context.Context, input RegisterInput) (*types.User, string, error) {
	if err := as.validateRegistration(ctx, input); err != nil {
		return nil, "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &types.User{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(input.Name),
		Email:    strings.ToLower(strings.TrimSpace(input.Email)),
		Password: string(hashed),
	}
	var tokenString string
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := as.userRepo.Create(ctx, tx, user); err != nil {
			return err
		}
		tok, err := as.generateToken(user)
		if err != nil {
			return fmt.Errorf("generate token: %w", err)
		}
		userToken := &types.UserToken{
			ID:        uuid.New(),
			UserID:    user.ID,
			Token:     tok,
			ExpiresAt: time.Now().Add(as.tokenTTL),
		}
		if _, err := as.userTokenRepo.Create(ctx, tx, userToken); err != nil {
			return fmt.Errorf("persist token: %w", err)
		}
		tokenString = tok
		return nil
	}); err != nil {
		as.log.Warn("failed to create user", "error", err)
		return nil, "", fmt.Errorf("create user: %w", err)
	}
	as.log.Info("user registered", "user_id", user.ID, "email", user.Email)
	return user, tokenString, nil
}

// Login verifies credentials behind the lockout gate. A successful login
// revokes every existing token for the user before issuing a fresh one.
func (as *authService) Login(ctx context.Context, input LoginInput) (*types.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	password := input.Password

	verr := apperr.NewValidationError()
	if email == "" {
		verr.Add("email", "The email field is required.")
	}
	if password == "" {
		verr.Add("password", "The password field is required.")
	}
	if err := verr.OrNil(); err != nil {
		return nil, "", err
	}

	limiterKey := input.ClientIP
	if limiterKey == "" {
		limiterKey = email
	}
	if err := as.limiter.Allow(ctx, limiterKey); err != nil {
		return nil, "", err
	}

	user, err := as.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		if apperr.IsNotFound(err) {
			_ = as.limiter.RecordFailure(ctx, limiterKey)
			return nil, "", apperr.NewAuth("invalid credentials")
		}
		return nil, "", fmt.Errorf("load user by email: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		_ = as.limiter.RecordFailure(ctx, limiterKey)
		return nil, "", apperr.NewAuth("invalid credentials")
	}

	var tokenString string
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := as.userTokenRepo.DeleteByUserID(ctx, tx, user.ID); err != nil {
			return fmt.Errorf("revoke existing tokens: %w", err)
		}
		tok, err := as.generateToken(user)
		if err != nil {
			return fmt.Errorf("generate token: %w", err)
		}
		userToken := &types.UserToken{
			ID:        uuid.New(),
			UserID:    user.ID,
			Token:     tok,
			ExpiresAt: time.Now().Add(as.tokenTTL),
		}
		if _, err := as.userTokenRepo.Create(ctx, tx, userToken); err != nil {
			return fmt.Errorf("persist token: %w", err)
		}
		tokenString = tok
		return nil
	}); err != nil {
		as.log.Warn("login transaction failed", "error", err)
		return nil, "", err
	}

	_ = as.limiter.Clear(ctx, limiterKey)
	as.log.Info("user logged in", "user_id", user.ID)
	return user, tokenString, nil
}

func (as *authService) Logout(ctx context.Context) error {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.TokenString == "" {
		return apperr.NewAuth("not authenticated")
	}
	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return as.userTokenRepo.DeleteByToken(ctx, tx, rd.TokenString)
	})
}

// Authenticate validates the bearer token against both the JWT signature
// and the persisted token row, then stashes the caller identity in ctx.
func (as *authService) Authenticate(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, apperr.NewAuth("missing token")
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil || !parsed.Valid {
		return ctx, apperr.NewAuth("invalid or expired token")
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return ctx, apperr.NewAuth("invalid token claims")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, apperr.NewAuth("invalid token subject")
	}

	stored, err := as.userTokenRepo.GetByToken(ctx, nil, tokenString)
	if err != nil {
		if apperr.IsNotFound(err) {
			return ctx, apperr.NewAuth("token revoked")
		}
		return ctx, fmt.Errorf("load token: %w", err)
	}
	if stored.Expired(time.Now()) {
		return ctx, apperr.NewAuth("token expired")
	}
	if stored.UserID != userID {
		return ctx, apperr.NewAuth("token subject mismatch")
	}

	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		rd = &ctxutil.RequestData{}
	}
	rd.UserID = userID
	rd.TokenString = tokenString
	return ctxutil.WithRequestData(ctx, rd), nil
}

func (as *authService) CurrentUser(ctx context.Context) (*types.User, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperr.NewAuth("not authenticated")
	}
	return as.userRepo.GetByID(ctx, nil, rd.UserID)
}

func (as *authService) TokenTTL() time.Duration {
	return as.tokenTTL
}

func (as *authService) generateToken(user *types.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(as.tokenTTL)),
		ID:        uuid.New().String(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}
