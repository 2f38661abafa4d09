package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/storefront-backend/internal/domain"
	"github.com/yungbote/storefront-backend/internal/pkg/apperr"
)

type stubUserRepo struct {
	takenEmails map[string]bool
}

func (s *stubUserRepo) Create(ctx context.Context, tx *gorm.DB, user *types.User) (*types.User, error) {
	return user, nil
}

func (s *stubUserRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.User, error) {
	return nil, apperr.NewNotFound("user")
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error) {
	return nil, apperr.NewNotFound("user")
}

func (s *stubUserRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	return s.takenEmails[email], nil
}

func newValidationTestService(t *testing.T, taken ...string) *authService {
	t.Helper()
	takenEmails := map[string]bool{}
	for _, e := range taken {
		takenEmails[e] = true
	}
	return &authService{
		log:      testLogger(t),
		userRepo: &stubUserRepo{takenEmails: takenEmails},
	}
}

func fieldErrors(t *testing.T, err error) map[string][]string {
	t.Helper()
	var verr *apperr.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	return verr.Fields
}

func TestRegistrationValidationRequiresAllFields(t *testing.T) {
	as := newValidationTestService(t)

	err := as.validateRegistration(context.Background(), RegisterInput{})
	fields := fieldErrors(t, err)
	for _, want := range []string{"name", "email", "password"} {
		if _, ok := fields[want]; !ok {
			t.Fatalf("expected %s error, got %v", want, fields)
		}
	}
}

func TestRegistrationValidationName(t *testing.T) {
	as := newValidationTestService(t)
	ctx := context.Background()

	base := RegisterInput{
		Email:                "new@example.com",
		Password:             "s3curepass",
		PasswordConfirmation: "s3curepass",
	}

	tooShort := base
	tooShort.Name = "A"
	if _, ok := fieldErrors(t, as.validateRegistration(ctx, tooShort))["name"]; !ok {
		t.Fatal("single character name should fail")
	}

	badChars := base
	badChars.Name = "Robert; DROP TABLE"
	if _, ok := fieldErrors(t, as.validateRegistration(ctx, badChars))["name"]; !ok {
		t.Fatal("name with punctuation should fail")
	}

	good := base
	good.Name = "Mary-Jane O'Neil"
	if err := as.validateRegistration(ctx, good); err != nil {
		t.Fatalf("valid name rejected: %v", err)
	}
}

func TestRegistrationValidationEmail(t *testing.T) {
	as := newValidationTestService(t, "taken@example.com")
	ctx := context.Background()

	base := RegisterInput{
		Name:                 "Valid Name",
		Password:             "s3curepass",
		PasswordConfirmation: "s3curepass",
	}

	malformed := base
	malformed.Email = "not-an-email"
	if _, ok := fieldErrors(t, as.validateRegistration(ctx, malformed))["email"]; !ok {
		t.Fatal("malformed email should fail")
	}

	duplicate := base
	duplicate.Email = "taken@example.com"
	if _, ok := fieldErrors(t, as.validateRegistration(ctx, duplicate))["email"]; !ok {
		t.Fatal("duplicate email should fail")
	}

	mixedCase := base
	mixedCase.Email = "Taken@Example.COM"
	if _, ok := fieldErrors(t, as.validateRegistration(ctx, mixedCase))["email"]; !ok {
		t.Fatal("duplicate check should be case insensitive")
	}
}

func TestRegistrationValidationPassword(t *testing.T) {
	as := newValidationTestService(t)
	ctx := context.Background()

	base := RegisterInput{
		Name:  "Valid Name",
		Email: "new@example.com",
	}

	short := base
	short.Password = "a1"
	short.PasswordConfirmation = "a1"
	if _, ok := fieldErrors(t, as.validateRegistration(ctx, short))["password"]; !ok {
		t.Fatal("short password should fail")
	}

	noDigits := base
	noDigits.Password = "onlyletters"
	noDigits.PasswordConfirmation = "onlyletters"
	if _, ok := fieldErrors(t, as.validateRegistration(ctx, noDigits))["password"]; !ok {
		t.Fatal("password without digits should fail")
	}

	mismatch := base
	mismatch.Password = "s3curepass"
	mismatch.PasswordConfirmation = "different1"
	if _, ok := fieldErrors(t, as.validateRegistration(ctx, mismatch))["password"]; !ok {
		t.Fatal("confirmation mismatch should fail")
	}
}
