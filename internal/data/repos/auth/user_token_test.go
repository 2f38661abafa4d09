package auth

import (
	"context"
	"testing"
	"time"

	"github.com/yungbote/storefront-backend/internal/data/repos/testutil"
	"github.com/yungbote/storefront-backend/internal/pkg/apperr"
)

func TestUserTokenRepoRevocation(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewUserTokenRepo(db, testutil.Logger(t))

	user := testutil.SeedUser(t, ctx, tx, "tokens@example.com")
	other := testutil.SeedUser(t, ctx, tx, "other-tokens@example.com")

	future := time.Now().Add(time.Hour)
	testutil.SeedToken(t, ctx, tx, user.ID, "tok-a", future)
	testutil.SeedToken(t, ctx, tx, user.ID, "tok-b", future)
	kept := testutil.SeedToken(t, ctx, tx, other.ID, "tok-other", future)

	if err := repo.DeleteByUserID(ctx, tx, user.ID); err != nil {
		t.Fatalf("DeleteByUserID: %v", err)
	}

	if _, err := repo.GetByToken(ctx, tx, "tok-a"); !apperr.IsNotFound(err) {
		t.Fatalf("tok-a should be revoked, got %v", err)
	}
	if _, err := repo.GetByToken(ctx, tx, "tok-b"); !apperr.IsNotFound(err) {
		t.Fatalf("tok-b should be revoked, got %v", err)
	}
	got, err := repo.GetByToken(ctx, tx, "tok-other")
	if err != nil {
		t.Fatalf("other user token should survive: %v", err)
	}
	if got.ID != kept.ID {
		t.Fatalf("wrong surviving token: %s", got.ID)
	}
}

func TestUserTokenRepoDeleteExpired(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewUserTokenRepo(db, testutil.Logger(t))

	user := testutil.SeedUser(t, ctx, tx, "expired@example.com")
	now := time.Now()
	testutil.SeedToken(t, ctx, tx, user.ID, "tok-stale", now.Add(-time.Minute))
	testutil.SeedToken(t, ctx, tx, user.ID, "tok-live", now.Add(time.Hour))

	removed, err := repo.DeleteExpired(ctx, tx, now)
	if err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}
	if _, err := repo.GetByToken(ctx, tx, "tok-live"); err != nil {
		t.Fatalf("live token should remain: %v", err)
	}
}

func TestUserRepoEmailLookup(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewUserRepo(db, testutil.Logger(t))

	testutil.SeedUser(t, ctx, tx, "lookup@example.com")

	got, err := repo.GetByEmail(ctx, tx, "lookup@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got.Email != "lookup@example.com" {
		t.Fatalf("email: got %q", got.Email)
	}

	exists, err := repo.EmailExists(ctx, tx, "lookup@example.com")
	if err != nil || !exists {
		t.Fatalf("EmailExists: err=%v exists=%v", err, exists)
	}
	exists, err = repo.EmailExists(ctx, tx, "nobody@example.com")
	if err != nil || exists {
		t.Fatalf("EmailExists miss: err=%v exists=%v", err, exists)
	}

	if _, err := repo.GetByEmail(ctx, tx, "nobody@example.com"); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
