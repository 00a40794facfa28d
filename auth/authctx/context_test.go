package authctx

import (
	"context"
	"errors"
	"testing"
)

type userClaims struct {
	Subject string
}

func TestSetAndGet(t *testing.T) {
	ctx := Set(context.Background(), &userClaims{Subject: "user-1"})

	claims, ok := Get[*userClaims](ctx)
	if !ok {
		t.Fatal("expected claims in context")
	}
	if claims.Subject != "user-1" {
		t.Errorf("expected subject user-1, got %q", claims.Subject)
	}
}

func TestGetWrongType(t *testing.T) {
	ctx := Set(context.Background(), "not claims")
	if _, ok := Get[*userClaims](ctx); ok {
		t.Error("expected type mismatch to report false")
	}
}

func TestGetOrError(t *testing.T) {
	if _, err := GetOrError[*userClaims](context.Background()); !errors.Is(err, ErrNoClaims) {
		t.Errorf("expected ErrNoClaims, got %v", err)
	}
	ctx := Set(context.Background(), &userClaims{Subject: "s"})
	if c, err := GetOrError[*userClaims](ctx); err != nil || c.Subject != "s" {
		t.Errorf("unexpected result %v, %v", c, err)
	}
}

type subjectClaims struct{ sub string }

func (c subjectClaims) UserID() string { return c.sub }

func TestUserID(t *testing.T) {
	if got := UserID(context.Background()); got != "" {
		t.Errorf("expected empty user id, got %q", got)
	}
	if got := UserID(Set(context.Background(), &userClaims{Subject: "s"})); got != "" {
		t.Errorf("claims without UserID should yield empty, got %q", got)
	}
	if got := UserID(Set(context.Background(), subjectClaims{sub: "user-9"})); got != "user-9" {
		t.Errorf("expected user-9, got %q", got)
	}
}
