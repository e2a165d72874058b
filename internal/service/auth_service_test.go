package service

import (
	"testing"

	"ai-blogcms-be/internal/entity"
)

func TestInitialRole(t *testing.T) {
	if got := initialRole(0); got != entity.UserRoleAdmin {
		t.Errorf("first registration role = %q, want admin", got)
	}
	if got := initialRole(1); got != entity.UserRoleUser {
		t.Errorf("second registration role = %q, want user", got)
	}
	if got := initialRole(42); got != entity.UserRoleUser {
		t.Errorf("later registration role = %q, want user", got)
	}
}
