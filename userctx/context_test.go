package userctx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdmin(t *testing.T) {
	ctx := context.Background()

	_, ok := GetAdmin(ctx)
	assert.False(t, ok)
	assert.Equal(t, "anonymous", GetAdminEmail(ctx))

	ctx = SetAdminEmail(SetAdmin(ctx, "auth0|123"), "editor@example.com")

	subject, ok := GetAdmin(ctx)
	assert.True(t, ok)
	assert.Equal(t, "auth0|123", subject)
	assert.Equal(t, "editor@example.com", GetAdminEmail(ctx))
}

func TestAdmin_EmptySubject(t *testing.T) {
	_, ok := GetAdmin(SetAdmin(context.Background(), ""))
	assert.False(t, ok)
}
