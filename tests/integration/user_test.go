package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-hq/inkwell-api/internal/oauth"
	"github.com/inkwell-hq/inkwell-api/internal/services"
)

func TestUserService_Integration_RegisterAndAuthenticate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	svc := services.NewUserService(tdb.DB)
	ctx := context.Background()

	user, err := svc.Register(ctx, "writer@example.com", "Writer", "s3cret-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "writer@example.com", user.Email)

	authed, err := svc.Authenticate(ctx, "writer@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)

	_, err = svc.Authenticate(ctx, "writer@example.com", "wrong-pass")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestUserService_Integration_Register_EmailTaken(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	svc := services.NewUserService(tdb.DB)
	ctx := context.Background()

	_, err := svc.Register(ctx, "taken@example.com", "First", "s3cret-pass")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "taken@example.com", "Second", "other-pass")
	assert.ErrorIs(t, err, services.ErrEmailTaken)
}

func TestUserService_Integration_FindOrCreateFromOAuth(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	svc := services.NewUserService(tdb.DB)
	ctx := context.Background()

	info := &oauth.UserInfo{
		Email:     "oauth@example.com",
		Name:      "OAuth User",
		AvatarURL: "https://example.com/avatar.png",
		ID:        "google-12345",
		Provider:  "google",
	}

	user1, err := svc.FindOrCreateFromOAuth(ctx, info)
	require.NoError(t, err)
	assert.Equal(t, info.Email, user1.Email)
	assert.Equal(t, info.Provider, user1.Provider)
	assert.Equal(t, info.ID, user1.ProviderID)

	// Same provider identity resolves to the same account.
	user2, err := svc.FindOrCreateFromOAuth(ctx, info)
	require.NoError(t, err)
	assert.Equal(t, user1.ID, user2.ID)
}

func TestUserService_Integration_Update(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	svc := services.NewUserService(tdb.DB)
	ctx := context.Background()

	created, err := svc.Register(ctx, "rename@example.com", "Original", "s3cret-pass")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, "New Name")
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "New Name", updated.Name)

	fetched, err := svc.GetByEmail(ctx, "rename@example.com")
	require.NoError(t, err)
	assert.Equal(t, "New Name", fetched.Name)
}
