package controllers

import (
	"context"
	"testing"

	"edrina-resto/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDefaultsIsIdempotent(t *testing.T) {
	var store []models.User
	countAdmins := func(context.Context) (int64, error) {
		var n int64
		for _, u := range store {
			if u.Role == models.RoleAdmin {
				n++
			}
		}
		return n, nil
	}
	insertAdmin := func(_ context.Context, admin models.User) error {
		store = append(store, admin)
		return nil
	}

	seeded, err := seedDefaults(context.Background(), countAdmins, insertAdmin)
	require.NoError(t, err)
	assert.True(t, seeded)
	require.Len(t, store, 1)

	admin := store[0]
	assert.Equal(t, models.RoleAdmin, admin.Role)
	require.NotNil(t, admin.Username)
	assert.Equal(t, defaultAdminUsername, *admin.Username)
	require.NotNil(t, admin.Password)
	assert.True(t, VerifyPassword(defaultAdminPassword, *admin.Password))
	assert.NotEmpty(t, admin.User_id)

	// A second call must not duplicate the admin.
	seeded, err = seedDefaults(context.Background(), countAdmins, insertAdmin)
	require.NoError(t, err)
	assert.False(t, seeded)
	assert.Len(t, store, 1)
}

func TestSeedDefaultsSkipsWhenAdminExists(t *testing.T) {
	inserted := false
	seeded, err := seedDefaults(context.Background(),
		func(context.Context) (int64, error) { return 1, nil },
		func(context.Context, models.User) error { inserted = true; return nil },
	)
	require.NoError(t, err)
	assert.False(t, seeded)
	assert.False(t, inserted)
}
