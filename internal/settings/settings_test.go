package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DashboardPro/internal/apperr"
)

func TestSave(t *testing.T) {
	ctx := context.Background()
	s := NewStore(Default())

	p := Default()
	p.Company = "  Globex  "
	got, err := s.Save(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, "Globex", got.Company)
	assert.Equal(t, got, s.Get(ctx))
}

func TestSave_RequiresNameAndEmail(t *testing.T) {
	ctx := context.Background()
	s := NewStore(Default())

	_, err := s.Save(ctx, Profile{Email: "x@y.z"})
	fe, ok := apperr.Field(err)
	require.True(t, ok)
	assert.Equal(t, "name", fe.Field)

	_, err = s.Save(ctx, Profile{Name: "X"})
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Equal(t, Default(), s.Get(ctx))
}

func TestToggleNotifications(t *testing.T) {
	ctx := context.Background()
	s := NewStore(Default())

	assert.False(t, s.ToggleNotifications(ctx).Notifications)
	assert.True(t, s.ToggleNotifications(ctx).Notifications)
}
