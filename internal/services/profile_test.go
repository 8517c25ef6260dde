package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"tempora-backend/internal/models"
)

func TestProfileGetUnset(t *testing.T) {
	svc := NewProfileService(&fakeProfileStore{})

	profile, err := svc.Get(context.Background())
	require.NoError(t, err)
	require.Nil(t, profile)
}

func TestProfileSaveAndOverwrite(t *testing.T) {
	svc := NewProfileService(&fakeProfileStore{})

	saved, err := svc.Save(context.Background(), models.UserProfileRequest{Nickname: "  Mina  "})
	require.NoError(t, err)
	require.Equal(t, "Mina", saved.Nickname)

	saved, err = svc.Save(context.Background(), models.UserProfileRequest{Nickname: "Minji"})
	require.NoError(t, err)
	require.Equal(t, "Minji", saved.Nickname)
	require.Equal(t, int64(1), saved.ID)

	profile, err := svc.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Minji", profile.Nickname)
}

func TestProfileSaveValidation(t *testing.T) {
	svc := NewProfileService(&fakeProfileStore{})

	for _, nickname := range []string{"", "   ", strings.Repeat("a", 51)} {
		_, err := svc.Save(context.Background(), models.UserProfileRequest{Nickname: nickname})
		var validation *ValidationError
		require.ErrorAs(t, err, &validation)
	}

	// Exactly 50 runes is allowed.
	_, err := svc.Save(context.Background(), models.UserProfileRequest{Nickname: strings.Repeat("a", 50)})
	require.NoError(t, err)
}
