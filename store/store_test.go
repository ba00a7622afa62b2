// file: store/store_test.go
package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-cfp/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func testAccount(email string) models.Account {
	return models.Account{
		Email:        email,
		PasswordHash: "$2a$10$fakehash",
		FirstName:    "Jane",
		LastName:     "Doe",
		Activated:    true,
	}
}

func TestCreateAccount_DuplicateEmail(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.CreateAccount(ctx, testAccount("jane@example.com"))
	require.NoError(t, err)
	assert.Positive(t, id)

	_, err = s.CreateAccount(ctx, testAccount("jane@example.com"))
	assert.ErrorIs(t, err, ErrAccountExists)
}

func TestGetAccountByEmail(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.CreateAccount(ctx, testAccount("jane@example.com"))
	require.NoError(t, err)

	acct, err := s.GetAccountByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, acct.ID)
	assert.Equal(t, "Jane", acct.FirstName)
	assert.True(t, acct.Activated)

	_, err = s.GetAccountByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAssignGroup(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.CreateAccount(ctx, testAccount("jane@example.com"))
	require.NoError(t, err)

	require.NoError(t, s.AssignGroup(ctx, id, SpeakersGroup))
	// assigning twice is harmless
	require.NoError(t, s.AssignGroup(ctx, id, SpeakersGroup))

	groups, err := s.AccountGroups(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{SpeakersGroup}, groups)

	err = s.AssignGroup(ctx, id, "NoSuchGroup")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveAndGetProfile(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.CreateAccount(ctx, testAccount("jane@example.com"))
	require.NoError(t, err)

	profile := models.SpeakerProfile{
		AccountID: id,
		Bio:       "I speak at conferences",
		Info:      "Vegetarian",
		Airport:   "LHR",
		PhotoPath: "Jane.Doe.01ABC.png",
	}
	require.NoError(t, s.SaveProfile(ctx, profile))

	got, err := s.GetProfile(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, &profile, got)

	// saving again updates in place
	profile.Bio = "Updated bio"
	require.NoError(t, s.SaveProfile(ctx, profile))
	got, err = s.GetProfile(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Updated bio", got.Bio)

	_, err = s.GetProfile(ctx, id+999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListSpeakers_Pagination(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	names := []string{"Adams", "Baker", "Clark", "Davis", "Evans"}
	for _, last := range names {
		acct := testAccount(last + "@example.com")
		acct.LastName = last
		id, err := s.CreateAccount(ctx, acct)
		require.NoError(t, err)
		require.NoError(t, s.SaveProfile(ctx, models.SpeakerProfile{AccountID: id, Airport: "LHR"}))
	}

	page1, total, err := s.ListSpeakers(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, page1, 2)
	assert.Equal(t, "Adams", page1[0].Account.LastName)
	assert.Equal(t, "Baker", page1[1].Account.LastName)
	assert.Equal(t, "LHR", page1[0].Profile.Airport)

	page3, _, err := s.ListSpeakers(ctx, 3, 2)
	require.NoError(t, err)
	require.Len(t, page3, 1)
	assert.Equal(t, "Evans", page3[0].Account.LastName)
}

func TestListSpeakers_ExcludesAdmins(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	admin := testAccount("admin@example.com")
	admin.IsAdmin = true
	_, err := s.CreateAccount(ctx, admin)
	require.NoError(t, err)

	_, err = s.CreateAccount(ctx, testAccount("speaker@example.com"))
	require.NoError(t, err)

	speakers, total, err := s.ListSpeakers(ctx, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, speakers, 1)
	assert.Equal(t, "speaker@example.com", speakers[0].Account.Email)
}

func TestDeleteSpeaker_CascadesProfileAndGroups(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.CreateAccount(ctx, testAccount("jane@example.com"))
	require.NoError(t, err)
	require.NoError(t, s.AssignGroup(ctx, id, SpeakersGroup))
	require.NoError(t, s.SaveProfile(ctx, models.SpeakerProfile{AccountID: id, Airport: "LHR"}))

	require.NoError(t, s.DeleteSpeaker(ctx, id))

	_, err = s.GetAccountByEmail(ctx, "jane@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetProfile(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)

	groups, err := s.AccountGroups(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, groups)

	assert.ErrorIs(t, s.DeleteSpeaker(ctx, id), ErrNotFound)
}

func TestGetSpeaker(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.CreateAccount(ctx, testAccount("jane@example.com"))
	require.NoError(t, err)

	// profile row may not exist yet; the join must still return the account
	sp, err := s.GetSpeaker(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", sp.Account.Email)
	assert.Equal(t, "", sp.Profile.PhotoPath)

	_, err = s.GetSpeaker(ctx, id+999)
	assert.ErrorIs(t, err, ErrNotFound)
}
