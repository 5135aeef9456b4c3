package guard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAccounts struct {
	banned     map[int64]bool
	registered map[int64]bool
	err        error
}

func (f *fakeAccounts) IsBanned(_ context.Context, id int64) (bool, error) {
	return f.banned[id], f.err
}

func (f *fakeAccounts) IsRegistered(_ context.Context, id int64) (bool, error) {
	return f.registered[id], f.err
}

type fakeSessions struct {
	cleared []int64
}

func (f *fakeSessions) Clear(accountID int64) {
	f.cleared = append(f.cleared, accountID)
}

func TestCheck_Allowed(t *testing.T) {
	sessions := &fakeSessions{}
	g := New(&fakeAccounts{registered: map[int64]bool{1: true}}, sessions, "registration")

	decision, r, err := g.Check(context.Background(), 1, "diary")
	require.NoError(t, err)
	assert.Equal(t, Allowed, decision)
	assert.Nil(t, r)
	assert.Empty(t, sessions.cleared)
}

func TestCheck_BannedDenied(t *testing.T) {
	sessions := &fakeSessions{}
	accounts := &fakeAccounts{
		banned:     map[int64]bool{2: true},
		registered: map[int64]bool{2: true},
	}
	g := New(accounts, sessions, "registration")

	decision, r, err := g.Check(context.Background(), 2, "diary")
	require.NoError(t, err)
	assert.Equal(t, Denied, decision)
	require.NotNil(t, r)
	assert.Equal(t, int64(2), r.AccountID)
	assert.Contains(t, r.Text, "blocked")
	assert.Equal(t, []int64{2}, sessions.cleared)
}

func TestCheck_BannedOutranksRegistration(t *testing.T) {
	// A banned account is denied even when heading for the registration
	// flow.
	sessions := &fakeSessions{}
	g := New(&fakeAccounts{banned: map[int64]bool{3: true}}, sessions, "registration")

	decision, r, err := g.Check(context.Background(), 3, "registration")
	require.NoError(t, err)
	assert.Equal(t, Denied, decision)
	require.NotNil(t, r)
	assert.Contains(t, r.Text, "blocked")
}

func TestCheck_UnregisteredDenied(t *testing.T) {
	sessions := &fakeSessions{}
	g := New(&fakeAccounts{}, sessions, "registration")

	decision, r, err := g.Check(context.Background(), 4, "diary")
	require.NoError(t, err)
	assert.Equal(t, Denied, decision)
	require.NotNil(t, r)
	assert.Contains(t, r.Text, "/register")
	assert.Equal(t, []int64{4}, sessions.cleared)
}

func TestCheck_UnregisteredAllowedIntoRegistration(t *testing.T) {
	sessions := &fakeSessions{}
	g := New(&fakeAccounts{}, sessions, "registration")

	decision, r, err := g.Check(context.Background(), 4, "registration")
	require.NoError(t, err)
	assert.Equal(t, Allowed, decision)
	assert.Nil(t, r)
	assert.Empty(t, sessions.cleared)
}

func TestCheck_LookupError(t *testing.T) {
	boom := errors.New("database locked")
	sessions := &fakeSessions{}
	g := New(&fakeAccounts{err: boom}, sessions, "registration")

	decision, r, err := g.Check(context.Background(), 5, "diary")
	require.ErrorIs(t, err, boom)
	assert.Equal(t, Denied, decision)
	assert.Nil(t, r)
	assert.Empty(t, sessions.cleared)
}
