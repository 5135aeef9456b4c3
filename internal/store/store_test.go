package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestStore opens an in-memory database with a controllable clock.
// Advancing *now between writes keeps timestamp ordering deterministic.
func openTestStore(t *testing.T) (*Store, *time.Time) {
	t.Helper()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s, err := Open(":memory:", WithClock(func() time.Time { return now }))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, &now
}

func TestOpen_Idempotent(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/health.db"

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.CreateAccount(context.Background(), 1, "Anna")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// Re-opening applies the schema again without clobbering data.
	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	registered, err := s.IsRegistered(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, registered)
}

func TestCreateAccount_Idempotent(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	created, err := s.CreateAccount(ctx, 42, "Anna")
	require.NoError(t, err)
	assert.True(t, created)

	banned, err := s.SetBanned(ctx, 42, true)
	require.NoError(t, err)
	assert.True(t, banned)

	// Second create is a no-op: display name and banned flag survive.
	created, err = s.CreateAccount(ctx, 42, "Impostor")
	require.NoError(t, err)
	assert.False(t, created)

	a, ok, err := s.GetAccount(ctx, 42)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Anna", a.DisplayName)
	assert.True(t, a.Banned)
}

func TestGetAccount_Unknown(t *testing.T) {
	s, _ := openTestStore(t)

	_, ok, err := s.GetAccount(context.Background(), 99)
	require.NoError(t, err)
	assert.False(t, ok)

	registered, err := s.IsRegistered(context.Background(), 99)
	require.NoError(t, err)
	assert.False(t, registered)

	banned, err := s.IsBanned(context.Background(), 99)
	require.NoError(t, err)
	assert.False(t, banned)
}

func TestSetBanned(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	_, err := s.CreateAccount(ctx, 1, "Boris")
	require.NoError(t, err)

	updated, err := s.SetBanned(ctx, 1, true)
	require.NoError(t, err)
	assert.True(t, updated)

	banned, err := s.IsBanned(ctx, 1)
	require.NoError(t, err)
	assert.True(t, banned)

	updated, err = s.SetBanned(ctx, 1, false)
	require.NoError(t, err)
	assert.True(t, updated)

	banned, err = s.IsBanned(ctx, 1)
	require.NoError(t, err)
	assert.False(t, banned)

	// Unknown account: no-op, not an error.
	updated, err = s.SetBanned(ctx, 99, true)
	require.NoError(t, err)
	assert.False(t, updated)
}

func TestListRecentAccounts(t *testing.T) {
	s, now := openTestStore(t)
	ctx := context.Background()

	for i, name := range []string{"Anna", "Boris", "Clara"} {
		_, err := s.CreateAccount(ctx, int64(i+1), name)
		require.NoError(t, err)
		*now = now.Add(time.Minute)
	}

	accounts, err := s.ListRecentAccounts(ctx, 2)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "Clara", accounts[0].DisplayName)
	assert.Equal(t, "Boris", accounts[1].DisplayName)
}

func TestAddDiaryEntry_RoundTrip(t *testing.T) {
	s, now := openTestStore(t)
	ctx := context.Background()

	_, err := s.CreateAccount(ctx, 1, "Anna")
	require.NoError(t, err)

	id, omitted, err := s.AddDiaryEntry(ctx, DiaryEntry{
		AccountID: 1,
		Mood:      "Good",
		Symptoms:  "slight headache",
		Notes:     "after long screen time",
	}, OptionalNotes)
	require.NoError(t, err)
	assert.Empty(t, omitted)
	assert.Positive(t, id)

	*now = now.Add(time.Hour)
	_, _, err = s.AddDiaryEntry(ctx, DiaryEntry{
		AccountID: 1,
		Mood:      "Okay",
		Symptoms:  "none",
	}, OptionalNotes)
	require.NoError(t, err)

	entries, err := s.ListDiaryEntries(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, "Okay", entries[0].Mood)
	assert.Equal(t, "Good", entries[1].Mood)
	assert.Equal(t, "after long screen time", entries[1].Notes)
	assert.Equal(t, int64(1), entries[1].AccountID)
}

func TestListDiaryEntries_Limit(t *testing.T) {
	s, now := openTestStore(t)
	ctx := context.Background()

	_, err := s.CreateAccount(ctx, 1, "Anna")
	require.NoError(t, err)

	for i := 0; i < 7; i++ {
		_, _, err := s.AddDiaryEntry(ctx, DiaryEntry{
			AccountID: 1,
			Mood:      "Good",
			Symptoms:  "none",
		}, NoFallback)
		require.NoError(t, err)
		*now = now.Add(time.Minute)
	}

	entries, err := s.ListDiaryEntries(ctx, 1, 5)
	require.NoError(t, err)
	assert.Len(t, entries, 5)
}

func TestAddDiaryEntry_NotesColumnMissing(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	_, err := s.CreateAccount(ctx, 1, "Anna")
	require.NoError(t, err)

	// Simulate an older database file created before the notes column
	// existed.
	_, err = s.DB().Exec(`ALTER TABLE diary_entries DROP COLUMN notes`)
	require.NoError(t, err)

	id, omitted, err := s.AddDiaryEntry(ctx, DiaryEntry{
		AccountID: 1,
		Mood:      "Bad",
		Symptoms:  "fever",
		Notes:     "lost on insert",
	}, OptionalNotes)
	require.NoError(t, err)
	assert.Positive(t, id)
	assert.Equal(t, []string{"notes"}, omitted)

	var mood string
	err = s.DB().QueryRow(`SELECT mood FROM diary_entries WHERE id = ?`, id).Scan(&mood)
	require.NoError(t, err)
	assert.Equal(t, "Bad", mood)
}

func TestAddDiaryEntry_NoFallbackFails(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	_, err := s.CreateAccount(ctx, 1, "Anna")
	require.NoError(t, err)

	_, err = s.DB().Exec(`ALTER TABLE diary_entries DROP COLUMN notes`)
	require.NoError(t, err)

	_, _, err = s.AddDiaryEntry(ctx, DiaryEntry{
		AccountID: 1,
		Mood:      "Bad",
		Symptoms:  "fever",
	}, NoFallback)
	require.Error(t, err)
}

func TestAddDiaryEntry_UnrelatedErrorNotMasked(t *testing.T) {
	s, _ := openTestStore(t)

	// Foreign key violation: account 99 does not exist. The fallback
	// policy must not swallow it.
	_, omitted, err := s.AddDiaryEntry(context.Background(), DiaryEntry{
		AccountID: 99,
		Mood:      "Good",
		Symptoms:  "none",
	}, OptionalNotes)
	require.Error(t, err)
	assert.Empty(t, omitted)
	assert.Contains(t, err.Error(), "FOREIGN KEY")
}

func TestAddReminder_RoundTrip(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	_, err := s.CreateAccount(ctx, 1, "Anna")
	require.NoError(t, err)

	id, err := s.AddReminder(ctx, Reminder{
		AccountID: 1,
		MedName:   "Ibuprofen",
		Dosage:    "200mg",
		RemindAt:  "09:00",
		Frequency: "daily",
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	_, err = s.AddReminder(ctx, Reminder{
		AccountID: 1,
		MedName:   "Vitamin D",
		Dosage:    "1 capsule",
		RemindAt:  "08:30",
		Frequency: "daily",
	})
	require.NoError(t, err)

	reminders, err := s.ListReminders(ctx, 1)
	require.NoError(t, err)
	require.Len(t, reminders, 2)

	// Ordered by time of day.
	assert.Equal(t, "Vitamin D", reminders[0].MedName)
	assert.Equal(t, "Ibuprofen", reminders[1].MedName)

	r := reminders[1]
	assert.Equal(t, "200mg", r.Dosage)
	assert.Equal(t, "09:00", r.RemindAt)
	assert.Equal(t, "daily", r.Frequency)
	assert.True(t, r.Enabled)
}

func TestSetReminderEnabled(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	_, err := s.CreateAccount(ctx, 1, "Anna")
	require.NoError(t, err)

	id, err := s.AddReminder(ctx, Reminder{
		AccountID: 1,
		MedName:   "Ibuprofen",
		Dosage:    "200mg",
		RemindAt:  "09:00",
		Frequency: "daily",
	})
	require.NoError(t, err)

	updated, err := s.SetReminderEnabled(ctx, id, false)
	require.NoError(t, err)
	assert.True(t, updated)

	reminders, err := s.ListReminders(ctx, 1)
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.False(t, reminders[0].Enabled)

	updated, err = s.SetReminderEnabled(ctx, 999, true)
	require.NoError(t, err)
	assert.False(t, updated)
}

func TestSeedAdmins(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SeedAdmins(ctx, []int64{10, 20}))

	// Re-seeding with overlap is idempotent.
	require.NoError(t, s.SeedAdmins(ctx, []int64{20, 30}))

	for _, id := range []int64{10, 20, 30} {
		ok, err := s.IsAdmin(ctx, id)
		require.NoError(t, err)
		assert.True(t, ok, "account %d", id)
	}

	ok, err := s.IsAdmin(ctx, 40)
	require.NoError(t, err)
	assert.False(t, ok)

	// Empty seed list is a no-op.
	require.NoError(t, s.SeedAdmins(ctx, nil))
}

func TestMissingColumn(t *testing.T) {
	tests := []struct {
		name       string
		msg        string
		candidates []string
		wantCol    string
		wantOK     bool
	}{
		{"insert phrasing", "table diary_entries has no column named notes", []string{"notes"}, "notes", true},
		{"select phrasing", "no such column: notes", []string{"notes"}, "notes", true},
		{"other column", "table diary_entries has no column named mood", []string{"notes"}, "", false},
		{"unrelated error", "FOREIGN KEY constraint failed", []string{"notes"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, ok := missingColumn(errors.New(tt.msg), tt.candidates)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantCol, col)
		})
	}

	_, ok := missingColumn(nil, []string{"notes"})
	assert.False(t, ok)
}
