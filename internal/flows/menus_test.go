package flows

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"healthbot/internal/content"
	"healthbot/internal/reply"
)

// The menu layouts are part of the user-facing contract: a button that
// silently disappears or changes its callback payload breaks every
// stored conversation. Golden files pin the rendered form.
func golden(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestMainMenuGolden(t *testing.T) {
	r := mainMenu(1, "Welcome to the health assistant! What would you like to do?")
	golden(t).Assert(t, "main_menu", []byte(r.Render()))
}

func TestDiaryMenuGolden(t *testing.T) {
	r := diaryMenu(1, "Welcome to the wellbeing diary! What would you like to do?")
	golden(t).Assert(t, "diary_menu", []byte(r.Render()))
}

func TestReminderMenuGolden(t *testing.T) {
	r := reminderMenu(1, "Medication reminders. What would you like to do?")
	golden(t).Assert(t, "reminder_menu", []byte(r.Render()))
}

func TestAdminMenuGolden(t *testing.T) {
	r := adminMenu(1, "Admin console. What would you like to do?")
	golden(t).Assert(t, "admin_menu", []byte(r.Render()))
}

func TestMoodPromptGolden(t *testing.T) {
	r := reply.Text(1, "How are you feeling today? Pick a mood:").
		WithActions(moodActions()...)
	golden(t).Assert(t, "mood_prompt", []byte(r.Render()))
}

func TestCategoryPromptGolden(t *testing.T) {
	a := &app{content: content.Default()}
	r := reply.Text(1, "Choose a symptom category:").
		WithActions(a.categoryActions()...)
	golden(t).Assert(t, "category_prompt", []byte(r.Render()))
}
