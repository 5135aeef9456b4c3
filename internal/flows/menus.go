package flows

import (
	"healthbot/internal/reply"
)

// Callback payloads shared across flows. The transport renders these as
// button data; matchers route on them.
const (
	cbMainMenu         = "main_menu"
	cbSymptomsCategory = "symptoms_category"
	cbFindMedicine     = "find_medicine"
	cbEmergencyHelp    = "emergency_help"
	cbWellbeingDiary   = "wellbeing_diary"
	cbMedReminder      = "med_reminder"

	cbDiaryAdd  = "diary_add_entry"
	cbDiaryView = "diary_view_entries"

	cbReminderAdd  = "reminder_add_new"
	cbReminderView = "reminder_view_all"

	cbAdminListUsers = "admin_list_users"
	cbAdminBan       = "admin_ban_user"
	cbAdminUnban     = "admin_unban_user"

	symCatPrefix = "sym_cat_"
	moodPrefix   = "mood_"
)

func mainMenuActions() []reply.Action {
	return []reply.Action{
		{Label: "Symptom categories", Event: cbSymptomsCategory},
		{Label: "Find a medicine", Event: cbFindMedicine},
		{Label: "Emergency help", Event: cbEmergencyHelp},
		{Label: "Wellbeing diary", Event: cbWellbeingDiary},
		{Label: "Medication reminders", Event: cbMedReminder},
	}
}

// mainMenu builds the main menu reply with the given lead text.
func mainMenu(accountID int64, text string) *reply.Reply {
	return reply.Text(accountID, text).WithActions(mainMenuActions()...)
}

func backToMenu() reply.Action {
	return reply.Action{Label: "Main menu", Event: cbMainMenu}
}

func diaryMenu(accountID int64, text string) *reply.Reply {
	return reply.Text(accountID, text).WithActions(
		reply.Action{Label: "Add an entry", Event: cbDiaryAdd},
		reply.Action{Label: "View entries", Event: cbDiaryView},
		backToMenu(),
	)
}

func reminderMenu(accountID int64, text string) *reply.Reply {
	return reply.Text(accountID, text).WithActions(
		reply.Action{Label: "Add a reminder", Event: cbReminderAdd},
		reply.Action{Label: "View reminders", Event: cbReminderView},
		backToMenu(),
	)
}

func adminMenu(accountID int64, text string) *reply.Reply {
	return reply.Text(accountID, text).WithActions(
		reply.Action{Label: "List recent accounts", Event: cbAdminListUsers},
		reply.Action{Label: "Ban an account", Event: cbAdminBan},
		reply.Action{Label: "Unban an account", Event: cbAdminUnban},
		backToMenu(),
	)
}
