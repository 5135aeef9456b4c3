package flows

import (
	"context"
	"fmt"
	"strings"

	"healthbot/internal/content"
	"healthbot/internal/flow"
	"healthbot/internal/reply"
	"healthbot/internal/store"
)

const (
	stateReminderMenu   flow.StateID = "reminder_menu"
	stateAwaitMedName   flow.StateID = "await_med_name"
	stateAwaitDosage    flow.StateID = "await_dosage"
	stateAwaitTime      flow.StateID = "await_time"
	stateAwaitFrequency flow.StateID = "await_frequency"

	scratchMedName = "med_name"
	scratchDosage  = "dosage"
	scratchTime    = "time"
)

// reminderFlow: MENU branches into a four-step add dialog (name, dosage,
// time, frequency) or viewing existing reminders.
func (a *app) reminderFlow() *flow.Flow {
	return &flow.Flow{
		ID: ReminderFlowID,
		Entry: []flow.Transition{
			{Match: flow.Callback(cbMedReminder), Handler: a.reminderStart},
		},
		States: map[flow.StateID][]flow.Transition{
			stateReminderMenu: {
				{Match: flow.Callback(cbReminderAdd), Handler: a.reminderAdd},
				{Match: flow.Callback(cbReminderView), Handler: a.reminderView},
			},
			stateAwaitMedName: {
				{Match: flow.AnyText(), Handler: a.reminderMedName},
			},
			stateAwaitDosage: {
				{Match: flow.AnyText(), Handler: a.reminderDosage},
			},
			stateAwaitTime: {
				{Match: flow.AnyText(), Handler: a.reminderTime},
			},
			stateAwaitFrequency: {
				{Match: flow.AnyText(), Handler: a.reminderFrequency},
			},
		},
	}
}

func (a *app) reminderStart(ctx context.Context, req *flow.Request) (*flow.Result, error) {
	return &flow.Result{
		Next:  stateReminderMenu,
		Reply: reminderMenu(req.AccountID, "Medication reminders. What would you like to do?"),
	}, nil
}

func (a *app) reminderAdd(ctx context.Context, req *flow.Request) (*flow.Result, error) {
	return &flow.Result{
		Next: stateAwaitMedName,
		Reply: reply.Text(req.AccountID, "What medication is the reminder for? Send its name:").
			WithActions(backToMenu()),
	}, nil
}

func (a *app) reminderMedName(ctx context.Context, req *flow.Request) (*flow.Result, error) {
	name := content.Normalize(req.Event.Text)
	if name == "" {
		return &flow.Result{
			Next:  stateAwaitMedName,
			Reply: reply.Text(req.AccountID, "The medication name cannot be empty. Send its name:"),
		}, nil
	}

	req.Scratch[scratchMedName] = name
	return &flow.Result{
		Next: stateAwaitDosage,
		Reply: reply.Textf(req.AccountID,
			"%s - got it. What dosage? (e.g. '1 tablet', '10 ml')", name).
			WithActions(backToMenu()),
	}, nil
}

func (a *app) reminderDosage(ctx context.Context, req *flow.Request) (*flow.Result, error) {
	req.Scratch[scratchDosage] = content.Normalize(req.Event.Text)
	return &flow.Result{
		Next: stateAwaitTime,
		Reply: reply.Text(req.AccountID,
			"At what time should I remind you? Use 24-hour HH:MM, e.g. 09:00:").
			WithActions(backToMenu()),
	}, nil
}

func (a *app) reminderTime(ctx context.Context, req *flow.Request) (*flow.Result, error) {
	t, err := ParseClock(req.Event.Text)
	if err != nil {
		// Validation error: stay in state with a corrective prompt.
		return &flow.Result{
			Next: stateAwaitTime,
			Reply: reply.Text(req.AccountID,
				"That doesn't look like a valid time. Use 24-hour HH:MM, e.g. 09:00:"),
		}, nil
	}

	req.Scratch[scratchTime] = t
	return &flow.Result{
		Next: stateAwaitFrequency,
		Reply: reply.Text(req.AccountID,
			"How often should the reminder repeat? (e.g. 'daily', 'every other day')").
			WithActions(backToMenu()),
	}, nil
}

func (a *app) reminderFrequency(ctx context.Context, req *flow.Request) (*flow.Result, error) {
	frequency := content.Normalize(req.Event.Text)

	rem := store.Reminder{
		AccountID: req.AccountID,
		MedName:   req.Scratch[scratchMedName],
		Dosage:    req.Scratch[scratchDosage],
		RemindAt:  req.Scratch[scratchTime],
		Frequency: frequency,
	}
	if _, err := a.store.AddReminder(ctx, rem); err != nil {
		return nil, err
	}

	text := fmt.Sprintf("Reminder saved: %s, %s at %s (%s).",
		rem.MedName, rem.Dosage, rem.RemindAt, rem.Frequency)
	return &flow.Result{
		Next:  flow.Terminal,
		Reply: mainMenu(req.AccountID, text+"\n\nAnything else?"),
	}, nil
}

func (a *app) reminderView(ctx context.Context, req *flow.Request) (*flow.Result, error) {
	reminders, err := a.store.ListReminders(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}

	if len(reminders) == 0 {
		return &flow.Result{
			Next:  stateReminderMenu,
			Reply: reminderMenu(req.AccountID, "You have no reminders yet. Add your first one!"),
		}, nil
	}

	var b strings.Builder
	b.WriteString("Your reminders:\n")
	for _, r := range reminders {
		status := "on"
		if !r.Enabled {
			status = "off"
		}
		fmt.Fprintf(&b, "\n%s - %s at %s, %s [%s]", r.MedName, r.Dosage, r.RemindAt, r.Frequency, status)
	}

	return &flow.Result{
		Next:  stateReminderMenu,
		Reply: reminderMenu(req.AccountID, b.String()),
	}, nil
}
