// Package flows defines the six conversation flows - registration,
// symptom triage, medicine lookup, wellbeing diary, medication reminders
// and the admin console - as declarative state tables over the flow
// registry, plus the stateless start and emergency entries and the
// global cancel / return-to-menu fallbacks.
package flows

import (
	"healthbot/internal/content"
	"healthbot/internal/flow"
	"healthbot/internal/session"
	"healthbot/internal/store"
)

// Flow ids. The guard needs RegistrationFlowID to exempt registration
// from the registered-accounts-only rule.
const (
	RegistrationFlowID = "registration"
	SymptomsFlowID     = "symptoms"
	MedicineFlowID     = "medicine"
	DiaryFlowID        = "diary"
	ReminderFlowID     = "reminder"
	AdminFlowID        = "admin"
	StartFlowID        = "start"
	EmergencyFlowID    = "emergency"
)

// Deps wires the handlers to their collaborators.
type Deps struct {
	Store    *store.Store
	Sessions *session.Store
	Content  *content.Pack
}

// app hosts the flow handlers.
type app struct {
	store    *store.Store
	sessions *session.Store
	content  *content.Pack
}

// NewRegistry builds the complete validated flow registry. An error here
// is a configuration error and should abort startup.
func NewRegistry(deps Deps) (*flow.Registry, error) {
	a := &app{
		store:    deps.Store,
		sessions: deps.Sessions,
		content:  deps.Content,
	}
	if a.content == nil {
		a.content = content.Default()
	}

	flows := []*flow.Flow{
		a.startFlow(),
		a.registrationFlow(),
		a.symptomsFlow(),
		a.medicineFlow(),
		a.emergencyFlow(),
		a.diaryFlow(),
		a.reminderFlow(),
		a.adminFlow(),
	}

	globals := []flow.Transition{
		// Cancel must stay reachable to blocked users, so it bypasses
		// the access gate.
		{Match: flow.Command("cancel"), Handler: a.cancel, SkipGuard: true},
		{Match: flow.Callback("main_menu"), Handler: a.returnToMenu},
	}

	return flow.NewRegistry(flows, globals)
}
