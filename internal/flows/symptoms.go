package flows

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"healthbot/internal/content"
	"healthbot/internal/flow"
	"healthbot/internal/reply"
)

const (
	stateChooseCategory   flow.StateID = "choose_category"
	stateAwaitDescription flow.StateID = "await_description"

	scratchCategory = "category"
)

// symptomsFlow: pick a category, describe the symptoms, get the
// category's triage advice. Nothing is persisted; the triage is logged.
func (a *app) symptomsFlow() *flow.Flow {
	return &flow.Flow{
		ID: SymptomsFlowID,
		Entry: []flow.Transition{
			{Match: flow.Callback(cbSymptomsCategory), Handler: a.symptomsStart},
			// A category button can arrive without the menu step, e.g.
			// from a stale message; accept it as a direct entry.
			{Match: flow.CallbackPrefix(symCatPrefix), Handler: a.symptomsCategory},
		},
		States: map[flow.StateID][]flow.Transition{
			stateChooseCategory: {
				{Match: flow.CallbackPrefix(symCatPrefix), Handler: a.symptomsCategory},
			},
			stateAwaitDescription: {
				{Match: flow.AnyText(), Handler: a.symptomsDescription},
			},
		},
	}
}

func (a *app) categoryActions() []reply.Action {
	actions := make([]reply.Action, 0, len(a.content.Categories)+1)
	for _, c := range a.content.Categories {
		actions = append(actions, reply.Action{Label: c.Label, Event: symCatPrefix + c.ID})
	}
	return append(actions, backToMenu())
}

func (a *app) symptomsStart(ctx context.Context, req *flow.Request) (*flow.Result, error) {
	return &flow.Result{
		Next: stateChooseCategory,
		Reply: reply.Text(req.AccountID, "Choose a symptom category:").
			WithActions(a.categoryActions()...),
	}, nil
}

func (a *app) symptomsCategory(ctx context.Context, req *flow.Request) (*flow.Result, error) {
	id := strings.TrimPrefix(req.Event.Callback, symCatPrefix)
	cat, ok := a.content.CategoryByID(id)
	if !ok {
		return &flow.Result{
			Next: stateChooseCategory,
			Reply: reply.Text(req.AccountID, "That category is not available. Choose a symptom category:").
				WithActions(a.categoryActions()...),
		}, nil
	}

	req.Scratch[scratchCategory] = cat.ID
	return &flow.Result{
		Next: stateAwaitDescription,
		Reply: reply.Textf(req.AccountID,
			"You chose: %s.\nNow describe your symptoms in as much detail as you can:", cat.Label).
			WithActions(backToMenu()),
	}, nil
}

func (a *app) symptomsDescription(ctx context.Context, req *flow.Request) (*flow.Result, error) {
	desc := content.Normalize(req.Event.Text)
	if desc == "" {
		return &flow.Result{
			Next:  stateAwaitDescription,
			Reply: reply.Text(req.AccountID, "Please describe your symptoms in a few words:"),
		}, nil
	}

	cat, _ := a.content.CategoryByID(req.Scratch[scratchCategory])
	label := cat.Label
	if label == "" {
		label = "not specified"
	}

	slog.Info("symptom triage recorded",
		"account", req.AccountID,
		"category", req.Scratch[scratchCategory],
	)

	text := fmt.Sprintf("Thank you. Symptoms in category '%s' noted.", label)
	if cat.Advice != "" {
		text += "\n\n" + cat.Advice
	}
	text += "\n\nThis is not a diagnosis - consult a doctor for a proper assessment."

	return &flow.Result{
		Next:  flow.Terminal,
		Reply: mainMenu(req.AccountID, text),
	}, nil
}
