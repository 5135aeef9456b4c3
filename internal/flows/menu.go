package flows

import (
	"context"
	"fmt"

	"healthbot/internal/flow"
)

// startFlow greets a registered account with the main menu. It has no
// states: the entry handler terminates immediately. Unregistered
// accounts never reach it - the guard redirects them to registration.
func (a *app) startFlow() *flow.Flow {
	return &flow.Flow{
		ID: StartFlowID,
		Entry: []flow.Transition{
			{Match: flow.Command("start"), Handler: a.start},
		},
	}
}

func (a *app) start(ctx context.Context, req *flow.Request) (*flow.Result, error) {
	acc, ok, err := a.store.GetAccount(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}

	text := "Welcome to the health assistant! What would you like to do?"
	if ok {
		text = fmt.Sprintf("Welcome back, %s! What would you like to do?", acc.DisplayName)
	}
	return &flow.Result{
		Next:  flow.Terminal,
		Reply: mainMenu(req.AccountID, text),
	}, nil
}

// emergencyFlow renders the static emergency help text. Stateless.
func (a *app) emergencyFlow() *flow.Flow {
	return &flow.Flow{
		ID: EmergencyFlowID,
		Entry: []flow.Transition{
			{Match: flow.Callback(cbEmergencyHelp), Handler: a.emergency},
		},
	}
}

func (a *app) emergency(ctx context.Context, req *flow.Request) (*flow.Result, error) {
	return &flow.Result{
		Next:  flow.Terminal,
		Reply: mainMenu(req.AccountID, a.content.Emergency),
	}, nil
}

// cancel is the global fallback that aborts any dialog from any state.
// It bypasses the access gate so a blocked user can always back out.
func (a *app) cancel(ctx context.Context, req *flow.Request) (*flow.Result, error) {
	return &flow.Result{
		Next:  flow.Terminal,
		Reply: mainMenu(req.AccountID, "Cancelled. What would you like to do?"),
	}, nil
}

// returnToMenu is the global return-to-main-menu fallback.
func (a *app) returnToMenu(ctx context.Context, req *flow.Request) (*flow.Result, error) {
	return &flow.Result{
		Next:  flow.Terminal,
		Reply: mainMenu(req.AccountID, "Main menu. What would you like to do?"),
	}, nil
}
