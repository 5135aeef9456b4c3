package flows

import (
	"context"
	"fmt"
	"log/slog"

	"healthbot/internal/content"
	"healthbot/internal/flow"
	"healthbot/internal/reply"
)

const stateAwaitName flow.StateID = "await_name"

// registrationFlow is the only flow reachable to unregistered accounts.
// A single AWAIT_NAME state collects the display name.
func (a *app) registrationFlow() *flow.Flow {
	return &flow.Flow{
		ID: RegistrationFlowID,
		Entry: []flow.Transition{
			{Match: flow.Command("register"), Handler: a.registerStart},
		},
		States: map[flow.StateID][]flow.Transition{
			stateAwaitName: {
				{Match: flow.AnyText(), Handler: a.registerName},
			},
		},
	}
}

func (a *app) registerStart(ctx context.Context, req *flow.Request) (*flow.Result, error) {
	acc, ok, err := a.store.GetAccount(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	if ok {
		// Already registered: report the stored name, no write.
		return &flow.Result{
			Next: flow.Terminal,
			Reply: mainMenu(req.AccountID,
				fmt.Sprintf("You are already registered as %s.", acc.DisplayName)),
		}, nil
	}

	return &flow.Result{
		Next:  stateAwaitName,
		Reply: reply.Text(req.AccountID, "Let's get you registered. What name should I use for you?"),
	}, nil
}

func (a *app) registerName(ctx context.Context, req *flow.Request) (*flow.Result, error) {
	name := content.Normalize(req.Event.Text)
	if name == "" {
		// Validation error: re-prompt, session unchanged.
		return &flow.Result{
			Next:  stateAwaitName,
			Reply: reply.Text(req.AccountID, "The name cannot be empty. What name should I use for you?"),
		}, nil
	}

	created, err := a.store.CreateAccount(ctx, req.AccountID, name)
	if err != nil {
		return nil, err
	}
	if created {
		slog.Info("account registered", "account", req.AccountID)
	}

	return &flow.Result{
		Next: flow.Terminal,
		Reply: mainMenu(req.AccountID,
			fmt.Sprintf("Registration complete. Welcome, %s!", name)),
	}, nil
}
