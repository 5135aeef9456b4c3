package flows

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"healthbot/internal/content"
	"healthbot/internal/flow"
	"healthbot/internal/reply"
)

const (
	stateAdminMenu     flow.StateID = "admin_menu"
	stateAwaitTargetID flow.StateID = "await_target_id"

	scratchAdminAction = "admin_action"

	adminListLimit = 10
)

// adminFlow is the interactive admin console plus the direct /ban and
// /unban commands. All of it is gated on admins-table membership, which
// the handlers check themselves - the general access guard does not know
// about admin roles.
func (a *app) adminFlow() *flow.Flow {
	return &flow.Flow{
		ID: AdminFlowID,
		Entry: []flow.Transition{
			{Match: flow.Command("admin"), Handler: a.adminStart},
			{Match: flow.Command("ban"), Handler: a.banCommand},
			{Match: flow.Command("unban"), Handler: a.unbanCommand},
		},
		States: map[flow.StateID][]flow.Transition{
			stateAdminMenu: {
				{Match: flow.Callback(cbAdminListUsers), Handler: a.adminListUsers},
				{Match: flow.Callback(cbAdminBan), Handler: a.adminAskTarget("ban")},
				{Match: flow.Callback(cbAdminUnban), Handler: a.adminAskTarget("unban")},
			},
			stateAwaitTargetID: {
				{Match: flow.AnyText(), Handler: a.adminTargetID},
			},
		},
	}
}

const notAuthorizedText = "This command is available to administrators only."

func (a *app) adminStart(ctx context.Context, req *flow.Request) (*flow.Result, error) {
	isAdmin, err := a.store.IsAdmin(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return &flow.Result{
			Next:  flow.Terminal,
			Reply: reply.Text(req.AccountID, notAuthorizedText),
		}, nil
	}

	return &flow.Result{
		Next:  stateAdminMenu,
		Reply: adminMenu(req.AccountID, "Admin console. What would you like to do?"),
	}, nil
}

func (a *app) adminListUsers(ctx context.Context, req *flow.Request) (*flow.Result, error) {
	accounts, err := a.store.ListRecentAccounts(ctx, adminListLimit)
	if err != nil {
		return nil, err
	}

	if len(accounts) == 0 {
		return &flow.Result{
			Next:  stateAdminMenu,
			Reply: adminMenu(req.AccountID, "No registered accounts yet."),
		}, nil
	}

	var b strings.Builder
	b.WriteString("Recent accounts:\n")
	for _, acc := range accounts {
		marker := ""
		if acc.Banned {
			marker = " [banned]"
		}
		fmt.Fprintf(&b, "\n%d - %s (registered %s)%s",
			acc.ID, acc.DisplayName, acc.RegisteredAt.Format("2006-01-02"), marker)
	}

	return &flow.Result{
		Next:  stateAdminMenu,
		Reply: adminMenu(req.AccountID, b.String()),
	}, nil
}

// adminAskTarget records the pending action (ban or unban) in scratch
// and prompts for the target account id.
func (a *app) adminAskTarget(action string) flow.Handler {
	return func(ctx context.Context, req *flow.Request) (*flow.Result, error) {
		req.Scratch[scratchAdminAction] = action
		return &flow.Result{
			Next: stateAwaitTargetID,
			Reply: reply.Textf(req.AccountID, "Send the account id to %s:", action).
				WithActions(backToMenu()),
		}, nil
	}
}

func (a *app) adminTargetID(ctx context.Context, req *flow.Request) (*flow.Result, error) {
	target, err := strconv.ParseInt(content.Normalize(req.Event.Text), 10, 64)
	if err != nil {
		return &flow.Result{
			Next:  stateAwaitTargetID,
			Reply: reply.Text(req.AccountID, "That is not a numeric account id. Send the id again:"),
		}, nil
	}

	action := req.Scratch[scratchAdminAction]
	text, err := a.applyBan(ctx, req.AccountID, target, action == "ban")
	if err != nil {
		return nil, err
	}

	return &flow.Result{
		Next:  stateAdminMenu,
		Reply: adminMenu(req.AccountID, text),
	}, nil
}

// applyBan toggles the target's banned flag and, when banning, drops the
// target's live session so a banned account never retains one.
func (a *app) applyBan(ctx context.Context, adminID, targetID int64, ban bool) (string, error) {
	updated, err := a.store.SetBanned(ctx, targetID, ban)
	if err != nil {
		return "", err
	}
	if !updated {
		return fmt.Sprintf("Account %d is not registered.", targetID), nil
	}

	verb := "unbanned"
	if ban {
		verb = "banned"
		a.sessions.Clear(targetID)
	}
	slog.Info("account moderation",
		"action", verb,
		"target", targetID,
		"admin", adminID,
	)
	return fmt.Sprintf("Account %d has been %s.", targetID, verb), nil
}

func (a *app) banCommand(ctx context.Context, req *flow.Request) (*flow.Result, error) {
	return a.moderationCommand(ctx, req, true)
}

func (a *app) unbanCommand(ctx context.Context, req *flow.Request) (*flow.Result, error) {
	return a.moderationCommand(ctx, req, false)
}

func (a *app) moderationCommand(ctx context.Context, req *flow.Request, ban bool) (*flow.Result, error) {
	name := "unban"
	if ban {
		name = "ban"
	}

	isAdmin, err := a.store.IsAdmin(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return &flow.Result{
			Next:  flow.Terminal,
			Reply: reply.Text(req.AccountID, notAuthorizedText),
		}, nil
	}

	if len(req.Event.Args) != 1 {
		return &flow.Result{
			Next:  flow.Terminal,
			Reply: reply.Textf(req.AccountID, "Usage: /%s <account id>", name),
		}, nil
	}
	target, err := strconv.ParseInt(req.Event.Args[0], 10, 64)
	if err != nil {
		return &flow.Result{
			Next:  flow.Terminal,
			Reply: reply.Textf(req.AccountID, "Usage: /%s <account id>", name),
		}, nil
	}

	text, err := a.applyBan(ctx, req.AccountID, target, ban)
	if err != nil {
		return nil, err
	}
	return &flow.Result{
		Next:  flow.Terminal,
		Reply: reply.Text(req.AccountID, text),
	}, nil
}
