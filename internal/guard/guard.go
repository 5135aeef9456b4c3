// Package guard implements the access gate run before every flow step:
// banned accounts are denied everything, unregistered accounts are
// denied everything but the registration flow. Denial is a normal return
// value, never an error; errors from the guard mean the account lookup
// itself failed.
package guard

import (
	"context"

	"healthbot/internal/reply"
)

// Decision is the guard's verdict.
type Decision int

const (
	// Allowed lets the dispatcher proceed to the handler.
	Allowed Decision = iota
	// Denied stops dispatch; the accompanying reply explains why.
	Denied
)

// AccountSource is the subset of the persistent store the guard reads.
type AccountSource interface {
	IsBanned(ctx context.Context, id int64) (bool, error)
	IsRegistered(ctx context.Context, id int64) (bool, error)
}

// Sessions is the session mutation the guard performs on denial.
type Sessions interface {
	Clear(accountID int64)
}

// Guard checks ban and registration status.
type Guard struct {
	accounts AccountSource
	sessions Sessions

	// RegistrationFlowID is the one flow reachable to unregistered
	// accounts.
	registrationFlowID string
}

// New builds a guard. registrationFlowID names the flow exempt from the
// registration requirement.
func New(accounts AccountSource, sessions Sessions, registrationFlowID string) *Guard {
	return &Guard{
		accounts:           accounts,
		sessions:           sessions,
		registrationFlowID: registrationFlowID,
	}
}

const (
	deniedBannedText = "Access denied: your account has been blocked. Contact support if you believe this is a mistake."
	deniedUnregText  = "Please register first: send /register to create your account."
)

// Check gates one dispatch step for the account against the target flow
// (empty when the event resolved outside any flow). On denial the
// session is cleared and a fixed explanation reply is returned; a banned
// account therefore never retains a session.
func (g *Guard) Check(ctx context.Context, accountID int64, targetFlowID string) (Decision, *reply.Reply, error) {
	banned, err := g.accounts.IsBanned(ctx, accountID)
	if err != nil {
		return Denied, nil, err
	}
	if banned {
		g.sessions.Clear(accountID)
		return Denied, reply.Text(accountID, deniedBannedText), nil
	}

	registered, err := g.accounts.IsRegistered(ctx, accountID)
	if err != nil {
		return Denied, nil, err
	}
	if !registered && targetFlowID != g.registrationFlowID {
		g.sessions.Clear(accountID)
		return Denied, reply.Text(accountID, deniedUnregText), nil
	}

	return Allowed, nil, nil
}
