package cli

import (
	"context"
	"fmt"

	"healthbot/internal/config"
	"healthbot/internal/content"
	"healthbot/internal/flow"
	"healthbot/internal/flows"
	"healthbot/internal/guard"
	"healthbot/internal/session"
	"healthbot/internal/store"
)

// engine bundles everything a command needs to run or inspect the
// conversation engine.
type engine struct {
	cfg      *config.Config
	store    *store.Store
	sessions *session.Store
	guard    *guard.Guard
	registry *flow.Registry
	content  *content.Pack
}

// buildEngine loads config and content, opens the store, seeds admins,
// and constructs the validated flow registry. Any error here is a
// configuration or environment problem; commands abort on it.
func buildEngine(ctx context.Context, configPath string) (*engine, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	pack := content.Default()
	if cfg.ContentPath != "" {
		pack, err = content.Load(cfg.ContentPath)
		if err != nil {
			return nil, err
		}
	}

	st, err := store.Open(cfg.DBPath, store.WithTimeout(cfg.StoreTimeout))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	if err := st.SeedAdmins(ctx, cfg.AdminIDs); err != nil {
		st.Close()
		return nil, fmt.Errorf("seed admins: %w", err)
	}

	sessions := session.NewStore()
	registry, err := flows.NewRegistry(flows.Deps{
		Store:    st,
		Sessions: sessions,
		Content:  pack,
	})
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("build flow registry: %w", err)
	}

	return &engine{
		cfg:      cfg,
		store:    st,
		sessions: sessions,
		guard:    guard.New(st, sessions, flows.RegistrationFlowID),
		registry: registry,
		content:  pack,
	}, nil
}

func (e *engine) close() {
	e.store.Close()
}
