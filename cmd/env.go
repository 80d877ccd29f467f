package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/outreach-cli/internal/delivery"
	"github.com/sells-group/outreach-cli/internal/emailgen"
	"github.com/sells-group/outreach-cli/internal/registry"
	"github.com/sells-group/outreach-cli/internal/search"
	"github.com/sells-group/outreach-cli/internal/store"
	"github.com/sells-group/outreach-cli/pkg/apollo"
	"github.com/sells-group/outreach-cli/pkg/brave"
	"github.com/sells-group/outreach-cli/pkg/ddg"
	"github.com/sells-group/outreach-cli/pkg/googlecse"
	"github.com/sells-group/outreach-cli/pkg/hunter"
	"github.com/sells-group/outreach-cli/pkg/tavily"
)

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "outreach.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

func loadRegistry() (*registry.Registry, error) {
	if cfg.Registry.Path == "" {
		return registry.Default(), nil
	}
	reg, err := registry.LoadFromFile(cfg.Registry.Path)
	if err != nil {
		return nil, eris.Wrapf(err, "load registry %s", cfg.Registry.Path)
	}
	return reg, nil
}

// buildProviders assembles the search backend chain in failover order:
// DuckDuckGo always leads because it needs no key, then Brave, Tavily and
// Google CSE join only when their credentials are configured.
func buildProviders() []search.Provider {
	providers := []search.Provider{
		&search.DDGProvider{Client: ddg.NewClient()},
	}

	if cfg.Brave.Key != "" {
		providers = append(providers, &search.BraveProvider{
			Client: brave.NewClient(cfg.Brave.Key),
			Count:  cfg.Search.ResultsPerQry,
		})
	}
	if cfg.Tavily.Key != "" {
		providers = append(providers, &search.TavilyProvider{
			Client: tavily.NewClient(cfg.Tavily.Key),
			Count:  cfg.Search.ResultsPerQry,
		})
	}
	if cfg.GoogleCSE.Key != "" && cfg.GoogleCSE.CX != "" {
		providers = append(providers, &search.GoogleCSEProvider{
			Client: googlecse.NewClient(cfg.GoogleCSE.Key, cfg.GoogleCSE.CX),
			Count:  cfg.Search.ResultsPerQry,
		})
	}
	return providers
}

func buildCascade(reg *registry.Registry) *search.Cascade {
	providers := buildProviders()

	names := make([]string, len(providers))
	for i, p := range providers {
		names[i] = p.Name()
	}
	zap.L().Info("search backends configured", zap.Strings("backends", names))

	delayMin := time.Duration(cfg.Search.DelayMinSecs * float64(time.Second))
	delayMax := time.Duration(cfg.Search.DelayMaxSecs * float64(time.Second))
	return search.NewCascade(reg, delayMin, delayMax, providers...)
}

// buildResolver assembles the email domain/pattern discovery tiers from
// the configured credentials. Missing credentials skip tiers rather than
// failing.
func buildResolver(reg *registry.Registry) *emailgen.Resolver {
	var searcher emailgen.WebSearcher
	if cfg.Tavily.Key != "" {
		searcher = &emailgen.TavilySearcher{Client: tavily.NewClient(cfg.Tavily.Key)}
	}

	var directory emailgen.Directory
	if cfg.Hunter.Key != "" {
		directory = &emailgen.HunterDirectory{Client: hunter.NewClient(cfg.Hunter.Key)}
	}

	var orgSearch emailgen.OrgSearch
	if cfg.Apollo.Key != "" {
		orgSearch = &emailgen.ApolloOrgSearch{Client: apollo.NewClient(cfg.Apollo.Key)}
	}

	return emailgen.NewResolver(reg, searcher, directory, orgSearch)
}

func buildMailbox(ctx context.Context) (delivery.Mailbox, error) {
	return delivery.NewGmailMailbox(ctx, cfg.Gmail.CredentialsPath, cfg.Gmail.TokenPath)
}

func buildSender(mailbox delivery.Mailbox, writer delivery.ContactWriter) *delivery.Sender {
	pace := time.Duration(cfg.Send.PaceSecs) * time.Second
	return delivery.NewSender(mailbox, writer, pace, cfg.Gmail.FromName, cfg.Gmail.ResumePath)
}
