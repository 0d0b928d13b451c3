package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/clubdeck-dev/clubdeck/internal/cli/auth"
	"github.com/clubdeck-dev/clubdeck/internal/cli/client"
	"github.com/clubdeck-dev/clubdeck/internal/cli/config"
	"github.com/clubdeck-dev/clubdeck/internal/cli/guard"
	"github.com/clubdeck-dev/clubdeck/internal/cli/serverselect"
	"github.com/clubdeck-dev/clubdeck/internal/cli/session"
	"github.com/clubdeck-dev/clubdeck/internal/logger"
	"github.com/clubdeck-dev/clubdeck/internal/models"
)

// accessEnv bundles the per-invocation wiring: resolved server, session
// store, API client, and auth context
type accessEnv struct {
	server  *config.Server
	store   *session.Store
	api     *client.Client
	authCtx *auth.Context
}

// newAccessEnv loads the project config, resolves the target server and
// wires the auth core against it. The session is rehydrated before return,
// so guard evaluations never see a loading state from here.
func newAccessEnv(serverAlias string) (*accessEnv, error) {
	cfg, err := config.LoadFromCurrentDir()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w\nRun 'clubdeck init' to create a configuration file", err)
	}

	server, err := serverselect.ResolveServer(cfg, serverAlias)
	if err != nil {
		return nil, err
	}

	if err := server.Validate(); err != nil {
		return nil, err
	}

	store := session.NewStore(session.NewKeyringBackend(), server.Host())
	api := client.New(server.URL, store)
	authCtx := auth.New(store, api, logger.GetLogger())
	authCtx.Load()

	return &accessEnv{
		server:  server,
		store:   store,
		api:     api,
		authCtx: authCtx,
	}, nil
}

// authorize evaluates the guard for a target command. It returns true when
// the command may proceed. When it returns false with a nil error the guard
// already rendered an alternative (pending panel or the member dashboard).
func (e *accessEnv) authorize(ctx context.Context, target string, cfg guard.RouteConfig, out io.Writer) (bool, error) {
	result := guard.Evaluate(e.authCtx.Snapshot(), target, cfg)

	switch result.Decision {
	case guard.DecisionLoading:
		// Transient by contract; Load runs synchronously before this point
		fmt.Fprintln(out, "Loading session...")
		return false, nil

	case guard.DecisionRedirectLogin:
		return false, fmt.Errorf("not logged in. Run 'clubdeck login' first, then retry 'clubdeck %s'", result.ReturnTo)

	case guard.DecisionPendingApproval:
		printApprovalPanel(out, result.Status)
		return false, nil

	case guard.DecisionRedirectDashboard:
		fmt.Fprintln(out, "This area is restricted to club admins. Showing your dashboard instead.")
		fmt.Fprintln(out)
		return false, renderDashboard(ctx, e, out)

	default:
		return true, nil
	}
}

// printApprovalPanel renders the blocking "pending approval" view: the
// current status plus a path back to public content, never a raw error
func printApprovalPanel(out io.Writer, status models.ApprovalStatus) {
	fmt.Fprintln(out, "Your membership is not approved yet.")
	fmt.Fprintf(out, "  Current status: %s\n", status)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "An admin reviews registrations before member areas open up.")
	fmt.Fprintln(out, "Public content is still available: try 'clubdeck events ls' or 'clubdeck notices ls'.")
}
