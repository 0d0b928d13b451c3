// Package guard decides, per protected command, whether to run it, show a
// blocked state, or send the user elsewhere. The decision ordering is a
// contract: loading beats everything, authentication beats approval, approval
// beats role. A role check against a still-loading user would be unsound.
package guard

import (
	"github.com/clubdeck-dev/clubdeck/internal/cli/auth"
	"github.com/clubdeck-dev/clubdeck/internal/models"
)

// Decision is the outcome of evaluating a guarded target
type Decision int

const (
	// DecisionLoading means state is still rehydrating; no access decision yet
	DecisionLoading Decision = iota
	// DecisionRedirectLogin means the user must authenticate first
	DecisionRedirectLogin
	// DecisionPendingApproval means the account is not approved; blocked, not redirected
	DecisionPendingApproval
	// DecisionRedirectDashboard means the role does not admit the target;
	// degrade to the member area rather than deny outright
	DecisionRedirectDashboard
	// DecisionAllow admits the target
	DecisionAllow
)

// RouteConfig is the per-target guard configuration, immutable once declared
type RouteConfig struct {
	// AllowedRoles, when non-empty, restricts the target to those roles
	AllowedRoles []models.Role
	// RequireApproval gates on approval status; defaults to true via Protected
	RequireApproval bool
}

// Protected returns the configuration for a guarded target. Approval is
// required by default; roles restrict further when given.
func Protected(roles ...models.Role) RouteConfig {
	return RouteConfig{
		AllowedRoles:    roles,
		RequireApproval: true,
	}
}

// WithoutApproval relaxes the approval gate, for targets a pending member
// may still reach (for example their own registration status)
func (r RouteConfig) WithoutApproval() RouteConfig {
	r.RequireApproval = false
	return r
}

// Result carries the decision plus what the caller needs to act on it
type Result struct {
	Decision Decision
	// ReturnTo is the originally requested target, set on DecisionRedirectLogin
	// so the login flow can send the user back afterwards
	ReturnTo string
	// Status is the user's approval status, set on DecisionPendingApproval
	Status models.ApprovalStatus
}

// Evaluate applies the decision algorithm in its fixed order
func Evaluate(snap auth.Snapshot, target string, cfg RouteConfig) Result {
	if snap.IsLoading {
		return Result{Decision: DecisionLoading}
	}

	if !snap.IsAuthenticated {
		return Result{Decision: DecisionRedirectLogin, ReturnTo: target}
	}

	if cfg.RequireApproval && snap.User.ApprovalStatus != models.ApprovalApproved {
		return Result{Decision: DecisionPendingApproval, Status: snap.User.ApprovalStatus}
	}

	if len(cfg.AllowedRoles) > 0 && !roleAllowed(snap.User.Role, cfg.AllowedRoles) {
		return Result{Decision: DecisionRedirectDashboard}
	}

	return Result{Decision: DecisionAllow}
}

func roleAllowed(role models.Role, allowed []models.Role) bool {
	for _, r := range allowed {
		if role == r {
			return true
		}
	}
	return false
}
