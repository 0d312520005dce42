package webhook

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// reconciler implements the Reconciler interface
type reconciler struct {
	client APIClient
	log    zerolog.Logger
}

// NewReconciler creates a new reconciler instance
func NewReconciler(client APIClient, log zerolog.Logger) Reconciler {
	return &reconciler{client: client, log: log}
}

// Reconcile brings the remote mapping for desired's (obs, project,
// package) triple into agreement with desired, then triggers the hook
// when the mapping was created or changed. An existing mapping that
// already matches is left untouched so builds are not re-triggered on
// every invocation.
func (r *reconciler) Reconcile(ctx context.Context, desired Mapping) (Outcome, error) {
	current, err := r.client.FetchMapping(ctx, desired.OBS, desired.Project, desired.Package)
	if err != nil {
		return "", fmt.Errorf("fetch current mapping: %w", err)
	}

	if current != nil {
		fields := diff(*current, desired)
		if len(fields) == 0 {
			r.log.Debug().Int64("id", current.ID).Msg("mapping already matches desired state")
			return OutcomeUnchanged, nil
		}
		r.log.Debug().
			Int64("id", current.ID).
			Strs("fields", fields).
			Msg("mapping differs from desired state")

		if _, err := r.client.UpdateMapping(ctx, current.ID, desired); err != nil {
			return "", fmt.Errorf("update mapping %d: %w", current.ID, err)
		}
		if _, err := r.client.TriggerMapping(ctx, current.ID); err != nil {
			return "", fmt.Errorf("trigger mapping %d: %w", current.ID, err)
		}
		return OutcomeUpdated, nil
	}

	created, err := r.client.CreateMapping(ctx, desired)
	if err != nil {
		if errors.Is(err, ErrMappingNotAllowed) {
			r.log.Debug().Err(err).Msg("create rejected by server policy, treating as no-op")
			return OutcomeSkipped, nil
		}
		return "", fmt.Errorf("create mapping: %w", err)
	}

	if _, err := r.client.TriggerMapping(ctx, created.ID); err != nil {
		return "", fmt.Errorf("trigger mapping %d: %w", created.ID, err)
	}
	return OutcomeCreated, nil
}

// diff returns the names of every field where current differs from
// desired. All mismatches are collected for diagnostics even though
// only emptiness drives the reconcile decision.
func diff(current RemoteMapping, desired Mapping) []string {
	var fields []string
	if current.RepoURL != desired.RepoURL {
		fields = append(fields, "repourl")
	}
	if current.Branch != desired.Branch {
		fields = append(fields, "branch")
	}
	if current.Project != desired.Project {
		fields = append(fields, "project")
	}
	if current.Package != desired.Package {
		fields = append(fields, "package")
	}
	if current.Token != desired.Token {
		fields = append(fields, "token")
	}
	if current.Debian != desired.Debian {
		fields = append(fields, "debian")
	}
	if current.Dumb != desired.Dumb {
		fields = append(fields, "dumb")
	}
	if current.Notify != desired.Notify {
		fields = append(fields, "notify")
	}
	if current.Build != desired.Build {
		fields = append(fields, "build")
	}
	if current.Comment != desired.Comment {
		fields = append(fields, "comment")
	}
	return fields
}
