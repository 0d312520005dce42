package webhook

import "context"

// APIClient defines the interface for webhook mapping API operations
type APIClient interface {
	// FetchMapping returns the single mapping registered for the
	// (obs, project, package) triple, or nil if none exists.
	FetchMapping(ctx context.Context, obs, project, pkg string) (*RemoteMapping, error)

	// CreateMapping submits desired as a new mapping resource.
	CreateMapping(ctx context.Context, desired Mapping) (*RemoteMapping, error)

	// UpdateMapping submits desired as a partial update of the mapping
	// identified by id.
	UpdateMapping(ctx context.Context, id int64, desired Mapping) (*RemoteMapping, error)

	// TriggerMapping invokes the remote trigger action for the mapping
	// identified by id.
	TriggerMapping(ctx context.Context, id int64) (*TriggerResult, error)
}

// Reconciler defines the interface for mapping state reconciliation
type Reconciler interface {
	Reconcile(ctx context.Context, desired Mapping) (Outcome, error)
}

// Outcome reports what the reconciler did for a desired mapping
type Outcome string

const (
	// OutcomeUnchanged means the remote mapping already matched the
	// desired state; no API mutation happened.
	OutcomeUnchanged Outcome = "unchanged"
	// OutcomeCreated means a new mapping was created and triggered.
	OutcomeCreated Outcome = "created"
	// OutcomeUpdated means the existing mapping was updated and triggered.
	OutcomeUpdated Outcome = "updated"
	// OutcomeSkipped means the server's policy forbids a mapping for this
	// context; the run ends successfully with no mapping and no trigger.
	OutcomeSkipped Outcome = "skipped"
)
