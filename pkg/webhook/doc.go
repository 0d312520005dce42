// Package webhook reconciles OBS webhook mappings against the remote
// webhook management API. It ensures exactly one mapping exists for a
// given (obs, project, package) triple and re-triggers the hook when the
// mapping is created or changed.
//
// The package includes:
// - APIClient interface for the webhook mapping API
// - Reconciler interface for state reconciliation
// - Typed records for desired and remote mapping state
// - Error classification for API failures
package webhook
