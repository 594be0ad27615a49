package folder

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
)

// RemoteStorage is the slice of the remote storage API the orchestrator
// needs: sharing a folder with a user and renaming it in that user's space.
type RemoteStorage interface {
	ShareFolder(ctx context.Context, path, recipient string) error
	RenameFolder(ctx context.Context, path, newName, recipient string) (string, error)
}

// OutcomeKind tags the result of a provisioning attempt.
type OutcomeKind string

const (
	// OutcomeShared means both steps succeeded and a link was issued.
	OutcomeShared OutcomeKind = "shared"
	// OutcomeShareFailed means the share step failed; nothing was changed in
	// the recipient's space.
	OutcomeShareFailed OutcomeKind = "share_failed"
	// OutcomeRenameFailed means the share succeeded but the rename did not.
	// The folder exists in the recipient's space under its technical name.
	OutcomeRenameFailed OutcomeKind = "rename_failed"
)

// Outcome is the tagged result of Provision. Link is only set for
// OutcomeShared; Detail carries the failure cause otherwise.
type Outcome struct {
	Kind   OutcomeKind
	Link   string
	Detail string
}

var provisionOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "collaborativefolders_provision_outcomes_total",
	Help: "Folder provisioning attempts by outcome.",
}, []string{"outcome"})

// Orchestrator runs the two-step provisioning of a user's folder: share the
// remote path with the user, then rename it in their space to the chosen
// name. There are no retries; a failed rename leaves the share in place and
// is reported as such so the user can try again.
type Orchestrator struct {
	storage RemoteStorage
	timeout time.Duration
}

// NewOrchestrator creates an orchestrator over the given remote storage.
// Each remote call is bounded by timeout.
func NewOrchestrator(storage RemoteStorage, timeout time.Duration) *Orchestrator {
	return &Orchestrator{
		storage: storage,
		timeout: timeout,
	}
}

// Provision shares paths.Share with recipient and renames the resulting
// folder at paths.Final to newName. Timeouts count as failures of the step
// they interrupt.
func (o *Orchestrator) Provision(ctx context.Context, paths Paths, newName, recipient string) Outcome {
	if err := o.share(ctx, paths.Share, recipient); err != nil {
		log.Warn().Err(err).
			Str("path", paths.Share).
			Str("recipient", recipient).
			Msg("sharing folder failed")
		provisionOutcomes.WithLabelValues(string(OutcomeShareFailed)).Inc()

		return Outcome{Kind: OutcomeShareFailed, Detail: detailOf(err)}
	}

	link, err := o.rename(ctx, paths.Final, newName, recipient)
	if err != nil {
		log.Warn().Err(err).
			Str("path", paths.Final).
			Str("recipient", recipient).
			Msg("renaming folder failed")
		provisionOutcomes.WithLabelValues(string(OutcomeRenameFailed)).Inc()

		return Outcome{Kind: OutcomeRenameFailed, Detail: detailOf(err)}
	}

	log.Info().
		Str("recipient", recipient).
		Str("link", link).
		Msg("folder provisioned")
	provisionOutcomes.WithLabelValues(string(OutcomeShared)).Inc()

	return Outcome{Kind: OutcomeShared, Link: link}
}

func (o *Orchestrator) share(ctx context.Context, path, recipient string) error {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	return o.storage.ShareFolder(ctx, path, recipient)
}

func (o *Orchestrator) rename(ctx context.Context, path, newName, recipient string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	return o.storage.RenameFolder(ctx, path, newName, recipient)
}

func detailOf(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout: " + err.Error()
	}

	return err.Error()
}
