package views

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"mediaconsole/internal/entries/models"
	"mediaconsole/internal/permissions"
	id "mediaconsole/pkg/domain"
	dErrors "mediaconsole/pkg/domain-errors"
)

// gatherEvidence loads the entry and the permission set in parallel with
// shared cancellation. The first failure cancels the other fetch.
func (s *Service) gatherEvidence(ctx context.Context, partnerID id.PartnerID, userID id.UserID, entryID id.EntryID) (Context, error) {
	ctx, cancel := context.WithTimeout(ctx, evidenceTimeout)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	var (
		entry *models.Entry
		perms permissions.Set
	)

	g.Go(func() error {
		start := time.Now()
		e, err := s.entries.Get(ctx, partnerID, entryID)
		s.metrics.ObserveEvidenceLatency("entry", time.Since(start))
		if err != nil {
			return err
		}
		entry = e
		return nil
	})

	g.Go(func() error {
		start := time.Now()
		p, err := s.permissions.Permissions(ctx, partnerID, userID)
		s.metrics.ObserveEvidenceLatency("permissions", time.Since(start))
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve permissions")
		}
		perms = p
		return nil
	})

	if err := g.Wait(); err != nil {
		if dErrors.CodeOf(err) == dErrors.CodeInternal {
			s.logger.ErrorContext(ctx, "view evidence gathering failed",
				"entry_id", entryID,
				"partner_id", partnerID,
				"error", err,
			)
		}
		return Context{}, err
	}

	return Context{Entry: entry, Permissions: perms}, nil
}
