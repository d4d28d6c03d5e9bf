package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/fintra/corebank/internal/domain"
)

// EntryUseCase exposes the append-only audit trail for reads.
type EntryUseCase struct {
	entryRepo EntryRepository
	logger    zerolog.Logger
}

// NewEntryUseCase creates a new EntryUseCase.
func NewEntryUseCase(entryRepo EntryRepository, logger zerolog.Logger) *EntryUseCase {
	return &EntryUseCase{
		entryRepo: entryRepo,
		logger:    logger,
	}
}

// ListByAccount lists entries for an account, newest first.
func (uc *EntryUseCase) ListByAccount(ctx context.Context, accountID int64, limit, offset int) ([]*domain.Entry, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	entries, err := uc.entryRepo.GetByAccount(ctx, accountID, limit, offset)
	if err != nil {
		uc.logger.Error().Err(err).Int64("account_id", accountID).Msg("entry list failed")
		return nil, domain.ErrStorage
	}

	return entries, nil
}
