package monitor

import (
	"context"
	"log/slog"

	"github.com/uederson-ferreira/social-fi-credit/internal/domain"
)

// WalletResolver maps an author ID to their linked wallet address, or the
// empty string when no wallet is linked.
type WalletResolver interface {
	Resolve(ctx context.Context, authorID string) (string, error)
}

// EnrichedLookup decorates a ProfileLookup with on-chain wallet
// resolution. A wallet resolution failure degrades to an unlinked
// profile: chain submission is optional, profile data is not.
type EnrichedLookup struct {
	base    domain.ProfileLookup
	wallets WalletResolver
}

func NewEnrichedLookup(base domain.ProfileLookup, wallets WalletResolver) *EnrichedLookup {
	return &EnrichedLookup{base: base, wallets: wallets}
}

func (l *EnrichedLookup) GetProfile(ctx context.Context, authorID string) (*domain.AuthorProfile, error) {
	profile, err := l.base.GetProfile(ctx, authorID)
	if err != nil {
		return nil, err
	}

	wallet, err := l.wallets.Resolve(ctx, authorID)
	if err != nil {
		slog.WarnContext(ctx, "Wallet resolution failed, continuing without wallet",
			"author_id", authorID,
			"error", err)
		return profile, nil
	}

	profile.WalletAddress = wallet
	return profile, nil
}
