package chain

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/uederson-ferreira/social-fi-credit/internal/domain"
	apperrors "github.com/uederson-ferreira/social-fi-credit/internal/errors"
)

// Sink writes reputation scores to the on-chain contract. Authors without
// a linked wallet are skipped, not failed: linking is optional and the
// off-chain store remains the source of truth either way.
type Sink struct {
	client   *Client
	contract string
	owner    string
}

func NewSink(client *Client, contractAddress, ownerAddress string) *Sink {
	return &Sink{client: client, contract: contractAddress, owner: ownerAddress}
}

var _ domain.ReputationSink = (*Sink)(nil)

func (s *Sink) SubmitScore(ctx context.Context, profile *domain.AuthorProfile, score int) error {
	if profile.WalletAddress == "" {
		slog.DebugContext(ctx, "no wallet linked, skipping chain submission",
			"author_id", profile.AuthorID)
		return nil
	}

	args := []string{
		hex.EncodeToString([]byte(profile.WalletAddress)),
		scoreArg(score),
	}

	txHash, err := s.client.CallContract(ctx, s.owner, s.contract, "updateScore", args)
	if err != nil {
		return apperrors.DownstreamError("failed to submit score on-chain", err).
			WithContext("author_id", profile.AuthorID)
	}

	slog.InfoContext(ctx, "submitted score on-chain",
		"author_id", profile.AuthorID,
		"score", score,
		"tx_hash", txHash)
	return nil
}

// scoreArg hex-encodes a score with even length, as contract arguments
// require whole bytes.
func scoreArg(score int) string {
	s := fmt.Sprintf("%x", score)
	if len(s)%2 != 0 {
		s = "0" + s
	}
	return s
}
