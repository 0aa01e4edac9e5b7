package chain

import (
	"context"
	"encoding/hex"
	"fmt"
)

// WalletResolver maps a social account ID to the wallet address its owner
// linked on-chain. Accounts that never linked a wallet resolve to the
// empty string.
type WalletResolver struct {
	client   *Client
	contract string
}

func NewWalletResolver(client *Client, contractAddress string) *WalletResolver {
	return &WalletResolver{client: client, contract: contractAddress}
}

func (r *WalletResolver) Resolve(ctx context.Context, authorID string) (string, error) {
	args := []string{hex.EncodeToString([]byte(authorID))}

	returnData, err := r.client.QueryContract(ctx, r.contract, "getAddressByTwitterId", args)
	if err != nil {
		return "", fmt.Errorf("failed to resolve wallet for %s: %w", authorID, err)
	}

	if len(returnData) == 0 || len(returnData[0]) == 0 {
		return "", nil
	}
	return string(returnData[0]), nil
}
