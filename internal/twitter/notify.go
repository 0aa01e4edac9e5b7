package twitter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	apperrors "github.com/uederson-ferreira/social-fi-credit/internal/errors"
)

type dmRequest struct {
	Text string `json:"text"`
}

// Send delivers a direct message to an author. There is deliberately no
// retry here: the engine attempts at most one notification per author per
// cycle.
func (c *Client) Send(ctx context.Context, authorID, message string) error {
	endpoint := fmt.Sprintf("%s/2/dm_conversations/with/%s/messages", c.baseURL, authorID)

	payload, err := json.Marshal(dmRequest{Text: message})
	if err != nil {
		return fmt.Errorf("failed to encode direct message: %w", err)
	}

	if err := c.doJSON(ctx, http.MethodPost, endpoint, bytes.NewReader(payload), nil); err != nil {
		return apperrors.DownstreamError("failed to send direct message", err).
			WithContext("author_id", authorID)
	}

	return nil
}
