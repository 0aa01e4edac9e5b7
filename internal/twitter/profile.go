package twitter

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/uederson-ferreira/social-fi-credit/internal/domain"
)

type userMetrics struct {
	FollowersCount int `json:"followers_count"`
	FollowingCount int `json:"following_count"`
	TweetCount     int `json:"tweet_count"`
}

type userResponse struct {
	Data struct {
		ID            string      `json:"id"`
		Username      string      `json:"username"`
		PublicMetrics userMetrics `json:"public_metrics"`
	} `json:"data"`
}

// GetProfile looks up an author's public profile. The wallet address is
// not Twitter data; callers enrich it separately.
func (c *Client) GetProfile(ctx context.Context, authorID string) (*domain.AuthorProfile, error) {
	endpoint := fmt.Sprintf("%s/2/users/%s?user.fields=public_metrics", c.baseURL, authorID)

	var resp userResponse
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		var se *statusError
		if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to look up user %s: %w", authorID, err)
	}

	// The v2 API reports unknown users inside an errors array with HTTP 200.
	if resp.Data.ID == "" {
		return nil, domain.ErrProfileNotFound
	}

	return &domain.AuthorProfile{
		AuthorID:       resp.Data.ID,
		Username:       resp.Data.Username,
		FollowersCount: resp.Data.PublicMetrics.FollowersCount,
		FollowingCount: resp.Data.PublicMetrics.FollowingCount,
		TweetCount:     resp.Data.PublicMetrics.TweetCount,
	}, nil
}
