package twitter

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/uederson-ferreira/social-fi-credit/internal/domain"
	apperrors "github.com/uederson-ferreira/social-fi-credit/internal/errors"
)

type publicMetrics struct {
	RetweetCount int `json:"retweet_count"`
	ReplyCount   int `json:"reply_count"`
	LikeCount    int `json:"like_count"`
	QuoteCount   int `json:"quote_count"`
}

type tweet struct {
	ID            string        `json:"id"`
	Text          string        `json:"text"`
	AuthorID      string        `json:"author_id"`
	CreatedAt     time.Time     `json:"created_at"`
	PublicMetrics publicMetrics `json:"public_metrics"`
}

type searchResponse struct {
	Data []tweet `json:"data"`
}

// FetchRecent searches for tweets carrying the hashtag, newer than since.
// Retweets are excluded at query level; an empty result is not an error.
func (c *Client) FetchRecent(ctx context.Context, hashtag string, since time.Time) ([]domain.Interaction, error) {
	query := url.Values{}
	query.Set("query", fmt.Sprintf("#%s -is:retweet", hashtag))
	query.Set("start_time", since.UTC().Format(time.RFC3339))
	query.Set("max_results", fmt.Sprintf("%d", maxSearchSize))
	query.Set("tweet.fields", "created_at,public_metrics,author_id,text")

	endpoint := fmt.Sprintf("%s/2/tweets/search/recent?%s", c.baseURL, query.Encode())

	var resp searchResponse
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, apperrors.TransientFetchError("failed to search recent tweets", err).
			WithContext("hashtag", hashtag)
	}

	interactions := make([]domain.Interaction, 0, len(resp.Data))
	for _, tw := range resp.Data {
		interactions = append(interactions, domain.Interaction{
			ID:           tw.ID,
			AuthorID:     tw.AuthorID,
			Text:         tw.Text,
			CreatedAt:    tw.CreatedAt,
			LikeCount:    tw.PublicMetrics.LikeCount,
			RetweetCount: tw.PublicMetrics.RetweetCount,
			ReplyCount:   tw.PublicMetrics.ReplyCount,
			QuoteCount:   tw.PublicMetrics.QuoteCount,
		})
	}

	return interactions, nil
}
