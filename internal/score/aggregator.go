package score

import (
	"sort"
	"time"

	"github.com/uederson-ferreira/social-fi-credit/internal/domain"
)

// Aggregate groups a raw interaction batch by author. Interactions older
// than since are dropped, duplicates by ID are removed (the lookback
// buffer makes overlapping windows normal), and interactions without an
// author are ignored. Authors with nothing left are absent from the
// result; each author's list is ordered by creation time.
func Aggregate(interactions []domain.Interaction, since time.Time) map[string][]domain.Interaction {
	seen := make(map[string]struct{}, len(interactions))
	byAuthor := make(map[string][]domain.Interaction)

	for _, interaction := range interactions {
		if interaction.AuthorID == "" {
			continue
		}
		if interaction.CreatedAt.Before(since) {
			continue
		}
		if _, dup := seen[interaction.ID]; dup {
			continue
		}
		seen[interaction.ID] = struct{}{}
		byAuthor[interaction.AuthorID] = append(byAuthor[interaction.AuthorID], interaction)
	}

	for _, batch := range byAuthor {
		sort.Slice(batch, func(i, j int) bool {
			if batch[i].CreatedAt.Equal(batch[j].CreatedAt) {
				return batch[i].ID < batch[j].ID
			}
			return batch[i].CreatedAt.Before(batch[j].CreatedAt)
		})
	}

	return byAuthor
}

// SortedAuthors returns the author IDs of an aggregated batch in ascending
// order, so a cycle processes authors deterministically.
func SortedAuthors(byAuthor map[string][]domain.Interaction) []string {
	authors := make([]string, 0, len(byAuthor))
	for author := range byAuthor {
		authors = append(authors, author)
	}
	sort.Strings(authors)
	return authors
}
