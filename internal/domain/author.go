package domain

// AuthorProfile is the read-only profile data used as scoring input.
// WalletAddress is empty when the author has not linked a wallet; such
// authors are scored and notified but never submitted on-chain.
type AuthorProfile struct {
	AuthorID       string
	Username       string
	WalletAddress  string
	FollowersCount int
	FollowingCount int
	TweetCount     int
}
