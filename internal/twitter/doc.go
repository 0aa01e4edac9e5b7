// Package twitter adapts the Twitter API v2 to the engine's capability
// contracts: recent hashtag search (SocialFeed), user lookup
// (ProfileLookup), and direct messages (NotificationChannel).
//
// Rate limits and transient transport failures are absorbed here with a
// short retry policy; the engine only ever sees one success or failure
// per call.
package twitter
