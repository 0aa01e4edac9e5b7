package monitor

import "fmt"

// scoreChangeMessage renders the DM for a significant score change. The
// delta is signed; the decrease message carries its absolute value.
func scoreChangeMessage(delta int) string {
	if delta > 0 {
		return fmt.Sprintf("Good news! Your social-fi Credit Community Score has increased by %d points. You can now borrow more crypto without collateral! Check your profile at social-ficredit.io/profile", delta)
	}
	return fmt.Sprintf("Your social-fi Credit Community Score has decreased by %d points. Continue engaging positively with the community to improve your score. Visit social-ficredit.io/profile for more details.", -delta)
}
