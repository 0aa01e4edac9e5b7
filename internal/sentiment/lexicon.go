package sentiment

// Term lists for the lexicon classifier. Single words only; matching is
// done on cleaned, lowercased, whitespace-split text.
var (
	positiveTerms = []string{
		"great", "innovative", "loving", "love", "revolutionary", "amazing",
		"impressed", "impressive", "brilliant", "excellent", "helpful",
		"excited", "exciting", "awesome", "fantastic", "good", "nice",
		"best", "wonderful", "works", "thanks", "thank",
	}

	negativeTerms = []string{
		"terrible", "bad", "complicated", "failed", "fail", "bug", "buggy",
		"broken", "poor", "scam", "waste", "worst", "awful", "useless",
		"slow", "confusing", "disappointed", "disappointing", "lost",
		"horrible", "unusable",
	}

	// Multi-word modifiers are matched as substrings of the cleaned text.
	intensifiers = []string{"very", "super", "really", "extremely", "absolutely"}
	diminishers  = []string{"somewhat", "slightly", "a bit", "kind of", "sort of"}
)
