package wordlist

var defaultWords = []string{
	"the", "be", "to", "of", "and", "a", "in", "that", "have", "it",
	"for", "not", "on", "with", "he", "as", "you", "do", "at", "this",
	"but", "his", "by", "from", "they", "we", "say", "her", "she", "or",
	"an", "will", "my", "one", "all", "would", "there", "their", "what", "so",
	"up", "out", "if", "about", "who", "get", "which", "go", "me", "when",
	"make", "can", "like", "time", "no", "just", "him", "know", "take", "people",
	"into", "year", "your", "good", "some", "could", "them", "see", "other", "than",
	"then", "now", "look", "only", "come", "its", "over", "think", "also", "back",
	"after", "use", "two", "how", "our", "work", "first", "well", "way", "even",
	"new", "want", "because", "any", "these", "give", "day", "most", "us", "great",
	"between", "need", "large", "often", "hand", "high", "place", "hold", "turn", "small",
	"number", "world", "house", "water", "point", "light", "school", "never", "start", "city",
	"story", "early", "idea", "enough", "might", "while", "still", "learn", "plant", "cover",
}

// Default returns the built-in English corpus.
func Default() []string {
	out := make([]string, len(defaultWords))
	copy(out, defaultWords)
	return out
}
