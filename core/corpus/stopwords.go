package corpus

// Function words that rank at the very top of any frequency list but make
// poor guessing words. Excluded from selection regardless of frequency.
var defaultStopwords = map[string]struct{}{
	"the": {}, "be": {}, "to": {}, "of": {}, "and": {}, "a": {}, "in": {},
	"that": {}, "have": {}, "i": {}, "it": {}, "for": {}, "not": {}, "on": {},
	"with": {}, "he": {}, "as": {}, "you": {}, "do": {}, "at": {}, "this": {},
	"but": {}, "his": {}, "by": {}, "from": {}, "they": {}, "we": {}, "say": {},
	"her": {}, "she": {}, "or": {}, "an": {}, "will": {}, "my": {}, "one": {},
	"all": {}, "would": {}, "there": {}, "their": {}, "been": {}, "has": {},
	"had": {}, "who": {}, "its": {}, "now": {}, "may": {}, "does": {},
	"many": {}, "than": {}, "then": {}, "them": {}, "these": {}, "very": {},
	"just": {}, "into": {}, "over": {}, "also": {}, "your": {}, "only": {},
	"still": {}, "never": {}, "each": {}, "how": {}, "our": {}, "out": {},
	"most": {}, "some": {},
}

// IsStopword reports whether word is in the built-in stopword set.
func IsStopword(word string) bool {
	_, ok := defaultStopwords[word]
	return ok
}
