package ports

import "context"

// ClassifierContext is everything the language model sees for one utterance.
type ClassifierContext struct {
	Query       string
	History     string
	CurrentDate string
	UserName    string
	CompanyName string
}

// Classifier maps free text plus context to a single action line in the
// pipe-delimited grammar, or to free text (treated as unrecognized). It is an
// untrusted, possibly-unavailable dependency: callers must treat any error or
// unparseable output as the degraded help path, never retry or block.
type Classifier interface {
	Classify(ctx context.Context, in ClassifierContext) (string, error)
}
