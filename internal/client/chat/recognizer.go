package chat

import "context"

// Recognizer turns one spoken utterance into text. Recognize starts
// listening, returns a single final result or an error, and stops.
type Recognizer interface {
	Available() bool
	Recognize(ctx context.Context) (string, error)
}
