package store

import "context"

// Logical document keys. These are the only keys the application persists.
const (
	KeyFreeUsage    = "free-usage"
	KeyQuizProgress = "quiz-progress"
	KeyAuthToken    = "auth-token"
	KeyPreferences  = "user-preferences"
)

// Keys lists every logical key, in the order Clear removes them.
var Keys = []string{KeyFreeUsage, KeyQuizProgress, KeyAuthToken, KeyPreferences}

// Store is a synchronous key to JSON-document store. It never returns errors:
// reads of absent or corrupt documents report false, and write failures are
// logged and swallowed, so callers always work against a best-effort copy.
type Store interface {
	// Get unmarshals the document stored under key into dst. It returns
	// false when the key is absent or the stored value does not parse.
	Get(ctx context.Context, key string, dst any) bool
	// Put marshals doc and persists it under key, replacing any prior value.
	Put(ctx context.Context, key string, doc any)
	// Delete removes the key.
	Delete(ctx context.Context, key string)
	// Clear removes every logical key.
	Clear(ctx context.Context)
}
