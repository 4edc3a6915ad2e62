package service

import "fmt"

// errUnknownState guards the state machine against an impossible transition.
func errUnknownState(s State) error {
	return fmt.Errorf("no transition defined for state %s", s)
}

// errEmbeddingShape indicates the embedder returned the wrong number of
// vectors for a single-document request.
func errEmbeddingShape(n int) error {
	return fmt.Errorf("expected 1 embedding vector, got %d", n)
}
