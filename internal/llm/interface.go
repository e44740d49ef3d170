package llm

import (
	"context"
)

// Generator is the opaque text-in/text-out contract with the AI completion
// service. Implementations take an Apex class and return the body of a test
// class, or fail. Callers never parse the response beyond "non-empty".
type Generator interface {
	// GenerateTest requests test content for the named class. The returned
	// string is non-empty on success.
	GenerateTest(ctx context.Context, className, classBody string) (string, error)
}
