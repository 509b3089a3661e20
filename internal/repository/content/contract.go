package content

import "context"

// Querier is the consumer interface for the CMS GraphQL client.
type Querier interface {
	Query(ctx context.Context, operation, query string, variables map[string]any, out any) error
	Configured() bool
}
