// Package graphql exposes the identity and employee services as a GraphQL
// schema.
package graphql

import (
	_ "embed"

	graphql "github.com/graph-gophers/graphql-go"
)

//go:embed schema.graphql
var Schema string

// MaxDepth bounds query nesting.
const MaxDepth = 8

// NewSchema parses the schema against r.
func NewSchema(r *Resolver) (*graphql.Schema, error) {
	return graphql.ParseSchema(Schema, r, graphql.MaxDepth(MaxDepth))
}

