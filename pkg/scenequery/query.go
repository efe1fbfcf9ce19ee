package scenequery

import (
	"github.com/graphql-go/graphql"
)

// Execute runs a GraphQL query against the schema
func Execute(schema graphql.Schema, query string, variables map[string]any) *graphql.Result {
	params := graphql.Params{
		Schema:         schema,
		RequestString:  query,
		VariableValues: variables,
	}
	return graphql.Do(params)
}
