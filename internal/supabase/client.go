// Package supabase provides a GraphQL client for the hosted BugSquash backend.
// It talks to the pg_graphql endpoint and hides the collection-shaped schema
// behind a couple of plain methods.
package supabase

import (
	"context"
	"errors"
	"strings"

	"github.com/machinebox/graphql"
	"go.uber.org/zap"
)

// graphqlPath is where pg_graphql is served relative to the project URL.
const graphqlPath = "/graphql/v1"

// Client is a pg_graphql client authenticated with the project's anon key.
type Client struct {
	gql    *graphql.Client
	apiKey string
	token  string
}

// New creates a client for the project at baseURL (e.g. https://xyz.supabase.co).
// token is an optional user access token; the anon key is used when it is empty.
func New(baseURL, apiKey, token string) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("supabase URL is not configured")
	}
	if apiKey == "" {
		return nil, errors.New("supabase anon key is not configured")
	}

	gql := graphql.NewClient(strings.TrimRight(baseURL, "/") + graphqlPath)
	gql.Log = func(s string) { zap.L().Debug("graphql", zap.String("detail", s)) }

	return &Client{
		gql:    gql,
		apiKey: apiKey,
		token:  token,
	}, nil
}

// makeRequest executes a GraphQL request with the project key and bearer token.
func (c *Client) makeRequest(ctx context.Context, req *graphql.Request, resp interface{}) error {
	bearer := c.token
	if bearer == "" {
		bearer = c.apiKey
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+bearer)
	return c.gql.Run(ctx, req, resp)
}
