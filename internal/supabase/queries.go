package supabase

import (
	"context"
	"errors"
	"fmt"

	"github.com/machinebox/graphql"
)

// ErrProfileNotFound indicates no profile row matches the requested user.
var ErrProfileNotFound = errors.New("profile not found")

// Profile is the subset of a user profile needed to address an e-mail.
type Profile struct {
	ID    string
	Name  string
	Email string
}

// GetProfile looks up a user's profile by ID.
func (c *Client) GetProfile(ctx context.Context, userID string) (Profile, error) {
	req := graphql.NewRequest(`
		query($id: UUID!) {
			profilesCollection(filter: { id: { eq: $id } }, first: 1) {
				edges {
					node {
						id
						name
						email
					}
				}
			}
		}
	`)

	req.Var("id", userID)

	var resp struct {
		ProfilesCollection struct {
			Edges []struct {
				Node struct {
					ID    string `json:"id"`
					Name  string `json:"name"`
					Email string `json:"email"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"profilesCollection"`
	}

	if err := c.makeRequest(ctx, req, &resp); err != nil {
		return Profile{}, fmt.Errorf("failed to get profile: %w", err)
	}

	edges := resp.ProfilesCollection.Edges
	if len(edges) == 0 {
		return Profile{}, fmt.Errorf("%w: %s", ErrProfileNotFound, userID)
	}

	node := edges[0].Node
	return Profile{ID: node.ID, Name: node.Name, Email: node.Email}, nil
}
