// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package github

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shurcooL/graphql"
	rostererrors "github.com/sirseerhq/sirseer-roster/internal/errors"
	"github.com/sirseerhq/sirseer-roster/internal/giterror"
)

// GraphQLPager walks the commit history of a ref through the GraphQL API.
// The API paginates with cursors, so page n can only be fetched after page
// n-1; once the history reports no further pages, the next page is empty.
type GraphQLPager struct {
	client    *graphql.Client
	endpoint  string
	owner     string
	repo      string
	ref       string
	perPage   int
	inspector giterror.Inspector

	// cursors[i] is the cursor that starts page i+2.
	cursors  []string
	lastPage int // set once hasNextPage is false
}

// GraphQLOptions configures a GraphQLPager.
type GraphQLOptions struct {
	// Endpoint is the GraphQL URL, e.g. https://api.github.com/graphql.
	Endpoint string

	// Owner and Repo identify the repository.
	Owner string
	Repo  string

	// Ref is the branch or tag whose history is walked, e.g. "main" or "refs/heads/main".
	Ref string

	// PerPage is the number of commits per page. Defaults to 100, capped at 100.
	PerPage int
}

// NewGraphQLPager creates a GraphQLPager. A nil client selects NewHTTPClient().
func NewGraphQLPager(client *http.Client, opts GraphQLOptions) *GraphQLPager {
	if client == nil {
		client = NewHTTPClient()
	}
	return &GraphQLPager{
		client:    graphql.NewClient(opts.Endpoint, client),
		endpoint:  opts.Endpoint,
		owner:     opts.Owner,
		repo:      opts.Repo,
		ref:       opts.Ref,
		perPage:   clampPerPage(opts.PerPage),
		inspector: giterror.NewInspector(),
	}
}

// String returns owner/repo@ref.
func (p *GraphQLPager) String() string {
	return fmt.Sprintf("%s/%s@%s", p.owner, p.repo, p.ref)
}

// FetchPage retrieves page n of the commit history as commit records.
func (p *GraphQLPager) FetchPage(ctx context.Context, n int) (Page, error) {
	if n < 1 {
		return nil, pageError(p, n, fmt.Errorf("page numbers start at 1"))
	}
	if p.lastPage > 0 && n > p.lastPage {
		return Page{}, nil
	}

	var after *graphql.String
	if n > 1 {
		if n-2 >= len(p.cursors) {
			return nil, pageError(p, n, fmt.Errorf("page %d requested before page %d", n, n-1))
		}
		cursor := graphql.String(p.cursors[n-2])
		after = &cursor
	}

	var query struct {
		Repository *struct {
			Ref *struct {
				Target struct {
					Typename graphql.String `graphql:"__typename"`
					Commit   struct {
						History struct {
							PageInfo struct {
								HasNextPage graphql.Boolean
								EndCursor   graphql.String
							}
							Nodes []struct {
								Author struct {
									User *struct {
										Login graphql.String
									} `graphql:"user"`
								} `graphql:"author"`
								Committer struct {
									User *struct {
										Login graphql.String
									} `graphql:"user"`
								} `graphql:"committer"`
							}
						} `graphql:"history(first: $first, after: $after)"`
					} `graphql:"... on Commit"`
				}
			} `graphql:"ref(qualifiedName: $ref)"`
		} `graphql:"repository(owner: $owner, name: $repo)"`
	}

	variables := map[string]interface{}{
		"owner": graphql.String(p.owner),
		"repo":  graphql.String(p.repo),
		"ref":   graphql.String(p.ref),
		"first": graphql.Int(int32(p.perPage)), // #nosec G115 - perPage is capped at 100
		"after": after,
	}

	if err := p.client.Query(ctx, &query, variables); err != nil {
		return nil, pageError(p, n, giterror.Classify(p.inspector, err))
	}

	if query.Repository == nil {
		return nil, pageError(p, n, fmt.Errorf("%w: repository %s/%s not found", rostererrors.ErrNetworkFailure, p.owner, p.repo))
	}
	if query.Repository.Ref == nil {
		return nil, pageError(p, n, fmt.Errorf("%w: ref %q not found in %s/%s", rostererrors.ErrNetworkFailure, p.ref, p.owner, p.repo))
	}

	// An annotated tag resolves to a Tag object with no history of its own.
	if typename := string(query.Repository.Ref.Target.Typename); typename != "Commit" {
		return nil, pageError(p, n, fmt.Errorf("%w: ref %q points at a %s, not a commit", rostererrors.ErrParse, p.ref, typename))
	}

	history := query.Repository.Ref.Target.Commit.History
	page := make(Page, 0, len(history.Nodes))
	for _, node := range history.Nodes {
		var author, committer string
		if node.Author.User != nil {
			author = string(node.Author.User.Login)
		}
		if node.Committer.User != nil {
			committer = string(node.Committer.User.Login)
		}
		page = append(page, Record{
			"author":    userRecord(author),
			"committer": userRecord(committer),
		})
	}

	if bool(history.PageInfo.HasNextPage) {
		if n-1 == len(p.cursors) {
			p.cursors = append(p.cursors, string(history.PageInfo.EndCursor))
		}
	} else {
		p.lastPage = n
	}

	return page, nil
}
