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
	"net/url"
	"strings"

	"github.com/google/go-github/v63/github"
	"github.com/sirseerhq/sirseer-roster/internal/giterror"
)

// List names a repository listing the APIPager can walk.
type List string

const (
	// ListContributors walks GET /repos/{owner}/{repo}/contributors.
	ListContributors List = "contributors"

	// ListCommits walks GET /repos/{owner}/{repo}/commits.
	ListCommits List = "commits"
)

// APIPager walks a repository listing through the typed go-github client.
// Contributors become {"login": ...} records and commits become
// {"author": {"login": ...}, "committer": {"login": ...}} records.
type APIPager struct {
	client    *github.Client
	owner     string
	repo      string
	list      List
	ref       string
	perPage   int
	inspector giterror.Inspector
}

// APIOptions configures an APIPager.
type APIOptions struct {
	// BaseURL is the REST API root, e.g. https://api.github.com/.
	// Empty keeps go-github's default.
	BaseURL string

	// Owner and Repo identify the repository.
	Owner string
	Repo  string

	// List selects contributors or commits.
	List List

	// Ref selects the branch or commit for ListCommits.
	Ref string

	// PerPage is the page size. Defaults to 100, capped at 100.
	PerPage int
}

// NewAPIPager creates an APIPager. A nil client selects NewHTTPClient().
func NewAPIPager(client *http.Client, opts APIOptions) (*APIPager, error) {
	if client == nil {
		client = NewHTTPClient()
	}
	gh := github.NewClient(client)
	gh.UserAgent = userAgent()

	if opts.BaseURL != "" {
		base := opts.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("invalid API endpoint %q: %w", opts.BaseURL, err)
		}
		gh.BaseURL = u
	}

	switch opts.List {
	case ListContributors, ListCommits:
	default:
		return nil, fmt.Errorf("unknown list %q (want %s or %s)", opts.List, ListContributors, ListCommits)
	}

	return &APIPager{
		client:    gh,
		owner:     opts.Owner,
		repo:      opts.Repo,
		list:      opts.List,
		ref:       opts.Ref,
		perPage:   clampPerPage(opts.PerPage),
		inspector: giterror.NewInspector(),
	}, nil
}

// String returns owner/repo/list[@ref].
func (p *APIPager) String() string {
	s := fmt.Sprintf("%s/%s/%s", p.owner, p.repo, p.list)
	if p.ref != "" {
		s += "@" + p.ref
	}
	return s
}

// FetchPage retrieves page n of the configured listing.
func (p *APIPager) FetchPage(ctx context.Context, n int) (Page, error) {
	listOpts := github.ListOptions{Page: n, PerPage: p.perPage}

	if p.list == ListContributors {
		contributors, resp, err := p.client.Repositories.ListContributors(ctx, p.owner, p.repo,
			&github.ListContributorsOptions{ListOptions: listOpts})
		closeResponse(resp)
		if err != nil {
			return nil, pageError(p, n, giterror.Classify(p.inspector, err))
		}
		page := make(Page, 0, len(contributors))
		for _, c := range contributors {
			record := Record{}
			if login := c.GetLogin(); login != "" {
				record["login"] = login
			}
			page = append(page, record)
		}
		return page, nil
	}

	commits, resp, err := p.client.Repositories.ListCommits(ctx, p.owner, p.repo,
		&github.CommitsListOptions{SHA: p.ref, ListOptions: listOpts})
	closeResponse(resp)
	if err != nil {
		return nil, pageError(p, n, giterror.Classify(p.inspector, err))
	}
	page := make(Page, 0, len(commits))
	for _, c := range commits {
		page = append(page, Record{
			"author":    userRecord(c.GetAuthor().GetLogin()),
			"committer": userRecord(c.GetCommitter().GetLogin()),
		})
	}
	return page, nil
}

func closeResponse(resp *github.Response) {
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
}
