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
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	rostererrors "github.com/sirseerhq/sirseer-roster/internal/errors"
	"github.com/sirseerhq/sirseer-roster/internal/giterror"
)

// RESTPager reads a JSON array endpoint page by page using a page query
// parameter, e.g. /repos/{owner}/{repo}/contributors?page=2.
type RESTPager struct {
	client    *http.Client
	endpoint  string
	inspector giterror.Inspector
}

// NewRESTPager creates a pager for endpoint. When ref is set it is sent as
// the sha parameter, which the commit list API uses to select a branch.
// A nil client selects NewHTTPClient().
func NewRESTPager(client *http.Client, endpoint, ref string) *RESTPager {
	if client == nil {
		client = NewHTTPClient()
	}
	return &RESTPager{
		client:    client,
		endpoint:  WithRef(endpoint, ref),
		inspector: giterror.NewInspector(),
	}
}

// String returns the endpoint including any ref parameter.
func (p *RESTPager) String() string {
	return p.endpoint
}

// FetchPage issues GET {endpoint}?page=n and decodes the JSON array body.
func (p *RESTPager) FetchPage(ctx context.Context, n int) (Page, error) {
	pageURL := PageURL(p.endpoint, n)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if err != nil {
		return nil, pageError(p, n, fmt.Errorf("failed to build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, pageError(p, n, giterror.Classify(p.inspector, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		statusErr := &giterror.StatusError{URL: pageURL, StatusCode: resp.StatusCode}
		return nil, pageError(p, n, giterror.Classify(p.inspector, statusErr))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, pageError(p, n, fmt.Errorf("%w: reading body: %w", rostererrors.ErrNetworkFailure, err))
	}

	var page Page
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, pageError(p, n, fmt.Errorf("%w: %w", rostererrors.ErrParse, err))
	}
	// "null" decodes without error but is not a list.
	if page == nil {
		return nil, pageError(p, n, fmt.Errorf("%w: expected a JSON array, got null", rostererrors.ErrParse))
	}

	return page, nil
}
