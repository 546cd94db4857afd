package zotero

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/refsync/refsync/internal/types"
)

const (
	defaultPageLimit = 100
	apiVersion       = "3"
)

// Client talks to a Zotero-compatible reference API. Listings are fetched with
// start/limit pagination filtered by a since version cursor, so a sync pass only
// sees records changed since the last persisted cursor.
type Client struct {
	baseURL string
	apiKey  string
	userID  string
	httpc   *http.Client
	limit   int
}

// NewClient creates a Client for the given endpoint and credential.
func NewClient(baseURL, apiKey, userID string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		userID:  userID,
		httpc:   &http.Client{Timeout: 120 * time.Second},
		limit:   defaultPageLimit,
	}
}

func (c *Client) newRequest(ctx context.Context, path string, query url.Values) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Zotero-API-Version", apiVersion)
	req.Header.Set("Zotero-API-Key", c.apiKey)
	return req, nil
}

// getPage fetches one listing page into out and returns the response headers.
func (c *Client) getPage(ctx context.Context, path string, query url.Values, out interface{}) (http.Header, error) {
	req, err := c.newRequest(ctx, path, query)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &types.CustomError{
			Code:    resp.StatusCode,
			Message: fmt.Sprintf("GET %s: %s", path, string(body)),
			Type:    "api",
		}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return nil, fmt.Errorf("GET %s: decode: %w", path, err)
	}
	return resp.Header, nil
}

func pageQuery(since, start, limit int) url.Values {
	q := url.Values{}
	q.Set("since", strconv.Itoa(since))
	q.Set("start", strconv.Itoa(start))
	q.Set("limit", strconv.Itoa(limit))
	q.Set("includeTrashed", "1")
	q.Set("format", "json")
	return q
}

// Groups lists the groups accessible to the configured user.
func (c *Client) Groups(ctx context.Context) ([]Group, error) {
	var all []Group
	for start := 0; ; start += c.limit {
		q := url.Values{}
		q.Set("start", strconv.Itoa(start))
		q.Set("limit", strconv.Itoa(c.limit))
		var page []Group
		if _, err := c.getPage(ctx, "/users/"+c.userID+"/groups", q, &page); err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < c.limit {
			return all, nil
		}
	}
}

// Collections lists a group's collections changed since the given version cursor.
func (c *Client) Collections(ctx context.Context, groupID string, since int) ([]Collection, error) {
	var all []Collection
	for start := 0; ; start += c.limit {
		var page []Collection
		if _, err := c.getPage(ctx, "/groups/"+groupID+"/collections", pageQuery(since, start, c.limit), &page); err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < c.limit {
			return all, nil
		}
	}
}

// Items lists a group's items changed since the given version cursor. The
// result keeps the page structure (a batch of batches) and the second return
// value is the library's Last-Modified-Version observed on the first page,
// which becomes the group's next cursor after a successful pass.
func (c *Client) Items(ctx context.Context, groupID string, since int) ([][]Item, int, error) {
	var chunks [][]Item
	lastModified := since
	for start := 0; ; start += c.limit {
		var page []Item
		headers, err := c.getPage(ctx, "/groups/"+groupID+"/items", pageQuery(since, start, c.limit), &page)
		if err != nil {
			return nil, 0, err
		}
		if start == 0 {
			if v, err := strconv.Atoi(headers.Get("Last-Modified-Version")); err == nil {
				lastModified = v
			}
		}
		if len(page) > 0 {
			chunks = append(chunks, page)
		}
		if len(page) < c.limit {
			return chunks, lastModified, nil
		}
	}
}

// DownloadAttachment fetches an item's binary attachment into dest.
func (c *Client) DownloadAttachment(ctx context.Context, groupID, itemKey, dest string) error {
	req, err := c.newRequest(ctx, "/groups/"+groupID+"/items/"+itemKey+"/file", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &types.CustomError{
			Code:    resp.StatusCode,
			Message: fmt.Sprintf("download %s/%s", groupID, itemKey),
			Type:    "file",
		}
	}

	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(dest)
		return err
	}
	return f.Close()
}
