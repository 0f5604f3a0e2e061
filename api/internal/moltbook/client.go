// Package moltbook is a typed HTTP client for the Moltbook agent API,
// including the auto-verifying publish flow.
package moltbook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const DefaultBaseURL = "https://www.moltbook.com/api/v1"

type Client struct {
	base   string
	apiKey string
	httpc  *http.Client
	log    *zap.Logger
}

func New(base, apiKey string, log *zap.Logger) *Client {
	if strings.TrimSpace(base) == "" {
		base = DefaultBaseURL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		base:   strings.TrimRight(base, "/"),
		apiKey: strings.TrimSpace(apiKey),
		httpc:  &http.Client{Timeout: 15 * time.Second},
		log:    log,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("moltbook: encode body: %w", err)
		}
		rd = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("moltbook %s %d: %s", path, resp.StatusCode, strings.TrimSpace(string(data)))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("moltbook %s: bad JSON: %w", path, err)
	}
	return nil
}

// CreatePost creates a post without touching the verification challenge.
// Most callers want PublishPost instead.
func (c *Client) CreatePost(ctx context.Context, submolt, title, content string) (*PostResponse, error) {
	body := map[string]string{"submolt_name": submolt, "title": title, "content": content}
	var out PostResponse
	if err := c.do(ctx, http.MethodPost, "/posts", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateComment adds a comment to a post. parentID may be empty for a
// top-level comment.
func (c *Client) CreateComment(ctx context.Context, postID, content, parentID string) (*CommentResponse, error) {
	body := map[string]string{"content": content}
	if parentID != "" {
		body["parent_id"] = parentID
	}
	var out CommentResponse
	if err := c.do(ctx, http.MethodPost, "/posts/"+url.PathEscape(postID)+"/comments", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Verify submits the answer to a verification challenge.
func (c *Client) Verify(ctx context.Context, code, answer string) (*VerifyResult, error) {
	body := map[string]string{"verification_code": code, "answer": answer}
	var out VerifyResult
	if err := c.do(ctx, http.MethodPost, "/verify", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Home(ctx context.Context) (*Home, error) {
	var out Home
	if err := c.do(ctx, http.MethodGet, "/home", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetPost(ctx context.Context, id string) (*Post, error) {
	var out struct {
		Post Post `json:"post"`
	}
	if err := c.do(ctx, http.MethodGet, "/posts/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Post, nil
}

func (c *Client) Posts(ctx context.Context, q FeedQuery) ([]Post, error) {
	vals := url.Values{}
	if q.Sort != "" {
		vals.Set("sort", q.Sort)
	}
	if q.Limit > 0 {
		vals.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Submolt != "" {
		vals.Set("submolt", q.Submolt)
	}
	path := "/posts"
	if len(vals) > 0 {
		path += "?" + vals.Encode()
	}
	var out struct {
		Posts []Post `json:"posts"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Posts, nil
}

// Comments lists the newest comments on a post.
func (c *Client) Comments(ctx context.Context, postID string, limit int) ([]Comment, error) {
	path := "/posts/" + url.PathEscape(postID) + "/comments?sort=new&limit=" + strconv.Itoa(limit)
	var out struct {
		Comments []Comment `json:"comments"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Comments, nil
}

func (c *Client) UpvotePost(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/posts/"+url.PathEscape(id)+"/upvote", nil, nil)
}

func (c *Client) UpvoteComment(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/comments/"+url.PathEscape(id)+"/upvote", nil, nil)
}

func (c *Client) FollowAgent(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodPost, "/agents/"+url.PathEscape(name)+"/follow", nil, nil)
}

// CuratedFeed fetches the hot feed and keeps only high-signal posts: at least
// minUpvotes upvotes, sorted by upvotes descending, capped at limit.
func (c *Client) CuratedFeed(ctx context.Context, minUpvotes, limit int, submolt string) ([]Post, error) {
	posts, err := c.Posts(ctx, FeedQuery{Submolt: submolt, Sort: "hot", Limit: 25})
	if err != nil {
		return nil, err
	}
	filtered := posts[:0:0]
	for _, p := range posts {
		if p.Upvotes >= minUpvotes {
			filtered = append(filtered, p)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Upvotes > filtered[j].Upvotes })
	if limit > 0 && len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return filtered, nil
}
