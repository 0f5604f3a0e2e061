// Package campaign runs the periodic engagement pass: heartbeat, replies to
// new comments, submolt upvotes and spreading configured posts.
package campaign

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"moltmemory/api/internal/compose"
	"moltmemory/api/internal/moltbook"
	"moltmemory/api/internal/store"
)

// API is the slice of the Moltbook client the runner needs.
type API interface {
	Home(ctx context.Context) (*moltbook.Home, error)
	GetPost(ctx context.Context, id string) (*moltbook.Post, error)
	Posts(ctx context.Context, q moltbook.FeedQuery) ([]moltbook.Post, error)
	Comments(ctx context.Context, postID string, limit int) ([]moltbook.Comment, error)
	UpvotePost(ctx context.Context, id string) error
	UpvoteComment(ctx context.Context, id string) error
	FollowAgent(ctx context.Context, name string) error
	PublishPost(ctx context.Context, submolt, title, content string) (*moltbook.PostResponse, error)
	PublishComment(ctx context.Context, postID, content, parentID string) (*moltbook.CommentResponse, error)
}

type ThreadStore interface {
	Upsert(ctx context.Context, postID, title string, commentCount int) error
	Touch(ctx context.Context, postID string, commentCount int) error
	All(ctx context.Context) ([]store.ThreadRow, error)
}

type MarkStore interface {
	Mark(ctx context.Context, kind, target string) error
	Seen(ctx context.Context, kind, target string) (bool, error)
}

type Notifier interface {
	SendLines(header string, items []string) error
}

// SpreadPost is one configured post to publish into a submolt the campaign
// has not reached yet.
type SpreadPost struct {
	Submolt string `json:"submolt"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type Runner struct {
	API     API
	Threads ThreadStore
	Marks   MarkStore

	// Composer drafts replies; nil disables replying (engagement only).
	Composer compose.Engine
	// Notify receives the heartbeat report; nil disables notifications.
	Notify Notifier

	Log *zap.Logger

	// Self is the agent's own name; its posts and comments are skipped.
	Self       string
	WatchPosts []string
	Submolts   []string
	Spread     []SpreadPost
	// Cooldown between spread posts (the API enforces a 30s minimum).
	Cooldown time.Duration
}

// Run executes one full campaign pass. Per-item failures are logged and
// skipped; only transport-level and store failures abort the pass.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	if r.Log == nil {
		r.Log = zap.NewNop()
	}

	report, err := r.Heartbeat(ctx)
	if err != nil {
		return nil, fmt.Errorf("heartbeat: %w", err)
	}
	if err := r.processWatchedPosts(ctx); err != nil {
		return report, fmt.Errorf("watched posts: %w", err)
	}
	if err := r.engageSubmolts(ctx); err != nil {
		return report, fmt.Errorf("engage submolts: %w", err)
	}
	if err := r.spread(ctx); err != nil {
		return report, fmt.Errorf("spread: %w", err)
	}

	if report.NeedsAttention && r.Notify != nil {
		if err := r.Notify.SendLines("Moltbook needs attention:", report.Items); err != nil {
			r.Log.Warn("notify failed", zap.Error(err))
		}
	}
	return report, nil
}

// processWatchedPosts reads the newest comments on every watched post,
// upvotes and follows their authors and, when a composer is configured,
// drafts and publishes a reply. Every handled comment is marked so reruns
// skip it.
func (r *Runner) processWatchedPosts(ctx context.Context) error {
	for _, postID := range r.WatchPosts {
		comments, err := r.API.Comments(ctx, postID, 10)
		if err != nil {
			r.Log.Warn("list comments", zap.String("post", postID), zap.Error(err))
			continue
		}

		var post *moltbook.Post
		loadPost := func() *moltbook.Post {
			if post != nil {
				return post
			}
			p, err := r.API.GetPost(ctx, postID)
			if err != nil {
				r.Log.Warn("get post", zap.String("post", postID), zap.Error(err))
				return nil
			}
			post = p
			return post
		}

		for _, cm := range comments {
			author := cm.Author.Name
			if author == r.Self || author == "" {
				continue
			}
			seen, err := r.Marks.Seen(ctx, store.MarkCommented, cm.ID)
			if err != nil {
				return err
			}
			if seen {
				continue
			}

			if err := r.API.UpvoteComment(ctx, cm.ID); err != nil {
				r.Log.Warn("upvote comment", zap.String("comment", cm.ID), zap.Error(err))
			}

			followed, err := r.Marks.Seen(ctx, store.MarkFollowed, author)
			if err != nil {
				return err
			}
			if !followed {
				if err := r.API.FollowAgent(ctx, author); err != nil {
					r.Log.Warn("follow agent", zap.String("agent", author), zap.Error(err))
				} else if err := r.Marks.Mark(ctx, store.MarkFollowed, author); err != nil {
					return err
				}
			}

			if r.Composer != nil {
				if p := loadPost(); p != nil {
					r.replyTo(ctx, p, cm)
				}
			}

			if err := r.Marks.Mark(ctx, store.MarkCommented, cm.ID); err != nil {
				return err
			}
			r.Log.Info("processed comment",
				zap.String("post", postID), zap.String("comment", cm.ID), zap.String("author", author))
		}

		if p := loadPost(); p != nil {
			if err := r.Threads.Upsert(ctx, p.ID, p.Title, p.CommentCount); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Runner) replyTo(ctx context.Context, post *moltbook.Post, cm moltbook.Comment) {
	reply, err := r.Composer.Reply(ctx, compose.ReplyInput{
		PostTitle:   post.Title,
		PostContent: post.Content,
		Comment:     cm.Content,
	})
	if err != nil {
		r.Log.Warn("compose reply", zap.String("comment", cm.ID), zap.Error(err))
		return
	}
	if _, err := r.API.PublishComment(ctx, post.ID, reply, cm.ID); err != nil {
		r.Log.Warn("publish reply", zap.String("comment", cm.ID), zap.Error(err))
	}
}

// engageSubmolts upvotes the hot posts of every configured submolt, once.
func (r *Runner) engageSubmolts(ctx context.Context) error {
	for _, submolt := range r.Submolts {
		posts, err := r.API.Posts(ctx, moltbook.FeedQuery{Submolt: submolt, Sort: "hot", Limit: 5})
		if err != nil {
			r.Log.Warn("list posts", zap.String("submolt", submolt), zap.Error(err))
			continue
		}
		for _, p := range posts {
			if p.Author.Name == r.Self {
				continue
			}
			seen, err := r.Marks.Seen(ctx, store.MarkUpvotedPost, p.ID)
			if err != nil {
				return err
			}
			if seen {
				continue
			}
			if err := r.API.UpvotePost(ctx, p.ID); err != nil {
				r.Log.Warn("upvote post", zap.String("post", p.ID), zap.Error(err))
				continue
			}
			if err := r.Marks.Mark(ctx, store.MarkUpvotedPost, p.ID); err != nil {
				return err
			}
			r.Log.Info("upvoted", zap.String("submolt", submolt), zap.String("title", p.Title))
		}
	}
	return nil
}

// spread publishes the configured posts to submolts not yet posted to,
// waiting out the post cooldown between publications.
func (r *Runner) spread(ctx context.Context) error {
	first := true
	for _, sp := range r.Spread {
		seen, err := r.Marks.Seen(ctx, store.MarkSubmoltPosted, sp.Submolt)
		if err != nil {
			return err
		}
		if seen {
			continue
		}

		if !first && r.Cooldown > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(r.Cooldown):
			}
		}
		first = false

		resp, err := r.API.PublishPost(ctx, sp.Submolt, sp.Title, sp.Content)
		if err != nil {
			r.Log.Warn("spread post", zap.String("submolt", sp.Submolt), zap.Error(err))
			continue
		}
		if err := r.Marks.Mark(ctx, store.MarkSubmoltPosted, sp.Submolt); err != nil {
			return err
		}
		if resp.Post != nil {
			if err := r.Threads.Upsert(ctx, resp.Post.ID, sp.Title, 0); err != nil {
				return err
			}
		}
		r.Log.Info("spread", zap.String("submolt", sp.Submolt), zap.String("title", sp.Title))
	}
	return nil
}
