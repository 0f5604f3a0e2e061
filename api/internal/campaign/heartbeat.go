package campaign

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Report is what the heartbeat found for the operator.
type Report struct {
	NeedsAttention bool
	Items          []string
}

func (rep *Report) add(item string) {
	rep.NeedsAttention = true
	rep.Items = append(rep.Items, item)
}

// Heartbeat checks the home dashboard and engaged-thread continuity. Threads
// with new replies are reported once: their seen count is bumped so the next
// pass stays quiet unless more replies arrive.
func (r *Runner) Heartbeat(ctx context.Context) (*Report, error) {
	if r.Log == nil {
		r.Log = zap.NewNop()
	}
	rep := &Report{}

	home, err := r.API.Home(ctx)
	if err != nil {
		return nil, err
	}
	if n := home.Account.UnreadNotificationCount; n > 0 {
		rep.add(fmt.Sprintf("%d unread notifications", n))
	}
	for _, a := range home.Activity {
		if a.NewNotificationCount > 0 {
			rep.add(fmt.Sprintf("%q has %d new comment(s) — %s",
				a.PostTitle, a.NewNotificationCount, strings.Join(a.LatestCommenters, ", ")))
		}
	}
	if n := home.DirectMessages.UnreadMessageCount; n > 0 {
		rep.add(fmt.Sprintf("%d unread DMs", n))
	}

	threads, err := r.Threads.All(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range threads {
		post, err := r.API.GetPost(ctx, t.PostID)
		if err != nil {
			r.Log.Warn("thread check", zap.String("post", t.PostID), zap.Error(err))
			continue
		}
		if post.CommentCount > t.LastSeenCount {
			rep.add(fmt.Sprintf("%q has %d new reply(s)", post.Title, post.CommentCount-t.LastSeenCount))
			if err := r.Threads.Touch(ctx, t.PostID, post.CommentCount); err != nil {
				return nil, err
			}
		}
	}
	return rep, nil
}
