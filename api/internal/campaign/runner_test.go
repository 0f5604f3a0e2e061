package campaign

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"moltmemory/api/internal/compose"
	"moltmemory/api/internal/moltbook"
	"moltmemory/api/internal/store"
)

// ---------------- fakes ----------------

type publishedComment struct {
	postID, content, parentID string
}

type publishedPost struct {
	submolt, title, content string
}

type fakeAPI struct {
	home     *moltbook.Home
	posts    map[string]*moltbook.Post
	feed     map[string][]moltbook.Post
	comments map[string][]moltbook.Comment

	upvotedPosts    []string
	upvotedComments []string
	followed        []string
	published       []publishedPost
	replies         []publishedComment
}

func (f *fakeAPI) Home(context.Context) (*moltbook.Home, error) {
	if f.home == nil {
		return &moltbook.Home{}, nil
	}
	return f.home, nil
}

func (f *fakeAPI) GetPost(_ context.Context, id string) (*moltbook.Post, error) {
	if p, ok := f.posts[id]; ok {
		return p, nil
	}
	return &moltbook.Post{ID: id}, nil
}

func (f *fakeAPI) Posts(_ context.Context, q moltbook.FeedQuery) ([]moltbook.Post, error) {
	return f.feed[q.Submolt], nil
}

func (f *fakeAPI) Comments(_ context.Context, postID string, _ int) ([]moltbook.Comment, error) {
	return f.comments[postID], nil
}

func (f *fakeAPI) UpvotePost(_ context.Context, id string) error {
	f.upvotedPosts = append(f.upvotedPosts, id)
	return nil
}

func (f *fakeAPI) UpvoteComment(_ context.Context, id string) error {
	f.upvotedComments = append(f.upvotedComments, id)
	return nil
}

func (f *fakeAPI) FollowAgent(_ context.Context, name string) error {
	f.followed = append(f.followed, name)
	return nil
}

func (f *fakeAPI) PublishPost(_ context.Context, submolt, title, content string) (*moltbook.PostResponse, error) {
	f.published = append(f.published, publishedPost{submolt, title, content})
	return &moltbook.PostResponse{Success: true, Post: &moltbook.Post{ID: "new-" + submolt, Title: title}}, nil
}

func (f *fakeAPI) PublishComment(_ context.Context, postID, content, parentID string) (*moltbook.CommentResponse, error) {
	f.replies = append(f.replies, publishedComment{postID, content, parentID})
	return &moltbook.CommentResponse{Success: true, Comment: &moltbook.Comment{ID: "reply"}}, nil
}

type memThreads struct{ rows map[string]store.ThreadRow }

func newMemThreads() *memThreads { return &memThreads{rows: map[string]store.ThreadRow{}} }

func (m *memThreads) Upsert(_ context.Context, postID, title string, count int) error {
	m.rows[postID] = store.ThreadRow{PostID: postID, Title: title, LastSeenCount: count}
	return nil
}

func (m *memThreads) Touch(_ context.Context, postID string, count int) error {
	row := m.rows[postID]
	row.PostID = postID
	row.LastSeenCount = count
	m.rows[postID] = row
	return nil
}

func (m *memThreads) All(context.Context) ([]store.ThreadRow, error) {
	out := make([]store.ThreadRow, 0, len(m.rows))
	for _, r := range m.rows {
		out = append(out, r)
	}
	return out, nil
}

type memMarks struct{ set map[string]bool }

func newMemMarks() *memMarks { return &memMarks{set: map[string]bool{}} }

func (m *memMarks) Mark(_ context.Context, kind, target string) error {
	m.set[kind+"|"+target] = true
	return nil
}

func (m *memMarks) Seen(_ context.Context, kind, target string) (bool, error) {
	return m.set[kind+"|"+target], nil
}

type fakeComposer struct{ inputs []compose.ReplyInput }

func (f *fakeComposer) Name() string { return "fake" }

func (f *fakeComposer) Reply(_ context.Context, in compose.ReplyInput) (string, error) {
	f.inputs = append(f.inputs, in)
	return "thanks for the comment", nil
}

func newRunner(api *fakeAPI) (*Runner, *memThreads, *memMarks) {
	threads := newMemThreads()
	marks := newMemMarks()
	return &Runner{
		API:     api,
		Threads: threads,
		Marks:   marks,
		Log:     zap.NewNop(),
		Self:    "clawofaron",
	}, threads, marks
}

// ---------------- tests ----------------

func TestHeartbeatReportsDashboard(t *testing.T) {
	api := &fakeAPI{
		home: &moltbook.Home{
			Account: moltbook.Account{UnreadNotificationCount: 2},
			Activity: []moltbook.PostActivity{
				{PostTitle: "guide", NewNotificationCount: 1, LatestCommenters: []string{"crabby"}},
			},
			DirectMessages: moltbook.DMSummary{UnreadMessageCount: 3},
		},
	}
	r, _, _ := newRunner(api)

	rep, err := r.Heartbeat(context.Background())
	require.NoError(t, err)
	assert.True(t, rep.NeedsAttention)
	assert.Len(t, rep.Items, 3)
}

func TestHeartbeatThreadContinuity(t *testing.T) {
	api := &fakeAPI{
		posts: map[string]*moltbook.Post{
			"p1": {ID: "p1", Title: "guide", CommentCount: 5},
		},
	}
	r, threads, _ := newRunner(api)
	require.NoError(t, threads.Upsert(context.Background(), "p1", "guide", 3))

	rep, err := r.Heartbeat(context.Background())
	require.NoError(t, err)
	require.True(t, rep.NeedsAttention)
	assert.Contains(t, rep.Items[0], "2 new reply(s)")

	// Reported once: the seen count was bumped.
	rep, err = r.Heartbeat(context.Background())
	require.NoError(t, err)
	assert.False(t, rep.NeedsAttention)
}

func TestRunProcessesComments(t *testing.T) {
	api := &fakeAPI{
		posts: map[string]*moltbook.Post{
			"p1": {ID: "p1", Title: "guide", Content: "how to molt", CommentCount: 2},
		},
		comments: map[string][]moltbook.Comment{
			"p1": {
				{ID: "c1", Content: "own note", Author: moltbook.Agent{Name: "clawofaron"}},
				{ID: "c2", Content: "great post", Author: moltbook.Agent{Name: "crabby"}},
			},
		},
	}
	r, threads, marks := newRunner(api)
	r.WatchPosts = []string{"p1"}

	_, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"c2"}, api.upvotedComments)
	assert.Equal(t, []string{"crabby"}, api.followed)
	seen, _ := marks.Seen(context.Background(), store.MarkCommented, "c2")
	assert.True(t, seen)
	assert.Equal(t, 2, threads.rows["p1"].LastSeenCount)

	// Second pass is a no-op for the same comment.
	api.upvotedComments = nil
	api.followed = nil
	_, err = r.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, api.upvotedComments)
	assert.Empty(t, api.followed)
}

func TestRunRepliesThroughComposer(t *testing.T) {
	api := &fakeAPI{
		posts: map[string]*moltbook.Post{
			"p1": {ID: "p1", Title: "guide", Content: "how to molt", CommentCount: 1},
		},
		comments: map[string][]moltbook.Comment{
			"p1": {{ID: "c2", Content: "great post", Author: moltbook.Agent{Name: "crabby"}}},
		},
	}
	r, _, _ := newRunner(api)
	r.WatchPosts = []string{"p1"}
	composer := &fakeComposer{}
	r.Composer = composer

	_, err := r.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, composer.inputs, 1)
	assert.Equal(t, "guide", composer.inputs[0].PostTitle)
	assert.Equal(t, "great post", composer.inputs[0].Comment)
	require.Len(t, api.replies, 1)
	assert.Equal(t, publishedComment{postID: "p1", content: "thanks for the comment", parentID: "c2"}, api.replies[0])
}

func TestRunUpvotesSubmoltPosts(t *testing.T) {
	api := &fakeAPI{
		feed: map[string][]moltbook.Post{
			"builds": {
				{ID: "own", Author: moltbook.Agent{Name: "clawofaron"}},
				{ID: "hot1", Author: moltbook.Agent{Name: "crabby"}},
			},
		},
	}
	r, _, marks := newRunner(api)
	r.Submolts = []string{"builds"}

	_, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"hot1"}, api.upvotedPosts)

	seen, _ := marks.Seen(context.Background(), store.MarkUpvotedPost, "hot1")
	assert.True(t, seen)

	api.upvotedPosts = nil
	_, err = r.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, api.upvotedPosts)
}

func TestRunSpreadsOncePerSubmolt(t *testing.T) {
	api := &fakeAPI{}
	r, threads, marks := newRunner(api)
	r.Spread = []SpreadPost{
		{Submolt: "builds", Title: "a", Content: "x"},
		{Submolt: "agents", Title: "b", Content: "y"},
	}
	require.NoError(t, marks.Mark(context.Background(), store.MarkSubmoltPosted, "builds"))

	_, err := r.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, api.published, 1)
	assert.Equal(t, publishedPost{submolt: "agents", title: "b", content: "y"}, api.published[0])
	assert.Contains(t, threads.rows, "new-agents")

	api.published = nil
	_, err = r.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, api.published)
}

func TestRunNotifiesWhenAttentionNeeded(t *testing.T) {
	api := &fakeAPI{
		home: &moltbook.Home{Account: moltbook.Account{UnreadNotificationCount: 1}},
	}
	r, _, _ := newRunner(api)
	n := &fakeNotifier{}
	r.Notify = n

	_, err := r.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, n.sent, 1)
	assert.Contains(t, n.sent[0], "1 unread notifications")
}

type fakeNotifier struct{ sent []string }

func (f *fakeNotifier) SendLines(header string, items []string) error {
	msg := header
	for _, it := range items {
		msg += "\n" + it
	}
	f.sent = append(f.sent, msg)
	return nil
}
