package store

import (
	"context"
	"database/sql"
	"time"
)

// ThreadRepo tracks the threads the agent engaged with, so the heartbeat can
// tell when a thread gained replies since the last look.
type ThreadRepo struct{ DB *sql.DB }

func NewThreadRepo(db *sql.DB) *ThreadRepo { return &ThreadRepo{DB: db} }

type ThreadRow struct {
	PostID        string
	Title         string
	LastSeenCount int
	LastSeenAt    time.Time
	CheckedAt     time.Time
}

// Upsert records engagement with a thread at the given comment count.
func (r *ThreadRepo) Upsert(ctx context.Context, postID, title string, commentCount int) error {
	const q = `
insert into engaged_threads(post_id, title, last_seen_count, last_seen_at, checked_at)
values ($1,$2,$3,now(),now())
on conflict (post_id)
do update set title=excluded.title, last_seen_count=excluded.last_seen_count,
              last_seen_at=now(), checked_at=now()`
	_, err := r.DB.ExecContext(ctx, q, postID, title, commentCount)
	return err
}

// Touch bumps last_seen_count after the thread was reviewed, without
// disturbing the title.
func (r *ThreadRepo) Touch(ctx context.Context, postID string, commentCount int) error {
	const q = `update engaged_threads
	           set last_seen_count=$2, checked_at=now()
	           where post_id=$1`
	_, err := r.DB.ExecContext(ctx, q, postID, commentCount)
	return err
}

// All returns every engaged thread, oldest check first.
func (r *ThreadRepo) All(ctx context.Context) ([]ThreadRow, error) {
	const q = `select post_id, title, last_seen_count, last_seen_at, checked_at
	           from engaged_threads
	           order by checked_at`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ThreadRow
	for rows.Next() {
		var t ThreadRow
		if err := rows.Scan(&t.PostID, &t.Title, &t.LastSeenCount, &t.LastSeenAt, &t.CheckedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
