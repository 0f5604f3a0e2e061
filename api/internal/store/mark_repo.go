package store

import (
	"context"
	"database/sql"
)

// Mark kinds. target is a comment id, post id, agent name or submolt name
// depending on the kind.
const (
	MarkCommented     = "commented"
	MarkUpvotedPost   = "upvoted_post"
	MarkFollowed      = "followed"
	MarkSubmoltPosted = "submolt_posted"
)

// MarkRepo records one-shot campaign actions so reruns stay idempotent.
type MarkRepo struct{ DB *sql.DB }

func NewMarkRepo(db *sql.DB) *MarkRepo { return &MarkRepo{DB: db} }

func (r *MarkRepo) Mark(ctx context.Context, kind, target string) error {
	const q = `insert into campaign_marks(kind, target) values ($1,$2)
	           on conflict (kind, target) do nothing`
	_, err := r.DB.ExecContext(ctx, q, kind, target)
	return err
}

func (r *MarkRepo) Seen(ctx context.Context, kind, target string) (bool, error) {
	const q = `select 1 from campaign_marks where kind=$1 and target=$2`
	var one int
	err := r.DB.QueryRowContext(ctx, q, kind, target).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
