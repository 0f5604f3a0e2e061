package moltbook

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"moltmemory/api/internal/challenge"
)

// PublishPost creates a post and, when the response carries a verification
// challenge, solves it and submits the answer. Trusted agents get no
// challenge and the create response is returned as is.
func (c *Client) PublishPost(ctx context.Context, submolt, title, content string) (*PostResponse, error) {
	resp, err := c.CreatePost(ctx, submolt, title, content)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return resp, fmt.Errorf("moltbook: create post: %s", apiError(resp.Error, resp.Message))
	}
	if resp.Post == nil {
		return resp, nil
	}
	res, answer, err := c.completeVerification(ctx, resp.Post.Verification)
	if err != nil {
		return resp, err
	}
	resp.VerifyResult = res
	resp.AnswerSubmitted = answer
	return resp, nil
}

// PublishComment is PublishPost for comments. parentID may be empty.
func (c *Client) PublishComment(ctx context.Context, postID, content, parentID string) (*CommentResponse, error) {
	resp, err := c.CreateComment(ctx, postID, content, parentID)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return resp, fmt.Errorf("moltbook: create comment: %s", apiError(resp.Error, resp.Message))
	}
	if resp.Comment == nil {
		return resp, nil
	}
	res, answer, err := c.completeVerification(ctx, resp.Comment.Verification)
	if err != nil {
		return resp, err
	}
	resp.VerifyResult = res
	resp.AnswerSubmitted = answer
	return resp, nil
}

// completeVerification solves the challenge and round-trips /verify. A nil or
// empty verification block means the entity is already published.
func (c *Client) completeVerification(ctx context.Context, v *Verification) (*VerifyResult, string, error) {
	if v == nil || v.Code == "" || v.Challenge == "" {
		return nil, "", nil
	}
	answer, err := challenge.Solve(v.Challenge)
	if err != nil {
		if errors.Is(err, challenge.ErrUnsolved) {
			// Keep the raw challenge text so the failure can be diagnosed.
			c.log.Warn("verification challenge unsolved", zap.String("challenge", v.Challenge))
		}
		return nil, "", fmt.Errorf("moltbook: verification: %w", err)
	}
	res, err := c.Verify(ctx, v.Code, answer)
	if err != nil {
		return nil, answer, err
	}
	if !res.Success {
		return res, answer, fmt.Errorf("moltbook: verification rejected: %s", res.Message)
	}
	c.log.Debug("verification passed", zap.String("answer", answer))
	return res, answer, nil
}

func apiError(err, msg string) string {
	if err != "" {
		return err
	}
	if msg != "" {
		return msg
	}
	return "unknown error"
}
