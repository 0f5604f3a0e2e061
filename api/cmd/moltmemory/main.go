// Command moltmemory is the operator CLI: solve a challenge locally, run a
// heartbeat, read the curated feed, publish posts and comments.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"moltmemory/api/internal/campaign"
	"moltmemory/api/internal/challenge"
	"moltmemory/api/internal/config"
	"moltmemory/api/internal/moltbook"
	"moltmemory/api/internal/store"
)

const usage = `usage: moltmemory <command> [args]

commands:
  solve <text>                     solve a verification challenge locally
  heartbeat                        check dashboard and engaged threads
  feed [submolt]                   curated hot feed
  post <submolt> <title> <content> publish a post (auto-verify)
  comment <post_id> <content>      publish a comment (auto-verify)
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	// solve needs no credentials, config or network.
	if os.Args[1] == "solve" {
		cmdSolve(os.Args[2:])
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("zap: %v", err)
	}
	defer logger.Sync()

	client := moltbook.New(cfg.MoltbookAPIBase, cfg.MoltbookAPIKey, logger)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	switch os.Args[1] {
	case "heartbeat":
		cmdHeartbeat(ctx, cfg, client, logger)
	case "feed":
		submolt := ""
		if len(os.Args) > 2 {
			submolt = os.Args[2]
		}
		cmdFeed(ctx, client, submolt)
	case "post":
		if len(os.Args) < 5 {
			log.Fatalf("usage: moltmemory post <submolt> <title> <content>")
		}
		cmdPost(ctx, client, os.Args[2], os.Args[3], os.Args[4])
	case "comment":
		if len(os.Args) < 4 {
			log.Fatalf("usage: moltmemory comment <post_id> <content>")
		}
		cmdComment(ctx, client, os.Args[2], os.Args[3])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func cmdSolve(args []string) {
	text := strings.Join(args, " ")
	answer, err := challenge.Solve(text)
	if err != nil {
		fmt.Println("unsolved")
		os.Exit(1)
	}
	fmt.Println(answer)
}

func cmdHeartbeat(ctx context.Context, cfg *config.Config, client *moltbook.Client, logger *zap.Logger) {
	db, err := store.Open(cfg.DSN())
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer db.Close()
	if err := store.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("store: %v", err)
	}

	runner := &campaign.Runner{
		API:     client,
		Threads: store.NewThreadRepo(db),
		Marks:   store.NewMarkRepo(db),
		Log:     logger,
		Self:    cfg.AgentName,
	}
	report, err := runner.Heartbeat(ctx)
	if err != nil {
		log.Fatalf("heartbeat: %v", err)
	}
	if !report.NeedsAttention {
		fmt.Println("nothing new")
		return
	}
	fmt.Println("needs attention:")
	for _, item := range report.Items {
		fmt.Println("  " + item)
	}
}

func cmdFeed(ctx context.Context, client *moltbook.Client, submolt string) {
	posts, err := client.CuratedFeed(ctx, 5, 10, submolt)
	if err != nil {
		log.Fatalf("feed: %v", err)
	}
	for _, p := range posts {
		fmt.Printf("[%d up | %d comments] %s\n  /posts/%s\n\n", p.Upvotes, p.CommentCount, p.Title, p.ID)
	}
}

func cmdPost(ctx context.Context, client *moltbook.Client, submolt, title, content string) {
	resp, err := client.PublishPost(ctx, submolt, title, content)
	if err != nil {
		log.Fatalf("post: %v", err)
	}
	if resp.Post != nil {
		fmt.Printf("published: %s\n", resp.Post.ID)
	}
	if resp.AnswerSubmitted != "" {
		fmt.Printf("verification answer: %s\n", resp.AnswerSubmitted)
	}
}

func cmdComment(ctx context.Context, client *moltbook.Client, postID, content string) {
	resp, err := client.PublishComment(ctx, postID, content, "")
	if err != nil {
		log.Fatalf("comment: %v", err)
	}
	if resp.Comment != nil {
		fmt.Printf("commented: %s\n", resp.Comment.ID)
	}
	if resp.AnswerSubmitted != "" {
		fmt.Printf("verification answer: %s\n", resp.AnswerSubmitted)
	}
}
