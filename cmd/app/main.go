package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/singhHarcharan/trip-planner-agent/internal/domain/auth"
	"github.com/singhHarcharan/trip-planner-agent/internal/domain/trip"
)

const usage = `usage:
  app                                  start the HTTP server
  app plan [-employee N] [-days N] [-book] <prompt>
  app token -employee N [-email addr]`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := initializeApp()
	if err != nil {
		log.Fatalf("failed to wire application: %v", err)
	}

	args := os.Args[1:]
	if len(args) == 0 || args[0] == "serve" {
		if err := app.Run(ctx); err != nil {
			log.Fatalf("application stopped with error: %v", err)
		}
		return
	}

	switch args[0] {
	case "plan":
		fs := flag.NewFlagSet("plan", flag.ExitOnError)
		employee := fs.Int64("employee", 0, "employee id used for the holiday lookup")
		days := fs.Int("days", 0, "forecast days to consider")
		book := fs.Bool("book", false, "book the hotel and flight instead of a dry run")
		_ = fs.Parse(args[1:])
		prompt := strings.TrimSpace(strings.Join(fs.Args(), " "))
		if prompt == "" {
			log.Fatal(usage)
		}
		resp, err := app.Plan(ctx, trip.PlanRequest{Prompt: prompt, EmployeeID: *employee, Days: *days, DryRun: !*book})
		if err != nil {
			log.Fatalf("plan failed: %v", err)
		}
		printJSON(resp)
	case "token":
		fs := flag.NewFlagSet("token", flag.ExitOnError)
		employee := fs.Int64("employee", 0, "employee id carried in the token")
		email := fs.String("email", "", "optional e-mail claim")
		_ = fs.Parse(args[1:])
		token, err := app.IssueToken(ctx, auth.IssueRequest{EmployeeID: *employee, Email: *email})
		if err != nil {
			log.Fatalf("token issue failed: %v", err)
		}
		printJSON(token)
	default:
		log.Fatal(usage)
	}
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}
