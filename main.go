package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/farmops/fieldsync/cliparse"
	"github.com/farmops/fieldsync/db"
	"github.com/farmops/fieldsync/draftstore"
	"github.com/farmops/fieldsync/resync"
	"github.com/farmops/fieldsync/secrets"
	"github.com/farmops/fieldsync/session"
	"github.com/farmops/fieldsync/syncclient"
	"github.com/farmops/fieldsync/wizard"
)

const usage = `usage: fieldsync [flags] <command>

commands:
  drafts -req N              list a request's drafts
  show   -req N -section S   dump one draft's fields
  resync [-req N]            push pending drafts to the backend
`

func main() {
	setupLogger()

	// Parse configuration
	cfg, rest, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	if len(rest) == 0 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	// Open the on-device database
	conn, err := db.Open(cfg.DBPath)
	if err != nil {
		slog.Error("database open failed", "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	drafts := draftstore.New(conn)

	// Ctrl-C cancels in-flight sync work
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch rest[0] {
	case "drafts":
		err = runDrafts(drafts, rest[1:])
	case "show":
		err = runShow(drafts, rest[1:])
	case "resync":
		err = runResync(ctx, cfg, conn, drafts, rest[1:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	if err != nil {
		slog.Error("command failed", "command", rest[0], "error", err)
		os.Exit(1)
	}
}

// setupLogger picks a human-readable handler on a terminal and JSON
// otherwise (log shippers on the device expect JSON).
func setupLogger() {
	var handler slog.Handler
	if isatty.IsTerminal(os.Stdout.Fd()) {
		handler = slog.NewTextHandler(os.Stderr, nil)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, nil)
	}
	slog.SetDefault(slog.New(handler))
}

func runDrafts(drafts *draftstore.Store, args []string) error {
	fs := flag.NewFlagSet("drafts", flag.ContinueOnError)
	reqID := fs.Int64("req", 0, "request id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *reqID <= 0 {
		return fmt.Errorf("-req is required")
	}

	recs, err := drafts.List(*reqID)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Printf("no drafts for request %d\n", *reqID)
		return nil
	}

	for _, rec := range recs {
		state := "synced"
		if rec.Dirty() {
			state = "pending"
		}
		fmt.Printf("%-20s %-8s %d fields, edited %s\n",
			rec.Section, state, len(rec.Fields), humanize.Time(rec.UpdatedAt))
	}
	return nil
}

func runShow(drafts *draftstore.Store, args []string) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	reqID := fs.Int64("req", 0, "request id")
	sectionName := fs.String("section", "", "section name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *reqID <= 0 || *sectionName == "" {
		return fmt.Errorf("-req and -section are required")
	}

	rec, ok := drafts.Get(*reqID, *sectionName)
	if !ok {
		return fmt.Errorf("no draft for request %d section %s", *reqID, *sectionName)
	}

	out, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func runResync(ctx context.Context, cfg cliparse.Config, conn *sql.DB, drafts *draftstore.Store, args []string) error {
	fs := flag.NewFlagSet("resync", flag.ContinueOnError)
	reqID := fs.Int64("req", 0, "request id (all pending requests when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	secretStore := secrets.NewSQLStore(conn)
	sess := session.New(secretStore)
	if _, ok := sess.Token(); !ok {
		return fmt.Errorf("no auth token stored; log in from the app first")
	}

	deviceUUID, err := secrets.DeviceUUID(secretStore)
	if err != nil {
		return err
	}

	client := syncclient.New(cfg.BaseURL, sess, deviceUUID)
	syncer := resync.New(drafts, client, wizard.FarmInspection(), wizard.CapitalRequest())

	var pushed int
	if *reqID > 0 {
		pushed, err = syncer.Request(ctx, *reqID)
	} else {
		pushed, err = syncer.All(ctx)
	}

	if pushed > 0 {
		fmt.Printf("pushed %d section(s)\n", pushed)
	}
	return err
}
