package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"gumcheck/internal"
	"gumcheck/internal/config"
	"gumcheck/internal/recon"
	"gumcheck/internal/sources"
	"gumcheck/internal/storage"
	"gumcheck/internal/tabular"
	"gumcheck/internal/watcher"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	cmd := os.Args[1]
	switch cmd {
	case "reconcile":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		activityPath := fs.String("activity", "", "activity xlsx/html upload")
		contactPath := fs.String("contact", "", "optional manual contact file override")
		out := fs.String("out", "", "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*activityPath) == "" || strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--activity and --out are required"))
		}

		activityTable, err := decodeUpload(*activityPath, cfg.MaxUploadBytes)
		must(err)
		must(recon.ValidateActivity(activityTable))

		var manual *internal.TableSource
		if strings.TrimSpace(*contactPath) != "" {
			contactTable, err := decodeUpload(*contactPath, cfg.MaxUploadBytes)
			must(err)
			manual = sources.ManualSource(contactTable, time.Now())
		}

		resolver := sources.NewResolver(db)
		contactSrc, err := resolver.Resolve(sources.SlotContact, manual)
		must(err)
		if contactSrc == nil {
			fmt.Println("waiting for contact source (no manual override, no cached automatic copy)")
			return
		}

		result, err := recon.Reconcile(activityTable, contactSrc.Table)
		must(err)
		must(tabular.ExportTableToXLSX(result, *out))
		fmt.Printf("reconcile done rows=%d contact=%s output=%s\n", len(result.Rows), describeSource(contactSrc), *out)
	case "lookup":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		email := fs.String("email", "", "email address to look up")
		directoryPath := fs.String("directory", "", "optional manual directory file override")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*email) == "" {
			must(fmt.Errorf("--email is required"))
		}

		var manual *internal.TableSource
		if strings.TrimSpace(*directoryPath) != "" {
			directoryTable, err := decodeUpload(*directoryPath, cfg.MaxUploadBytes)
			must(err)
			manual = sources.ManualSource(directoryTable, time.Now())
		}

		resolver := sources.NewResolver(db)
		dirSrc, err := resolver.Resolve(sources.SlotDirectory, manual)
		must(err)
		if dirSrc == nil {
			fmt.Println("waiting for directory source (no manual override, no cached automatic copy)")
			return
		}

		result, err := recon.LookupByEmail(dirSrc.Table, *email)
		must(err)
		if result.RawCount == 0 {
			fmt.Printf("no contact found for %s\n", *email)
			return
		}
		for _, rec := range result.Records {
			fmt.Printf("company=%s id=%s gumRef=%s\n", rec.CompanyName.Canonical(), rec.CompanyID.Canonical(), rec.GumReferenceID.Canonical())
		}
		if result.RawCount > result.UniqueCount {
			fmt.Printf("%d results, %d unique companies\n", result.RawCount, result.UniqueCount)
		}
	case "sources:refresh":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		slot := fs.String("slot", "all", "all|activity|contact|directory")
		_ = fs.Parse(os.Args[2:])

		sched, err := makeScheduler(db, cfg)
		must(err)
		if *slot == "all" {
			failures := sched.RefreshAll()
			for s, ferr := range failures {
				fmt.Printf("warning: slot %s reload failed: %v\n", s, ferr)
			}
			fmt.Printf("refresh done slots=%d failed=%d\n", len(sources.Slots), len(failures))
			return
		}
		if err := sched.Refresh(sources.Slot(*slot)); err != nil {
			fmt.Printf("warning: slot %s reload failed: %v\n", *slot, err)
			return
		}
		fmt.Printf("refresh done slot=%s\n", *slot)
	case "sources:status":
		for _, slot := range sources.Slots {
			src, err := db.GetSource(slot)
			must(err)
			if src == nil {
				fmt.Printf("slot=%s loaded=never\n", slot)
				continue
			}
			fmt.Printf("slot=%s origin=%s rows=%d loaded=%s\n", slot, src.Origin, len(src.Table.Rows), describeTimestamp(src.LoadedAt))
		}
	case "watch":
		sched, err := makeScheduler(db, cfg)
		must(err)
		svc := watcher.NewService(sched, cfg)
		must(svc.Run(context.Background()))
	default:
		usage()
		os.Exit(1)
	}
}

func makeScheduler(db *storage.DB, cfg config.Config) (*sources.Scheduler, error) {
	instants, err := sources.ParseInstants(cfg.RefreshTimes)
	if err != nil {
		return nil, err
	}
	files := sources.NewDirStore(cfg.DataDir, cfg.MaxUploadBytes)
	slots := map[sources.Slot]string{
		sources.SlotActivity:  cfg.ActivityFileName,
		sources.SlotContact:   cfg.ContactFileName,
		sources.SlotDirectory: cfg.DirectoryFileName,
	}
	return sources.NewScheduler(db, files, tabular.Decode, slots, instants), nil
}

func decodeUpload(path string, maxBytes int) (internal.Table, error) {
	info, err := os.Stat(path)
	if err != nil {
		return internal.Table{}, err
	}
	if info.Size() > int64(maxBytes) {
		return internal.Table{}, fmt.Errorf("%s: file too large: %d bytes (limit %d)", path, info.Size(), maxBytes)
	}
	blob, err := os.ReadFile(path)
	if err != nil {
		return internal.Table{}, err
	}
	return tabular.Decode(blob)
}

func describeSource(src *internal.TableSource) string {
	return fmt.Sprintf("%s@%s", src.Origin, describeTimestamp(src.LoadedAt))
}

func describeTimestamp(ts *time.Time) string {
	if ts == nil {
		return "unknown"
	}
	return ts.Format(time.RFC3339)
}

func usage() {
	fmt.Println("usage: gumcheck <command>")
	fmt.Println("commands:")
	fmt.Println("  reconcile --activity=todo.xlsx [--contact=contact.xlsx] --out=./out/result.xlsx")
	fmt.Println("  lookup --email=user@example.com [--directory=gum.xlsx]")
	fmt.Println("  sources:refresh [--slot=all|activity|contact|directory]")
	fmt.Println("  sources:status")
	fmt.Println("  watch")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
