package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"idlepark/internal/ops"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "backup":
		if err := cmdBackup(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "backup failed:", err)
			os.Exit(1)
		}
	case "restore":
		if err := cmdRestore(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "restore failed:", err)
			os.Exit(1)
		}
	case "drill":
		if err := cmdDrill(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "drill failed:", err)
			os.Exit(1)
		}
	case "show":
		if err := cmdShow(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "show failed:", err)
			os.Exit(1)
		}
	default:
		printUsage()
		os.Exit(2)
	}
}

func cmdBackup(args []string) error {
	fs := flag.NewFlagSet("backup", flag.ContinueOnError)
	db := fs.String("db", "data/idlepark.db", "path to save database")
	out := fs.String("out", "", "output archive path (.tar.gz)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *out == "" {
		ts := time.Now().UTC().Format("20060102T150405Z")
		*out = filepath.Join("backups", "idlepark-"+ts+".tar.gz")
	}

	if err := ops.BackupSave(*db, *out); err != nil {
		return err
	}
	fmt.Println(*out)
	return nil
}

func cmdRestore(args []string) error {
	fs := flag.NewFlagSet("restore", flag.ContinueOnError)
	archive := fs.String("archive", "", "input backup archive (.tar.gz)")
	db := fs.String("db", "data-restored/idlepark.db", "restore target database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *archive == "" {
		return fmt.Errorf("archive is required")
	}
	return ops.RestoreSave(*archive, *db)
}

func cmdDrill(args []string) error {
	fs := flag.NewFlagSet("drill", flag.ContinueOnError)
	archive := fs.String("archive", "", "backup archive to verify (.tar.gz)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *archive == "" {
		return fmt.Errorf("archive is required")
	}

	sum, err := ops.Drill(context.Background(), *archive)
	if err != nil {
		return err
	}
	printSummary(sum)
	return nil
}

func cmdShow(args []string) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	db := fs.String("db", "data/idlepark.db", "path to save database")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sum, err := ops.Inspect(context.Background(), *db)
	if err != nil {
		return err
	}
	printSummary(sum)
	return nil
}

func printSummary(sum ops.Summary) {
	if !sum.HasSave {
		fmt.Println("no save present")
		return
	}
	fmt.Printf("money:             %.2f\n", sum.Money)
	fmt.Printf("guests:            %.1f\n", sum.Guests)
	fmt.Printf("buildings:         %d\n", sum.Buildings)
	fmt.Printf("lifetime earnings: %.2f\n", sum.LifetimeEarnings)
	if sum.GameOver {
		fmt.Println("status:            bankrupt")
	}
}

func printUsage() {
	fmt.Println("usage:")
	fmt.Println("  idlepark-ops backup  --db data/idlepark.db --out backups/save.tar.gz")
	fmt.Println("  idlepark-ops restore --archive backups/save.tar.gz --db data-restored/idlepark.db")
	fmt.Println("  idlepark-ops drill   --archive backups/save.tar.gz")
	fmt.Println("  idlepark-ops show    --db data/idlepark.db")
}
