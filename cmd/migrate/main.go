package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fakturo/fakturo/internal/config"
	"github.com/fakturo/fakturo/internal/logger"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func init() {
	time.Local = time.UTC
}

func main() {
	dir := flag.String("dir", "migrations", "Directory containing migration files")
	down := flag.Bool("down", false, "Apply down migrations instead of up")
	dryRun := flag.Bool("dry-run", false, "Print migration SQL without executing it")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	l, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}

	files, err := migrationFiles(*dir, *down)
	if err != nil {
		l.Fatalw("failed to collect migrations", "dir", *dir, "error", err)
	}
	if len(files) == 0 {
		l.Infow("no migrations to apply", "dir", *dir)
		return
	}

	if *dryRun {
		for _, f := range files {
			sql, err := os.ReadFile(f)
			if err != nil {
				l.Fatalw("failed to read migration", "file", f, "error", err)
			}
			fmt.Printf("-- %s\n%s\n", f, sql)
		}
		return
	}

	db, err := sqlx.Connect("postgres", cfg.Postgres.GetDSN())
	if err != nil {
		l.Fatalw("failed to connect to database", "host", cfg.Postgres.Host, "error", err)
	}
	defer db.Close()

	for _, f := range files {
		sql, err := os.ReadFile(f)
		if err != nil {
			l.Fatalw("failed to read migration", "file", f, "error", err)
		}
		l.Infow("applying migration", "file", f)
		if _, err := db.Exec(string(sql)); err != nil {
			l.Fatalw("migration failed", "file", f, "error", err)
		}
	}

	l.Infow("migrations applied", "count", len(files))
}

// migrationFiles returns the up (or down) migration files in lexical order.
// Down migrations are applied in reverse.
func migrationFiles(dir string, down bool) ([]string, error) {
	suffix := ".up.sql"
	if down {
		suffix = ".down.sql"
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), suffix) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}

	sort.Strings(files)
	if down {
		for i, j := 0, len(files)-1; i < j; i, j = i+1, j-1 {
			files[i], files[j] = files[j], files[i]
		}
	}
	return files, nil
}
