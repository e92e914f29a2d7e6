package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// UsageTracker persists per-command invocation counts in a small SQLite
// database. It backs the stats command and suggestion ranking; a broken
// tracker degrades to no statistics, never to a broken shell.
type UsageTracker struct {
	db   *sql.DB
	mu   sync.RWMutex
	path string
}

// CommandUsage is one row of usage statistics.
type CommandUsage struct {
	Command  string
	Count    int
	LastUsed string
}

// NewUsageTracker opens or creates the usage database at dbPath.
func NewUsageTracker(dbPath string) (*UsageTracker, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create usage database directory: %v", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open usage database: %v", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS command_usage (
		command TEXT PRIMARY KEY,
		count INTEGER NOT NULL DEFAULT 0,
		last_used TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create usage schema: %v", err)
	}

	return &UsageTracker{db: db, path: dbPath}, nil
}

// Record bumps the invocation count for a command. Failures are swallowed;
// statistics are advisory.
func (t *UsageTracker) Record(command string) {
	if t == nil || t.db == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	_, _ = t.db.Exec(`
		INSERT INTO command_usage (command, count, last_used)
		VALUES (?, 1, CURRENT_TIMESTAMP)
		ON CONFLICT(command) DO UPDATE SET
			count = count + 1,
			last_used = CURRENT_TIMESTAMP`,
		command)
}

// Top returns the most used commands, highest count first.
func (t *UsageTracker) Top(limit int) ([]CommandUsage, error) {
	if t == nil || t.db == nil {
		return nil, nil
	}
	t.mu.RLock()
	defer t.mu.RUnlock()

	rows, err := t.db.Query(`
		SELECT command, count, last_used
		FROM command_usage
		ORDER BY count DESC, command ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query usage statistics: %v", err)
	}
	defer rows.Close()

	var usages []CommandUsage
	for rows.Next() {
		var u CommandUsage
		if err := rows.Scan(&u.Command, &u.Count, &u.LastUsed); err != nil {
			return nil, fmt.Errorf("failed to scan usage row: %v", err)
		}
		usages = append(usages, u)
	}
	return usages, rows.Err()
}

// Count returns the recorded invocation count for one command.
func (t *UsageTracker) Count(command string) int {
	if t == nil || t.db == nil {
		return 0
	}
	t.mu.RLock()
	defer t.mu.RUnlock()

	var count int
	err := t.db.QueryRow(`SELECT count FROM command_usage WHERE command = ?`, command).Scan(&count)
	if err != nil {
		return 0
	}
	return count
}

// Close releases the underlying database handle.
func (t *UsageTracker) Close() error {
	if t == nil || t.db == nil {
		return nil
	}
	return t.db.Close()
}

func (c *CLI) cmdStats(args []string) (string, error) {
	if c.usage == nil {
		return "Usage statistics are not available.", nil
	}

	limit := 10
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return "", invalidArgError("Invalid limit: %s", args[0])
		}
		limit = n
	}

	usages, err := c.usage.Top(limit)
	if err != nil {
		return "", err
	}
	if len(usages) == 0 {
		return "No usage statistics recorded yet.", nil
	}

	rows := make([][]string, 0, len(usages))
	for _, u := range usages {
		rows = append(rows, []string{u.Command, strconv.Itoa(u.Count), u.LastUsed})
	}
	return "Most used commands:\n" + formatTable(rows, []string{"COMMAND", "COUNT", "LAST USED"}), nil
}
