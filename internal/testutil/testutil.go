// Package testutil provides shared helpers for integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"

	"github.com/vitrine/vitrine/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 731731

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// ResetAnalyticsSchema drops and recreates the analytics schema for tests.
func ResetAnalyticsSchema(ctx context.Context, pool *pgxpool.Pool) error {
	return resetSchema(ctx, pool, "000001_analytics")
}

// ResetContentSchema drops and recreates the content schema for tests.
func ResetContentSchema(ctx context.Context, pool *pgxpool.Pool) error {
	return resetSchema(ctx, pool, "000002_content")
}

func resetSchema(ctx context.Context, pool *pgxpool.Pool, migration string) error {
	root, err := ProjectRoot()
	if err != nil {
		return err
	}

	downPath := filepath.Join(root, "migrations", migration+".down.sql")
	upPath := filepath.Join(root, "migrations", migration+".up.sql")

	downSQL, err := os.ReadFile(downPath)
	if err != nil {
		return fmt.Errorf("read down migration: %w", err)
	}
	if _, err := pool.Exec(ctx, string(downSQL)); err != nil {
		return fmt.Errorf("apply down migration: %w", err)
	}

	upSQL, err := os.ReadFile(upPath)
	if err != nil {
		return fmt.Errorf("read up migration: %w", err)
	}
	if _, err := pool.Exec(ctx, string(upSQL)); err != nil {
		return fmt.Errorf("apply up migration: %w", err)
	}

	return nil
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ProjectRoot returns the project root directory.
func ProjectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to resolve testutil path")
	}
	root := filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
	return root, nil
}

// ============================================================================
// Test Data Factories
// ============================================================================

// NewTestVisit creates a visit event with sensible defaults.
func NewTestVisit(t testing.TB, path string) *model.VisitEvent {
	t.Helper()
	now := time.Now().UTC()
	return &model.VisitEvent{
		ID:        ulid.Make().String(),
		EventID:   fmt.Sprintf("%d-0", now.UnixMilli()),
		IPAddress: "203.0.113.7",
		UserAgent: "test-agent/1.0",
		PagePath:  path,
		VisitDate: now.Truncate(24 * time.Hour),
	}
}

// NewTestVisitOn creates a visit event pinned to a specific date and IP.
func NewTestVisitOn(t testing.TB, path, ip string, date time.Time) *model.VisitEvent {
	t.Helper()
	v := NewTestVisit(t, path)
	v.EventID = fmt.Sprintf("%d-%d", time.Now().UnixNano(), len(path))
	v.IPAddress = ip
	v.VisitDate = date.UTC().Truncate(24 * time.Hour)
	return v
}

// NewTestProject creates a project with sensible defaults.
func NewTestProject(t testing.TB, title string) *model.Project {
	t.Helper()
	return &model.Project{
		Title:        title,
		Description:  "A test project",
		Technologies: []string{"Go", "PostgreSQL"},
		Status:       model.ProjectCompleted,
	}
}

// NewTestSkill creates a skill with sensible defaults.
func NewTestSkill(t testing.TB, name, category string) *model.Skill {
	t.Helper()
	return &model.Skill{
		Name:             name,
		Category:         category,
		ProficiencyLevel: 4,
	}
}
