//go:build integration

package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/vitrine/vitrine/internal/model"
	"github.com/vitrine/vitrine/internal/testutil"
)

// ============================================================================
// Content Repository Integration Tests
// ============================================================================

func TestIntegrationSingleton_GetPersonalInfo_Empty(t *testing.T) {
	ctx, repo := newContentTestEnv(t)

	info, err := repo.GetPersonalInfo(ctx)
	if err != nil {
		t.Fatalf("GetPersonalInfo failed: %v", err)
	}
	if info != nil {
		t.Errorf("expected nil info on empty table, got %+v", info)
	}
}

func TestIntegrationSingleton_UpsertPersonalInfo(t *testing.T) {
	ctx, repo := newContentTestEnv(t)

	saved, err := repo.UpsertPersonalInfo(ctx, &model.PersonalInfo{
		Name:  "Ada Lovelace",
		Title: "Engineer",
	})
	if err != nil {
		t.Fatalf("UpsertPersonalInfo failed: %v", err)
	}
	if saved.ID == "" {
		t.Error("ID should be set")
	}
	if saved.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	// Second upsert replaces the same row instead of adding one.
	updated, err := repo.UpsertPersonalInfo(ctx, &model.PersonalInfo{
		Name: "Ada L.",
		Bio:  "Updated bio",
	})
	if err != nil {
		t.Fatalf("UpsertPersonalInfo (second) failed: %v", err)
	}
	if updated.ID != saved.ID {
		t.Errorf("upsert created a new row: id %q != %q", updated.ID, saved.ID)
	}
	if updated.Name != "Ada L." {
		t.Errorf("Name = %q, want %q", updated.Name, "Ada L.")
	}
	if updated.Title != "" {
		t.Errorf("Title = %q, want cleared", updated.Title)
	}
	if !updated.UpdatedAt.After(saved.CreatedAt) {
		t.Error("UpdatedAt should advance on upsert")
	}
}

func TestIntegrationSingleton_UpsertContactDetails(t *testing.T) {
	ctx, repo := newContentTestEnv(t)

	saved, err := repo.UpsertContactDetails(ctx, &model.ContactDetails{
		Email:     "owner@example.com",
		GithubURL: "https://github.com/owner",
	})
	if err != nil {
		t.Fatalf("UpsertContactDetails failed: %v", err)
	}

	retrieved, err := repo.GetContactDetails(ctx)
	if err != nil {
		t.Fatalf("GetContactDetails failed: %v", err)
	}
	if retrieved == nil {
		t.Fatal("expected contact details after upsert")
	}
	if retrieved.ID != saved.ID {
		t.Errorf("ID mismatch: got %q, want %q", retrieved.ID, saved.ID)
	}
	if retrieved.Email != "owner@example.com" {
		t.Errorf("Email = %q, want owner@example.com", retrieved.Email)
	}
}

func TestIntegrationProject_CRUD(t *testing.T) {
	ctx, repo := newContentTestEnv(t)

	created, err := repo.CreateProject(ctx, testutil.NewTestProject(t, "Portfolio Site"))
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	if created.ID == "" {
		t.Error("ID should be set")
	}

	retrieved, err := repo.GetProjectByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetProjectByID failed: %v", err)
	}
	if len(retrieved.Technologies) != 2 {
		t.Errorf("Technologies = %v, want 2 entries", retrieved.Technologies)
	}

	retrieved.Title = "Portfolio v2"
	retrieved.Featured = true
	updated, err := repo.UpdateProject(ctx, retrieved)
	if err != nil {
		t.Fatalf("UpdateProject failed: %v", err)
	}
	if updated.Title != "Portfolio v2" || !updated.Featured {
		t.Errorf("update not applied: %+v", updated)
	}

	if err := repo.DeleteProject(ctx, created.ID); err != nil {
		t.Fatalf("DeleteProject failed: %v", err)
	}

	_, err = repo.GetProjectByID(ctx, created.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got: %v", err)
	}
}

func TestIntegrationProject_ListOrdering(t *testing.T) {
	ctx, repo := newContentTestEnv(t)

	plain := testutil.NewTestProject(t, "Plain")
	featured := testutil.NewTestProject(t, "Featured")
	featured.Featured = true

	if _, err := repo.CreateProject(ctx, plain); err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	if _, err := repo.CreateProject(ctx, featured); err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}

	projects, err := repo.ListProjects(ctx, ProjectFilter{})
	if err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("got %d projects, want 2", len(projects))
	}
	if projects[0].Title != "Featured" {
		t.Errorf("featured project should sort first, got %q", projects[0].Title)
	}

	only := true
	filtered, err := repo.ListProjects(ctx, ProjectFilter{Featured: &only})
	if err != nil {
		t.Fatalf("ListProjects (filtered) failed: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Title != "Featured" {
		t.Errorf("featured filter returned %d projects", len(filtered))
	}
}

func TestIntegrationSkill_ListByCategory(t *testing.T) {
	ctx, repo := newContentTestEnv(t)

	for _, s := range []*model.Skill{
		testutil.NewTestSkill(t, "Go", "backend"),
		testutil.NewTestSkill(t, "PostgreSQL", "backend"),
		testutil.NewTestSkill(t, "React", "frontend"),
	} {
		if _, err := repo.CreateSkill(ctx, s); err != nil {
			t.Fatalf("CreateSkill failed: %v", err)
		}
	}

	backend, err := repo.ListSkills(ctx, SkillFilter{Category: "backend"})
	if err != nil {
		t.Fatalf("ListSkills failed: %v", err)
	}
	if len(backend) != 2 {
		t.Fatalf("got %d backend skills, want 2", len(backend))
	}
	// Name ascending.
	if backend[0].Name != "Go" || backend[1].Name != "PostgreSQL" {
		t.Errorf("skill order = %q, %q; want Go, PostgreSQL", backend[0].Name, backend[1].Name)
	}
}

func TestIntegrationCounts(t *testing.T) {
	ctx, repo := newContentTestEnv(t)

	if _, err := repo.CreateProject(ctx, testutil.NewTestProject(t, "One")); err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}

	projects, err := repo.CountProjects(ctx)
	if err != nil {
		t.Fatalf("CountProjects failed: %v", err)
	}
	if projects != 1 {
		t.Errorf("CountProjects = %d, want 1", projects)
	}

	education, err := repo.CountEducation(ctx)
	if err != nil {
		t.Fatalf("CountEducation failed: %v", err)
	}
	if education != 0 {
		t.Errorf("CountEducation = %d, want 0", education)
	}
}

func newContentTestEnv(t *testing.T) (context.Context, *Repository) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	dbURL := testutil.RequireEnv(t, "DATABASE_URL")

	repo, err := New(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("acquire db lock: %v", err)
	}
	t.Cleanup(func() {
		_ = unlock()
	})

	if err := testutil.ResetContentSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("reset content schema: %v", err)
	}

	return ctx, repo
}
