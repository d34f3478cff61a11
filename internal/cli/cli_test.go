package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"pet-care-tasks/internal/ports/remote"
	"pet-care-tasks/internal/router"
	"pet-care-tasks/internal/tasks"
)

func setupServer(t *testing.T) *httptest.Server {
	t.Helper()
	t.Setenv("DB_DSN", "")
	t.Setenv("PETCARE_CONFIG_PATH", t.TempDir())
	t.Setenv("PETCARE_CACHE_DIR", t.TempDir())
	color.NoColor = true

	srv := httptest.NewServer(router.NewRouter(router.Options{}))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, user string, payload any) string {
	t.Helper()
	b, _ := json.Marshal(payload)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Debug-User-ID", user)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	defer resp.Body.Close()
	var out struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || out.Data.ID == "" {
		t.Fatalf("post %s: status %d err=%v", url, resp.StatusCode, err)
	}
	return out.Data.ID
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := New()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCLI_TodayAndToggleCelebrates(t *testing.T) {
	srv := setupServer(t)
	petID := post(t, srv.URL+"/pets", "u1", map[string]any{"name": "Milo", "species": "dog"})
	remID := post(t, srv.URL+"/pets/"+petID+"/reminders", "u1", map[string]any{
		"title":       "evening walk",
		"scheduledAt": time.Now().Format(time.RFC3339),
		"tags":        []string{"walk"},
	})

	base := []string{"--api-url", srv.URL, "--user", "u1", "--no-color"}

	out, err := run(t, append(base, "today", "--ids")...)
	if err != nil {
		t.Fatalf("today: %v\n%s", err, out)
	}
	for _, want := range []string{"Next up", "evening walk", remID, "Milo", "0/1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("today output missing %q:\n%s", want, out)
		}
	}

	out, err = run(t, append(base, "done", remID, "missing-id")...)
	if err != nil {
		t.Fatalf("toggle: %v\n%s", err, out)
	}
	if strings.Count(out, "All done for today!") != 1 {
		t.Fatalf("expected a single celebration:\n%s", out)
	}
	if !strings.Contains(out, "missing-id: reminder not found") {
		t.Fatalf("expected unknown id to be reported:\n%s", out)
	}
	if !strings.Contains(out, "1/1") {
		t.Fatalf("expected pet progress 1/1:\n%s", out)
	}
}

func TestCLI_AddAndPetsCarousel(t *testing.T) {
	srv := setupServer(t)
	luna := post(t, srv.URL+"/pets", "u1", map[string]any{"name": "Luna", "species": "cat"})
	post(t, srv.URL+"/pets", "u1", map[string]any{"name": "Rex", "species": "dog"})

	base := []string{"--api-url", srv.URL, "--user", "u1", "--no-color"}

	out, err := run(t, append(base, "add", "--pet", luna, "--at", "00:01", "--priority", "urgent", "--tag", "meds", "Heartworm", "pill")...)
	if err != nil {
		t.Fatalf("add: %v\n%s", err, out)
	}
	if !strings.Contains(out, "created ") || !strings.Contains(out, "Heartworm pill") {
		t.Fatalf("unexpected add output:\n%s", out)
	}

	if _, err := run(t, append(base, "add", "--pet", luna, "--priority", "whenever", "x")...); err == nil {
		t.Fatalf("expected unknown priority to fail")
	}

	out, err = run(t, append(base, "pets", "--index", "99")...)
	if err != nil {
		t.Fatalf("pets: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Luna*") || !strings.Contains(out, "0/1 done") || !strings.Contains(out, "+ add pet") {
		t.Fatalf("unexpected carousel output:\n%s", out)
	}
	if !strings.Contains(out, "POST /pets") {
		t.Fatalf("expected add-slot hint when clamped to the end:\n%s", out)
	}
}

func TestCLI_OfflineCopyWhenServerIsDown(t *testing.T) {
	srv := setupServer(t)
	petID := post(t, srv.URL+"/pets", "u1", map[string]any{"name": "Milo", "species": "dog"})
	post(t, srv.URL+"/pets/"+petID+"/reminders", "u1", map[string]any{"title": "brush teeth"})

	base := []string{"--api-url", srv.URL, "--user", "u1", "--no-color"}
	if out, err := run(t, append(base, "today")...); err != nil {
		t.Fatalf("today: %v\n%s", err, out)
	}

	srv.Close()
	out, err := run(t, append(base, "today")...)
	if err == nil {
		t.Fatalf("expected refresh error when server is down")
	}
	if !strings.Contains(out, "offline copy from") || !strings.Contains(out, "brush teeth") {
		t.Fatalf("expected offline copy:\n%s", out)
	}
}

func TestNormalizeTime(t *testing.T) {
	now := time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)

	got, err := normalizeTime("18:30", now)
	if err != nil || got == nil || string(*got) != "2026-10-16T18:30:00Z" {
		t.Fatalf("unexpected normalized time %v %v", got, err)
	}
	if got, err := normalizeTime(" ", now); got != nil || err != nil {
		t.Fatalf("expected nil for empty input")
	}
	if _, err := normalizeTime("late", now); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestSortedPetIDs_DirectoryNamesFirst(t *testing.T) {
	stats := map[string]tasks.PetStats{"z": {}, "b": {}, "a": {}}
	pets := map[string]remote.Pet{"b": {ID: "b", Name: "Athos"}, "a": {ID: "a", Name: "Zorro"}}

	got := sortedPetIDs(stats, pets)
	if strings.Join(got, ",") != "b,a,z" {
		t.Fatalf("unexpected order %v", got)
	}
}
