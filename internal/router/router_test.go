package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pet-care-tasks/internal/adapters/auth/tokens"
	"pet-care-tasks/internal/adapters/remote/api"
	"pet-care-tasks/internal/ports/remote"
	"pet-care-tasks/internal/router"
	"pet-care-tasks/internal/tasks"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	t.Setenv("DB_DSN", "")
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_TodayToggleAndCelebrate(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()
	ownerID := "owner-1"

	// 1) Owner crea mascota (la primera queda primaria)
	petID := createPet(t, ts.URL, ownerID, map[string]any{
		"name":    "Milo",
		"species": "dog",
		"breed":   "mixed",
	})

	client, err := api.NewClient(api.Config{BaseURL: ts.URL, DebugUserID: ownerID})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	pets, err := client.ListPets(ctx)
	if err != nil || len(pets) != 1 || !pets[0].IsPrimary {
		t.Fatalf("unexpected pet directory %#v %v", pets, err)
	}

	celebrations := 0
	engine := tasks.NewEngine(tasks.NewStore(), client, tasks.Options{
		OnCelebrate: func() { celebrations++ },
	})

	// 2) Dos recordatorios temprano hoy: siempre caen en la lista del día
	y, m, d := time.Now().Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	first, _, err := engine.CreateReminder(ctx, petID, remote.CreateReminderInput{
		Title:       "morning walk",
		ScheduledAt: remote.TimestampOf(dayStart.Add(1 * time.Minute)),
		Priority:    remote.PriorityHigh,
		Tags:        []string{"walk"},
	})
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	second, p, err := engine.CreateReminder(ctx, petID, remote.CreateReminderInput{
		Title:       "pills",
		ScheduledAt: remote.TimestampOf(dayStart.Add(2 * time.Minute)),
		Tags:        []string{"meds"},
	})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}

	if len(p.Incomplete) != 2 || p.NextUp == nil || p.NextUp.ID != first.ID {
		t.Fatalf("expected 2 pending with nextUp=%s, got %v / %#v", first.ID, len(p.Incomplete), p.NextUp)
	}
	if p.NextUp.Icon != tasks.IconWalk || p.NextUp.Priority != remote.PriorityHigh {
		t.Fatalf("unexpected nextUp view %#v", p.NextUp)
	}
	if st := p.StatsByPet[petID]; st.Total != 2 || st.Completed != 0 {
		t.Fatalf("unexpected pet stats %+v", st)
	}

	// 3) Toggle del primero: queda uno pendiente
	p, err = engine.ToggleCompletion(ctx, first.ID)
	if err != nil {
		t.Fatalf("toggle first: %v", err)
	}
	if len(p.Completed) != 1 || p.Completed[0].ID != first.ID || p.NextUp == nil || p.NextUp.ID != second.ID {
		t.Fatalf("unexpected projection after first toggle: completed=%d nextUp=%#v", len(p.Completed), p.NextUp)
	}

	// 4) Toggle del último: celebra una sola vez
	p, err = engine.ToggleCompletion(ctx, second.ID)
	if err != nil {
		t.Fatalf("toggle second: %v", err)
	}
	if len(p.Incomplete) != 0 || p.NextUp != nil {
		t.Fatalf("expected everything done, got %d pending", len(p.Incomplete))
	}
	if _, err := engine.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if celebrations != 1 {
		t.Fatalf("expected exactly one celebration, got %d", celebrations)
	}

	// 5) Volver a pendiente lo reabre en el servidor
	p, err = engine.ToggleCompletion(ctx, second.ID)
	if err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if len(p.Incomplete) != 1 || p.Incomplete[0].ID != second.ID {
		t.Fatalf("expected second reminder reopened, got %d pending", len(p.Incomplete))
	}
	if st := p.StatsByPet[petID]; st.Total != 2 || st.Completed != 1 {
		t.Fatalf("unexpected pet stats after reopen %+v", st)
	}
}

func TestHTTP_RemoteErrorsSurfaceServerMessage(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	client, _ := api.NewClient(api.Config{BaseURL: ts.URL, DebugUserID: "owner-1"})
	engine := tasks.NewEngine(nil, client, tasks.Options{})

	_, _, err := engine.CreateReminder(ctx, "no-such-pet", remote.CreateReminderInput{Title: "walk"})
	if !errors.Is(err, tasks.ErrMutationFailed) {
		t.Fatalf("expected ErrMutationFailed, got %v", err)
	}
	var opErr *tasks.OperationError
	if !errors.As(err, &opErr) || opErr.Message != "pet not found" {
		t.Fatalf("expected server message, got %#v", err)
	}
	if !errors.Is(err, remote.ErrNotFound) {
		t.Fatalf("expected remote not found in chain")
	}

	// Sin usuario el servidor responde 401
	anon, _ := api.NewClient(api.Config{BaseURL: ts.URL})
	_, err = tasks.NewEngine(nil, anon, tasks.Options{}).Refresh(ctx)
	if !errors.Is(err, tasks.ErrFetchFailed) || !errors.Is(err, api.ErrAPIUnauthorized) {
		t.Fatalf("expected unauthorized fetch failure, got %v", err)
	}
}

func TestHTTP_RemindersAreScopedToOwner(t *testing.T) {
	ts := newTestServer(t)

	petID := createPet(t, ts.URL, "owner-1", map[string]any{"name": "Luna", "species": "cat"})
	st, body := doReq(t, ts.URL, http.MethodPost, "/pets/"+petID+"/reminders", "owner-1", map[string]any{
		"title":    "vet",
		"priority": "urgent",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", st, body)
	}
	var created struct {
		Data struct {
			ID       string `json:"id"`
			Priority string `json:"priority"`
		} `json:"data"`
	}
	mustJSON(t, body, &created)
	if created.Data.Priority != "urgent" {
		t.Fatalf("unexpected priority %q", created.Data.Priority)
	}

	// Otro usuario no ve ni toca el recordatorio
	if st, _ := doReq(t, ts.URL, http.MethodPost, "/reminders/"+created.Data.ID+"/complete", "intruder", nil); st != http.StatusNotFound {
		t.Fatalf("expected 404 for another user, got %d", st)
	}
	st, body = doReq(t, ts.URL, http.MethodGet, "/reminders/today", "intruder", nil)
	var list struct {
		Data []json.RawMessage `json:"data"`
	}
	mustJSON(t, body, &list)
	if st != http.StatusOK || len(list.Data) != 0 {
		t.Fatalf("expected empty list for another user, got %d items", len(list.Data))
	}

	// Archivado: el servidor lo rechaza con 409
	if st, _ := doReq(t, ts.URL, http.MethodPatch, "/reminders/"+created.Data.ID, "owner-1", map[string]any{"status": "archived"}); st != http.StatusOK {
		t.Fatalf("expected archive to succeed, got %d", st)
	}
	st, body = doReq(t, ts.URL, http.MethodPost, "/reminders/"+created.Data.ID+"/complete", "owner-1", nil)
	if st != http.StatusConflict {
		t.Fatalf("expected 409 for archived reminder, got %d body=%s", st, body)
	}
}

func TestHTTP_BearerTokens(t *testing.T) {
	t.Setenv("DB_DSN", "")
	v, err := tokens.Parse("tok-owner:owner-1")
	if err != nil {
		t.Fatalf("parse tokens: %v", err)
	}
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: v}))
	defer ts.Close()

	ctx := context.Background()
	authed, _ := api.NewClient(api.Config{BaseURL: ts.URL, Token: "tok-owner"})
	if _, err := authed.FetchToday(ctx); err != nil {
		t.Fatalf("expected bearer token to be accepted, got %v", err)
	}

	// con verifier configurado el header de debug ya no autentica
	debug, _ := api.NewClient(api.Config{BaseURL: ts.URL, DebugUserID: "owner-1"})
	if _, err := debug.FetchToday(ctx); !errors.Is(err, api.ErrAPIUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestHTTP_HealthAndSwagger(t *testing.T) {
	ts := newTestServer(t)

	if st, body := doReq(t, ts.URL, http.MethodGet, "/health", "", nil); st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("unexpected health %d %q", st, body)
	}
	st, body := doReq(t, ts.URL, http.MethodGet, "/swagger/doc.json", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected swagger doc, got %d", st)
	}
	var doc map[string]any
	mustJSON(t, body, &doc)
	if doc["swagger"] != "2.0" {
		t.Fatalf("unexpected swagger doc %v", doc["swagger"])
	}
}

// -------------------------
// helpers HTTP
// -------------------------

func createPet(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()
	st, body := doReq(t, baseURL, http.MethodPost, "/pets", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("create pet: expected 201, got %d body=%s", st, body)
	}
	var resp struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	mustJSON(t, body, &resp)
	if resp.Data.ID == "" {
		t.Fatalf("create pet: empty id")
	}
	return resp.Data.ID
}

func doReq(t *testing.T, baseURL, method, path, userID string, payload any) (int, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("X-Debug-User-ID", userID)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b
}

func mustJSON(t *testing.T, b []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(b, v); err != nil {
		t.Fatalf("invalid json: %v body=%s", err, string(b))
	}
}
