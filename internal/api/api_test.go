package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/questforge/questforge/internal/app/achievement"
	"github.com/questforge/questforge/internal/app/chest"
	"github.com/questforge/questforge/internal/app/profile"
	"github.com/questforge/questforge/internal/app/progression"
	"github.com/questforge/questforge/internal/app/snapshot"
	"github.com/questforge/questforge/internal/app/store"
	"github.com/questforge/questforge/internal/app/streak"
	"github.com/questforge/questforge/internal/app/tracker"
	"github.com/questforge/questforge/internal/domain"
	"github.com/questforge/questforge/internal/infra/sqlite"
)

func newTestServer(t *testing.T) (*httptest.Server, *profile.Store) {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	profiles, err := profile.NewStore(db)
	if err != nil {
		t.Fatal(err)
	}
	clock := domain.NewFakeClock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local))
	xp := progression.New(profiles, clock)
	streaks := streak.New(profiles, clock)
	chests := chest.New(profiles, clock, rand.New(rand.NewSource(1)))
	ledger := store.New(profiles, db, clock)
	unlocks := achievement.New(db, clock)
	trackers := tracker.New(db, profiles, xp, streaks, unlocks, clock)
	snaps := snapshot.New(profiles, db)

	srv := NewServer(profiles, xp, chests, ledger, unlocks, trackers, snaps)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, profiles
}

func getJSON(t *testing.T, url string, out interface{}) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatal(err)
		}
	}
	return resp.StatusCode
}

func postJSON(t *testing.T, url string, body interface{}, out interface{}) int {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatal(err)
		}
	}
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)
	var body map[string]string
	if code := getJSON(t, ts.URL+"/health", &body); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestProfileEndpoint(t *testing.T) {
	ts, profiles := newTestServer(t)
	if err := profiles.Replace(domain.UserProfile{XP: 1600}); err != nil {
		t.Fatal(err)
	}

	var body struct {
		RankIndex int `json:"rank_index"`
		Rank      struct {
			Title string `json:"title"`
		} `json:"rank"`
		Profile domain.UserProfile `json:"profile"`
	}
	if code := getJSON(t, ts.URL+"/api/profile", &body); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if body.Profile.XP != 1600 {
		t.Errorf("XP = %d", body.Profile.XP)
	}
	if body.Rank.Title != "Iron I" {
		t.Errorf("rank = %q, want Iron I", body.Rank.Title)
	}
}

func TestTaskFlow(t *testing.T) {
	ts, profiles := newTestServer(t)

	var created domain.Task
	code := postJSON(t, ts.URL+"/api/tasks",
		map[string]interface{}{"title": "Run", "enabled": true, "days_mask": 127}, &created)
	if code != http.StatusCreated {
		t.Fatalf("create status = %d", code)
	}
	if created.ID == 0 {
		t.Fatal("created task has no id")
	}

	code = postJSON(t, fmt.Sprintf("%s/api/tasks/%d/complete", ts.URL, created.ID), struct{}{}, nil)
	if code != http.StatusOK {
		t.Fatalf("complete status = %d", code)
	}
	if got := profiles.Snapshot().XP; got != 25 { // +10 add, +15 complete
		t.Errorf("XP = %d, want 25", got)
	}

	code = postJSON(t, ts.URL+"/api/tasks/99999/complete", struct{}{}, nil)
	if code != http.StatusNotFound {
		t.Errorf("missing task status = %d, want 404", code)
	}
}

func TestStorePurchaseFlow(t *testing.T) {
	ts, profiles := newTestServer(t)
	if err := profiles.Replace(domain.UserProfile{Coins: 150}); err != nil {
		t.Fatal(err)
	}

	code := postJSON(t, ts.URL+"/api/store/purchase",
		map[string]string{"name": "Chocolate Bar"}, nil)
	if code != http.StatusOK {
		t.Fatalf("purchase status = %d", code)
	}
	if got := profiles.Snapshot().Coins; got != 50 {
		t.Errorf("Coins = %d, want 50", got)
	}

	// Can't afford a second one at 50 coins.
	code = postJSON(t, ts.URL+"/api/store/purchase",
		map[string]string{"name": "Chocolate Bar"}, nil)
	if code != http.StatusPaymentRequired {
		t.Errorf("broke purchase status = %d, want 402", code)
	}

	code = postJSON(t, ts.URL+"/api/store/purchase",
		map[string]string{"name": "Nonsense"}, nil)
	if code != http.StatusNotFound {
		t.Errorf("unknown item status = %d, want 404", code)
	}
}

func TestChestOpenAndClaim(t *testing.T) {
	ts, profiles := newTestServer(t)
	if err := profiles.Replace(domain.UserProfile{
		Chests: []domain.Chest{{ID: "c1", Rarity: domain.ChestCommon}},
	}); err != nil {
		t.Fatal(err)
	}

	var opened struct {
		Reward domain.Reward `json:"reward"`
	}
	code := postJSON(t, ts.URL+"/api/chests/c1/open", struct{}{}, &opened)
	if code != http.StatusOK {
		t.Fatalf("open status = %d", code)
	}
	if opened.Reward.Kind == "" {
		t.Fatal("open returned no reward")
	}

	// Chest stays until the claim.
	if got := len(profiles.Snapshot().Chests); got != 1 {
		t.Fatalf("chest count after open = %d, want 1", got)
	}

	code = postJSON(t, ts.URL+"/api/chests/c1/claim",
		map[string]interface{}{"reward": opened.Reward}, nil)
	if code != http.StatusOK {
		t.Fatalf("claim status = %d", code)
	}
	if got := len(profiles.Snapshot().Chests); got != 0 {
		t.Errorf("chest count after claim = %d, want 0", got)
	}

	code = postJSON(t, ts.URL+"/api/chests/c1/claim",
		map[string]interface{}{"reward": opened.Reward}, nil)
	if code != http.StatusNotFound {
		t.Errorf("double claim status = %d, want 404", code)
	}
}

func TestExportImportEndpoints(t *testing.T) {
	ts, profiles := newTestServer(t)
	if err := profiles.Replace(domain.UserProfile{XP: 777, Coins: 55}); err != nil {
		t.Fatal(err)
	}

	resp, err := http.Get(ts.URL + "/api/export")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("export status = %d", resp.StatusCode)
	}
	var doc snapshot.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatal(err)
	}
	if doc.Profile.XP != 777 {
		t.Errorf("exported XP = %d", doc.Profile.XP)
	}

	// Wipe, then import the document back.
	if err := profiles.Replace(domain.UserProfile{}); err != nil {
		t.Fatal(err)
	}
	code := postJSON(t, ts.URL+"/api/import", doc, nil)
	if code != http.StatusOK {
		t.Fatalf("import status = %d", code)
	}
	if got := profiles.Snapshot().XP; got != 777 {
		t.Errorf("XP after import = %d, want 777", got)
	}

	// Structurally invalid documents are rejected.
	bad := doc
	bad.Profile.XP = -1
	code = postJSON(t, ts.URL+"/api/import", bad, nil)
	if code != http.StatusBadRequest {
		t.Errorf("invalid import status = %d, want 400", code)
	}
}

func TestAchievementsEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)

	var body struct {
		Achievements []achievement.Status `json:"achievements"`
	}
	if code := getJSON(t, ts.URL+"/api/achievements", &body); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if len(body.Achievements) != 10 {
		t.Errorf("catalog size = %d, want 10", len(body.Achievements))
	}
}
