package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/questforge/questforge/internal/domain"
)

// ─── Progression ────────────────────────────────────────────────────────────

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	p := s.profiles.Snapshot()
	idx, rank := s.xp.Rank()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"profile":    p,
		"rank_index": idx,
		"rank":       rank,
	})
}

func (s *Server) handleXPDelta(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount int64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	effective, err := s.xp.ApplyXPDelta(req.Amount)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"applied": effective,
		"xp":      s.profiles.Snapshot().XP,
	})
}

func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	idx, rank := s.xp.Rank()
	pendingIdx, pending := s.xp.CheckRankUp()
	resp := map[string]interface{}{
		"rank_index": idx,
		"rank":       rank,
		"pending":    pending,
	}
	if pending {
		resp["pending_index"] = pendingIdx
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRankAck(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Index int `json:"index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.xp.AcknowledgeRankUp(req.Index); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "acknowledged"})
}

// ─── Chests ─────────────────────────────────────────────────────────────────

func (s *Server) handleChests(w http.ResponseWriter, r *http.Request) {
	p := s.profiles.Snapshot()
	chests := p.Chests
	if chests == nil {
		chests = []domain.Chest{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"chests": chests})
}

// handleChestOpen rolls a reward for a held chest. The chest stays in
// the inventory until the claim commits it.
func (s *Server) handleChestOpen(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p := s.profiles.Snapshot()
	idx := p.ChestByID(id)
	if idx < 0 {
		writeDomainError(w, domain.ErrUnknownChest)
		return
	}
	reward, err := s.chests.Open(p.Chests[idx].Rarity)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"reward": reward})
}

func (s *Server) handleChestClaim(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req struct {
		Reward domain.Reward `json:"reward"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.chests.Claim(id, req.Reward); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "claimed",
		"profile": s.profiles.Snapshot(),
	})
}

// ─── Store ──────────────────────────────────────────────────────────────────

func (s *Server) handleStoreCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": domain.StoreCatalog()})
}

func (s *Server) handleStorePurchase(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var (
		entry domain.PurchaseEntry
		err   error
	)
	switch req.Name {
	case "Streak Freeze":
		entry, err = s.ledger.BuyFreeze()
	case "Golden Day":
		entry, err = s.ledger.BuyGoldenDay()
	default:
		entry, err = s.ledger.Purchase(req.Name)
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"purchase": entry,
		"coins":    s.profiles.Snapshot().Coins,
	})
}

func (s *Server) handleStoreHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	entries, err := s.ledger.History(limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if entries == nil {
		entries = []domain.PurchaseEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"purchases": entries})
}

// ─── Achievements ───────────────────────────────────────────────────────────

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	list, err := s.achievements.List()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"achievements": list})
}

// ─── Tasks ──────────────────────────────────────────────────────────────────

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

func (s *Server) handleTaskList(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.trackers.Tasks()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tasks": tasks})
}

func (s *Server) handleTaskAdd(w http.ResponseWriter, r *http.Request) {
	var t domain.Task
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if t.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	created, err := s.trackers.AddTask(t)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleTaskUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid task id")
		return
	}
	var t domain.Task
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	t.ID = id
	if err := s.trackers.UpdateTask(t); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) handleTaskDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid task id")
		return
	}
	if err := s.trackers.DeleteTask(id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleTaskComplete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid task id")
		return
	}
	if err := s.trackers.CompleteTask(id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "completed",
		"xp":     s.profiles.Snapshot().XP,
	})
}

func (s *Server) handleTaskNotified(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid task id")
		return
	}
	if err := s.trackers.MarkTaskNotified(id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "notified"})
}

// ─── Food ───────────────────────────────────────────────────────────────────

func (s *Server) handleFoodList(w http.ResponseWriter, r *http.Request) {
	entries, err := s.trackers.Food()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if entries == nil {
		entries = []domain.FoodEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

func (s *Server) handleFoodAdd(w http.ResponseWriter, r *http.Request) {
	var e domain.FoodEntry
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if e.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	created, err := s.trackers.AddFood(e)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleFoodDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid entry id")
		return
	}
	if err := s.trackers.DeleteFood(id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ─── Water ──────────────────────────────────────────────────────────────────

func (s *Server) handleWaterGet(w http.ResponseWriter, r *http.Request) {
	ml, err := s.trackers.WaterToday()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"ml": ml})
}

func (s *Server) handleWaterSet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ML int `json:"ml"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.trackers.SetWater(req.ML); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"ml": req.ML})
}

// ─── Sport ──────────────────────────────────────────────────────────────────

func (s *Server) handleSportList(w http.ResponseWriter, r *http.Request) {
	entries, err := s.trackers.Sport()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if entries == nil {
		entries = []domain.SportEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

func (s *Server) handleSportAdd(w http.ResponseWriter, r *http.Request) {
	var e domain.SportEntry
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if e.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	created, err := s.trackers.AddSport(e)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleSportDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid entry id")
		return
	}
	if err := s.trackers.DeleteSport(id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ─── Habits ─────────────────────────────────────────────────────────────────

func (s *Server) handleHabits(w http.ResponseWriter, r *http.Request) {
	habits, err := s.trackers.Habits()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"habits": habits})
}

func (s *Server) handleHabitToggle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	done, err := s.trackers.ToggleHabit(req.Name)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"done": done})
}

// ─── Weight ─────────────────────────────────────────────────────────────────

func (s *Server) handleWeightHistory(w http.ResponseWriter, r *http.Request) {
	points, err := s.trackers.WeightHistory()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if points == nil {
		points = []domain.WeightPoint{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"history": points})
}

func (s *Server) handleWeightLog(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Kg float64 `json:"kg"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Kg <= 0 {
		writeError(w, http.StatusBadRequest, "kg must be positive")
		return
	}
	if err := s.trackers.LogWeight(req.Kg); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged"})
}

// ─── Snapshot ───────────────────────────────────────────────────────────────

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	data, err := s.snapshots.Export()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="questforge-snapshot.json"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body: "+err.Error())
		return
	}
	if err := s.snapshots.Import(data); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "imported"})
}
