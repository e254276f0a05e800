package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/schema"

	"github.com/sweeplab/minesweeper-server/internal/repository"
)

type LeaderboardHandler struct {
	logger *slog.Logger
	repo   Repository
}

func NewLeaderboardHandler(logger *slog.Logger, repo Repository) *LeaderboardHandler {
	return &LeaderboardHandler{logger: logger, repo: repo}
}

type LeaderboardFilterDTO struct {
	Difficulty string `schema:"difficulty"`
	PlayerName string `schema:"player_name"`
	Limit      int    `schema:"limit"`
}

func ParseLeaderboardFilterDTO(src map[string][]string) (LeaderboardFilterDTO, error) {
	var dto LeaderboardFilterDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, src)
	return dto, err
}

func (dto LeaderboardFilterDTO) Filter() repository.ScoreFilter {
	var filter repository.ScoreFilter
	if dto.Difficulty != "" {
		filter.Difficulty = &dto.Difficulty
	}
	if dto.PlayerName != "" {
		filter.PlayerName = &dto.PlayerName
	}
	return filter
}

const defaultLeaderboardLimit = 100

// List serves won-game scores, fastest first, optionally narrowed to one
// difficulty or player.
func (h LeaderboardHandler) List(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseLeaderboardFilterDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	limit := dto.Limit
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}

	scores, err := h.repo.ListScores(r.Context(), dto.Filter(), limit)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to list scores", "error", err)
		return
	}
	if scores == nil {
		scores = []repository.Score{}
	}

	sendJSONOrLog(w, h.logger, scores)
}
