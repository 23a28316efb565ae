package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taaza-khabar/internal/domain"
	"taaza-khabar/internal/news"
)

type HistoryResponse struct {
	Query        string `json:"query"`
	ResultsCount int    `json:"results_count"`
	Timestamp    string `json:"timestamp"`
}

func (h *Handler) getNews(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "page must be an integer")
		return
	}

	username, _ := h.sessions.Username(c)
	result, err := h.search.Search(c.Request.Context(), username, c.Query("q"), page)
	if err != nil {
		var gwErr *news.GatewayError
		if errors.As(err, &gwErr) {
			h.opts.Logger.Warnf("news gateway: %v", gwErr)
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.Data(result.StatusCode, "application/json", result.Body)
}

func (h *Handler) searchHistory(c *gin.Context) {
	username, _ := h.sessions.Username(c)

	entries, err := h.search.History(c.Request.Context(), username)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	history := make([]HistoryResponse, len(entries))
	for i := range entries {
		history[i] = historyToResponse(entries[i])
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "history": history})
}

func historyToResponse(entry domain.SearchHistoryEntry) HistoryResponse {
	return HistoryResponse{
		Query:        entry.Query,
		ResultsCount: entry.ResultsCount,
		Timestamp:    formatTimestamp(entry.Timestamp),
	}
}
