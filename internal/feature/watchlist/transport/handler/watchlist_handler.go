package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"market_dashboard/internal/feature/watchlist/domain/entity"
	"market_dashboard/internal/feature/watchlist/transport/http/dto"
)

// WatchlistUsecase はウォッチリスト操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type WatchlistUsecase interface {
	ListEntries(ctx context.Context, tabID uint) ([]entity.WatchlistEntry, error)
	AddTicker(ctx context.Context, tabID uint, ticker, name string) (bool, error)
	Reorder(ctx context.Context, tabID uint, tickers []string) (bool, error)
	RemoveTicker(ctx context.Context, tabID uint, ticker string) (bool, error)
}

// WatchlistHandler はタブ単位のウォッチリストのHTTPリクエストを処理します。
type WatchlistHandler struct {
	uc WatchlistUsecase
}

// NewWatchlistHandler は指定されたusecaseでWatchlistHandlerの新しいインスタンスを生成します。
func NewWatchlistHandler(uc WatchlistUsecase) *WatchlistHandler {
	return &WatchlistHandler{uc: uc}
}

// List は指定されたタブのウォッチリストを表示順で返します。
//
// エンドポイント例:
// GET /api/watchlist/1
func (h *WatchlistHandler) List(c *gin.Context) {
	tabID, ok := parseID(c, "tab_id")
	if !ok {
		return
	}
	entries, err := h.uc.ListEntries(c.Request.Context(), tabID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]dto.EntryItem, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.EntryItem{
			ID:        e.ID,
			TabID:     e.TabID,
			Ticker:    e.Ticker,
			Name:      e.Name,
			SortOrder: e.SortOrder,
		})
	}
	c.JSON(http.StatusOK, out)
}

// Add はティッカーをタブのウォッチリストに追加します。
// 同一タブ内に既に存在する場合は409を返します。
//
// エンドポイント例:
// POST /api/watchlist/1/AAPL?name=Apple%20Inc.
func (h *WatchlistHandler) Add(c *gin.Context) {
	tabID, ok := parseID(c, "tab_id")
	if !ok {
		return
	}
	ticker := strings.ToUpper(strings.TrimSpace(c.Param("ticker")))
	name := c.Query("name")

	added, err := h.uc.AddTicker(c.Request.Context(), tabID, ticker, name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !added {
		c.JSON(http.StatusConflict, gin.H{
			"status":  "exists",
			"message": fmt.Sprintf("%s already in this list", ticker),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "added", "ticker": ticker})
}

// Reorder は与えられたティッカー列の並びをウォッチリストの表示順として保存します。
//
// エンドポイント例:
// PUT /api/watchlist/1/reorder {"tickers": ["MSFT", "AAPL"]}
func (h *WatchlistHandler) Reorder(c *gin.Context) {
	tabID, ok := parseID(c, "tab_id")
	if !ok {
		return
	}
	var req dto.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	reordered, err := h.uc.Reorder(c.Request.Context(), tabID, req.Tickers)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !reordered {
		c.JSON(http.StatusBadRequest, gin.H{"status": "failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reordered", "tab_id": tabID})
}

// Remove はウォッチリストからティッカーを削除します。
// 該当する行が無い場合は404を返します。
//
// エンドポイント例:
// DELETE /api/watchlist/1/AAPL
func (h *WatchlistHandler) Remove(c *gin.Context) {
	tabID, ok := parseID(c, "tab_id")
	if !ok {
		return
	}
	ticker := strings.ToUpper(strings.TrimSpace(c.Param("ticker")))

	removed, err := h.uc.RemoveTicker(c.Request.Context(), tabID, ticker)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "not_found",
			"message": fmt.Sprintf("%s not in this list", ticker),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "removed", "ticker": ticker})
}
