// Package handler はwatchlistフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"market_dashboard/internal/feature/watchlist/domain/entity"
	"market_dashboard/internal/feature/watchlist/transport/http/dto"
)

// TabsUsecase はタブ操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type TabsUsecase interface {
	ListTabs(ctx context.Context) ([]entity.Tab, error)
	CreateTab(ctx context.Context, name string) (entity.Tab, error)
	RenameTab(ctx context.Context, id uint, newName string) (bool, error)
	DeleteTab(ctx context.Context, id uint) (bool, error)
}

// TabHandler はタブのHTTPリクエストを処理します。
type TabHandler struct {
	uc TabsUsecase
}

// NewTabHandler は指定されたusecaseでTabHandlerの新しいインスタンスを生成します。
func NewTabHandler(uc TabsUsecase) *TabHandler {
	return &TabHandler{uc: uc}
}

// parseName はリクエストのタブ名を前後の空白を除去して検証します。
// 空白のみの名前は空の表示名になるため受け付けません。
func parseName(c *gin.Context, raw string) (string, bool) {
	name := strings.TrimSpace(raw)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name must not be empty"})
		return "", false
	}
	return name, true
}

// parseID はパスパラメータをタブIDとして解釈します。
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// List はすべてのタブを表示順で返します。
//
// エンドポイント例:
// GET /api/tabs
func (h *TabHandler) List(c *gin.Context) {
	tabs, err := h.uc.ListTabs(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]dto.TabItem, 0, len(tabs))
	for _, t := range tabs {
		out = append(out, dto.TabItem{ID: t.ID, Name: t.Name, SortOrder: t.SortOrder})
	}
	c.JSON(http.StatusOK, out)
}

// Create は新しいタブを作成し、作成されたタブを返します。
//
// エンドポイント例:
// POST /api/tabs {"name": "Crypto"}
func (h *TabHandler) Create(c *gin.Context) {
	var req dto.TabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	name, ok := parseName(c, req.Name)
	if !ok {
		return
	}
	tab, err := h.uc.CreateTab(c.Request.Context(), name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.TabItem{ID: tab.ID, Name: tab.Name, SortOrder: tab.SortOrder})
}

// Rename はタブ名を変更します。対象のタブが存在しない場合は404を返します。
//
// エンドポイント例:
// PUT /api/tabs/3 {"name": "Renamed"}
func (h *TabHandler) Rename(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.TabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	name, ok := parseName(c, req.Name)
	if !ok {
		return
	}
	renamed, err := h.uc.RenameTab(c.Request.Context(), id, name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !renamed {
		c.JSON(http.StatusNotFound, gin.H{"status": "not_found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "renamed", "id": id, "name": name})
}

// Delete はタブとそのウォッチリストを削除します。
// 最後の1タブを削除しようとした場合は400を返します。
//
// エンドポイント例:
// DELETE /api/tabs/3
func (h *TabHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	deleted, err := h.uc.DeleteTab(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusBadRequest, gin.H{"status": "failed", "message": "Cannot delete the last tab"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted", "id": id})
}
