// Package usecase はタブとウォッチリスト操作のビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"

	"market_dashboard/internal/feature/watchlist/domain/entity"
)

// ErrNoTabs はストアにタブが1つも存在しない場合に返されるエラーです。
// 起動時のシーディングが成功していれば通常は発生しません。
var ErrNoTabs = errors.New("no tabs exist")

// StoreRepository はタブとウォッチリストの永続化レイヤーを抽象化します。
// 期待される失敗（not-found、重複）はエラーではなくboolで報告します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type StoreRepository interface {
	ListTabs(ctx context.Context) ([]entity.Tab, error)
	CreateTab(ctx context.Context, name string) (entity.Tab, error)
	RenameTab(ctx context.Context, id uint, newName string) (bool, error)
	DeleteTab(ctx context.Context, id uint) (bool, error)

	ListEntries(ctx context.Context, tabID uint) ([]entity.WatchlistEntry, error)
	AddTicker(ctx context.Context, tabID uint, ticker, name string) (bool, error)
	Reorder(ctx context.Context, tabID uint, tickers []string) (bool, error)
	RemoveTicker(ctx context.Context, tabID uint, ticker string) (bool, error)
}

// WatchlistUsecase はタブとウォッチリストに関するユースケースを提供します。
type WatchlistUsecase struct {
	store StoreRepository
}

// NewWatchlistUsecase は指定されたリポジトリでWatchlistUsecaseの新しいインスタンスを生成します。
func NewWatchlistUsecase(store StoreRepository) *WatchlistUsecase {
	return &WatchlistUsecase{store: store}
}

// ListTabs はすべてのタブをsort_order順（同値はid順）に返します。
func (u *WatchlistUsecase) ListTabs(ctx context.Context) ([]entity.Tab, error) {
	return u.store.ListTabs(ctx)
}

// CreateTab は新しいタブを作成し、末尾のsort_orderを割り当てます。
func (u *WatchlistUsecase) CreateTab(ctx context.Context, name string) (entity.Tab, error) {
	return u.store.CreateTab(ctx, name)
}

// RenameTab はタブ名を変更します。対象のタブが存在しない場合はfalseを返します。
func (u *WatchlistUsecase) RenameTab(ctx context.Context, id uint, newName string) (bool, error) {
	return u.store.RenameTab(ctx, id, newName)
}

// DeleteTab はタブとそのウォッチリストを削除します。
// 最後の1タブは削除できず、falseを返します。
func (u *WatchlistUsecase) DeleteTab(ctx context.Context, id uint) (bool, error) {
	return u.store.DeleteTab(ctx, id)
}

// ResolveTabID はAPI境界の「0 = 先頭タブ」という慣例を具体的なタブIDに解決します。
// 指定されたIDのタブが存在する場合はそのまま返し、0または存在しないIDの場合は
// 先頭タブのIDを返します。タブが1つも無い場合はErrNoTabsを返します。
func (u *WatchlistUsecase) ResolveTabID(ctx context.Context, id uint) (uint, error) {
	tabs, err := u.store.ListTabs(ctx)
	if err != nil {
		return 0, err
	}
	if len(tabs) == 0 {
		return 0, ErrNoTabs
	}
	if id > 0 {
		for _, t := range tabs {
			if t.ID == id {
				return t.ID, nil
			}
		}
	}
	return tabs[0].ID, nil
}

// ListEntries は指定されたタブのウォッチリストをsort_order順（同値はadded_at順）に返します。
func (u *WatchlistUsecase) ListEntries(ctx context.Context, tabID uint) ([]entity.WatchlistEntry, error) {
	return u.store.ListEntries(ctx, tabID)
}

// AddTicker はティッカーをタブのウォッチリストに追加します。
// 同一タブ内に既に存在する場合はfalseを返します（大文字化による大文字小文字非依存の一意性）。
func (u *WatchlistUsecase) AddTicker(ctx context.Context, tabID uint, ticker, name string) (bool, error) {
	return u.store.AddTicker(ctx, tabID, ticker, name)
}

// Reorder は与えられたティッカー列の並びをsort_orderとして保存します。
// ウォッチリストに存在しないティッカーは黙って無視されます。
func (u *WatchlistUsecase) Reorder(ctx context.Context, tabID uint, tickers []string) (bool, error) {
	return u.store.Reorder(ctx, tabID, tickers)
}

// RemoveTicker はウォッチリストからティッカーを削除します。
// 対象の行が存在しない場合はfalseを返します。
func (u *WatchlistUsecase) RemoveTicker(ctx context.Context, tabID uint, ticker string) (bool, error) {
	return u.store.RemoveTicker(ctx, tabID, ticker)
}
