// Package adapters はwatchlistフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"market_dashboard/internal/feature/watchlist/domain/entity"
	"market_dashboard/internal/feature/watchlist/usecase"
)

// storeSQLite はStoreRepositoryインターフェースのSQLite実装です。
// 各操作は1つのトランザクションとして実行され、部分的な変更を残しません。
type storeSQLite struct {
	db *gorm.DB
}

var _ usecase.StoreRepository = (*storeSQLite)(nil)

// NewStoreRepository は指定されたDB接続でstoreSQLiteリポジトリの新しいインスタンスを生成します。
func NewStoreRepository(db *gorm.DB) *storeSQLite {
	return &storeSQLite{db: db}
}

// normalizeTicker はティッカーを保存形式（前後の空白を除去した大文字）に正規化します。
func normalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// ListTabs はすべてのタブをsort_order順（同値はid順）に返します。
func (r *storeSQLite) ListTabs(ctx context.Context) ([]entity.Tab, error) {
	var tabs []entity.Tab
	if err := r.db.WithContext(ctx).
		Order("sort_order ASC, id ASC").
		Find(&tabs).Error; err != nil {
		return nil, err
	}
	return tabs, nil
}

// CreateTab は新しいタブを作成します。
// sort_orderには既存の最大値+1（タブが無い場合は0）を割り当てます。
func (r *storeSQLite) CreateTab(ctx context.Context, name string) (entity.Tab, error) {
	tab := entity.Tab{Name: strings.TrimSpace(name)}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxOrder int
		if err := tx.Model(&entity.Tab{}).
			Select("COALESCE(MAX(sort_order), -1)").
			Scan(&maxOrder).Error; err != nil {
			return err
		}
		tab.SortOrder = maxOrder + 1
		return tx.Create(&tab).Error
	})
	if err != nil {
		return entity.Tab{}, err
	}
	return tab, nil
}

// RenameTab はタブ名を変更します。対象のタブが存在しない場合はfalseを返します。
func (r *storeSQLite) RenameTab(ctx context.Context, id uint, newName string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&entity.Tab{}).
		Where("id = ?", id).
		Update("name", strings.TrimSpace(newName))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteTab はタブとそのウォッチリストのエントリを削除します。
// ストアにタブが1つしか残っていない場合は、どのIDを指定しても削除せずfalseを返します。
func (r *storeSQLite) DeleteTab(ctx context.Context, id uint) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entity.Tab{}).Count(&count).Error; err != nil {
			return err
		}
		// 最後の1タブは削除不可
		if count <= 1 {
			return nil
		}
		if err := tx.Where("tab_id = ?", id).
			Delete(&entity.WatchlistEntry{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&entity.Tab{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

// ListEntries は指定されたタブのエントリをsort_order順（同値はadded_at順）に返します。
func (r *storeSQLite) ListEntries(ctx context.Context, tabID uint) ([]entity.WatchlistEntry, error) {
	var entries []entity.WatchlistEntry
	if err := r.db.WithContext(ctx).
		Where("tab_id = ?", tabID).
		Order("sort_order ASC, added_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// AddTicker はティッカーをタブのウォッチリストに追加します。
// 同一タブ内に同じティッカーが既に存在する場合はfalseを返します。
func (r *storeSQLite) AddTicker(ctx context.Context, tabID uint, ticker, name string) (bool, error) {
	code := normalizeTicker(ticker)
	added := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entity.WatchlistEntry{}).
			Where("tab_id = ? AND ticker = ?", tabID, code).
			Count(&count).Error; err != nil {
			return err
		}
		// (tab_id, ticker)の一意性違反はエラーではなくfalseで報告
		if count > 0 {
			return nil
		}
		var maxOrder int
		if err := tx.Model(&entity.WatchlistEntry{}).
			Where("tab_id = ?", tabID).
			Select("COALESCE(MAX(sort_order), -1)").
			Scan(&maxOrder).Error; err != nil {
			return err
		}
		entry := entity.WatchlistEntry{
			TabID:     tabID,
			Ticker:    code,
			Name:      name,
			SortOrder: maxOrder + 1,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		added = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return added, nil
}

// Reorder は与えられたティッカー列のインデックスをsort_orderとして保存します。
// ウォッチリストに存在しないティッカーは行が更新されないだけで、エラーにはなりません。
func (r *storeSQLite) Reorder(ctx context.Context, tabID uint, tickers []string) (bool, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, ticker := range tickers {
			if err := tx.Model(&entity.WatchlistEntry{}).
				Where("tab_id = ? AND ticker = ?", tabID, normalizeTicker(ticker)).
				Update("sort_order", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// RemoveTicker はウォッチリストからエントリを削除します。
// 該当する行が無い場合はfalseを返します。
func (r *storeSQLite) RemoveTicker(ctx context.Context, tabID uint, ticker string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("tab_id = ? AND ticker = ?", tabID, normalizeTicker(ticker)).
		Delete(&entity.WatchlistEntry{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
