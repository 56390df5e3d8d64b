/**
 * @description
 * This file holds the in-memory query helpers behind the subscription listing:
 * status and search filtering, and generic page slicing with its metadata.
 */
package app

import (
	"strings"

	"github.com/flowlytix/subscription-service/internal/domain"
)

// FilterSubscriptions keeps records whose status equals status exactly and whose
// customer name or license key contains search, ignoring case. Empty arguments
// disable the corresponding filter. Input order is preserved.
func FilterSubscriptions(subs []domain.Subscription, status, search string) []domain.Subscription {
	if status == "" && search == "" {
		return subs
	}

	needle := strings.ToLower(search)
	filtered := make([]domain.Subscription, 0, len(subs))
	for _, sub := range subs {
		if status != "" && sub.Status != status {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(sub.CustomerName), needle) &&
			!strings.Contains(strings.ToLower(sub.LicenseKey), needle) {
			continue
		}
		filtered = append(filtered, sub)
	}
	return filtered
}

// Paginate slices one page out of items. page is 1-based; pages past the end
// produce an empty, non-nil Data slice with the totals still populated.
func Paginate[T any](items []T, page, pageSize int) domain.Page[T] {
	total := len(items)
	result := domain.Page[T]{
		Data:       []T{},
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
	}
	if pageSize < 1 || page < 1 {
		return result
	}

	result.TotalPages = total / pageSize
	if total%pageSize != 0 {
		result.TotalPages++
	}

	// Compare page numbers before multiplying so huge pages cannot overflow.
	if page > result.TotalPages {
		return result
	}
	start := (page - 1) * pageSize
	end := start + min(pageSize, total-start)
	result.Data = items[start:end:end]
	return result
}
