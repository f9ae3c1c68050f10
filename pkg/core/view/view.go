// Package view derives the presentational volunteer list: search, role and
// registration-number filters, stable sorting, pagination, and role counts.
// Everything here is a pure function of its inputs and recomputable on every
// keystroke without touching the authoritative list.
package view

import (
	"sort"
	"strings"

	"github.com/aakfoundation/sevak-registry/pkg/core/model"
)

// SortKey names the supported list orderings.
type SortKey string

const (
	SortNewestFirst SortKey = "newest"
	SortOldestFirst SortKey = "oldest"
	SortNameAsc     SortKey = "name-asc"
	SortNameDesc    SortKey = "name-desc"
	SortRoleRank    SortKey = "role-rank"
)

// PageSizes is the allowed set of page sizes.
var PageSizes = []int{6, 12, 24, 48}

// DefaultPageSize is used when the requested size is not in PageSizes.
const DefaultPageSize = 12

// Query selects and orders a page of the volunteer list.
type Query struct {
	Search   string
	Role     model.Role // model.RoleAll or empty means no role filter
	IDNumber string     // exact AAK number match, empty means no filter
	Sort     SortKey
	PageSize int
	Page     int
}

// RoleCounts holds per-role totals for the summary badges.
type RoleCounts struct {
	President     int `json:"president"`
	VicePresident int `json:"vicePresident"`
	Yodha         int `json:"soorveerYodha"`
}

// Total sums the per-role counts.
func (rc RoleCounts) Total() int {
	return rc.President + rc.VicePresident + rc.Yodha
}

// Result is one derived page plus the totals the presentation layer needs.
type Result struct {
	Records    []model.Volunteer `json:"records"`
	TotalCount int               `json:"totalCount"`
	TotalPages int               `json:"totalPages"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	RoleCounts RoleCounts        `json:"roleCounts"`
}

// Derive applies the query to the authoritative list. Role counts are
// computed over the filtered list, so badges always sum to TotalCount.
// An out-of-range page clamps to the last valid page; an empty result set
// reports page 1 of 1 with no records.
func Derive(records []model.Volunteer, q Query) Result {
	filtered := filter(records, q)
	sorted := sortRecords(filtered, q.Sort)

	pageSize := q.PageSize
	if !validPageSize(pageSize) {
		pageSize = DefaultPageSize
	}

	totalCount := len(sorted)
	totalPages := (totalCount + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > totalCount {
		start = totalCount
	}
	if end > totalCount {
		end = totalCount
	}

	return Result{
		Records:    sorted[start:end],
		TotalCount: totalCount,
		TotalPages: totalPages,
		Page:       page,
		PageSize:   pageSize,
		RoleCounts: countRoles(filtered),
	}
}

func validPageSize(size int) bool {
	for _, s := range PageSizes {
		if size == s {
			return true
		}
	}
	return false
}

// filter applies search, role, and registration-number filters.
func filter(records []model.Volunteer, q Query) []model.Volunteer {
	term := strings.ToLower(strings.TrimSpace(q.Search))
	roleFilter := q.Role != "" && q.Role != model.RoleAll

	out := make([]model.Volunteer, 0, len(records))
	for _, v := range records {
		if roleFilter && v.Role != q.Role {
			continue
		}
		if q.IDNumber != "" && v.IDNumber != q.IDNumber {
			continue
		}
		if term != "" && !matchesSearch(v, term) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// matchesSearch does a case-insensitive substring match across the identity
// and contact fields.
func matchesSearch(v model.Volunteer, term string) bool {
	return strings.Contains(strings.ToLower(v.Name), term) ||
		strings.Contains(strings.ToLower(v.IDNumber), term) ||
		strings.Contains(strings.ToLower(v.PhoneNumber), term) ||
		strings.Contains(strings.ToLower(v.Address), term)
}

// sortRecords returns a sorted copy. All orderings are stable so ties keep
// input order.
func sortRecords(records []model.Volunteer, key SortKey) []model.Volunteer {
	out := make([]model.Volunteer, len(records))
	copy(out, records)

	switch key {
	case SortOldestFirst:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].JoinDate.Before(out[j].JoinDate)
		})
	case SortNameAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	case SortNameDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) > strings.ToLower(out[j].Name)
		})
	case SortRoleRank:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Role.Rank() > out[j].Role.Rank()
		})
	case SortNewestFirst:
		fallthrough
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].JoinDate.After(out[j].JoinDate)
		})
	}

	return out
}

func countRoles(records []model.Volunteer) RoleCounts {
	var rc RoleCounts
	for _, v := range records {
		switch v.Role {
		case model.RolePresident:
			rc.President++
		case model.RoleVicePresident:
			rc.VicePresident++
		default:
			rc.Yodha++
		}
	}
	return rc
}
