package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aakfoundation/sevak-registry/pkg/core/model"
)

func testRecords() []model.Volunteer {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []model.Volunteer{
		{ID: "v1", Name: "Ramesh Kumar", IDNumber: "AAK-1001", PhoneNumber: "9800000001", Address: "Jaipur", Role: model.RolePresident, JoinDate: base.AddDate(0, 0, 1)},
		{ID: "v2", Name: "Sunita Sharma", IDNumber: "AAK-1002", PhoneNumber: "9800000002", Address: "Indore", Role: model.RoleVicePresident, JoinDate: base.AddDate(0, 0, 2)},
		{ID: "v3", Name: "Vikram Singh", IDNumber: "AAK-1003", PhoneNumber: "9800000003", Address: "Lucknow", Role: model.RoleYodha, JoinDate: base.AddDate(0, 0, 3)},
		{ID: "v4", Name: "Priya Patel", IDNumber: "AAK-1004", PhoneNumber: "9800000004", Address: "Bhopal", Role: model.RoleYodha, JoinDate: base.AddDate(0, 0, 4)},
		{ID: "v5", Name: "Arjun Verma", IDNumber: "AAK-1005", PhoneNumber: "9800000005", Address: "Jaipur", Role: model.RoleYodha, JoinDate: base.AddDate(0, 0, 5)},
		{ID: "v6", Name: "Kavita Joshi", IDNumber: "AAK-1006", PhoneNumber: "9800000006", Address: "Indore", Role: model.RoleYodha, JoinDate: base.AddDate(0, 0, 6)},
		{ID: "v7", Name: "Deepak Yadav", IDNumber: "AAK-1007", PhoneNumber: "9800000007", Address: "Lucknow", Role: model.RoleYodha, JoinDate: base.AddDate(0, 0, 7)},
		{ID: "v8", Name: "Anita Gupta", IDNumber: "AAK-1008", PhoneNumber: "9800000008", Address: "Bhopal", Role: model.RoleYodha, JoinDate: base.AddDate(0, 0, 8)},
	}
}

func ids(records []model.Volunteer) []string {
	out := make([]string, 0, len(records))
	for _, v := range records {
		out = append(out, v.ID)
	}
	return out
}

func TestDerive_EightRecordsPageSizeSix(t *testing.T) {
	records := testRecords()

	page1 := Derive(records, Query{PageSize: 6, Page: 1})
	assert.Len(t, page1.Records, 6)
	assert.Equal(t, 8, page1.TotalCount)
	assert.Equal(t, 2, page1.TotalPages)

	page2 := Derive(records, Query{PageSize: 6, Page: 2})
	assert.Len(t, page2.Records, 2)
	assert.Equal(t, 2, page2.Page)
}

func TestDerive_SearchIsCaseInsensitiveAcrossFields(t *testing.T) {
	records := testRecords()

	byName := Derive(records, Query{Search: "rAmEsH"})
	require.Len(t, byName.Records, 1)
	assert.Equal(t, "v1", byName.Records[0].ID)

	byIDNumber := Derive(records, Query{Search: "aak-1003"})
	require.Len(t, byIDNumber.Records, 1)
	assert.Equal(t, "v3", byIDNumber.Records[0].ID)

	byPhone := Derive(records, Query{Search: "9800000005"})
	require.Len(t, byPhone.Records, 1)
	assert.Equal(t, "v5", byPhone.Records[0].ID)

	byAddress := Derive(records, Query{Search: "jaipur"})
	assert.Len(t, byAddress.Records, 2)
}

func TestDerive_FilteringIsIdempotent(t *testing.T) {
	records := testRecords()
	q := Query{Search: "indore", Role: model.RoleYodha, Sort: SortNameAsc}

	once := Derive(records, q)
	twice := Derive(once.Records, q)

	assert.Equal(t, ids(once.Records), ids(twice.Records))
	assert.Equal(t, once.TotalCount, twice.TotalCount)
}

func TestDerive_RoleFilterAndAllSentinel(t *testing.T) {
	records := testRecords()

	president := Derive(records, Query{Role: model.RolePresident})
	require.Len(t, president.Records, 1)
	assert.Equal(t, "v1", president.Records[0].ID)

	all := Derive(records, Query{Role: model.RoleAll})
	assert.Equal(t, 8, all.TotalCount)

	empty := Derive(records, Query{})
	assert.Equal(t, 8, empty.TotalCount)
}

func TestDerive_IDNumberFilterIsExact(t *testing.T) {
	records := testRecords()

	hit := Derive(records, Query{IDNumber: "AAK-1004"})
	require.Len(t, hit.Records, 1)
	assert.Equal(t, "v4", hit.Records[0].ID)

	miss := Derive(records, Query{IDNumber: "AAK-99"})
	assert.Empty(t, miss.Records)
}

func TestDerive_NameSortsAreExactReverses(t *testing.T) {
	records := testRecords()

	asc := Derive(records, Query{Sort: SortNameAsc, PageSize: 12})
	desc := Derive(records, Query{Sort: SortNameDesc, PageSize: 12})

	ascIDs := ids(asc.Records)
	descIDs := ids(desc.Records)
	require.Len(t, descIDs, len(ascIDs))
	for i := range ascIDs {
		assert.Equal(t, ascIDs[i], descIDs[len(descIDs)-1-i])
	}
}

func TestDerive_RoleRankSortIsStable(t *testing.T) {
	records := testRecords()

	result := Derive(records, Query{Sort: SortRoleRank, PageSize: 12})
	ranked := ids(result.Records)

	assert.Equal(t, "v1", ranked[0], "president first")
	assert.Equal(t, "v2", ranked[1], "vice-president second")
	// Equal-rank records keep input order.
	assert.Equal(t, []string{"v3", "v4", "v5", "v6", "v7", "v8"}, ranked[2:])
}

func TestDerive_NewestAndOldestFirst(t *testing.T) {
	records := testRecords()

	newest := Derive(records, Query{Sort: SortNewestFirst})
	assert.Equal(t, "v8", newest.Records[0].ID)

	oldest := Derive(records, Query{Sort: SortOldestFirst})
	assert.Equal(t, "v1", oldest.Records[0].ID)
}

func TestDerive_RoleCountsSumToTotal(t *testing.T) {
	records := testRecords()

	all := Derive(records, Query{})
	assert.Equal(t, all.TotalCount, all.RoleCounts.Total())
	assert.Equal(t, 1, all.RoleCounts.President)
	assert.Equal(t, 1, all.RoleCounts.VicePresident)
	assert.Equal(t, 6, all.RoleCounts.Yodha)

	// Counts follow the filtered list so badges always match what is shown.
	filtered := Derive(records, Query{Search: "jaipur"})
	assert.Equal(t, filtered.TotalCount, filtered.RoleCounts.Total())
}

func TestDerive_ZeroMatchesIsEmptyStateNotError(t *testing.T) {
	records := testRecords()

	result := Derive(records, Query{Search: "no-such-volunteer"})

	assert.Empty(t, result.Records)
	assert.Equal(t, 0, result.TotalCount)
	assert.Equal(t, 1, result.TotalPages)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 0, result.RoleCounts.Total())
}

func TestDerive_OutOfRangePageClampsToLastValidPage(t *testing.T) {
	records := testRecords()

	// Page 2 exists at size 6; shrinking the result set must clamp, not
	// leave a dangling empty page.
	result := Derive(records, Query{Search: "sunita", PageSize: 6, Page: 2})

	assert.Equal(t, 1, result.Page)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "v2", result.Records[0].ID)
}

func TestDerive_ChangingPageSizeClampsPage(t *testing.T) {
	records := testRecords()

	// 8 records: page 2 of size 6 is valid, but at size 12 only one page exists.
	result := Derive(records, Query{PageSize: 12, Page: 2})
	assert.Equal(t, 1, result.Page)
	assert.Len(t, result.Records, 8)
}

func TestDerive_InvalidPageSizeFallsBackToDefault(t *testing.T) {
	records := testRecords()

	result := Derive(records, Query{PageSize: 7})
	assert.Equal(t, DefaultPageSize, result.PageSize)
}

func TestDerive_DoesNotMutateInput(t *testing.T) {
	records := testRecords()
	original := ids(records)

	Derive(records, Query{Sort: SortNameDesc})

	assert.Equal(t, original, ids(records), "derivation must not reorder the authoritative list")
}
