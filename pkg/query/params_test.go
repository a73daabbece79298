package query

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name     string
		rawQuery string
		want     Pagination
		wantErr  string
	}{
		{name: "defaults", rawQuery: "", want: Pagination{Page: 1, PageSize: 10}},
		{name: "explicit values", rawQuery: "page=3&pageSize=25", want: Pagination{Page: 3, PageSize: 25}},
		{name: "max page size accepted", rawQuery: "pageSize=100", want: Pagination{Page: 1, PageSize: 100}},
		{name: "page size over max rejected", rawQuery: "pageSize=101", wantErr: "pageSize"},
		{name: "page zero rejected", rawQuery: "page=0", wantErr: "page"},
		{name: "negative page rejected", rawQuery: "page=-1", wantErr: "page"},
		{name: "non numeric page rejected", rawQuery: "page=abc", wantErr: "page"},
		{name: "page size zero rejected", rawQuery: "pageSize=0", wantErr: "pageSize"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.rawQuery)
			require.NoError(t, err)

			p, err := ParsePagination(values)
			if tt.wantErr != "" {
				var ipe *InvalidParamError
				require.ErrorAs(t, err, &ipe)
				assert.Equal(t, tt.wantErr, ipe.Param)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p)
		})
	}
}

func TestPaginationOffset(t *testing.T) {
	assert.Equal(t, 0, Pagination{Page: 1, PageSize: 10}.Offset())
	assert.Equal(t, 20, Pagination{Page: 3, PageSize: 10}.Offset())
}

func TestPaginationTotalPages(t *testing.T) {
	p := Pagination{Page: 1, PageSize: 10}
	assert.Equal(t, 0, p.TotalPages(0))
	assert.Equal(t, 3, p.TotalPages(25))
	assert.Equal(t, 1, p.TotalPages(10))
}

func TestParseSort(t *testing.T) {
	allowed := []string{"created_at", "email"}

	values := url.Values{"sortBy": {"email"}, "sortOrder": {"asc"}}
	sortBy, sortOrder := ParseSort(values, allowed, "created_at")
	assert.Equal(t, "email", sortBy)
	assert.Equal(t, "asc", sortOrder)

	// Unknown sortBy silently falls back, unknown sortOrder means desc.
	values = url.Values{"sortBy": {"password"}, "sortOrder": {"upward"}}
	sortBy, sortOrder = ParseSort(values, allowed, "created_at")
	assert.Equal(t, "created_at", sortBy)
	assert.Equal(t, "desc", sortOrder)

	sortBy, sortOrder = ParseSort(url.Values{}, allowed, "created_at")
	assert.Equal(t, "created_at", sortBy)
	assert.Equal(t, "desc", sortOrder)
}

func TestParseDateRange(t *testing.T) {
	from, to, err := ParseDateRange(url.Values{"startDate": {"2026-03-01"}, "endDate": {"2026-03-05"}})
	require.NoError(t, err)
	require.NotNil(t, from)
	require.NotNil(t, to)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local), *from)
	assert.Equal(t, time.Date(2026, 3, 5, 23, 59, 59, int(999*time.Millisecond), time.Local), *to)
}

func TestParseDateRangeEndDateOnly(t *testing.T) {
	from, to, err := ParseDateRange(url.Values{"endDate": {"2026-03-05"}})
	require.NoError(t, err)
	assert.Nil(t, from)
	require.NotNil(t, to)
	assert.Equal(t, 23, to.Hour())
	assert.Equal(t, 59, to.Minute())
	assert.Equal(t, 59, to.Second())
}

func TestParseDateRangeErrors(t *testing.T) {
	_, _, err := ParseDateRange(url.Values{"startDate": {"not-a-date"}})
	var ipe *InvalidParamError
	require.ErrorAs(t, err, &ipe)
	assert.Equal(t, "startDate", ipe.Param)

	_, _, err = ParseDateRange(url.Values{"endDate": {"03/05/2026"}})
	require.ErrorAs(t, err, &ipe)
	assert.Equal(t, "endDate", ipe.Param)

	_, _, err = ParseDateRange(url.Values{"startDate": {"2026-03-10"}, "endDate": {"2026-03-05"}})
	require.ErrorAs(t, err, &ipe)
}

func TestParseSearchTerms(t *testing.T) {
	assert.Nil(t, ParseSearchTerms(url.Values{}, "search"))
	assert.Nil(t, ParseSearchTerms(url.Values{"search": {"   "}}, "search"))
	assert.Equal(t, []string{"john"}, ParseSearchTerms(url.Values{"search": {" john "}}, "search"))
	assert.Equal(t, []string{"john", "smith"}, ParseSearchTerms(url.Values{"search": {"john  smith"}}, "search"))
}

func TestParseBool(t *testing.T) {
	v, err := ParseBool(url.Values{}, "verified")
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = ParseBool(url.Values{"verified": {"true"}}, "verified")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.True(t, *v)

	v, err = ParseBool(url.Values{"verified": {"false"}}, "verified")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.False(t, *v)

	for _, raw := range []string{"TRUE", "1", "yes"} {
		_, err = ParseBool(url.Values{"verified": {raw}}, "verified")
		assert.Error(t, err, "value %q should be rejected", raw)
	}
}

func TestParseEnum(t *testing.T) {
	legal := []string{"scheduled", "done"}

	v, err := ParseEnum(url.Values{}, "status", legal)
	require.NoError(t, err)
	assert.Empty(t, v)

	v, err = ParseEnum(url.Values{"status": {"done"}}, "status", legal)
	require.NoError(t, err)
	assert.Equal(t, "done", v)

	_, err = ParseEnum(url.Values{"status": {"finished"}}, "status", legal)
	var ipe *InvalidParamError
	require.ErrorAs(t, err, &ipe)
	assert.Equal(t, "status", ipe.Param)
}
