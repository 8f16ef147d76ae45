package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecotrack/internal/emissions"
)

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr error
	}{
		{name: "zero value", params: Params{}},
		{name: "offset mode", params: Params{Limit: 10, Offset: 20}},
		{name: "page mode", params: Params{Page: 2, PageSize: 10}},
		{name: "sorted", params: Params{SortField: "value", SortOrder: SortOrderDesc}},
		{name: "negative limit", params: Params{Limit: -1}, wantErr: ErrInvalidLimit},
		{name: "limit too large", params: Params{Limit: MaxLimit + 1}, wantErr: ErrInvalidLimit},
		{name: "negative offset", params: Params{Offset: -1}, wantErr: ErrInvalidOffset},
		{name: "negative page", params: Params{Page: -1}, wantErr: ErrInvalidPage},
		{name: "page size too large", params: Params{Page: 1, PageSize: MaxPageSize + 1}, wantErr: ErrInvalidPageSize},
		{name: "mixed modes", params: Params{Page: 1, PageSize: 5, Offset: 10}, wantErr: ErrMixedPaginationModes},
		{name: "page size without page", params: Params{PageSize: 5}, wantErr: ErrPageSizeWithoutPage},
		{name: "page without page size", params: Params{Page: 2}, wantErr: ErrInvalidPageSize},
		{name: "bad order", params: Params{SortField: "name", SortOrder: "up"}, wantErr: ErrInvalidSortOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestApply(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	tests := []struct {
		name   string
		params Params
		want   []int
	}{
		{name: "no window", params: Params{}, want: items},
		{name: "limit", params: Params{Limit: 3}, want: []int{1, 2, 3}},
		{name: "offset", params: Params{Offset: 5}, want: []int{6, 7}},
		{name: "offset and limit", params: Params{Offset: 2, Limit: 2}, want: []int{3, 4}},
		{name: "offset past end", params: Params{Offset: 10}, want: []int{}},
		{name: "second page", params: Params{Page: 2, PageSize: 3}, want: []int{4, 5, 6}},
		{name: "partial last page", params: Params{Page: 3, PageSize: 3}, want: []int{7}},
		{name: "page past end", params: Params{Page: 4, PageSize: 3}, want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Apply(tt.params, items))
		})
	}
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		in        string
		wantField string
		wantOrder string
		wantErr   error
	}{
		{in: "", wantField: "", wantOrder: SortOrderAsc},
		{in: "value", wantField: "value", wantOrder: SortOrderAsc},
		{in: "value:DESC", wantField: "value", wantOrder: SortOrderDesc},
		{in: " name : asc ", wantField: "name", wantOrder: SortOrderAsc},
		{in: "a:b:c", wantErr: ErrInvalidSortFormat},
		{in: ":desc", wantErr: ErrEmptySortField},
		{in: "value:sideways", wantErr: ErrInvalidSortOrder},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			field, order, err := ParseSort(tt.in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantField, field)
			assert.Equal(t, tt.wantOrder, order)
		})
	}
}

func TestNewMeta(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		total  int
		want   Meta
	}{
		{
			name:   "single page",
			params: Params{},
			total:  7,
			want:   Meta{CurrentPage: 1, PageSize: 7, TotalPages: 1, TotalItems: 7},
		},
		{
			name:   "middle page",
			params: Params{Page: 2, PageSize: 3},
			total:  7,
			want:   Meta{CurrentPage: 2, PageSize: 3, TotalPages: 3, TotalItems: 7, HasPrevious: true, HasNext: true},
		},
		{
			name:   "offset converted to page",
			params: Params{Offset: 6, Limit: 3},
			total:  7,
			want:   Meta{CurrentPage: 3, PageSize: 3, TotalPages: 3, TotalItems: 7, HasPrevious: true},
		},
		{
			name:   "empty",
			params: Params{},
			total:  0,
			want:   Meta{CurrentPage: 1, TotalPages: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewMeta(tt.params, tt.total))
		})
	}
}

func TestFactorSorter(t *testing.T) {
	factors := []emissions.EmissionFactor{
		{Name: "bus", Category: emissions.CategoryTransport, Value: 0.18, Unit: "mile"},
		{Name: "beef", Category: emissions.CategoryFood, Value: 60, Unit: "kg"},
		{Name: "train", Category: emissions.CategoryTransport, Value: 0.14, Unit: "mile"},
		{Name: "rice", Category: emissions.CategoryFood, Value: 4, Unit: "kg"},
	}
	names := func(fs []emissions.EmissionFactor) []string {
		out := make([]string, len(fs))
		for i, f := range fs {
			out[i] = f.Name
		}
		return out
	}
	s := NewFactorSorter()

	got, err := s.Sort(factors, FieldValue, SortOrderDesc)
	require.NoError(t, err)
	assert.Equal(t, []string{"beef", "rice", "bus", "train"}, names(got))
	assert.Equal(t, "bus", factors[0].Name, "input is not modified")

	got, err = s.Sort(factors, FieldCategory, SortOrderAsc)
	require.NoError(t, err)
	assert.Equal(t, []string{"beef", "rice", "bus", "train"}, names(got), "ties keep table order")

	got, err = s.Sort(factors, "", SortOrderAsc)
	require.NoError(t, err)
	assert.Equal(t, factors, got)

	_, err = s.Sort(factors, "source", SortOrderAsc)
	require.ErrorIs(t, err, ErrInvalidSortField)
	assert.Equal(t, []string{"category", "name", "unit", "value"}, s.GetValidFields())
}

func TestFactorSorter_Page(t *testing.T) {
	factors := emissions.Default().FactorsByCategory(emissions.CategoryTransport)
	s := NewFactorSorter()

	page, meta, err := s.Page(factors, Params{Page: 1, PageSize: 3, SortField: FieldValue, SortOrder: SortOrderDesc})
	require.NoError(t, err)
	require.Len(t, page, 3)
	assert.Equal(t, "truck_gasoline", page[0].Name)
	assert.GreaterOrEqual(t, page[0].Value, page[1].Value)
	assert.Equal(t, len(factors), meta.TotalItems)
	assert.True(t, meta.HasNext)

	_, _, err = s.Page(factors, Params{Limit: -1})
	require.ErrorIs(t, err, ErrInvalidLimit)
}
