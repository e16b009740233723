package pagination

import "testing"

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestPaginate_TwelveItems(t *testing.T) {
	items := seq(12)

	cases := []struct {
		page     int
		wantNum  int
		wantLen  int
		wantHead int
	}{
		{page: 1, wantNum: 1, wantLen: 5, wantHead: 1},
		{page: 2, wantNum: 2, wantLen: 5, wantHead: 6},
		{page: 3, wantNum: 3, wantLen: 2, wantHead: 11},
		{page: 99, wantNum: 3, wantLen: 2, wantHead: 11},
		{page: 0, wantNum: 1, wantLen: 5, wantHead: 1},
		{page: -4, wantNum: 1, wantLen: 5, wantHead: 1},
	}

	for _, tc := range cases {
		p := Paginate(items, tc.page, PageSize)
		if p.Number != tc.wantNum || len(p.Items) != tc.wantLen || p.Items[0] != tc.wantHead {
			t.Fatalf("page %d: got number=%d len=%d head=%v", tc.page, p.Number, len(p.Items), p.Items)
		}
		if p.TotalPages != 3 || p.TotalItems != 12 {
			t.Fatalf("page %d: expected 3 pages / 12 items, got %d / %d", tc.page, p.TotalPages, p.TotalItems)
		}
	}
}

func TestPaginate_Empty(t *testing.T) {
	p := Paginate([]string{}, 7, PageSize)
	if p.Number != 1 || p.TotalPages != 1 || len(p.Items) != 0 {
		t.Fatalf("unexpected empty page: %#v", p)
	}
	if p.HasNext() || p.HasPrevious() {
		t.Fatalf("empty page should not have neighbours")
	}
}

func TestParseNumber(t *testing.T) {
	if ParseNumber("") != 1 || ParseNumber("abc") != 1 || ParseNumber(" 3 ") != 3 {
		t.Fatalf("unexpected ParseNumber results")
	}
}
