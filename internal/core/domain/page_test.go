package domain

import (
	"errors"
	"testing"
)

func TestNewPage(t *testing.T) {
	cases := []struct {
		page, limit int
		wantErr     bool
	}{
		{1, 10, false},
		{3, 5, false},
		{0, 10, true},
		{1, 0, true},
		{-2, 5, true},
	}
	for _, tc := range cases {
		_, err := NewPage(tc.page, tc.limit)
		if tc.wantErr && !errors.Is(err, ErrInvalidPagination) {
			t.Fatalf("page=%d limit=%d: expected ErrInvalidPagination, got %v", tc.page, tc.limit, err)
		}
		if !tc.wantErr && err != nil {
			t.Fatalf("page=%d limit=%d: unexpected error %v", tc.page, tc.limit, err)
		}
	}
}

func TestPage_SkipAndTotalPages(t *testing.T) {
	p := Page{Page: 3, Limit: 5}
	if p.Skip() != 10 {
		t.Fatalf("expected skip 10, got %d", p.Skip())
	}
	if got := p.TotalPages(12); got != 3 {
		t.Fatalf("expected 3 pages, got %d", got)
	}
	if got := p.TotalPages(0); got != 0 {
		t.Fatalf("expected 0 pages, got %d", got)
	}
}
