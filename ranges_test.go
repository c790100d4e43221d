package gdprconsent

import "testing"

func TestTrueRangeRunDetection(t *testing.T) {
	cases := []struct {
		name     string
		ids      []int
		want     []rangeEntry
		wantBits int
	}{
		{
			name:     "empty",
			ids:      nil,
			want:     nil,
			wantBits: 13,
		},
		{
			name:     "single id",
			ids:      []int{5},
			want:     []rangeEntry{{kind: entrySingle, start: 5}},
			wantBits: 13 + 17,
		},
		{
			name:     "two consecutive become a span",
			ids:      []int{1, 2},
			want:     []rangeEntry{{kind: entrySpan, start: 1, end: 2}},
			wantBits: 13 + 33,
		},
		{
			name: "mixed singles and spans",
			ids:  []int{5, 10, 11, 12},
			want: []rangeEntry{
				{kind: entrySingle, start: 5},
				{kind: entrySpan, start: 10, end: 12},
			},
			wantBits: 13 + 17 + 33,
		},
		{
			name: "gap closes a run immediately",
			ids:  []int{1, 2, 4, 6, 7},
			want: []rangeEntry{
				{kind: entrySpan, start: 1, end: 2},
				{kind: entrySingle, start: 4},
				{kind: entrySpan, start: 6, end: 7},
			},
			wantBits: 13 + 33 + 17 + 33,
		},
		{
			name:     "run crossing the word boundary",
			ids:      []int{63, 64, 65, 66},
			want:     []rangeEntry{{kind: entrySpan, start: 63, end: 66}},
			wantBits: 13 + 33,
		},
		{
			name:     "final open run is flushed",
			ids:      []int{3, 100, 101},
			want:     []rangeEntry{{kind: entrySingle, start: 3}, {kind: entrySpan, start: 100, end: 101}},
			wantBits: 13 + 17 + 33,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			entries, gotBits := trueRange(NewBitSet(tc.ids...))
			assertEntries(t, entries, tc.want)
			if gotBits != tc.wantBits {
				t.Fatalf("bits: got %d want %d", gotBits, tc.wantBits)
			}
		})
	}
}

func TestFalseRangeCoversComplement(t *testing.T) {
	// consent for {2,4} over 1..5 withholds {1,3,5}
	entries, gotBits := falseRange(NewBitSet(2, 4), 5)
	assertEntries(t, entries, []rangeEntry{
		{kind: entrySingle, start: 1},
		{kind: entrySingle, start: 3},
		{kind: entrySingle, start: 5},
	})
	if want := 13 + 3*17; gotBits != want {
		t.Fatalf("bits: got %d want %d", gotBits, want)
	}
}

func TestFalseRangeFullConsentIsEmpty(t *testing.T) {
	entries, gotBits := falseRange(NewBitSet(1, 2, 3, 4), 4)
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
	if gotBits != 13 {
		t.Fatalf("bits: got %d want 13", gotBits)
	}
}

func assertEntries(t *testing.T, got, want []rangeEntry) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("entry count: got %d want %d (%+v)", len(got), len(want), got)
	}
	for i := range want {
		w := want[i]
		if w.kind == entrySingle {
			w.end = 0
		}
		g := got[i]
		if g.kind == entrySingle {
			g.end = 0
		}
		if g != w {
			t.Fatalf("entry %d: got %+v want %+v", i, got[i], want[i])
		}
	}
}
