package telemetry

import "testing"

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_Violation(t *testing.T) {
	bd := NewBookmarkDetector(10)

	if got := bd.Check(WindowStats{WindowEndTick: 600}); hasBookmark(got, BookmarkInvariantViolation) {
		t.Error("unexpected violation bookmark on a clean window")
	}
	if got := bd.Check(WindowStats{WindowEndTick: 1200, Violations: 2}); !hasBookmark(got, BookmarkInvariantViolation) {
		t.Error("expected invariant_violation bookmark")
	}
}

func TestBookmarkDetector_WalkerStalled(t *testing.T) {
	tests := []struct {
		name        string
		relocations int
		skipped     int
		want        bool
	}{
		{"healthy walk", 90, 10, false},
		{"few skips", 0, 2, false},
		{"mostly skipped", 20, 80, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bd := NewBookmarkDetector(10)
			got := bd.Check(WindowStats{Relocations: tc.relocations, SkippedWalks: tc.skipped})
			if hasBookmark(got, BookmarkWalkerStalled) != tc.want {
				t.Errorf("walker_stalled = %v, want %v", !tc.want, tc.want)
			}
		})
	}
}

func TestBookmarkDetector_DeepTree(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: int32(i * 600), TreeDepthMax: 20})
	}
	if got := bd.Check(WindowStats{WindowEndTick: 3000, TreeDepthMax: 22}); hasBookmark(got, BookmarkDeepTree) {
		t.Error("unexpected deep_tree bookmark for a small increase")
	}
	if got := bd.Check(WindowStats{WindowEndTick: 3600, TreeDepthMax: 60}); !hasBookmark(got, BookmarkDeepTree) {
		t.Error("expected deep_tree bookmark")
	}
}

func TestBookmarkDetector_ExploredOnce(t *testing.T) {
	bd := NewBookmarkDetector(10)

	got := bd.Check(WindowStats{ExploredFraction: 0.6})
	if !hasBookmark(got, BookmarkHalfExplored) {
		t.Fatal("expected half_explored bookmark")
	}
	got = bd.Check(WindowStats{ExploredFraction: 0.7})
	if hasBookmark(got, BookmarkHalfExplored) {
		t.Error("half_explored fired twice")
	}
	got = bd.Check(WindowStats{ExploredFraction: 1})
	if !hasBookmark(got, BookmarkFullyExplored) {
		t.Error("expected fully_explored bookmark")
	}
}
