package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkInvariantViolation BookmarkType = "invariant_violation"
	BookmarkWalkerStalled      BookmarkType = "walker_stalled"
	BookmarkDeepTree           BookmarkType = "deep_tree"
	BookmarkHalfExplored       BookmarkType = "half_explored"
	BookmarkFullyExplored      BookmarkType = "fully_explored"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int32        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in the maze run.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// One-shot milestones
	halfExplored  bool
	fullyExplored bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3 // minimum for rolling averages
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkViolation(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkWalkerStalled(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkDeepTree(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	bookmarks = append(bookmarks, bd.checkExplored(stats)...)

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) checkViolation(stats WindowStats) *Bookmark {
	if stats.Violations == 0 {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkInvariantViolation,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("%d tree invariant violations in window", stats.Violations),
	}
}

func (bd *BookmarkDetector) checkWalkerStalled(stats WindowStats) *Bookmark {
	// The root is boxed in by the exclusion policy most of the window
	if stats.SkippedWalks < 3 || stats.SkippedWalks <= stats.Relocations {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkWalkerStalled,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Root walk skipped %d of %d steps", stats.SkippedWalks, stats.SkippedWalks+stats.Relocations),
	}
}

func (bd *BookmarkDetector) checkDeepTree(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.TreeDepthMax
	}
	avg := float64(total) / float64(len(history))
	if avg == 0 {
		return nil
	}

	if float64(stats.TreeDepthMax) > avg*1.5 {
		return &Bookmark{
			Type:        BookmarkDeepTree,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Tree depth %d is %.1fx average (%.1f)", stats.TreeDepthMax, float64(stats.TreeDepthMax)/avg, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkExplored(stats WindowStats) []Bookmark {
	var out []Bookmark
	if !bd.halfExplored && stats.ExploredFraction >= 0.5 {
		bd.halfExplored = true
		out = append(out, Bookmark{
			Type:        BookmarkHalfExplored,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Half the maze explored after %.0fs", stats.SimTimeSec),
		})
	}
	if !bd.fullyExplored && stats.ExploredFraction >= 1 {
		bd.fullyExplored = true
		out = append(out, Bookmark{
			Type:        BookmarkFullyExplored,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Whole maze explored after %.0fs", stats.SimTimeSec),
		})
	}
	return out
}
