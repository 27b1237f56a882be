package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkAgentCrash       BookmarkType = "agent_crash"
	BookmarkPredatorRecovery BookmarkType = "predator_recovery"
	BookmarkPredatorExtinct  BookmarkType = "predator_extinct"
	BookmarkStormOnset       BookmarkType = "storm_onset"
	BookmarkStableEcosystem  BookmarkType = "stable_ecosystem"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int64        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark.
func (b Bookmark) LogBookmark(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in the simulation.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	recentPredMin      int  // minimum predator count since the last recovery
	seenPredMin        bool // recentPredMin has been set
	recentAgentPeak    int  // peak agent count since the last crash
	stableWindowsCount int  // consecutive windows with stable populations
	predatorsAlive     bool // predators were present in the previous window
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5 // minimum for stable ecosystem detection
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if bd.historyFull || bd.historyIdx > 0 {
		if b := bd.checkPredatorRecovery(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkAgentCrash(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkPredatorExtinct(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkStableEcosystem(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	// Storms need no history
	if b := bd.checkStormOnset(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)

	if !bd.seenPredMin || stats.Predators < bd.recentPredMin {
		bd.recentPredMin = stats.Predators
		bd.seenPredMin = true
	}
	if stats.Agents > bd.recentAgentPeak {
		bd.recentAgentPeak = stats.Agents
	}
	bd.predatorsAlive = stats.Predators > 0

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// recent returns up to n history entries, oldest first.
func (bd *BookmarkDetector) recent(n int) []WindowStats {
	var ordered []WindowStats
	if bd.historyFull {
		ordered = append(ordered, bd.history[bd.historyIdx:]...)
		ordered = append(ordered, bd.history[:bd.historyIdx]...)
	} else {
		ordered = bd.history[:bd.historyIdx]
	}
	if len(ordered) > n {
		ordered = ordered[len(ordered)-n:]
	}
	return ordered
}

func (bd *BookmarkDetector) checkPredatorRecovery(stats WindowStats) *Bookmark {
	if !bd.seenPredMin || bd.recentPredMin == 0 || bd.recentPredMin > 2 {
		return nil
	}

	threshold := bd.recentPredMin * 3
	if stats.Predators >= threshold && stats.Predators >= 6 {
		// Reset the minimum after triggering
		oldMin := bd.recentPredMin
		bd.recentPredMin = stats.Predators

		return &Bookmark{
			Type:        BookmarkPredatorRecovery,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Predator population recovered from %d to %d", oldMin, stats.Predators),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkAgentCrash(stats WindowStats) *Bookmark {
	if bd.recentAgentPeak == 0 {
		return nil
	}

	dropPercent := 1.0 - float64(stats.Agents)/float64(bd.recentAgentPeak)
	if dropPercent > 0.30 && stats.Agents < bd.recentAgentPeak-10 {
		// Reset peak after crash
		oldPeak := bd.recentAgentPeak
		bd.recentAgentPeak = stats.Agents

		return &Bookmark{
			Type:        BookmarkAgentCrash,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Agents crashed %.0f%% from peak %d to %d", dropPercent*100, oldPeak, stats.Agents),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkPredatorExtinct(stats WindowStats) *Bookmark {
	if !bd.predatorsAlive || stats.Predators > 0 {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkPredatorExtinct,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Last predator died (%d deaths this window)", stats.PredatorDeaths),
	}
}

func (bd *BookmarkDetector) checkStormOnset(stats WindowStats) *Bookmark {
	if stats.RegimeChanges == 0 || stats.Regime != "storm" {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkStormOnset,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Storm regime began (storminess %.2f)", stats.Storminess),
	}
}

func (bd *BookmarkDetector) checkStableEcosystem(stats WindowStats) *Bookmark {
	// Need both trophic levels present
	if stats.Agents < 10 || stats.Predators < 2 {
		bd.stableWindowsCount = 0
		return nil
	}

	window := bd.recent(4)
	if len(window) < 4 {
		return nil
	}

	var agentSum, predSum float64
	for _, h := range window {
		agentSum += float64(h.Agents)
		predSum += float64(h.Predators)
	}
	agentMean := agentSum / 4
	predMean := predSum / 4

	var agentVar, predVar float64
	for _, h := range window {
		ad := float64(h.Agents) - agentMean
		pd := float64(h.Predators) - predMean
		agentVar += ad * ad
		predVar += pd * pd
	}
	agentVar /= 4
	predVar /= 4

	// Coefficient of variation below 15% on both populations
	stable := agentMean > 0 && predMean > 0 &&
		agentVar < (0.15*agentMean)*(0.15*agentMean) &&
		predVar < (0.15*predMean)*(0.15*predMean)
	if !stable {
		bd.stableWindowsCount = 0
		return nil
	}

	bd.stableWindowsCount++
	// Fire once per stable stretch
	if bd.stableWindowsCount != 1 {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkStableEcosystem,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Stable ecosystem: agents ~%.0f, predators ~%.0f", agentMean, predMean),
	}
}
