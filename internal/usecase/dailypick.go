package usecase

import (
	"context"
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/jagjothbhullar/uncle-warren-says/internal/domain/models"
	xlogger "github.com/jagjothbhullar/uncle-warren-says/pkg/logger"
)

// Curated candidate pool for the stock of the day. Static configuration,
// ordered as published.
var dailyCandidates = []string{
	"AAPL", "BAC", "AXP", "KO", "MCO", "V", "MA", "JNJ", "PG", "BRK.B", "COST", "UNH",
}

const (
	dailyPickThreshold = 55
	dailyPickFallback  = "BRK.B"
)

// DailyPicker selects one stock of the day. The candidate order is a
// shuffle seeded from the calendar date, so every request on the same day
// walks the same sequence and lands on the same pick.
type DailyPicker struct {
	analyzer *Analyzer
	now      func() time.Time
	log      *xlogger.Logger
}

func NewDailyPicker(analyzer *Analyzer, log *xlogger.Logger) *DailyPicker {
	return &DailyPicker{analyzer: analyzer, now: time.Now, log: log.With("dailypick")}
}

// Pick walks the day's shuffled candidates until one scores at or above
// the threshold. When none qualifies, the fixed fallback is returned
// unconditionally.
func (p *DailyPicker) Pick(ctx context.Context) (*models.AnalysisResult, error) {
	day := p.now().Format("2006-01-02")
	candidates := shuffledForDay(day)

	for _, ticker := range candidates {
		res, err := p.analyzer.AnalyzeTicker(ctx, ticker, true)
		if err != nil {
			p.log.Warn("candidate analysis failed", xlogger.String("ticker", ticker), xlogger.Error(err))
			continue
		}
		if res.Score >= dailyPickThreshold {
			p.log.Info("daily pick selected",
				xlogger.String("date", day),
				xlogger.String("ticker", ticker),
				xlogger.Int("score", res.Score))
			return res, nil
		}
	}

	p.log.Info("no candidate met the threshold, using fallback",
		xlogger.String("date", day),
		xlogger.String("ticker", dailyPickFallback))
	return p.analyzer.AnalyzeTicker(ctx, dailyPickFallback, true)
}

// shuffledForDay returns the candidate list shuffled with a seed derived
// from the ISO date string.
func shuffledForDay(day string) []string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(day))

	out := make([]string, len(dailyCandidates))
	copy(out, dailyCandidates)

	r := rand.New(rand.NewSource(int64(h.Sum64())))
	r.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
