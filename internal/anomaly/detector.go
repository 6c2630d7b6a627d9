package anomaly

import (
	"math/rand"
	"sort"
	"time"

	"github.com/datavista/datavista-cli/internal/insights"
)

// Defaults mirror a contamination of 5% with a fixed seed of 42.
const (
	DefaultContamination = 0.05
	DefaultSeed          = 42
	DefaultTrees         = 100
	DefaultSampleSize    = 256

	// minDays is the smallest series worth fitting; below it the detector
	// degrades gracefully and flags nothing.
	minDays = 3
)

// Options configures the detector. The seed is explicit so results are
// reproducible without ambient state.
type Options struct {
	Contamination float64
	Seed          int64
	Trees         int
	SampleSize    int
}

// DefaultOptions returns the tuning used by the dashboard.
func DefaultOptions() Options {
	return Options{
		Contamination: DefaultContamination,
		Seed:          DefaultSeed,
		Trees:         DefaultTrees,
		SampleSize:    DefaultSampleSize,
	}
}

// Point is one day of the revenue series with its outlier decision.
type Point struct {
	Date      time.Time
	Revenue   float64
	IsAnomaly bool
}

// Detect reduces the joined records to one revenue total per distinct order
// date, fits an isolation forest over the totals, and flags the
// floor(days*contamination) highest-scoring days. Output ascends by date.
// Fewer than three distinct days returns the series unflagged.
func Detect(joined []insights.JoinedRecord, opt Options) []Point {
	if opt.Contamination <= 0 {
		opt.Contamination = DefaultContamination
	}
	if opt.Trees <= 0 {
		opt.Trees = DefaultTrees
	}
	if opt.SampleSize <= 0 {
		opt.SampleSize = DefaultSampleSize
	}

	daily := map[time.Time]float64{}
	for _, j := range joined {
		day := time.Date(j.OrderDate.Year(), j.OrderDate.Month(), j.OrderDate.Day(), 0, 0, 0, 0, time.UTC)
		daily[day] += j.Revenue
	}
	points := make([]Point, 0, len(daily))
	for d, r := range daily {
		points = append(points, Point{Date: d, Revenue: r})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })

	n := len(points)
	k := int(float64(n) * opt.Contamination)
	if n < minDays || k == 0 {
		return points
	}

	rng := rand.New(rand.NewSource(opt.Seed))
	vals := make([]float64, n)
	for i, p := range points {
		vals[i] = p.Revenue
	}
	f := fitForest(rng, vals, opt.Trees, opt.SampleSize)

	type scored struct {
		idx   int
		score float64
	}
	scores := make([]scored, n)
	for i, p := range points {
		scores[i] = scored{idx: i, score: f.score(p.Revenue)}
	}
	// Highest scores first; ties resolve to the earlier date.
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].score == scores[j].score {
			return scores[i].idx < scores[j].idx
		}
		return scores[i].score > scores[j].score
	})
	for _, s := range scores[:k] {
		points[s.idx].IsAnomaly = true
	}
	return points
}
