package fusion

import (
	"log/slog"
	"math"
	"sort"

	"sideline/internal/config"
	"sideline/internal/logging"
)

// Signal records one candidate's contribution to a fused event, with the
// weight its kind carried at fusion time.
type Signal struct {
	Kind      string    `json:"kind"`
	Candidate Candidate `json:"candidate"`
	Weight    float64   `json:"weight"`
}

// Event is a time-bucketed aggregate of candidates from possibly multiple
// signal kinds.
type Event struct {
	// Timestamp is the mean of the bucket's distinct contributing timestamps.
	Timestamp float64 `json:"timestamp"`
	Bucket    int     `json:"bucket"`
	// Score is RawScore divided by the number of contributing signals.
	Score      float64  `json:"score"`
	RawScore   float64  `json:"raw_score"`
	NumSignals int      `json:"num_signals"`
	Types      []string `json:"types"`
	Signals    []Signal `json:"signals"`
	// Rank is assigned by Rank, 1-based; zero until then.
	Rank int `json:"rank,omitempty"`
}

// Engine fuses heterogeneous detection streams using a per-kind weight table.
type Engine struct {
	weights       map[string]float64
	bucketSize    float64
	minConfidence float64
	logger        *slog.Logger
}

// NewEngine builds an engine from detection config. A nil logger is replaced
// with a no-op one.
func NewEngine(cfg config.Detection, logger *slog.Logger) *Engine {
	weights := make(map[string]float64, len(cfg.Weights))
	for kind, weight := range cfg.Weights {
		weights[kind] = weight
	}
	bucketSize := cfg.BucketSize
	if bucketSize <= 0 {
		bucketSize = 1.0
	}
	return &Engine{
		weights:       weights,
		bucketSize:    bucketSize,
		minConfidence: cfg.MinConfidence,
		logger:        logging.NewComponentLogger(logger, "fusion"),
	}
}

func (e *Engine) weightFor(kind string) float64 {
	if weight, ok := e.weights[kind]; ok {
		return weight
	}
	return defaultKindWeight
}

type bucket struct {
	signals    []Signal
	timestamps map[float64]struct{}
	types      map[string]struct{}
	score      float64
}

// Fuse combines the per-kind candidate streams into one fused event per
// non-empty time bucket, dropping events below the minimum confidence. A
// missing or empty kind contributes nothing. The result is sorted by bucket
// index and independent of the signals map's iteration order.
func (e *Engine) Fuse(signals map[string][]Candidate) []Event {
	kinds := make([]string, 0, len(signals))
	for kind := range signals {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	buckets := make(map[int]*bucket)
	for _, kind := range kinds {
		candidates := signals[kind]
		if len(candidates) == 0 {
			continue
		}
		weight := e.weightFor(kind)
		e.logger.Debug("bucketing detections",
			logging.String(logging.FieldSignal, kind),
			logging.Int("count", len(candidates)),
			logging.Float64("weight", weight),
		)
		for _, candidate := range candidates {
			idx := int(math.Floor(candidate.Timestamp / e.bucketSize))
			b := buckets[idx]
			if b == nil {
				b = &bucket{
					timestamps: make(map[float64]struct{}),
					types:      make(map[string]struct{}),
				}
				buckets[idx] = b
			}
			b.signals = append(b.signals, Signal{Kind: kind, Candidate: candidate, Weight: weight})
			b.timestamps[candidate.Timestamp] = struct{}{}
			tag := candidate.Tag
			if tag == "" {
				tag = kind
			}
			b.types[tag] = struct{}{}
			b.score += weight * normalizedConfidence(kind, candidate)
		}
	}

	indexes := make([]int, 0, len(buckets))
	for idx := range buckets {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	events := make([]Event, 0, len(indexes))
	for _, idx := range indexes {
		b := buckets[idx]
		event := Event{
			Timestamp:  meanOfKeys(b.timestamps),
			Bucket:     idx,
			Score:      b.score / float64(len(b.signals)),
			RawScore:   b.score,
			NumSignals: len(b.signals),
			Types:      sortedKeys(b.types),
			Signals:    b.signals,
		}
		if event.Score < e.minConfidence {
			continue
		}
		events = append(events, event)
	}

	e.logger.Debug("fused signals",
		logging.Int("buckets", len(buckets)),
		logging.Int("events", len(events)),
		logging.Float64("min_confidence", e.minConfidence),
	)
	return events
}

// Rank sorts events by score descending and assigns 1-based ranks. A positive
// topK truncates after sorting; anything else keeps all events. Ties break on
// earlier timestamp.
func (e *Engine) Rank(events []Event, topK int) []Event {
	ranked := make([]Event, len(events))
	copy(ranked, events)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Timestamp < ranked[j].Timestamp
	})
	if topK > 0 && topK < len(ranked) {
		ranked = ranked[:topK]
	}
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

func meanOfKeys(values map[float64]struct{}) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
