package edl

// Well-known event types. The set is open: unlisted types flow through the
// pipeline with zero ranking priority.
const (
	TypeGoal        = "goal"
	TypeGoalLike    = "goal_like"
	TypeBigSave     = "big_save"
	TypeSave        = "save"
	TypeChance      = "chance"
	TypeCard        = "card"
	TypeFoul        = "foul"
	TypeCelebration = "celebration"
	TypeHighlight   = "highlight"
)

// Status markers tracked as reference timestamps during guided load.
const (
	StatusHalfTime = "HT"
	StatusFullTime = "FT"
)

// Signal tags that adjust goal padding.
const (
	SignalBuildUp     = "build_up"
	SignalAttack      = "attack"
	SignalCelebration = "celebration"
)

// Source identifies where an event came from. It is fixed at construction;
// conflict resolution swaps whole events, never rewrites a source.
type Source string

const (
	SourceGuided Source = "guided"
	SourceAuto   Source = "auto"
)

// Score is a running match score attached to an event.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// Event is the EDL's working unit, guided or auto-detected.
type Event struct {
	Type   string
	AbsTS  float64
	Half   int
	Clock  string
	Team   string
	Player string
	Assist string
	Score  *Score
	Notes  string
	Status string
	// Confidence is 1.0 for guided events unless the record says otherwise.
	Confidence float64
	Signals    []string
	Source     Source

	// resolved reports whether AbsTS holds a usable timestamp. Events loaded
	// with only half+clock stay unresolved until SetKickoffTime.
	resolved bool

	// Computed by the padding, flag, and duration steps.
	PrePadding    float64
	PostPadding   float64
	ZoomEnabled   bool
	ReplayEnabled bool
}

// Resolved reports whether the event has a usable absolute timestamp.
func (e *Event) Resolved() bool { return e.resolved }

// Duration is the clip length implied by the computed paddings.
func (e *Event) Duration() float64 { return e.PrePadding + e.PostPadding }

// HasSignal reports whether the event carries the named signal tag.
func (e *Event) HasSignal(name string) bool {
	for _, s := range e.Signals {
		if s == name {
			return true
		}
	}
	return false
}

// priorityScores orders event types by importance for budget ranking.
var priorityScores = map[string]int{
	TypeGoal:        10,
	TypeGoalLike:    9,
	TypeBigSave:     8,
	TypeSave:        7,
	TypeChance:      6,
	TypeCard:        5,
	TypeFoul:        4,
	TypeCelebration: 3,
}

// PriorityScore returns the ranking weight for an event type; unlisted types
// score zero.
func PriorityScore(eventType string) int {
	return priorityScores[eventType]
}

// relatedTypeSets lists the groups of event types that describe the same kind
// of real-world moment. Note the groups overlap (goal_like sits in two), so
// relatedness is a pairwise property, not a partition.
var relatedTypeSets = [][]string{
	{TypeGoal, TypeGoalLike},
	{TypeBigSave, TypeSave},
	{TypeChance, TypeGoalLike},
	{TypeFoul, TypeCard},
}

// relatedPairs is the flattened pair lookup built once from relatedTypeSets.
var relatedPairs = func() map[[2]string]struct{} {
	pairs := make(map[[2]string]struct{})
	for _, set := range relatedTypeSets {
		for i := 0; i < len(set); i++ {
			for j := i + 1; j < len(set); j++ {
				pairs[orderedPair(set[i], set[j])] = struct{}{}
			}
		}
	}
	return pairs
}()

func orderedPair(a, b string) [2]string {
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}

// RelatedTypes reports whether two event types describe the same kind of
// moment for deduplication purposes. A type is always related to itself.
func RelatedTypes(a, b string) bool {
	if a == b {
		return true
	}
	_, ok := relatedPairs[orderedPair(a, b)]
	return ok
}
