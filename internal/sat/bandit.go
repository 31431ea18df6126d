package sat

import "math"

// HeuristicKind selects which branching heuristic is currently driving
// decisions. Kept as a small enum rather than an interface switch, per the
// design note ("switch which is active behind a small enum").
type HeuristicKind uint8

const (
	HeuristicVSIDS HeuristicKind = iota
	HeuristicCHB
)

func (k HeuristicKind) String() string {
	if k == HeuristicCHB {
		return "chb"
	}
	return "vsids"
}

// bandit arbitrates between the two branching heuristics across restart
// epochs using UCB1. Grounded on kissat's internal.cc MAB bookkeeping
// (mab_heuristics, mab_select), reimplemented here since kissat's own MAB
// arm-selection source was not part of the retrieved excerpt.
type bandit struct {
	enabled bool
	pulls   [2]int64
	reward  [2]float64
	total   int64
	active  HeuristicKind
}

func newBandit(enabled bool, initial HeuristicKind) *bandit {
	return &bandit{enabled: enabled, active: initial}
}

// NextArm picks the heuristic for the upcoming epoch. Every arm is tried
// once before UCB1's confidence term kicks in.
func (b *bandit) NextArm() HeuristicKind {
	if !b.enabled {
		return b.active
	}
	for arm := 0; arm < 2; arm++ {
		if b.pulls[arm] == 0 {
			b.active = HeuristicKind(arm)
			return b.active
		}
	}
	best := HeuristicKind(0)
	bestScore := math.Inf(-1)
	for arm := 0; arm < 2; arm++ {
		mean := b.reward[arm] / float64(b.pulls[arm])
		bonus := math.Sqrt(2 * math.Log(float64(b.total)) / float64(b.pulls[arm]))
		score := mean + bonus
		if score > bestScore {
			bestScore = score
			best = HeuristicKind(arm)
		}
	}
	b.active = best
	return best
}

// Update records the reward observed for the arm that was active during the
// epoch just finished (higher is better; callers normalize productivity,
// e.g. conflicts resolved per restart, into [0, 1]).
func (b *bandit) Update(arm HeuristicKind, reward float64) {
	if !b.enabled {
		return
	}
	b.pulls[arm]++
	b.reward[arm] += reward
	b.total++
}
