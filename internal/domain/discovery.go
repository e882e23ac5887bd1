package domain

import (
	"bytes"
	"sort"

	"github.com/google/uuid"
)

// ScoredCandidate pairs a discovery candidate with its similarity score.
type ScoredCandidate struct {
	User  *User
	Score float64
}

// JaccardScore computes |a ∩ b| / |a ∪ b| over two tag lists. An empty
// union scores zero.
func JaccardScore(a, b []string) float64 {
	setA := make(map[string]struct{}, len(a))
	for _, t := range a {
		setA[t] = struct{}{}
	}
	union := make(map[string]struct{}, len(a)+len(b))
	for t := range setA {
		union[t] = struct{}{}
	}
	overlap := 0
	seen := make(map[string]struct{}, len(b))
	for _, t := range b {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		union[t] = struct{}{}
		if _, ok := setA[t]; ok {
			overlap++
		}
	}
	if len(union) == 0 {
		return 0
	}
	return float64(overlap) / float64(len(union))
}

// RankCandidates orders candidates by tech-stack similarity to self,
// descending, with ascending id as tie-break so the order is
// deterministic. Candidates in the excluded set are skipped. The result
// is computed fresh on every call; there is no hidden state.
func RankCandidates(self *User, candidates []*User, excluded map[uuid.UUID]struct{}) []ScoredCandidate {
	scored := make([]ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c.ID == self.ID {
			continue
		}
		if _, skip := excluded[c.ID]; skip {
			continue
		}
		scored = append(scored, ScoredCandidate{
			User:  c,
			Score: JaccardScore(self.TechStack, c.TechStack),
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return bytes.Compare(scored[i].User.ID[:], scored[j].User.ID[:]) < 0
	})

	return scored
}
