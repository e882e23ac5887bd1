package domain_test

import (
	"bytes"
	"testing"

	"github.com/devmatch/backend/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJaccardScore(t *testing.T) {
	tests := []struct {
		name string
		a    []string
		b    []string
		want float64
	}{
		{
			name: "one shared of three total",
			a:    []string{"typescript", "react"},
			b:    []string{"typescript", "go"},
			want: 1.0 / 3.0,
		},
		{
			name: "identical stacks",
			a:    []string{"go", "postgres"},
			b:    []string{"go", "postgres"},
			want: 1.0,
		},
		{
			name: "disjoint stacks",
			a:    []string{"rust"},
			b:    []string{"go"},
			want: 0,
		},
		{
			name: "one side empty",
			a:    []string{},
			b:    []string{"go"},
			want: 0,
		},
		{
			name: "both empty",
			a:    nil,
			b:    nil,
			want: 0,
		},
		{
			name: "duplicate tags count once",
			a:    []string{"go", "go", "react"},
			b:    []string{"go", "react", "react"},
			want: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, domain.JaccardScore(tt.a, tt.b), 1e-9)
		})
	}
}

func TestJaccardScore_Symmetry(t *testing.T) {
	pairs := [][2][]string{
		{{"typescript", "react"}, {"typescript", "go"}},
		{{}, {"go"}},
		{{"go", "docker", "postgres"}, {"docker"}},
		{nil, nil},
	}

	for _, p := range pairs {
		assert.Equal(t, domain.JaccardScore(p[0], p[1]), domain.JaccardScore(p[1], p[0]))
	}
}

func TestRankCandidates_Ordering(t *testing.T) {
	self := &domain.User{ID: uuid.New(), TechStack: []string{"go", "postgres", "docker"}}

	best := &domain.User{ID: uuid.New(), TechStack: []string{"go", "postgres", "docker"}}
	mid := &domain.User{ID: uuid.New(), TechStack: []string{"go", "rust"}}
	worst := &domain.User{ID: uuid.New(), TechStack: []string{"cobol"}}

	ranked := domain.RankCandidates(self, []*domain.User{worst, mid, best}, nil)

	require.Len(t, ranked, 3)
	assert.Equal(t, best.ID, ranked[0].User.ID)
	assert.Equal(t, mid.ID, ranked[1].User.ID)
	assert.Equal(t, worst.ID, ranked[2].User.ID)
	assert.Equal(t, 1.0, ranked[0].Score)
	assert.Equal(t, 0.0, ranked[2].Score)
}

func TestRankCandidates_TieBreakByID(t *testing.T) {
	self := &domain.User{ID: uuid.New(), TechStack: []string{"go"}}

	// Same score, order must be ascending by id bytes.
	c1 := &domain.User{ID: uuid.New(), TechStack: []string{"go"}}
	c2 := &domain.User{ID: uuid.New(), TechStack: []string{"go"}}

	ranked := domain.RankCandidates(self, []*domain.User{c1, c2}, nil)
	require.Len(t, ranked, 2)
	assert.True(t, bytes.Compare(ranked[0].User.ID[:], ranked[1].User.ID[:]) < 0)

	// Input order must not matter.
	again := domain.RankCandidates(self, []*domain.User{c2, c1}, nil)
	assert.Equal(t, ranked[0].User.ID, again[0].User.ID)
	assert.Equal(t, ranked[1].User.ID, again[1].User.ID)
}

func TestRankCandidates_Exclusion(t *testing.T) {
	self := &domain.User{ID: uuid.New(), TechStack: []string{"go"}}
	liked := &domain.User{ID: uuid.New(), TechStack: []string{"go"}}
	fresh := &domain.User{ID: uuid.New(), TechStack: []string{"go"}}

	excluded := map[uuid.UUID]struct{}{liked.ID: {}}

	ranked := domain.RankCandidates(self, []*domain.User{self, liked, fresh}, excluded)
	require.Len(t, ranked, 1)
	assert.Equal(t, fresh.ID, ranked[0].User.ID)
}
