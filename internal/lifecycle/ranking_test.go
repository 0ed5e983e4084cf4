package lifecycle

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func sampleRows() []ApplicantRow {
	// Fixed ids so tie-break ordering is predictable.
	idA := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	idB := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	idC := uuid.MustParse("33333333-3333-3333-3333-333333333333")
	idD := uuid.MustParse("44444444-4444-4444-4444-444444444444")

	return []ApplicantRow{
		{CandidateID: idA, Name: "Alice Tan", Email: "alice@example.com", ExperienceYears: 5, MatchingScore: 80},
		{CandidateID: idB, Name: "Ben Ong", Email: "ben@example.com", ExperienceYears: 2, MatchingScore: 95},
		{CandidateID: idC, Name: "Carol Lim", Email: "carol@example.com", ExperienceYears: 8, MatchingScore: 80},
		{CandidateID: idD, Name: "Dan Lee", Email: "dan@example.com", ExperienceYears: 1, MatchingScore: 40},
	}
}

func scores(rows []ApplicantRow) []int {
	out := make([]int, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.MatchingScore)
	}
	return out
}

func TestRankApplicants_DefaultScoreDescending(t *testing.T) {
	ranked := RankApplicants(sampleRows(), RankOptions{})
	assert.Equal(t, []int{95, 80, 80, 40}, scores(ranked))
}

func TestRankApplicants_TieBrokenByCandidateIDAscending(t *testing.T) {
	ranked := RankApplicants(sampleRows(), RankOptions{SortBy: SortByScore, Order: OrderDesc})
	// Alice and Carol both score 80; Alice's id sorts first.
	assert.Equal(t, "Alice Tan", ranked[1].Name)
	assert.Equal(t, "Carol Lim", ranked[2].Name)

	// Same tie-break applies with ascending order.
	ranked = RankApplicants(sampleRows(), RankOptions{SortBy: SortByScore, Order: OrderAsc})
	assert.Equal(t, "Alice Tan", ranked[1].Name)
	assert.Equal(t, "Carol Lim", ranked[2].Name)
}

func TestRankApplicants_Deterministic(t *testing.T) {
	first := RankApplicants(sampleRows(), RankOptions{})
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, RankApplicants(sampleRows(), RankOptions{}))
	}
}

func TestRankApplicants_SortByExperience(t *testing.T) {
	ranked := RankApplicants(sampleRows(), RankOptions{SortBy: SortByExperience, Order: OrderAsc})
	years := make([]int, 0, len(ranked))
	for _, r := range ranked {
		years = append(years, r.ExperienceYears)
	}
	assert.Equal(t, []int{1, 2, 5, 8}, years)
}

func TestRankApplicants_SearchFiltersNameAndEmail(t *testing.T) {
	byName := RankApplicants(sampleRows(), RankOptions{Search: "aLiCe"})
	assert.Len(t, byName, 1)
	assert.Equal(t, "Alice Tan", byName[0].Name)

	byEmail := RankApplicants(sampleRows(), RankOptions{Search: "ben@"})
	assert.Len(t, byEmail, 1)
	assert.Equal(t, "Ben Ong", byEmail[0].Name)

	none := RankApplicants(sampleRows(), RankOptions{Search: "zzz"})
	assert.Empty(t, none)
}

func TestRankApplicants_UnknownSortFallsBackToScore(t *testing.T) {
	ranked := RankApplicants(sampleRows(), RankOptions{SortBy: "bogus", Order: "sideways"})
	assert.Equal(t, []int{95, 80, 80, 40}, scores(ranked))
}

func TestRankApplicants_DoesNotMutateInput(t *testing.T) {
	rows := sampleRows()
	_ = RankApplicants(rows, RankOptions{SortBy: SortByExperience})
	assert.Equal(t, sampleRows(), rows)
}

func TestRankApplicants_EmptyInput(t *testing.T) {
	assert.Empty(t, RankApplicants(nil, RankOptions{}))
}
