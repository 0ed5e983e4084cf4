package lifecycle

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Sort keys accepted by RankApplicants.
const (
	SortByScore      = "matchingScore"
	SortByExperience = "experienceYears"
)

// Sort orders accepted by RankApplicants.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// ApplicantRow is one entry in the admin's ranked applicant view.
type ApplicantRow struct {
	ApplicationID   uint      `json:"application_id"`
	CandidateID     uuid.UUID `json:"candidate_id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Specialization  string    `json:"specialization"`
	ExperienceYears int       `json:"experience_years"`
	MatchingScore   int       `json:"matching_score"`
	Status          string    `json:"status"`
	AppliedAt       time.Time `json:"applied_at"`
}

// RankOptions control filtering and ordering of the applicant view.
type RankOptions struct {
	// Search is matched case-insensitively against candidate name and email.
	Search string
	// SortBy is SortByScore or SortByExperience; anything else falls back to score.
	SortBy string
	// Order is OrderAsc or OrderDesc; anything else falls back to descending.
	Order string
}

// RankApplicants filters and sorts the rows without mutating the input.
// Ties are always broken by candidate id ascending so repeated calls over the
// same data produce the identical ordering.
func RankApplicants(rows []ApplicantRow, opts RankOptions) []ApplicantRow {
	out := make([]ApplicantRow, 0, len(rows))

	needle := strings.ToLower(strings.TrimSpace(opts.Search))
	for _, r := range rows {
		if needle != "" &&
			!strings.Contains(strings.ToLower(r.Name), needle) &&
			!strings.Contains(strings.ToLower(r.Email), needle) {
			continue
		}
		out = append(out, r)
	}

	ascending := opts.Order == OrderAsc

	key := func(r ApplicantRow) int {
		if opts.SortBy == SortByExperience {
			return r.ExperienceYears
		}
		return r.MatchingScore
	}

	sort.Slice(out, func(i, j int) bool {
		ki, kj := key(out[i]), key(out[j])
		if ki != kj {
			if ascending {
				return ki < kj
			}
			return ki > kj
		}
		return out[i].CandidateID.String() < out[j].CandidateID.String()
	})

	return out
}
