package matching

import "github.com/InsanelyAvner/fp-nurse-app-sub000/internal/model"

// CandidateProjection is the minimal, PII-free view of a nurse handed to the
// scoring oracle. Address, date of birth and contact details never enter a prompt.
type CandidateProjection struct {
	Specialization  string   `json:"specialization"`
	YearsExperience int      `json:"years_experience"`
	Skills          []string `json:"skills"`
	Certifications  []string `json:"certifications"`
	PreferredShifts []string `json:"preferred_shifts"`
	PriorFacilities []string `json:"prior_facilities"`
}

// JobRequirements is the job-side input to the scoring oracle.
type JobRequirements struct {
	Title          string   `json:"title"`
	Facility       string   `json:"facility"`
	Department     string   `json:"department"`
	ShiftType      string   `json:"shift_type"`
	PayRate        string   `json:"pay_rate"`
	RequiredSkills []string `json:"required_skills"`
}

// ProjectCandidate filters a user record down to the attributes the oracle may see.
func ProjectCandidate(user model.User) CandidateProjection {
	p := CandidateProjection{
		Skills:          []string{},
		Certifications:  []string{},
		PreferredShifts: []string{},
		PriorFacilities: []string{},
	}

	if user.Profile == nil {
		return p
	}

	p.Specialization = user.Profile.Specialization
	p.YearsExperience = user.Profile.YearsExperience
	p.Certifications = append(p.Certifications, user.Profile.Certifications...)
	p.PreferredShifts = append(p.PreferredShifts, user.Profile.PreferredShifts...)
	p.PriorFacilities = append(p.PriorFacilities, user.Profile.PriorFacilities...)
	for _, s := range user.Profile.Skills {
		p.Skills = append(p.Skills, s.Name)
	}

	return p
}

// ProjectJob extracts the requirements side of the pair.
func ProjectJob(job model.Job) JobRequirements {
	r := JobRequirements{
		Title:          job.Title,
		Facility:       job.Facility,
		Department:     job.Department,
		ShiftType:      job.ShiftType,
		PayRate:        job.PayRate,
		RequiredSkills: []string{},
	}
	for _, s := range job.RequiredSkills {
		r.RequiredSkills = append(r.RequiredSkills, s.Name)
	}
	return r
}
