// Package lifecycle owns creation, uniqueness enforcement and status
// transitions for job applications.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/InsanelyAvner/fp-nurse-app-sub000/internal/database"
	"github.com/InsanelyAvner/fp-nurse-app-sub000/internal/matching"
	"github.com/InsanelyAvner/fp-nurse-app-sub000/internal/model"
	"github.com/InsanelyAvner/fp-nurse-app-sub000/internal/notification"
)

// Decision values accepted by Decide.
const (
	DecisionAccept = "accept"
	DecisionReject = "reject"
)

// pgUniqueViolation is the Postgres error code for unique constraint violations.
const pgUniqueViolation = "23505"

// Scorer produces a compatibility score in [0, 100] for a candidate/job pair.
// It must never fail; degraded scoring returns a best-effort value.
type Scorer interface {
	Score(ctx context.Context, candidate matching.CandidateProjection, job matching.JobRequirements) int
}

// Manager drives application state: APPLIED at creation, then exactly one
// transition to ACCEPTED or REJECTED. All mutation of application status in
// the system goes through this type.
type Manager struct {
	db         *database.DBinstanceStruct
	scorer     Scorer
	dispatcher *notification.Dispatcher
	logger     *zap.Logger
}

// NewManager wires the lifecycle manager with its collaborators.
func NewManager(db *database.DBinstanceStruct, scorer Scorer, dispatcher *notification.Dispatcher, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		db:         db,
		scorer:     scorer,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Apply creates an application for the candidate on the given job.
//
// The uniqueness check and the insert are a single atomic unit: the insert
// runs with ON CONFLICT DO NOTHING against the (candidate_id, job_id) unique
// index, so concurrent double submits produce exactly one row. The
// application row and its notification commit together or not at all.
func (m *Manager) Apply(ctx context.Context, candidateID uuid.UUID, jobID uint) (*model.Application, error) {
	var job model.Job
	if err := m.db.WithContext(ctx).Preload("RequiredSkills").First(&job, jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load job: %w", err)
	}
	if job.Status != model.JobStatusActive {
		return nil, ErrInvalidJobState
	}

	// Fast path for the common duplicate case. The unique index below is
	// what actually enforces one application per pair.
	var existing model.Application
	err := m.db.WithContext(ctx).
		Where("candidate_id = ? AND job_id = ?", candidateID, jobID).
		First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateApplication
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check existing application: %w", err)
	}

	var candidate model.User
	if err := m.db.WithContext(ctx).Preload("Profile").Preload("Profile.Skills").
		First(&candidate, "id = ?", candidateID).Error; err != nil {
		return nil, fmt.Errorf("load candidate: %w", err)
	}

	// Score before persisting. Degraded scoring yields 0 and never blocks
	// the application.
	score := m.scorer.Score(ctx, matching.ProjectCandidate(candidate), matching.ProjectJob(job))

	application := &model.Application{
		CandidateID:   candidateID,
		JobID:         jobID,
		Status:        model.ApplicationStatusApplied,
		MatchingScore: score,
	}

	err = m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "candidate_id"}, {Name: "job_id"}},
			DoNothing: true,
		}).Create(application)
		if res.Error != nil {
			var pgErr *pgconn.PgError
			if errors.As(res.Error, &pgErr) && pgErr.Code == pgUniqueViolation {
				return ErrDuplicateApplication
			}
			return fmt.Errorf("create application: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			// Lost the race against a concurrent apply for the same pair.
			return ErrDuplicateApplication
		}

		return m.dispatcher.Applied(tx, candidateID, job, score)
	})
	if err != nil {
		return nil, err
	}

	m.logger.Info("application created",
		zap.Uint("application_id", application.ID),
		zap.String("candidate_id", candidateID.String()),
		zap.Uint("job_id", jobID),
		zap.Int("matching_score", score),
	)

	return application, nil
}

// Decide transitions an APPLIED application to ACCEPTED or REJECTED.
//
// The status check and update are one conditional UPDATE guarded by
// status = 'APPLIED', so two concurrent decisions on the same application
// resolve to exactly one winner; the loser observes ErrAlreadyDecided.
func (m *Manager) Decide(ctx context.Context, applicationID uint, decision string, adminID uuid.UUID) (*model.Application, error) {
	var newStatus string
	switch strings.ToLower(decision) {
	case DecisionAccept:
		newStatus = model.ApplicationStatusAccepted
	case DecisionReject:
		newStatus = model.ApplicationStatusRejected
	default:
		return nil, ErrInvalidDecision
	}

	var decided model.Application

	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Application{}).
			Where("id = ? AND status = ?", applicationID, model.ApplicationStatusApplied).
			Update("status", newStatus)
		if res.Error != nil {
			return fmt.Errorf("update application status: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			var current model.Application
			if err := tx.First(&current, applicationID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return fmt.Errorf("load application: %w", err)
			}
			return ErrAlreadyDecided
		}

		if err := tx.Preload("Job").First(&decided, applicationID).Error; err != nil {
			return fmt.Errorf("reload application: %w", err)
		}

		return m.dispatcher.Decided(tx, decided.CandidateID, decided.Job, newStatus)
	})
	if err != nil {
		return nil, err
	}

	m.logger.Info("application decided",
		zap.Uint("application_id", applicationID),
		zap.String("status", newStatus),
		zap.String("admin_id", adminID.String()),
	)

	return &decided, nil
}

// DecideByJobCandidate resolves the (job, candidate) pair to an application
// and applies the decision. The transition itself stays atomic inside Decide.
func (m *Manager) DecideByJobCandidate(ctx context.Context, jobID uint, candidateID uuid.UUID, decision string, adminID uuid.UUID) (*model.Application, error) {
	var application model.Application
	err := m.db.WithContext(ctx).
		Where("job_id = ? AND candidate_id = ?", jobID, candidateID).
		First(&application).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("resolve application: %w", err)
	}

	return m.Decide(ctx, application.ID, decision, adminID)
}

// ApplicantsForJob loads the job's applications joined with candidate
// projections, ready for ranking.
func (m *Manager) ApplicantsForJob(ctx context.Context, jobID uint) ([]ApplicantRow, error) {
	var applications []model.Application
	err := m.db.WithContext(ctx).
		Preload("Candidate").
		Preload("Candidate.Profile").
		Where("job_id = ?", jobID).
		Find(&applications).Error
	if err != nil {
		return nil, fmt.Errorf("load applicants: %w", err)
	}

	rows := make([]ApplicantRow, 0, len(applications))
	for _, a := range applications {
		row := ApplicantRow{
			ApplicationID: a.ID,
			CandidateID:   a.CandidateID,
			Name:          a.Candidate.Name,
			Email:         a.Candidate.Email,
			MatchingScore: a.MatchingScore,
			Status:        a.Status,
			AppliedAt:     a.CreatedAt,
		}
		if a.Candidate.Profile != nil {
			row.Specialization = a.Candidate.Profile.Specialization
			row.ExperienceYears = a.Candidate.Profile.YearsExperience
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ApplicationsForCandidate returns the candidate's own applications with job data.
func (m *Manager) ApplicationsForCandidate(ctx context.Context, candidateID uuid.UUID) ([]model.Application, error) {
	var applications []model.Application
	err := m.db.WithContext(ctx).
		Preload("Job").
		Preload("Job.RequiredSkills").
		Where("candidate_id = ?", candidateID).
		Order("created_at DESC, id DESC").
		Find(&applications).Error
	if err != nil {
		return nil, fmt.Errorf("load applications: %w", err)
	}
	return applications, nil
}
