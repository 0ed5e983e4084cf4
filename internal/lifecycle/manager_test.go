package lifecycle

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"

	"github.com/InsanelyAvner/fp-nurse-app-sub000/internal/database"
	"github.com/InsanelyAvner/fp-nurse-app-sub000/internal/matching"
	"github.com/InsanelyAvner/fp-nurse-app-sub000/internal/model"
	"github.com/InsanelyAvner/fp-nurse-app-sub000/internal/notification"
)

var testDB *database.DBinstanceStruct

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	var err error
	var midTeardown func(context.Context, ...testcontainers.TerminateOption) error
	midTeardown, testDB, err = database.GetTestDB()
	if err != nil {
		os.Exit(1)
	}
	m.Run()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if midTeardown != nil {
		_ = midTeardown(ctx)
	}
}

// stubScorer returns the same score for every pair.
type stubScorer struct {
	score int
}

func (s stubScorer) Score(ctx context.Context, candidate matching.CandidateProjection, job matching.JobRequirements) int {
	return s.score
}

func newTestManager(score int) *Manager {
	return NewManager(testDB, stubScorer{score: score}, notification.NewDispatcher(testDB), nil)
}

// newTestJob creates a fresh job so tests don't interfere through the shared seeds.
func newTestJob(t *testing.T, status string) model.Job {
	t.Helper()
	job := model.Job{
		PostedByID: database.TestAdminUser.ID,
		EditableJobInfo: model.EditableJobInfo{
			Title:    "Ward Nurse " + uuid.NewString()[:8],
			Facility: "Test Facility",
			Status:   status,
		},
	}
	if err := testDB.Create(&job).Error; err != nil {
		t.Fatalf("failed to create job: %v", err)
	}
	return job
}

func TestApply_Success(t *testing.T) {
	m := newTestManager(77)
	job := newTestJob(t, model.JobStatusActive)

	app, err := m.Apply(context.Background(), database.TestNurse1.ID, job.ID)
	assert.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusApplied, app.Status)
	assert.Equal(t, 77, app.MatchingScore)

	// The application and its notification commit together.
	var count int64
	err = testDB.Model(&model.Notification{}).
		Where("recipient_id = ?", database.TestNurse1.ID).
		Count(&count).Error
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, count, int64(1))
}

func TestApply_ScoreIsPersistedWithinBounds(t *testing.T) {
	m := newTestManager(100)
	job := newTestJob(t, model.JobStatusActive)

	app, err := m.Apply(context.Background(), database.TestNurse2.ID, job.ID)
	assert.NoError(t, err)

	var stored model.Application
	assert.NoError(t, testDB.First(&stored, app.ID).Error)
	assert.GreaterOrEqual(t, stored.MatchingScore, 0)
	assert.LessOrEqual(t, stored.MatchingScore, 100)
}

func TestApply_DuplicateSequential(t *testing.T) {
	m := newTestManager(50)
	job := newTestJob(t, model.JobStatusActive)

	_, err := m.Apply(context.Background(), database.TestNurse1.ID, job.ID)
	assert.NoError(t, err)

	_, err = m.Apply(context.Background(), database.TestNurse1.ID, job.ID)
	assert.ErrorIs(t, err, ErrDuplicateApplication)

	var count int64
	assert.NoError(t, testDB.Model(&model.Application{}).
		Where("job_id = ? AND candidate_id = ?", job.ID, database.TestNurse1.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestApply_DuplicateConcurrent(t *testing.T) {
	m := newTestManager(50)
	job := newTestJob(t, model.JobStatusActive)

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = m.Apply(context.Background(), database.TestNurse2.ID, job.ID)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrDuplicateApplication)
		}
	}
	assert.Equal(t, 1, succeeded)

	var count int64
	assert.NoError(t, testDB.Model(&model.Application{}).
		Where("job_id = ? AND candidate_id = ?", job.ID, database.TestNurse2.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestApply_DraftJobRejected(t *testing.T) {
	m := newTestManager(50)
	job := newTestJob(t, model.JobStatusDraft)

	_, err := m.Apply(context.Background(), database.TestNurse1.ID, job.ID)
	assert.ErrorIs(t, err, ErrInvalidJobState)
}

func TestApply_ClosedJobRejected(t *testing.T) {
	m := newTestManager(50)
	job := newTestJob(t, model.JobStatusClosed)

	_, err := m.Apply(context.Background(), database.TestNurse1.ID, job.ID)
	assert.ErrorIs(t, err, ErrInvalidJobState)
}

func TestApply_MissingJob(t *testing.T) {
	m := newTestManager(50)
	_, err := m.Apply(context.Background(), database.TestNurse1.ID, 999999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDecide_AcceptThenAlreadyDecided(t *testing.T) {
	m := newTestManager(60)
	job := newTestJob(t, model.JobStatusActive)

	app, err := m.Apply(context.Background(), database.TestNurse1.ID, job.ID)
	assert.NoError(t, err)

	decided, err := m.Decide(context.Background(), app.ID, DecisionAccept, database.TestAdminUser.ID)
	assert.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusAccepted, decided.Status)

	// Terminal states never transition again, not even to the same state.
	_, err = m.Decide(context.Background(), app.ID, DecisionAccept, database.TestAdminUser.ID)
	assert.ErrorIs(t, err, ErrAlreadyDecided)
	_, err = m.Decide(context.Background(), app.ID, DecisionReject, database.TestAdminUser.ID)
	assert.ErrorIs(t, err, ErrAlreadyDecided)
}

func TestDecide_RejectCreatesNotification(t *testing.T) {
	m := newTestManager(60)
	job := newTestJob(t, model.JobStatusActive)

	app, err := m.Apply(context.Background(), database.TestNurse2.ID, job.ID)
	assert.NoError(t, err)

	var before int64
	assert.NoError(t, testDB.Model(&model.Notification{}).
		Where("recipient_id = ?", database.TestNurse2.ID).Count(&before).Error)

	decided, err := m.Decide(context.Background(), app.ID, DecisionReject, database.TestAdminUser.ID)
	assert.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusRejected, decided.Status)

	var after int64
	assert.NoError(t, testDB.Model(&model.Notification{}).
		Where("recipient_id = ?", database.TestNurse2.ID).Count(&after).Error)
	assert.Equal(t, before+1, after)
}

func TestDecide_InvalidDecision(t *testing.T) {
	m := newTestManager(60)
	_, err := m.Decide(context.Background(), 1, "maybe", database.TestAdminUser.ID)
	assert.ErrorIs(t, err, ErrInvalidDecision)
}

func TestDecide_MissingApplication(t *testing.T) {
	m := newTestManager(60)
	_, err := m.Decide(context.Background(), 999999, DecisionAccept, database.TestAdminUser.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDecide_ConcurrentOppositeDecisions(t *testing.T) {
	m := newTestManager(60)
	job := newTestJob(t, model.JobStatusActive)

	app, err := m.Apply(context.Background(), database.TestNurse1.ID, job.ID)
	assert.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]error, 2)
	decisions := []string{DecisionAccept, DecisionReject}
	for i := range decisions {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = m.Decide(context.Background(), app.ID, decisions[i], database.TestAdminUser.ID)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
		} else {
			assert.True(t, errors.Is(err, ErrAlreadyDecided))
		}
	}
	assert.Equal(t, 1, winners)

	// Exactly one terminal status stuck.
	var final model.Application
	assert.NoError(t, testDB.First(&final, app.ID).Error)
	assert.True(t, final.Terminal())
}

func TestDecideByJobCandidate(t *testing.T) {
	m := newTestManager(60)
	job := newTestJob(t, model.JobStatusActive)

	_, err := m.Apply(context.Background(), database.TestNurse2.ID, job.ID)
	assert.NoError(t, err)

	decided, err := m.DecideByJobCandidate(context.Background(), job.ID, database.TestNurse2.ID, DecisionAccept, database.TestAdminUser.ID)
	assert.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusAccepted, decided.Status)

	_, err = m.DecideByJobCandidate(context.Background(), job.ID, database.TestNurse1.ID, DecisionAccept, database.TestAdminUser.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApplicantsForJob_ProjectsProfileFields(t *testing.T) {
	m := newTestManager(82)
	job := newTestJob(t, model.JobStatusActive)

	_, err := m.Apply(context.Background(), database.TestNurse1.ID, job.ID)
	assert.NoError(t, err)
	_, err = m.Apply(context.Background(), database.TestNurse2.ID, job.ID)
	assert.NoError(t, err)

	rows, err := m.ApplicantsForJob(context.Background(), job.ID)
	assert.NoError(t, err)
	assert.Len(t, rows, 2)

	byCandidate := map[uuid.UUID]ApplicantRow{}
	for _, r := range rows {
		byCandidate[r.CandidateID] = r
	}
	alice := byCandidate[database.TestNurse1.ID]
	assert.Equal(t, "Alice Tan", alice.Name)
	assert.Equal(t, "ICU", alice.Specialization)
	assert.Equal(t, 5, alice.ExperienceYears)
	assert.Equal(t, 82, alice.MatchingScore)
}

func TestApplicationsForCandidate_NewestFirstWithJob(t *testing.T) {
	m := newTestManager(30)
	jobA := newTestJob(t, model.JobStatusActive)
	jobB := newTestJob(t, model.JobStatusActive)

	_, err := m.Apply(context.Background(), database.TestNurse1.ID, jobA.ID)
	assert.NoError(t, err)
	_, err = m.Apply(context.Background(), database.TestNurse1.ID, jobB.ID)
	assert.NoError(t, err)

	apps, err := m.ApplicationsForCandidate(context.Background(), database.TestNurse1.ID)
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, len(apps), 2)
	assert.Equal(t, jobB.ID, apps[0].JobID)
	assert.NotEmpty(t, apps[0].Job.Title)
	for i := 1; i < len(apps); i++ {
		assert.False(t, apps[i].CreatedAt.After(apps[i-1].CreatedAt))
	}
}
