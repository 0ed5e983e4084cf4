package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/InsanelyAvner/fp-nurse-app-sub000/internal/database"
	"github.com/InsanelyAvner/fp-nurse-app-sub000/internal/model"
	"github.com/InsanelyAvner/fp-nurse-app-sub000/internal/utilities"
)

// JobController handles job posting related endpoints
type JobController struct {
	DB *database.DBinstanceStruct
}

// NewJobController creates a new instance of JobController.
func NewJobController(db *database.DBinstanceStruct) *JobController {
	return &JobController{DB: db}
}

// jobRequest is the body for creating or editing a job posting.
type jobRequest struct {
	model.EditableJobInfo
	RequiredSkills []string      `json:"required_skills"`
	Shifts         []model.Shift `json:"shifts"`
}

// resolveSkills finds or creates skill rows for each given name.
func resolveSkills(tx *gorm.DB, names []string) ([]model.Skill, error) {
	skills := make([]model.Skill, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		var skill model.Skill
		if err := tx.Where("name = ?", name).FirstOrCreate(&skill, model.Skill{Name: name}).Error; err != nil {
			return nil, err
		}
		skills = append(skills, skill)
	}
	return skills, nil
}

// CreateJobHandler creates a new job posting.
// @Summary Create a job posting
// @Description Only admins can access this endpoint. Status defaults to DRAFT.
// @Tags Job
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param job body jobRequest true "Job posting info"
// @Success 201 {object} model.Job "Created job"
// @Failure 400 {object} utilities.ErrorResponse "Invalid body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs [post]
func (jc *JobController) CreateJobHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.Title == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Title is required"})
		return
	}
	if req.Status == "" {
		req.Status = model.JobStatusDraft
	}
	if req.Status != model.JobStatusActive && req.Status != model.JobStatusClosed && req.Status != model.JobStatusDraft {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Status must be ACTIVE, CLOSED or DRAFT"})
		return
	}

	job := model.Job{
		PostedByID:      user.ID,
		EditableJobInfo: req.EditableJobInfo,
		Shifts:          req.Shifts,
	}

	err = jc.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		skills, err := resolveSkills(tx, req.RequiredSkills)
		if err != nil {
			return err
		}
		job.RequiredSkills = skills
		return tx.Create(&job).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to create job: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusCreated, job)
}

// EditJobHandler updates an existing job posting, ignoring empty fields.
// @Summary Edit a job posting
// @Description Only admins can access this endpoint. Empty fields keep their value.
// @Tags Job
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Job ID"
// @Param job body jobRequest true "Fields to update"
// @Success 200 {object} model.Job "Updated job"
// @Failure 400 {object} utilities.ErrorResponse "Invalid id or body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [patch]
func (jc *JobController) EditJobHandler(c *gin.Context) {
	jobID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid job id"})
		return
	}

	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.Status != "" &&
		req.Status != model.JobStatusActive && req.Status != model.JobStatusClosed && req.Status != model.JobStatusDraft {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Status must be ACTIVE, CLOSED or DRAFT"})
		return
	}

	var job model.Job
	if err := jc.DB.WithContext(c.Request.Context()).Preload("RequiredSkills").First(&job, jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job: %s", err.Error()),
		})
		return
	}

	utilities.MergeNonEmpty(&job.EditableJobInfo, &req.EditableJobInfo)

	err = jc.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if req.RequiredSkills != nil {
			skills, err := resolveSkills(tx, req.RequiredSkills)
			if err != nil {
				return err
			}
			if err := tx.Model(&job).Association("RequiredSkills").Replace(skills); err != nil {
				return err
			}
			job.RequiredSkills = skills
		}
		return tx.Save(&job).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update job: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, job)
}

// GetJobsHandler lists job postings. Nurses only see ACTIVE jobs.
// @Summary List job postings
// @Description Admins see all jobs, nurses only see ACTIVE ones
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param search query string false "Filter by title or facility, case insensitive"
// @Success 200 {array} model.Job "Job postings"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs [get]
func (jc *JobController) GetJobsHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	query := jc.DB.WithContext(c.Request.Context()).
		Preload("RequiredSkills").Preload("Shifts").
		Order("post_time DESC")
	if user.Role != model.RoleAdmin {
		query = query.Where("status = ?", model.JobStatusActive)
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title ILIKE ? OR facility ILIKE ?", pattern, pattern)
	}

	var jobs []model.Job
	if err := query.Find(&jobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve jobs: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, jobs)
}

// GetJobByIDHandler returns a single job posting.
// @Summary Get a job posting by id
// @Description Nurses can only retrieve ACTIVE jobs
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Job ID"
// @Success 200 {object} model.Job "Job posting"
// @Failure 400 {object} utilities.ErrorResponse "Invalid job id"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [get]
func (jc *JobController) GetJobByIDHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	jobID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid job id"})
		return
	}

	var job model.Job
	if err := jc.DB.WithContext(c.Request.Context()).
		Preload("RequiredSkills").Preload("Shifts").
		First(&job, jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job: %s", err.Error()),
		})
		return
	}

	if user.Role != model.RoleAdmin && job.Status != model.JobStatusActive {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
		return
	}

	c.JSON(http.StatusOK, job)
}
