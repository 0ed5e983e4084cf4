// Package controller contain implementation of each route handlers
package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/InsanelyAvner/fp-nurse-app-sub000/internal/cache"
	"github.com/InsanelyAvner/fp-nurse-app-sub000/internal/database"
	"github.com/InsanelyAvner/fp-nurse-app-sub000/internal/lifecycle"
	"github.com/InsanelyAvner/fp-nurse-app-sub000/internal/model"
	"github.com/InsanelyAvner/fp-nurse-app-sub000/internal/utilities"
)

// ApplicationController handles job application related endpoints
type ApplicationController struct {
	DB      *database.DBinstanceStruct
	Manager *lifecycle.Manager
	Cache   *cache.Redis
}

// NewApplicationController creates a new instance of ApplicationController.
func NewApplicationController(db *database.DBinstanceStruct, manager *lifecycle.Manager, cacheClient *cache.Redis) *ApplicationController {
	return &ApplicationController{
		DB:      db,
		Manager: manager,
		Cache:   cacheClient,
	}
}

// decisionRequest is the body for the admin decision endpoint.
type decisionRequest struct {
	Action string `json:"action" binding:"required,oneof=accept reject"`
}

// applicationWithJob joins an application with its job for the nurse's own view.
type applicationWithJob struct {
	Application model.Application `json:"application"`
	Job         model.Job         `json:"job"`
}

// ApplyHandler handles a nurse applying to a job posting.
// @Summary Apply to a job posting
// @Description Only nurses can access this endpoint. The job must be ACTIVE.
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Job ID"
// @Success 201 {object} model.Application "Successfully applied"
// @Failure 400 {object} utilities.ErrorResponse "Invalid job id or job not accepting applications"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as nurse"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 409 {object} utilities.ErrorResponse "Already applied"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id}/apply [post]
func (ac *ApplicationController) ApplyHandler(c *gin.Context) {
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

	application, err := ac.Manager.Apply(c.Request.Context(), user.ID, uint(jobID))
	if err != nil {
		switch {
		case errors.Is(err, lifecycle.ErrNotFound):
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
		case errors.Is(err, lifecycle.ErrInvalidJobState):
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "This job is not accepting applications"})
		case errors.Is(err, lifecycle.ErrDuplicateApplication):
			c.JSON(http.StatusConflict, utilities.ErrorResponse{Error: "You have already applied to this job"})
		default:
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to create application: %s", err.Error()),
			})
		}
		return
	}

	ac.Cache.InvalidateJob(c.Request.Context(), uint(jobID))

	c.JSON(http.StatusCreated, application)
}

// DecisionHandler handles an admin accepting or rejecting an application.
// @Summary Accept or reject a candidate's application
// @Description Only admins can access this endpoint. Repeated decisions return 409.
// @Tags Application
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Job ID"
// @Param candidate_id path string true "Candidate ID"
// @Param action body decisionRequest true "accept or reject"
// @Success 200 {object} utilities.MessageResponse "Decision applied"
// @Failure 400 {object} utilities.ErrorResponse "Invalid path or body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 409 {object} utilities.ErrorResponse "Already decided"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id}/applicants/{candidate_id}/action [post]
func (ac *ApplicationController) DecisionHandler(c *gin.Context) {
	admin, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	jobID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid job id"})
		return
	}

	candidateID, err := uuid.Parse(c.Param("candidate_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid candidate id"})
		return
	}

	var req decisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Action must be 'accept' or 'reject'",
		})
		return
	}

	_, err = ac.Manager.DecideByJobCandidate(c.Request.Context(), uint(jobID), candidateID, req.Action, admin.ID)
	if err != nil {
		switch {
		case errors.Is(err, lifecycle.ErrNotFound):
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Application not found"})
		case errors.Is(err, lifecycle.ErrAlreadyDecided):
			c.JSON(http.StatusConflict, utilities.ErrorResponse{Error: "This application has already been decided"})
		case errors.Is(err, lifecycle.ErrInvalidDecision):
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Action must be 'accept' or 'reject'"})
		default:
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to apply decision: %s", err.Error()),
			})
		}
		return
	}

	ac.Cache.InvalidateJob(c.Request.Context(), uint(jobID))

	c.JSON(http.StatusOK, utilities.MessageResponse{
		Message: fmt.Sprintf("Application %sed", req.Action),
	})
}

// GetApplicantsHandler returns the ranked applicant view for a job.
// @Summary List a job's applicants sorted by matching score or experience
// @Description Only admins can access this endpoint. Defaults to score descending.
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Job ID"
// @Param search query string false "Filter by candidate name or email, case insensitive"
// @Param sortBy query string false "matchingScore or experienceYears"
// @Param order query string false "asc or desc"
// @Success 200 {array} lifecycle.ApplicantRow "Ranked applicants"
// @Failure 400 {object} utilities.ErrorResponse "Invalid job id"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id}/applicants [get]
func (ac *ApplicationController) GetApplicantsHandler(c *gin.Context) {
	jobID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid job id"})
		return
	}

	opts := lifecycle.RankOptions{
		Search: c.Query("search"),
		SortBy: c.DefaultQuery("sortBy", lifecycle.SortByScore),
		Order:  c.DefaultQuery("order", lifecycle.OrderDesc),
	}

	ctx := c.Request.Context()
	key := ac.Cache.ApplicantKey(ctx, uint(jobID), opts)
	if rows, ok := ac.Cache.GetApplicants(ctx, key); ok {
		c.JSON(http.StatusOK, rows)
		return
	}

	rows, err := ac.Manager.ApplicantsForJob(ctx, uint(jobID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve applicants: %s", err.Error()),
		})
		return
	}

	ranked := lifecycle.RankApplicants(rows, opts)
	ac.Cache.SetApplicants(ctx, key, ranked)

	c.JSON(http.StatusOK, ranked)
}

// GetMyApplicationsHandler returns the calling nurse's applications with job data.
// @Summary List the caller's own applications
// @Description Only nurses can access this endpoint
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} applicationWithJob "Own applications"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as nurse"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /nurse/applications [get]
func (ac *ApplicationController) GetMyApplicationsHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	applications, err := ac.Manager.ApplicationsForCandidate(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve applications: %s", err.Error()),
		})
		return
	}

	resp := make([]applicationWithJob, 0, len(applications))
	for _, a := range applications {
		resp = append(resp, applicationWithJob{
			Application: a,
			Job:         a.Job,
		})
	}

	c.JSON(http.StatusOK, resp)
}
