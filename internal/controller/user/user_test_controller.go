package user

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Gradebook/internal/controller"
	"github.com/lshigami/Gradebook/internal/dto"
	"github.com/lshigami/Gradebook/internal/model"
	"github.com/lshigami/Gradebook/internal/service"
	"github.com/rs/zerolog/log"
)

type UserTestController struct {
	userTestService service.UserTestService
}

func NewUserTestController(uts service.UserTestService) *UserTestController {
	return &UserTestController{userTestService: uts}
}

// GetTestDetails godoc
// @Summary (User) Get details of a specific test
// @Description Get a test and its questions for a student about to start an attempt. Answer keys are never included.
// @Tags User - Tests & Attempts
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.TestResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Test ID format"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 502 {object} dto.ErrorResponse "Backend unavailable"
// @Router /tests/{test_id} [get]
func (c *UserTestController) GetTestDetails(ctx *gin.Context) {
	testID, ok := controller.ParseID(ctx, "test_id", "Test ID")
	if !ok {
		return
	}
	testDetails, err := c.userTestService.GetTestDetails(ctx.Request.Context(), testID)
	if err != nil {
		controller.RespondError(ctx, "User GetTestDetails", "Failed to retrieve test", err)
		return
	}
	ctx.JSON(http.StatusOK, testDetails)
}

// StartAttempt godoc
// @Summary (User) Start a new attempt
// @Description Opens a new IN_PROGRESS attempt on a test. The attempt limit is enforced by the backend.
// @Tags User - Tests & Attempts
// @Accept json
// @Produce json
// @Param test_id path int true "Test ID"
// @Param start_data body dto.StartAttemptDTO true "Student ID (temporary, will come from the session)"
// @Success 201 {object} dto.TestAttemptResultDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 502 {object} dto.ErrorResponse "Backend unavailable"
// @Router /tests/{test_id}/attempts [post]
func (c *UserTestController) StartAttempt(ctx *gin.Context) {
	testID, ok := controller.ParseID(ctx, "test_id", "Test ID")
	if !ok {
		return
	}
	var req dto.StartAttemptDTO
	if !controller.BindJSON(ctx, "User StartAttempt", &req) {
		return
	}

	attempt, err := c.userTestService.StartAttempt(ctx.Request.Context(), testID, req.StudentID)
	if err != nil {
		controller.RespondError(ctx, "User StartAttempt", "Failed to start attempt", err)
		return
	}
	ctx.JSON(http.StatusCreated, attempt)
}

// SubmitAttempt godoc
// @Summary (User) Submit the answers of an attempt
// @Description Freezes the answers of an IN_PROGRESS attempt. An attempt can only be submitted once.
// @Tags User - Tests & Attempts
// @Accept json
// @Produce json
// @Param attempt_id path int true "Test Attempt ID"
// @Param submission_data body dto.TestAttemptSubmitDTO true "List of answers"
// @Success 200 {object} dto.TestAttemptResultDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid answers"
// @Failure 409 {object} dto.ErrorResponse "Attempt is not in progress"
// @Failure 502 {object} dto.ErrorResponse "Backend unavailable"
// @Router /attempts/{attempt_id}/submit [post]
func (c *UserTestController) SubmitAttempt(ctx *gin.Context) {
	attemptID, ok := controller.ParseID(ctx, "attempt_id", "Test Attempt ID")
	if !ok {
		return
	}
	var req dto.TestAttemptSubmitDTO
	if !controller.BindJSON(ctx, "User SubmitAttempt", &req) {
		return
	}

	log.Info().Uint("attemptID", attemptID).Int("answerCount", len(req.Answers)).Msg("Received request to submit test attempt")

	attempt, err := c.userTestService.SubmitAttempt(ctx.Request.Context(), attemptID, req)
	if err != nil {
		controller.RespondError(ctx, "User SubmitAttempt", "Failed to submit test attempt", err)
		return
	}
	ctx.JSON(http.StatusOK, attempt)
}

// GetMyAttempts godoc
// @Summary (User) List my attempts
// @Description Lists the caller's attempts, optionally filtered by test and status.
// @Tags User - Tests & Attempts
// @Produce json
// @Param test_id query int false "Filter by Test ID"
// @Param status query string false "Filter by status" Enums(in_progress, submitted, graded)
// @Success 200 {array} dto.TestAttemptSummaryDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 502 {object} dto.ErrorResponse "Backend unavailable"
// @Router /attempts/me [get]
func (c *UserTestController) GetMyAttempts(ctx *gin.Context) {
	testID, ok := controller.ParseOptionalID(ctx, "test_id", "Test ID")
	if !ok {
		return
	}
	filter := model.AttemptFilter{
		TestID: testID,
		State:  model.AttemptState(strings.ToUpper(strings.TrimSpace(ctx.Query("status")))),
	}

	attempts, err := c.userTestService.GetMyAttempts(ctx.Request.Context(), filter)
	if err != nil {
		controller.RespondError(ctx, "User GetMyAttempts", "Failed to retrieve attempts", err)
		return
	}
	ctx.JSON(http.StatusOK, attempts)
}

// GetAttemptResult godoc
// @Summary (User) Get the result of an attempt
// @Description Score, percentage and pass/fail are only present once the attempt is graded; until then the badge is PENDING.
// @Tags User - Tests & Attempts
// @Produce json
// @Param attempt_id path int true "Test Attempt ID"
// @Success 200 {object} dto.TestAttemptResultDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Test Attempt ID format"
// @Failure 404 {object} dto.ErrorResponse "Test Attempt not found"
// @Failure 502 {object} dto.ErrorResponse "Backend unavailable"
// @Router /attempts/{attempt_id}/result [get]
func (c *UserTestController) GetAttemptResult(ctx *gin.Context) {
	attemptID, ok := controller.ParseID(ctx, "attempt_id", "Test Attempt ID")
	if !ok {
		return
	}
	result, err := c.userTestService.GetAttemptResult(ctx.Request.Context(), attemptID)
	if err != nil {
		controller.RespondError(ctx, "User GetAttemptResult", "Failed to retrieve attempt result", err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}
