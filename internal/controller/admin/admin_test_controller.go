package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Gradebook/internal/controller"
	"github.com/lshigami/Gradebook/internal/dto"
	"github.com/lshigami/Gradebook/internal/service"
	"github.com/rs/zerolog/log"
)

type AdminTestController struct {
	adminTestService service.AdminTestService
}

func NewAdminTestController(adminTestService service.AdminTestService) *AdminTestController {
	return &AdminTestController{adminTestService: adminTestService}
}

// GetTestAttempts godoc
// @Summary (Admin) List all attempts of a test
// @Tags Admin - Grading
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {array} dto.TestAttemptSummaryDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Test ID format"
// @Failure 502 {object} dto.ErrorResponse "Backend unavailable"
// @Router /admin/tests/{test_id}/attempts [get]
func (c *AdminTestController) GetTestAttempts(ctx *gin.Context) {
	testID, ok := controller.ParseID(ctx, "test_id", "Test ID")
	if !ok {
		return
	}
	attempts, err := c.adminTestService.GetTestAttempts(ctx.Request.Context(), testID)
	if err != nil {
		controller.RespondError(ctx, "Admin GetTestAttempts", "Failed to retrieve attempts", err)
		return
	}
	ctx.JSON(http.StatusOK, attempts)
}

// GetGradingQueue godoc
// @Summary (Admin) List attempts waiting for grading
// @Description Submitted, ungraded attempts of a test, oldest submission first.
// @Tags Admin - Grading
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {array} dto.TestAttemptSummaryDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Test ID format"
// @Failure 502 {object} dto.ErrorResponse "Backend unavailable"
// @Router /admin/tests/{test_id}/grading-queue [get]
func (c *AdminTestController) GetGradingQueue(ctx *gin.Context) {
	testID, ok := controller.ParseID(ctx, "test_id", "Test ID")
	if !ok {
		return
	}
	queue, err := c.adminTestService.GetGradingQueue(ctx.Request.Context(), testID)
	if err != nil {
		controller.RespondError(ctx, "Admin GetGradingQueue", "Failed to retrieve grading queue", err)
		return
	}
	ctx.JSON(http.StatusOK, queue)
}

// GetResultsSummary godoc
// @Summary (Admin) Summarize the results of a test
// @Description Counts attempts per status and reports the average percentage and pass rate of graded attempts.
// @Tags Admin - Grading
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.TestResultsSummaryDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Test ID format"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 502 {object} dto.ErrorResponse "Backend unavailable"
// @Router /admin/tests/{test_id}/summary [get]
func (c *AdminTestController) GetResultsSummary(ctx *gin.Context) {
	testID, ok := controller.ParseID(ctx, "test_id", "Test ID")
	if !ok {
		return
	}
	summary, err := c.adminTestService.GetResultsSummary(ctx.Request.Context(), testID)
	if err != nil {
		controller.RespondError(ctx, "Admin GetResultsSummary", "Failed to summarize results", err)
		return
	}
	ctx.JSON(http.StatusOK, summary)
}

// GradeAttempt godoc
// @Summary (Admin) Grade a submitted attempt
// @Description Every answer of the attempt needs marks within [0, question marks]. Short answers also need is_correct. Any invalid entry rejects the whole request.
// @Tags Admin - Grading
// @Accept json
// @Produce json
// @Param attempt_id path int true "Test Attempt ID"
// @Param grading_data body dto.GradeAttemptDTO true "Grader ID and per-answer marks"
// @Success 200 {object} dto.TestAttemptResultDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid marks"
// @Failure 409 {object} dto.ErrorResponse "Attempt is not submitted or already graded"
// @Failure 502 {object} dto.ErrorResponse "Backend unavailable"
// @Router /admin/attempts/{attempt_id}/grade [post]
func (c *AdminTestController) GradeAttempt(ctx *gin.Context) {
	attemptID, ok := controller.ParseID(ctx, "attempt_id", "Test Attempt ID")
	if !ok {
		return
	}
	var req dto.GradeAttemptDTO
	if !controller.BindJSON(ctx, "Admin GradeAttempt", &req) {
		return
	}

	log.Info().Uint("attemptID", attemptID).Uint("graderID", req.GraderID).Int("markCount", len(req.Answers)).Msg("Received request to grade test attempt")

	result, err := c.adminTestService.GradeAttempt(ctx.Request.Context(), attemptID, req)
	if err != nil {
		controller.RespondError(ctx, "Admin GradeAttempt", "Failed to grade test attempt", err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}
