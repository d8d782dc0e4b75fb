package reports

import (
	"net/http"

	"ctfapi/database"
	"ctfapi/middleware"
	"ctfapi/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetReports lists reports: admins see all, users only their own
// @Summary Get reports
// @Description Get reports; non-admin users only see the reports they filed
// @Tags Reports
// @Produce json
// @Success 200 {array} models.Report
// @Failure 401,500 {object} map[string]string
// @Router /reports/ [get]
// @Security Bearer
func GetReports(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return // Error already handled by middleware
	}

	query := database.DB.Order("created_at desc")
	if !user.IsAdmin {
		query = query.Where("user_id = ?", user.ID)
	}

	var reports []models.Report
	if err := query.Find(&reports).Error; err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedFetchReports)
		return
	}

	c.JSON(http.StatusOK, reports)
}

// GetReport fetches a single report
// @Summary Get a report
// @Description Get one report by ID; users can only access their own
// @Tags Reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} models.Report
// @Failure 401,403,404 {object} map[string]string
// @Router /reports/{id} [get]
// @Security Bearer
func GetReport(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	report, ok := fetchAccessibleReport(c, user)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, report)
}

// CreateReport files a new report
// @Summary Create a report
// @Description File a new cloud report for the authenticated user
// @Tags Reports
// @Accept json
// @Produce json
// @Param request body CreateReportRequest true "Report"
// @Success 201 {object} models.Report
// @Failure 400,401 {object} map[string]string
// @Router /reports/ [post]
// @Security Bearer
func CreateReport(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	report := models.Report{
		ID:      uuid.NewString(),
		UserID:  user.ID,
		Title:   req.Title,
		Type:    req.Type,
		Payload: req.Payload,
		Status:  models.ReportStatusOpen,
	}
	if err := database.DB.Create(&report).Error; err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedCreateReport)
		return
	}

	c.JSON(http.StatusCreated, report)
}

// UpdateReport mutates a report
// @Summary Update a report
// @Description Update a report's fields; status changes are validated
// @Tags Reports
// @Accept json
// @Produce json
// @Param id path string true "Report ID"
// @Param request body UpdateReportRequest true "Fields to update"
// @Success 200 {object} models.Report
// @Failure 400,401,403,404 {object} map[string]string
// @Router /reports/{id} [put]
// @Security Bearer
func UpdateReport(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	report, ok := fetchAccessibleReport(c, user)
	if !ok {
		return
	}

	var req UpdateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	if req.Title != nil {
		report.Title = *req.Title
	}
	if req.Type != nil {
		report.Type = *req.Type
	}
	if req.Payload != nil {
		report.Payload = req.Payload
	}
	if req.Status != nil {
		switch *req.Status {
		case models.ReportStatusOpen, models.ReportStatusResolved, models.ReportStatusArchived:
			report.Status = *req.Status
		default:
			respondWithError(c, http.StatusBadRequest, ErrInvalidStatus)
			return
		}
	}

	if err := database.DB.Save(report).Error; err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedUpdateReport)
		return
	}

	c.JSON(http.StatusOK, report)
}

// DeleteReport removes a report
// @Summary Delete a report
// @Description Delete a report; users can only delete their own
// @Tags Reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} map[string]string
// @Failure 401,403,404 {object} map[string]string
// @Router /reports/{id} [delete]
// @Security Bearer
func DeleteReport(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	report, ok := fetchAccessibleReport(c, user)
	if !ok {
		return
	}

	if err := database.DB.Delete(report).Error; err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedDeleteReport)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Report deleted"})
}

// fetchAccessibleReport loads the report from the path param, enforcing ownership.
// On failure it writes the error response and returns ok=false.
func fetchAccessibleReport(c *gin.Context, user *models.User) (*models.Report, bool) {
	var report models.Report
	if err := database.DB.First(&report, "id = ?", c.Param("id")).Error; err != nil {
		respondWithError(c, http.StatusNotFound, ErrReportNotFound)
		return nil, false
	}
	if !user.IsAdmin && report.UserID != user.ID {
		respondWithError(c, http.StatusForbidden, ErrNotReportOwner)
		return nil, false
	}
	return &report, true
}
