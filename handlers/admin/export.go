package admin

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"ctfapi/database"
	"ctfapi/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportProgressExcel exports all sessions and submissions as an xlsx workbook
// @Summary Export progress data
// @Description Download an Excel workbook with one sheet of sessions and one of submissions
// @Tags Admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Failure 401,403,500 {object} map[string]string
// @Router /admin/export [get]
// @Security Bearer
func ExportProgressExcel(c *gin.Context) {
	var progresses []models.Progress
	if err := database.DB.Preload("User").Preload("Submissions").Find(&progresses).Error; err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedExport)
		return
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Failed to close export workbook: %v", err)
		}
	}()

	sessions := "Sessions"
	f.SetSheetName("Sheet1", sessions)
	sessionHeaders := []string{"User", "Email", "State", "Current Level", "Completed Levels",
		"Total Attempts", "Start Time", "End Time", "Completion Time", "Reset Count"}
	for i, h := range sessionHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sessions, cell, h)
	}

	if _, err := f.NewSheet("Submissions"); err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedExport)
		return
	}
	subHeaders := []string{"User", "Level", "Flag Text", "Correct", "Admin Note", "Submitted At"}
	for i, h := range subHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue("Submissions", cell, h)
	}

	subRow := 2
	for row, p := range progresses {
		name, email := "", ""
		if p.User != nil {
			name, email = p.User.Name, p.User.Email
		}
		values := []interface{}{
			name, email, p.State(), p.CurrentLevel, fmt.Sprint(p.CompletedLevels),
			p.TotalAttempts, formatTime(p.ChallengeStartTime), formatTime(p.ChallengeEndTime),
			formatTime(p.CompletionTime), p.ResetCount,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sessions, cell, v)
		}

		for _, sub := range p.Submissions {
			subValues := []interface{}{
				name, sub.Level, sub.FlagText, sub.Correct, sub.AdminNote,
				sub.SubmittedAt.Format(time.RFC3339),
			}
			for col, v := range subValues {
				cell, _ := excelize.CoordinatesToCellName(col+1, subRow)
				f.SetCellValue("Submissions", cell, v)
			}
			subRow++
		}
	}

	filename := fmt.Sprintf("ctf-progress-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		log.Printf("Failed to write export workbook: %v", err)
	}
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
