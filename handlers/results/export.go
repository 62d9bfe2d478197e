package results

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"judgeapi/middleware"
	"judgeapi/services"
	"judgeapi/utils/permissions"
	"judgeapi/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

var exportHeader = []string{
	"Group", "Judge", "Story ID", "Title", "Criterion",
	"Score", "Comment", "Hidden", "Created At", "Updated At",
}

// ExportGroupCSV streams all scores of a group as CSV
// @Summary Export scores as CSV
// @Description One denormalized row per score, admin only
// @Tags Results
// @Produce text/csv
// @Param group_id path string true "Group ID"
// @Success 200 {string} string "CSV content"
// @Failure 401,404 {object} response.ErrorResponse
// @Router /results/group/{group_id}/export/csv [get]
// @Security Bearer
func ExportGroupCSV(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}
	if !permissions.IsAdmin(user) {
		response.Error(c, http.StatusUnauthorized, ErrNoPermissionView)
		return
	}

	rows, err := services.BuildExportRows(c.Param("group_id"))
	if err != nil {
		response.Error(c, services.StatusFor(err), err.Error())
		return
	}

	filename := exportFilename(rows, "csv")
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "text/csv; charset=utf-8")

	w := csv.NewWriter(c.Writer)
	_ = w.Write(exportHeader)
	for _, row := range rows {
		_ = w.Write([]string{
			row.GroupSlug,
			row.JudgeName,
			row.StoryID,
			row.StoryTitle,
			row.Criterion,
			strconv.Itoa(row.Value),
			row.Comment,
			strconv.FormatBool(row.Hidden),
			row.CreatedAt.Format(time.RFC3339),
			row.UpdatedAt.Format(time.RFC3339),
		})
	}
	w.Flush()
}

// ExportGroupXLSX streams all scores of a group as an XLSX workbook
// @Summary Export scores as XLSX
// @Description One denormalized row per score on a single sheet, admin only
// @Tags Results
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param group_id path string true "Group ID"
// @Success 200 {string} string "XLSX content"
// @Failure 401,404,500 {object} response.ErrorResponse
// @Router /results/group/{group_id}/export/xlsx [get]
// @Security Bearer
func ExportGroupXLSX(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}
	if !permissions.IsAdmin(user) {
		response.Error(c, http.StatusUnauthorized, ErrNoPermissionView)
		return
	}

	rows, err := services.BuildExportRows(c.Param("group_id"))
	if err != nil {
		response.Error(c, services.StatusFor(err), err.Error())
		return
	}

	xlsx := excelize.NewFile()
	defer xlsx.Close()

	sheet := xlsx.GetSheetName(0)
	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = xlsx.SetCellValue(sheet, cell, title)
	}
	for i, row := range rows {
		values := []interface{}{
			row.GroupSlug,
			row.JudgeName,
			row.StoryID,
			row.StoryTitle,
			row.Criterion,
			row.Value,
			row.Comment,
			row.Hidden,
			row.CreatedAt.Format(time.RFC3339),
			row.UpdatedAt.Format(time.RFC3339),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		_ = xlsx.SetSheetRow(sheet, cell, &values)
	}

	filename := exportFilename(rows, "xlsx")
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := xlsx.Write(c.Writer); err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedExport)
	}
}

func exportFilename(rows []services.ExportRow, ext string) string {
	slug := "scores"
	if len(rows) > 0 {
		slug = rows[0].GroupSlug
	}
	return fmt.Sprintf("%s-scores-%s.%s", slug, time.Now().Format("2006-01-02"), ext)
}
