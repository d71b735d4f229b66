package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"sdo-ticketing/internal/entities"
	"sdo-ticketing/internal/services"
	"sdo-ticketing/pkg/types"
	"sdo-ticketing/pkg/utils"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

// TicketRegister serves the admin ticket export. JSON by default; xlsx when
// format=xlsx.
func (ctrl *ReportController) TicketRegister(c echo.Context) error {
	filter := types.ParseListFilter(c.Request().URL.Query())
	format := strings.ToLower(c.QueryParam("format"))

	tickets, err := ctrl.reportService.TicketRegister(c.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	if format == "xlsx" {
		return ctrl.respondWithXLSX(c, tickets)
	}
	return utils.SuccessResponse(c, tickets, "ticket register", http.StatusOK)
}

func (ctrl *ReportController) DeviceRegister(c echo.Context) error {
	rows, err := ctrl.reportService.DeviceRegister(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, rows, "device register", http.StatusOK)
}

var registerHeaders = []string{
	"Ticket No.", "Requestor", "Category", "Request", "Status",
	"Batch ID", "Filed", "Closed", "Comments",
}

func ticketToRow(t entities.Ticket) []interface{} {
	dateFmt := "01/02/2006"
	var closedAt, batchID string
	if t.ClosedAt.Valid {
		closedAt = t.ClosedAt.Time.Format(dateFmt)
	}
	if t.BatchID.Valid {
		batchID = fmt.Sprintf("%d", t.BatchID.Uint64)
	}

	return []interface{}{
		t.TicketNumber, t.Requestor, t.Category, t.Request, t.Status,
		batchID, t.CreatedAt.Format(dateFmt), closedAt, t.Comments.String,
	}
}

func (ctrl *ReportController) respondWithXLSX(c echo.Context, tickets []entities.Ticket) error {
	f := excelize.NewFile()
	sheet := "Ticket Register"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &registerHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "I1", style)

	for i, t := range tickets {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := ticketToRow(t)
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "A", "B", 18)
	f.SetColWidth(sheet, "D", "D", 40)
	f.SetColWidth(sheet, "I", "I", 30)

	fileName := fmt.Sprintf("ticket_register_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	c.Response().WriteHeader(http.StatusOK)
	return f.Write(c.Response().Writer)
}
