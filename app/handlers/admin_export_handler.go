package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/ilmi-school/landing-analytics/app/dto"
	businessflow "github.com/ilmi-school/landing-analytics/business_flow"
)

// AdminExportHandlerInterface defines the contract for API-key protected exports
type AdminExportHandlerInterface interface {
	ExportLeads(c fiber.Ctx) error
}

type AdminExportHandler struct {
	flow      businessflow.LeadExportFlow
	validator *validator.Validate
}

func NewAdminExportHandler(flow businessflow.LeadExportFlow) AdminExportHandlerInterface {
	return &AdminExportHandler{flow: flow, validator: validator.New()}
}

// ErrorResponse creates a standardized error response
func (h *AdminExportHandler) ErrorResponse(c fiber.Ctx, statusCode int, message string, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

// ExportLeads streams an XLSX export of captured leads
// @Summary Export Leads
// @Tags Admin
// @Produce application/octet-stream
// @Param kind query string true "Lead kind (free-lesson or failed)"
// @Success 200 {file} binary "XLSX file"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 404 {object} dto.APIResponse "No leads"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/admin/leads/export [get]
func (h *AdminExportHandler) ExportLeads(c fiber.Ctx) error {
	req := dto.AdminLeadExportRequest{Kind: c.Query("kind")}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", err.Error())
	}

	ctx, cancel := requestContext()
	defer cancel()

	filename, content, err := h.flow.ExportLeads(ctx, req.Kind)
	if err != nil {
		if businessflow.IsUnknownLeadKind(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Unknown lead kind", "UNKNOWN_LEAD_KIND", nil)
		}
		if businessflow.IsNoLeadsToExport(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "No leads to export", "NO_LEADS", nil)
		}
		log.Println("lead export failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to export leads", "LEAD_EXPORT_FAILED", nil)
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", "attachment; filename="+filename)
	return c.Send(content)
}
