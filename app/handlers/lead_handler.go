package handlers

import (
	"log"

	"github.com/gofiber/fiber/v3"
	"github.com/ilmi-school/landing-analytics/app/dto"
	businessflow "github.com/ilmi-school/landing-analytics/business_flow"
)

// LeadHandlerInterface defines the contract for the lead capture endpoints
type LeadHandlerInterface interface {
	FreeLessonLead(c fiber.Ctx) error
	FailedLead(c fiber.Ctx) error
}

type LeadHandler struct {
	flow businessflow.LeadFlow
}

func NewLeadHandler(flow businessflow.LeadFlow) LeadHandlerInterface {
	return &LeadHandler{flow: flow}
}

// ErrorResponse creates a standardized error response
func (h *LeadHandler) ErrorResponse(c fiber.Ctx, statusCode int, message string, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

// FreeLessonLead captures a free lesson signup
// @Summary Submit Free Lesson Lead
// @Tags Leads
// @Accept json
// @Produce json
// @Success 200 {object} dto.LeadAck
// @Router /api/leads/free-lesson/ [post]
func (h *LeadHandler) FreeLessonLead(c fiber.Ctx) error {
	var req dto.FreeLessonLeadRequest
	decodeLenient(c, &req)

	ctx, cancel := requestContext()
	defer cancel()

	lead, err := h.flow.SubmitFreeLessonLead(ctx, &req, clientMetadata(c))
	if err != nil {
		log.Println("free-lesson lead failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to capture lead", "FREE_LESSON_LEAD_FAILED", nil)
	}
	return c.JSON(dto.LeadAck{Success: true, ID: lead.ID})
}

// FailedLead captures a lead whose submission failed on the client
// @Summary Submit Failed Lead
// @Tags Leads
// @Accept json
// @Produce json
// @Success 200 {object} dto.TrackAck
// @Router /api/leads/failed/ [post]
func (h *LeadHandler) FailedLead(c fiber.Ctx) error {
	var req dto.FailedLeadRequest
	decodeLenient(c, &req)

	ctx, cancel := requestContext()
	defer cancel()

	if err := h.flow.SubmitFailedLead(ctx, &req, clientMetadata(c)); err != nil {
		log.Println("failed lead failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to capture lead", "FAILED_LEAD_FAILED", nil)
	}
	return c.JSON(dto.TrackAck{Success: true})
}
