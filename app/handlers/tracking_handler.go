package handlers

import (
	"log"

	"github.com/gofiber/fiber/v3"
	"github.com/ilmi-school/landing-analytics/app/dto"
	businessflow "github.com/ilmi-school/landing-analytics/business_flow"
)

// TrackingHandlerInterface defines the contract for the public tracking endpoints
type TrackingHandlerInterface interface {
	RegisterSession(c fiber.Ctx) error
	PageView(c fiber.Ctx) error
	SectionView(c fiber.Ctx) error
	ClickEvent(c fiber.Ctx) error
}

// TrackingHandler handles the four fire-and-forget tracking endpoints.
// Every call answers 200 with a fixed acknowledgement; only storage-layer
// failures surface, as transport-level server errors.
type TrackingHandler struct {
	flow businessflow.TrackingFlow
}

func NewTrackingHandler(flow businessflow.TrackingFlow) TrackingHandlerInterface {
	return &TrackingHandler{flow: flow}
}

// ErrorResponse creates a standardized error response
func (h *TrackingHandler) ErrorResponse(c fiber.Ctx, statusCode int, message string, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

// RegisterSession registers or refreshes a visitor session
// @Summary Register Session
// @Tags Tracking
// @Accept json
// @Produce json
// @Success 200 {object} dto.TrackAck
// @Router /api/track/register-session/ [post]
func (h *TrackingHandler) RegisterSession(c fiber.Ctx) error {
	var req dto.RegisterSessionRequest
	decodeLenient(c, &req)

	ctx, cancel := requestContext()
	defer cancel()

	if err := h.flow.RegisterSession(ctx, &req, clientMetadata(c)); err != nil {
		log.Println("register-session failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to register session", "REGISTER_SESSION_FAILED", nil)
	}
	return c.JSON(dto.TrackAck{Success: true})
}

// PageView records a page load
// @Summary Record Page View
// @Tags Tracking
// @Accept json
// @Produce json
// @Success 200 {object} dto.TrackAck
// @Router /api/track/page-view/ [post]
func (h *TrackingHandler) PageView(c fiber.Ctx) error {
	var req dto.PageViewRequest
	decodeLenient(c, &req)

	ctx, cancel := requestContext()
	defer cancel()

	if err := h.flow.RecordPageView(ctx, &req, clientMetadata(c)); err != nil {
		log.Println("page-view failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to record page view", "PAGE_VIEW_FAILED", nil)
	}
	return c.JSON(dto.TrackAck{Success: true})
}

// SectionView records a landing-page section becoming visible
// @Summary Record Section View
// @Tags Tracking
// @Accept json
// @Produce json
// @Success 200 {object} dto.TrackAck
// @Router /api/track/section-view/ [post]
func (h *TrackingHandler) SectionView(c fiber.Ctx) error {
	var req dto.SectionViewRequest
	decodeLenient(c, &req)

	ctx, cancel := requestContext()
	defer cancel()

	if err := h.flow.RecordSectionView(ctx, &req, clientMetadata(c)); err != nil {
		log.Println("section-view failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to record section view", "SECTION_VIEW_FAILED", nil)
	}
	return c.JSON(dto.TrackAck{Success: true})
}

// ClickEvent records a click on a tracked control
// @Summary Record Click Event
// @Tags Tracking
// @Accept json
// @Produce json
// @Success 200 {object} dto.TrackAck
// @Router /api/track/event/ [post]
func (h *TrackingHandler) ClickEvent(c fiber.Ctx) error {
	var req dto.ClickEventRequest
	decodeLenient(c, &req)

	ctx, cancel := requestContext()
	defer cancel()

	if err := h.flow.RecordClickEvent(ctx, &req, clientMetadata(c)); err != nil {
		log.Println("click-event failed:", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to record click event", "CLICK_EVENT_FAILED", nil)
	}
	return c.JSON(dto.TrackAck{Success: true})
}
