package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"storescan-go/internal/service"
	"storescan-go/pkg/logger"
)

// Handler exposes the analysis pipeline over HTTP.
type Handler struct {
	reports service.ReportService
	regions service.RegionService
	log     *logger.Logger
}

func New(reports service.ReportService, regions service.RegionService) *Handler {
	return &Handler{
		reports: reports,
		regions: regions,
		log:     logger.GetLogger().WithField("component", "http_handler"),
	}
}

// Register mounts all routes on the app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/healthz", h.health)

	v1 := app.Group("/api/v1")
	v1.Get("/regions/provinces", h.listProvinces)
	v1.Get("/regions/districts", h.listDistricts)
	v1.Get("/regions/subdistricts", h.listSubDistricts)
	v1.Post("/reports", h.createReport)
}

func (h *Handler) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *Handler) listProvinces(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"provinces": orEmpty(h.regions.Provinces())})
}

func (h *Handler) listDistricts(c *fiber.Ctx) error {
	province := c.Query("province")
	if province == "" {
		return fiber.NewError(fiber.StatusBadRequest, "province query parameter is required")
	}
	return c.JSON(fiber.Map{"districts": orEmpty(h.regions.Districts(province))})
}

func (h *Handler) listSubDistricts(c *fiber.Ctx) error {
	province := c.Query("province")
	district := c.Query("district")
	if province == "" || district == "" {
		return fiber.NewError(fiber.StatusBadRequest, "province and district query parameters are required")
	}
	return c.JSON(fiber.Map{"sub_districts": orEmpty(h.regions.SubDistricts(province, district))})
}

func (h *Handler) createReport(c *fiber.Ctx) error {
	var req service.ReportRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if strings.TrimSpace(req.ShopName) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "shop_name is required")
	}
	if req.Category == "" && len(req.MenuItems) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "category or menu_items are required")
	}

	result, err := h.reports.Analyze(c.UserContext(), req)
	if err != nil {
		h.log.WithError(err).Error("Report analysis failed")
		return fiber.NewError(fiber.StatusInternalServerError, "analysis failed")
	}

	return c.JSON(result)
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
