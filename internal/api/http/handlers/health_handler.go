package handlers

import (
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	rosterPath  string
	resultsPath string
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version, rosterPath, resultsPath string) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		rosterPath:  rosterPath,
		resultsPath: resultsPath,
	}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports service readiness by checking file dependencies: the roster
// must be readable and the results directory writable.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	depStatus := fiber.Map{}
	ready := true

	if _, err := os.Stat(h.rosterPath); err != nil {
		depStatus["roster"] = err.Error()
		ready = false
	} else {
		depStatus["roster"] = "ok"
	}

	resultsDir := filepath.Dir(h.resultsPath)
	if info, err := os.Stat(resultsDir); err != nil || !info.IsDir() {
		depStatus["results_dir"] = "not a writable directory"
		ready = false
	} else {
		depStatus["results_dir"] = "ok"
	}

	if ready {
		return c.JSON(fiber.Map{
			"status":       "ready",
			"dependencies": depStatus,
		})
	}

	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    "DEPENDENCY_UNAVAILABLE",
			"message": "one or more dependencies unavailable",
			"details": depStatus,
		},
	})
}
