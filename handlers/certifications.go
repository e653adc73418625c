// handlers/certifications.go
package handlers

import (
	"meritledger/middleware"

	"github.com/gofiber/fiber/v2"
)

type CreateCertificationRequest struct {
	Name                 string `json:"name"`
	Description          string `json:"description"`
	RequiredAchievements uint64 `json:"required_achievements"`
}

// CreateCertification stores a new certification definition. Issuer only.
func CreateCertification(c *fiber.Ctx) error {
	caller, err := middleware.GetAccountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req CreateCertificationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	id, err := registry.CreateCertification(caller, req.Name, req.Description, req.RequiredAchievements)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "id": id})
}

// DeactivateCertification flips a definition inactive. Owner or original
// issuer only.
func DeactivateCertification(c *fiber.Ctx) error {
	caller, err := middleware.GetAccountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := registry.DeactivateCertification(caller, id); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

// GetCertification returns a certification definition. Public read.
func GetCertification(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	certification, err := registry.GetCertification(id)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "certification": certification})
}
