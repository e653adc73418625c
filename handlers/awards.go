// handlers/awards.go
package handlers

import (
	"meritledger/middleware"

	"github.com/gofiber/fiber/v2"
)

type AwardRequest struct {
	Account uint64 `json:"account"`
	ID      uint64 `json:"id"`
}

// AwardAchievement grants an achievement to an account. Issuer only.
func AwardAchievement(c *fiber.Ctx) error {
	caller, err := middleware.GetAccountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req AwardRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Account == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Account is required"})
	}

	if err := registry.AwardAchievement(caller, req.Account, req.ID); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

// AwardCertification grants a certification to an eligible account. Issuer
// only.
func AwardCertification(c *fiber.Ctx) error {
	caller, err := middleware.GetAccountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req AwardRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Account == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Account is required"})
	}

	if err := registry.AwardCertification(caller, req.Account, req.ID); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

// HasAchievement reports whether an account earned an achievement. Public
// read.
func HasAchievement(c *fiber.Ctx) error {
	account, err := parseID(c, "account")
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	has, err := registry.HasAchievement(account, id)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "has": has})
}

// HasCertification reports whether an account earned a certification. Public
// read.
func HasCertification(c *fiber.Ctx) error {
	account, err := parseID(c, "account")
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	has, err := registry.HasCertification(account, id)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "has": has})
}
