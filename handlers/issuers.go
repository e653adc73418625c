// handlers/issuers.go
package handlers

import (
	"meritledger/middleware"

	"github.com/gofiber/fiber/v2"
)

type RegisterIssuerRequest struct {
	Account     uint64 `json:"account"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// RegisterIssuer authorizes an account as an issuer. Owner only.
func RegisterIssuer(c *fiber.Ctx) error {
	caller, err := middleware.GetAccountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req RegisterIssuerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Account == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Account is required"})
	}

	if err := registry.RegisterIssuer(caller, req.Account, req.Name, req.Description); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

// DeactivateIssuer revokes an issuer's authorization. Owner only.
func DeactivateIssuer(c *fiber.Ctx) error {
	caller, err := middleware.GetAccountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	account, err := parseID(c, "account")
	if err != nil {
		return err
	}

	if err := registry.DeactivateIssuer(caller, account); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

// GetIssuerInfo returns an issuer record. Public read.
func GetIssuerInfo(c *fiber.Ctx) error {
	account, err := parseID(c, "account")
	if err != nil {
		return err
	}

	issuer, err := registry.GetIssuerInfo(account)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "issuer": issuer})
}
