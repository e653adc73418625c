// handlers/registry.go - Owner operations and global reads
package handlers

import (
	"meritledger/middleware"
	"meritledger/services"

	"github.com/gofiber/fiber/v2"
)

type AmountRequest struct {
	Amount uint64 `json:"amount"`
}

// FundRegistry adds to the reward balance. Owner only.
func FundRegistry(c *fiber.Ctx) error {
	caller, err := middleware.GetAccountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req AmountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	balance, err := registry.FundRegistry(caller, req.Amount)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "balance": balance})
}

// WithdrawRegistryFunds removes from the reward balance. Owner only.
func WithdrawRegistryFunds(c *fiber.Ctx) error {
	caller, err := middleware.GetAccountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req AmountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	balance, err := registry.WithdrawRegistryFunds(caller, req.Amount)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "balance": balance})
}

// EmergencyPause halts all mutating operations. Owner only.
func EmergencyPause(c *fiber.Ctx) error {
	caller, err := middleware.GetAccountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	if err := registry.EmergencyPause(caller); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

// ResumeOperations clears the pause flag. Owner only.
func ResumeOperations(c *fiber.Ctx) error {
	caller, err := middleware.GetAccountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	if err := registry.ResumeOperations(caller); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

// ManualCleanup triggers a stale guest sweep. Owner only.
func ManualCleanup(c *fiber.Ctx) error {
	caller, err := middleware.GetAccountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}
	if !registry.IsOwner(caller) {
		return fail(c, services.ErrUnauthorized)
	}

	deleted, err := services.GetCleanupService().CleanupStaleGuests()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Cleanup failed"})
	}

	return c.JSON(fiber.Map{"success": true, "deleted": deleted})
}

// GetRegistryStats returns the global counters. Public read.
func GetRegistryStats(c *fiber.Ctx) error {
	stats, err := registry.GetRegistryStats()
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "stats": stats})
}

// GetRegistryHealth returns counters, balance, pause flag and owner. Public
// read.
func GetRegistryHealth(c *fiber.Ctx) error {
	health, err := registry.GetRegistryHealth()
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "health": health})
}
