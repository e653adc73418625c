// handlers/rewards.go
package handlers

import (
	"meritledger/middleware"

	"github.com/gofiber/fiber/v2"
)

type ClaimRewardRequest struct {
	AchievementID uint64 `json:"achievement_id"`
}

// ClaimReward pays out an earned achievement reward to the caller.
func ClaimReward(c *fiber.Ctx) error {
	caller, err := middleware.GetAccountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req ClaimRewardRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	amount, err := registry.ClaimAchievementReward(caller, req.AchievementID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "amount": amount})
}
