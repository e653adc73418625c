// handlers/achievements.go
package handlers

import (
	"meritledger/middleware"

	"github.com/gofiber/fiber/v2"
)

type CreateAchievementRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	RewardAmount uint64 `json:"reward_amount"`
}

// CreateAchievement stores a new achievement definition. Issuer only.
func CreateAchievement(c *fiber.Ctx) error {
	caller, err := middleware.GetAccountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req CreateAchievementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	id, err := registry.CreateAchievement(caller, req.Name, req.Description, req.Category, req.RewardAmount)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "id": id})
}

// DeactivateAchievement flips a definition inactive. Owner or original
// issuer only.
func DeactivateAchievement(c *fiber.Ctx) error {
	caller, err := middleware.GetAccountID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := registry.DeactivateAchievement(caller, id); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

// GetAchievement returns an achievement definition. Public read.
func GetAchievement(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	achievement, err := registry.GetAchievement(id)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "achievement": achievement})
}
