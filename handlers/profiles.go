// handlers/profiles.go
package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// GetUserProfile returns the rolling counters for an account that has
// received at least one award. Public read.
func GetUserProfile(c *fiber.Ctx) error {
	account, err := parseID(c, "account")
	if err != nil {
		return err
	}

	profile, err := registry.GetUserProfile(account)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "profile": profile})
}

// GetUserReport returns a zero-defaulted profile snapshot plus global stats.
// Never 404s. Public read.
func GetUserReport(c *fiber.Ctx) error {
	account, err := parseID(c, "account")
	if err != nil {
		return err
	}

	report, err := registry.GetUserReport(account)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "report": report})
}
