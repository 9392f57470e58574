package middleware

import (
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// trendIDRe matches canonical lowercase UUIDs (trend ids are UUIDv4).
var trendIDRe = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateTrendID checks that a trend ID is a well-formed UUID.
func ValidateTrendID(id string) (string, string) {
	id = strings.TrimSpace(strings.ToLower(id))
	if id == "" {
		return "", "trendId is required"
	}
	if !trendIDRe.MatchString(id) {
		return "", "trendId must be a valid UUID"
	}
	return id, ""
}

// ValidateChoice checks that a vote choice is exactly "a" or "b".
func ValidateChoice(choice string) (string, string) {
	choice = strings.TrimSpace(strings.ToLower(choice))
	if choice == "" {
		return "", "choice is required"
	}
	if choice != "a" && choice != "b" {
		return "", "choice must be \"a\" or \"b\""
	}
	return choice, ""
}
