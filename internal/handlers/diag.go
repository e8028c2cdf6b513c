package handlers

import "github.com/gofiber/fiber/v2"

func GetIP(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ip": clientIP(c)})
}

func GetHeaders(c *fiber.Ctx) error {
	return c.JSON(c.GetReqHeaders())
}
