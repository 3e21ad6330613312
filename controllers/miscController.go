package controllers

import (
	"encoding/json"
	"strings"
	"time"

	"invoicer-backend/database"
	"invoicer-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// TrackAdClick logs a click on a partner placement. The endpoint is public and
// tolerant: an unparsable body still records a row, and a storage failure
// never surfaces to the caller.
func TrackAdClick(c *fiber.Ctx) error {
	var data map[string]any
	if err := json.Unmarshal(c.Body(), &data); err != nil {
		data = map[string]any{}
	}

	str := func(keys ...string) string {
		for _, k := range keys {
			if v, ok := data[k].(string); ok && v != "" {
				return v
			}
		}
		return ""
	}

	click := models.AdClick{
		AdIdentifier: str("ad_id", "ad_identifier"),
		Placement:    str("placement"),
		TargetURL:    str("url", "target_url"),
	}
	if click.AdIdentifier == "" {
		click.AdIdentifier = "unknown"
	}
	if len(data) > 0 {
		if raw, err := json.Marshal(data); err == nil {
			click.Metadata = datatypes.JSON(raw)
		}
	}

	_ = database.DB.Create(&click).Error

	return c.JSON(fiber.Map{"status": "ok"})
}

// ExchangeRate proxies a simple rate lookup: ?base=USD&target=EUR.
func ExchangeRate(c *fiber.Ctx) error {
	base := strings.ToUpper(strings.TrimSpace(c.Query("base", "USD")))
	target := strings.ToUpper(strings.TrimSpace(c.Query("target", "USD")))

	if base == target {
		return c.JSON(fiber.Map{"rate": 1.0})
	}

	agent := fiber.Get("https://api.exchangerate.host/latest?base=" + base + "&symbols=" + target)
	agent.Timeout(5 * time.Second)

	code, body, errs := agent.Bytes()
	if len(errs) > 0 || code < 200 || code >= 300 {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "rate lookup failed"})
	}

	var payload struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "rate lookup failed"})
	}
	rate, ok := payload.Rates[target]
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "rate not found"})
	}
	return c.JSON(fiber.Map{"rate": rate})
}
