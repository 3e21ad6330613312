package controllers

import (
	"invoicer-backend/database"
	"invoicer-backend/models"
	"invoicer-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func CreateBusinessProfile(c *fiber.Ctx) error {
	var data map[string]string
	if err := c.BodyParser(&data); err != nil {
		return err
	}

	userID := c.Locals("userID").(string)

	profile := models.BusinessProfile{
		UserId:       userID,
		BusinessName: data["business_name"],
		Email:        data["email"],
		Phone:        data["phone"],
		Address:      data["address"],
		City:         data["city"],
		State:        data["state"],
		ZipCode:      data["zip_code"],
		Country:      data["country"],
		LogoURL:      data["logo_url"],
	}
	if profile.BusinessName == "" {
		return fiber.NewError(fiber.StatusBadRequest, "business_name is required")
	}

	if err := database.FromCtx(c).Create(&profile).Error; err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(profile)
}

func GetBusinessProfiles(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	var profiles []models.BusinessProfile
	if err := database.FromCtx(c).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&profiles).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"businesses": profiles,
		"message":    "success",
	})
}

func GetBusinessProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	var profile models.BusinessProfile
	if err := database.FromCtx(c).
		Where("id = ? AND user_id = ?", c.Params("id"), userID).
		First(&profile).Error; err != nil {
		return err
	}
	return c.JSON(profile)
}

// businessPatch carries partial updates; nil fields are left untouched. This
// is the only path that may change LogoURL.
type businessPatch struct {
	BusinessName *string `json:"business_name"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	ZipCode      *string `json:"zip_code"`
	Country      *string `json:"country"`
	LogoURL      *string `json:"logo_url"`
}

func UpdateBusinessProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	var patch businessPatch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	utils.TrimDTO(&patch)

	db := database.FromCtx(c)

	var profile models.BusinessProfile
	if err := db.Where("id = ? AND user_id = ?", c.Params("id"), userID).First(&profile).Error; err != nil {
		return err
	}

	updates := utils.UpdatesFromPtrDTO(&patch)
	if len(updates) > 0 {
		if err := db.Model(&profile).Updates(updates).Error; err != nil {
			return err
		}
	}
	return c.JSON(profile)
}

func DeleteBusinessProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	db := database.FromCtx(c)
	res := db.Where("id = ? AND user_id = ?", c.Params("id"), userID).Delete(&models.BusinessProfile{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return c.JSON(fiber.Map{"message": "success"})
}
