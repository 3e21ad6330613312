package controllers

import (
	"invoicer-backend/database"
	"invoicer-backend/models"
	"invoicer-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func CreateClient(c *fiber.Ctx) error {
	var data map[string]string
	if err := c.BodyParser(&data); err != nil {
		return err
	}

	userID := c.Locals("userID").(string)

	client := models.Client{
		UserId:  userID,
		Name:    data["name"],
		Email:   data["email"],
		Phone:   data["phone"],
		Address: data["address"],
		City:    data["city"],
		State:   data["state"],
		ZipCode: data["zip_code"],
		Country: data["country"],
	}
	if client.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "client name is required")
	}

	db := database.FromCtx(c)
	if err := db.Create(&client).Error; err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(client)
}

func GetClients(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	var clients []models.Client
	db := database.FromCtx(c).Where("user_id = ?", userID)
	if q := c.Query("q"); q != "" {
		like := "%" + q + "%"
		db = db.Where("name ILIKE ? OR email ILIKE ?", like, like)
	}
	if err := db.Order("created_at DESC").Find(&clients).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"clients": clients,
		"message": "success",
	})
}

func GetClient(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	var client models.Client
	if err := database.FromCtx(c).
		Where("id = ? AND user_id = ?", c.Params("id"), userID).
		First(&client).Error; err != nil {
		return err
	}
	return c.JSON(client)
}

// clientPatch carries partial updates; nil fields are left untouched.
type clientPatch struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	City    *string `json:"city"`
	State   *string `json:"state"`
	ZipCode *string `json:"zip_code"`
	Country *string `json:"country"`
}

func UpdateClient(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	var patch clientPatch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	utils.TrimDTO(&patch)

	db := database.FromCtx(c)

	var client models.Client
	if err := db.Where("id = ? AND user_id = ?", c.Params("id"), userID).First(&client).Error; err != nil {
		return err
	}

	updates := utils.UpdatesFromPtrDTO(&patch)
	if len(updates) > 0 {
		if err := db.Model(&client).Updates(updates).Error; err != nil {
			return err
		}
	}
	return c.JSON(client)
}

func DeleteClient(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	db := database.FromCtx(c)
	res := db.Where("id = ? AND user_id = ?", c.Params("id"), userID).Delete(&models.Client{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return c.JSON(fiber.Map{"message": "success"})
}
