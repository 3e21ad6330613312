package controllers

import (
	"invoicer-backend/database"
	"invoicer-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type topClientRow struct {
	Id            uint            `json:"id"`
	Name          string          `json:"name"`
	InvoicesCount int64           `json:"invoices_count"`
	TotalInvoiced decimal.Decimal `json:"total_invoiced"`
}

// Dashboard aggregates the user's invoicing activity: revenue, status counts,
// the five most recent invoices, and the five clients with the highest
// invoiced amount.
func Dashboard(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	db := database.FromCtx(c)

	var totalRevenue decimal.NullDecimal
	if err := db.Model(&models.Invoice{}).
		Where("user_id = ?", userID).
		Select("SUM(total_amount)").
		Scan(&totalRevenue).Error; err != nil {
		return err
	}
	revenue := decimal.Zero
	if totalRevenue.Valid {
		revenue = totalRevenue.Decimal
	}

	var totalInvoices, paidCount, overdueCount, pendingCount int64
	if err := db.Model(&models.Invoice{}).Where("user_id = ?", userID).
		Count(&totalInvoices).Error; err != nil {
		return err
	}
	if err := db.Model(&models.Invoice{}).Where("user_id = ? AND status = ?", userID, "paid").
		Count(&paidCount).Error; err != nil {
		return err
	}
	if err := db.Model(&models.Invoice{}).Where("user_id = ? AND status = ?", userID, "overdue").
		Count(&overdueCount).Error; err != nil {
		return err
	}
	if err := db.Model(&models.Invoice{}).Where("user_id = ? AND status <> ?", userID, "paid").
		Count(&pendingCount).Error; err != nil {
		return err
	}

	var recent []models.Invoice
	if err := db.Preload("Client").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(5).
		Find(&recent).Error; err != nil {
		return err
	}

	var topClients []topClientRow
	if err := db.Model(&models.Client{}).
		Select("clients.id, clients.name, COUNT(invoices.id) AS invoices_count, COALESCE(SUM(invoices.total_amount), 0) AS total_invoiced").
		Joins("LEFT JOIN invoices ON invoices.c_id = clients.id").
		Where("clients.user_id = ?", userID).
		Group("clients.id, clients.name").
		Order("total_invoiced DESC").
		Limit(5).
		Scan(&topClients).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"total_revenue":   revenue,
		"total_invoices":  totalInvoices,
		"paid_count":      paidCount,
		"overdue_count":   overdueCount,
		"pending_count":   pendingCount,
		"recent_invoices": recent,
		"top_clients":     topClients,
	})
}
