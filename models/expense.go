package models

import (
	"context"
	"time"

	"github.com/shoplite/retail_backend/config"
	"github.com/shoplite/retail_backend/utils"
	"github.com/shopspring/decimal"
)

type Expense struct {
	ID          string          `gorm:"primary_key;size:64" json:"id"`
	Description string          `gorm:"size:500" json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(13,2)" json:"amount"`
	Date        *time.Time      `json:"date"`
	Category    string          `gorm:"size:100;default:Uncategorized" json:"category"`
	CreatedBy   string          `gorm:"size:64;not null" json:"createdBy"`
	ShopId      string          `gorm:"size:64;not null;index" json:"shopId"`
	BusinessId  *string         `gorm:"size:64;index" json:"businessId"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

type NewExpense struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        *time.Time      `json:"date"`
	Category    string          `json:"category"`
	CreatedBy   string          `json:"createdBy" binding:"required"`
	ShopId      string          `json:"shopId" binding:"required"`
	BusinessId  string          `json:"businessId"`
}

func CreateExpense(ctx context.Context, input *NewExpense) (*Expense, error) {
	db := config.GetDB()

	category := input.Category
	if category == "" {
		category = "Uncategorized"
	}
	date := time.Now()
	if input.Date != nil {
		date = *input.Date
	}

	expense := Expense{
		ID:          utils.ResourceId(input.ID),
		Description: input.Description,
		Amount:      input.Amount,
		Date:        &date,
		Category:    category,
		CreatedBy:   input.CreatedBy,
		ShopId:      input.ShopId,
		BusinessId:  utils.NilIfEmpty(input.BusinessId),
	}
	if err := db.WithContext(ctx).Create(&expense).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

func GetExpense(ctx context.Context, id string) (*Expense, error) {
	db := config.GetDB()
	var result Expense

	if err := db.WithContext(ctx).Where("id = ?", id).Take(&result).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &result, nil
}

func GetExpensesByBusiness(ctx context.Context, businessId string, shopId string) ([]*Expense, error) {
	db := config.GetDB()
	var results []*Expense

	dbCtx := db.WithContext(ctx).Where("business_id = ?", businessId)
	if shopId != "" {
		dbCtx = dbCtx.Where("shop_id = ?", shopId)
	}
	if err := dbCtx.Order("date DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func UpdateExpense(ctx context.Context, id string, attrs map[string]interface{}) (*Expense, error) {
	db := config.GetDB()
	var expense Expense

	if err := db.WithContext(ctx).Where("id = ?", id).Take(&expense).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	if err := db.WithContext(ctx).Model(&expense).Updates(attrs).Error; err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Where("id = ?", id).Take(&expense).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

func DeleteExpense(ctx context.Context, id string) error {
	db := config.GetDB()

	res := db.WithContext(ctx).Where("id = ?", id).Delete(&Expense{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrorRecordNotFound
	}
	return nil
}
