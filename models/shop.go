package models

import (
	"context"
	"time"

	"github.com/shoplite/retail_backend/config"
	"github.com/shoplite/retail_backend/utils"
)

type Shop struct {
	ID         string    `gorm:"primary_key;size:64" json:"id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Location   string    `gorm:"size:255" json:"location"`
	BusinessId string    `gorm:"size:64;not null;index" json:"businessId"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

type NewShop struct {
	ID         string `json:"id"`
	Name       string `json:"name" binding:"required"`
	Location   string `json:"location"`
	BusinessId string `json:"businessId" binding:"required"`
}

func CreateShop(ctx context.Context, input *NewShop) (*Shop, error) {
	db := config.GetDB()

	shop := Shop{
		ID:         utils.ResourceId(input.ID),
		Name:       input.Name,
		Location:   input.Location,
		BusinessId: input.BusinessId,
	}
	if err := db.WithContext(ctx).Create(&shop).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func GetShop(ctx context.Context, id string) (*Shop, error) {
	db := config.GetDB()
	var result Shop

	if err := db.WithContext(ctx).Where("id = ?", id).Take(&result).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &result, nil
}

func GetShopsByBusiness(ctx context.Context, businessId string) ([]*Shop, error) {
	db := config.GetDB()
	var results []*Shop

	if err := db.WithContext(ctx).Where("business_id = ?", businessId).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func UpdateShop(ctx context.Context, id string, attrs map[string]interface{}) (*Shop, error) {
	db := config.GetDB()
	var shop Shop

	if err := db.WithContext(ctx).Where("id = ?", id).Take(&shop).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	if err := db.WithContext(ctx).Model(&shop).Updates(attrs).Error; err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Where("id = ?", id).Take(&shop).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func DeleteShop(ctx context.Context, id string) error {
	db := config.GetDB()

	res := db.WithContext(ctx).Where("id = ?", id).Delete(&Shop{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrorRecordNotFound
	}
	return nil
}
