package models

import (
	"context"
	"time"

	"github.com/shoplite/retail_backend/config"
	"github.com/shoplite/retail_backend/utils"
)

type Business struct {
	ID                    string            `gorm:"primary_key;size:64" json:"id"`
	Name                  string            `gorm:"size:255;not null" json:"name"`
	Country               string            `gorm:"size:100" json:"country"`
	BusinessContact       string            `gorm:"size:64" json:"businessContact"`
	AdminName             string            `gorm:"size:255" json:"adminName"`
	AdminContact          string            `gorm:"size:64" json:"adminContact"`
	IsPremium             *bool             `gorm:"default:false" json:"isPremium"`
	SubscriptionType      *SubscriptionType `gorm:"size:20" json:"subscriptionType"`
	SubscriptionStartDate *time.Time        `json:"subscriptionStartDate"`
	SubscriptionExpiry    *time.Time        `gorm:"column:subscription_expiry_date" json:"subscriptionExpiryDate"`
	TrialUsed             *bool             `gorm:"default:false" json:"trialUsed"`
	LastPaymentTxRef      *string           `gorm:"size:128" json:"lastPaymentTxRef"`
	CreatedAt             time.Time         `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt             time.Time         `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (business *Business) StoreRedis() error {
	return config.SetRedisObject("Business:"+business.ID, business, 0)
}

func (business *Business) RemoveRedis() error {
	return config.RemoveRedisKey("Business:" + business.ID)
}

type NewBusiness struct {
	ID               string            `json:"id" binding:"required"`
	Name             string            `json:"name" binding:"required"`
	Country          string            `json:"country"`
	BusinessContact  string            `json:"businessContact"`
	AdminName        string            `json:"adminName"`
	AdminContact     string            `json:"adminContact"`
	IsPremium        *bool             `json:"isPremium"`
	SubscriptionType *SubscriptionType `json:"subscriptionType"`
}

func CreateBusiness(ctx context.Context, input *NewBusiness) (*Business, error) {
	db := config.GetDB()

	isPremium := input.IsPremium
	if isPremium == nil {
		isPremium = utils.NewFalse()
	}

	business := Business{
		ID:               input.ID,
		Name:             input.Name,
		Country:          input.Country,
		BusinessContact:  input.BusinessContact,
		AdminName:        input.AdminName,
		AdminContact:     input.AdminContact,
		IsPremium:        isPremium,
		SubscriptionType: input.SubscriptionType,
		TrialUsed:        utils.NewFalse(),
	}

	if err := db.WithContext(ctx).Create(&business).Error; err != nil {
		return nil, err
	}
	return &business, nil
}

func GetBusiness(ctx context.Context, id string) (*Business, error) {
	var result Business

	exists, err := config.GetRedisObject("Business:"+id, &result)
	if err != nil {
		return nil, err
	}

	if !exists {
		db := config.GetDB()
		if err := db.WithContext(ctx).Where("id = ?", id).Take(&result).Error; err != nil {
			return nil, utils.ErrorRecordNotFound
		}
		if err := result.StoreRedis(); err != nil {
			return nil, err
		}
	}
	return &result, nil
}

func UpdateBusiness(ctx context.Context, id string, attrs map[string]interface{}) (*Business, error) {
	db := config.GetDB()
	var business Business

	if err := db.WithContext(ctx).Where("id = ?", id).Take(&business).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	if err := db.WithContext(ctx).Model(&business).Updates(attrs).Error; err != nil {
		return nil, err
	}
	if err := business.RemoveRedis(); err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Where("id = ?", id).Take(&business).Error; err != nil {
		return nil, err
	}
	return &business, nil
}

func DeleteBusiness(ctx context.Context, id string) error {
	db := config.GetDB()

	res := db.WithContext(ctx).Where("id = ?", id).Delete(&Business{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrorRecordNotFound
	}
	return (&Business{ID: id}).RemoveRedis()
}
