package models

import (
	"context"
	"errors"
	"time"

	"github.com/shoplite/retail_backend/config"
	"github.com/shoplite/retail_backend/utils"
	"github.com/shopspring/decimal"
)

type Receivable struct {
	ID            string          `gorm:"primary_key;size:64" json:"id"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	Contact       string          `gorm:"size:64;not null" json:"contact"`
	Address       *string         `gorm:"size:255" json:"address"`
	Principal     decimal.Decimal `gorm:"type:decimal(13,2)" json:"principal"`
	InterestType  InterestType    `gorm:"size:20;not null" json:"interestType"`
	InterestValue decimal.Decimal `gorm:"type:decimal(13,2)" json:"interestValue"`
	DueDate       *time.Time      `json:"dueDate"`
	PaymentPlan   string          `gorm:"size:100;not null" json:"paymentPlan"`
	Status        DebtStatus      `gorm:"size:20;default:active" json:"status"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`

	Payments []ReceivablePayment `gorm:"foreignKey:ReceivableId;references:ID" json:"payments,omitempty"`
}

type ReceivablePayment struct {
	ID           int             `gorm:"primary_key;autoIncrement" json:"id"`
	ReceivableId string          `gorm:"size:64;not null;index" json:"receivableId"`
	Amount       decimal.Decimal `gorm:"type:decimal(13,2)" json:"amount"`
	Date         *time.Time      `json:"date"`
	Method       string          `gorm:"size:50" json:"method"`
}

type NewReceivable struct {
	ID            string          `json:"id"`
	Name          string          `json:"name" binding:"required"`
	Contact       string          `json:"contact" binding:"required"`
	Address       string          `json:"address"`
	Principal     decimal.Decimal `json:"principal"`
	InterestType  InterestType    `json:"interestType" binding:"required"`
	InterestValue decimal.Decimal `json:"interestValue"`
	DueDate       time.Time       `json:"dueDate" binding:"required"`
	PaymentPlan   string          `json:"paymentPlan" binding:"required"`
	Status        DebtStatus      `json:"status"`
}

type NewDebtPayment struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Date   *time.Time      `json:"date"`
	Method string          `json:"method" binding:"required"`
}

func CreateReceivable(ctx context.Context, input *NewReceivable) (*Receivable, error) {
	db := config.GetDB()

	status := input.Status
	if status == "" {
		status = DebtStatusActive
	}
	if !status.IsValid() {
		return nil, errors.New("invalid status")
	}

	receivable := Receivable{
		ID:            utils.ResourceId(input.ID),
		Name:          input.Name,
		Contact:       input.Contact,
		Address:       utils.NilIfEmpty(input.Address),
		Principal:     input.Principal,
		InterestType:  input.InterestType,
		InterestValue: input.InterestValue,
		DueDate:       &input.DueDate,
		PaymentPlan:   input.PaymentPlan,
		Status:        status,
	}
	if err := db.WithContext(ctx).Create(&receivable).Error; err != nil {
		return nil, err
	}
	return &receivable, nil
}

func GetReceivable(ctx context.Context, id string) (*Receivable, error) {
	db := config.GetDB()
	var result Receivable

	err := db.WithContext(ctx).Preload("Payments").Where("id = ?", id).Take(&result).Error
	if err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &result, nil
}

func GetReceivables(ctx context.Context) ([]*Receivable, error) {
	db := config.GetDB()
	var results []*Receivable

	if err := db.WithContext(ctx).Preload("Payments").Order("due_date").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func UpdateReceivable(ctx context.Context, id string, attrs map[string]interface{}) (*Receivable, error) {
	db := config.GetDB()
	var receivable Receivable

	if err := db.WithContext(ctx).Where("id = ?", id).Take(&receivable).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	if err := db.WithContext(ctx).Model(&receivable).Updates(attrs).Error; err != nil {
		return nil, err
	}
	return GetReceivable(ctx, id)
}

func DeleteReceivable(ctx context.Context, id string) error {
	db := config.GetDB()

	if err := db.WithContext(ctx).Where("receivable_id = ?", id).Delete(&ReceivablePayment{}).Error; err != nil {
		return err
	}
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&Receivable{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrorRecordNotFound
	}
	return nil
}

func AddReceivablePayment(ctx context.Context, receivableId string, input *NewDebtPayment) (*ReceivablePayment, error) {
	if err := utils.ValidateResourceId[Receivable](ctx, "", receivableId); err != nil {
		return nil, err
	}

	db := config.GetDB()
	date := time.Now()
	if input.Date != nil {
		date = *input.Date
	}

	payment := ReceivablePayment{
		ReceivableId: receivableId,
		Amount:       input.Amount,
		Date:         &date,
		Method:       input.Method,
	}
	if err := db.WithContext(ctx).Create(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func GetReceivablePayments(ctx context.Context, receivableId string) ([]*ReceivablePayment, error) {
	db := config.GetDB()
	var results []*ReceivablePayment

	err := db.WithContext(ctx).Where("receivable_id = ?", receivableId).Order("date").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
