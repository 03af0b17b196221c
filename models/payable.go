package models

import (
	"context"
	"errors"
	"time"

	"github.com/shoplite/retail_backend/config"
	"github.com/shoplite/retail_backend/utils"
	"github.com/shopspring/decimal"
)

type Payable struct {
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

	Payments []PayablePayment `gorm:"foreignKey:PayableId;references:ID" json:"payments,omitempty"`
}

type PayablePayment struct {
	ID        int             `gorm:"primary_key;autoIncrement" json:"id"`
	PayableId string          `gorm:"size:64;not null;index" json:"payableId"`
	Amount    decimal.Decimal `gorm:"type:decimal(13,2)" json:"amount"`
	Date      *time.Time      `json:"date"`
	Method    string          `gorm:"size:50" json:"method"`
}

type NewPayable struct {
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

func CreatePayable(ctx context.Context, input *NewPayable) (*Payable, error) {
	db := config.GetDB()

	status := input.Status
	if status == "" {
		status = DebtStatusActive
	}
	if !status.IsValid() {
		return nil, errors.New("invalid status")
	}

	payable := Payable{
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
	if err := db.WithContext(ctx).Create(&payable).Error; err != nil {
		return nil, err
	}
	return &payable, nil
}

func GetPayable(ctx context.Context, id string) (*Payable, error) {
	db := config.GetDB()
	var result Payable

	err := db.WithContext(ctx).Preload("Payments").Where("id = ?", id).Take(&result).Error
	if err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &result, nil
}

func GetPayables(ctx context.Context) ([]*Payable, error) {
	db := config.GetDB()
	var results []*Payable

	if err := db.WithContext(ctx).Preload("Payments").Order("due_date").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func UpdatePayable(ctx context.Context, id string, attrs map[string]interface{}) (*Payable, error) {
	db := config.GetDB()
	var payable Payable

	if err := db.WithContext(ctx).Where("id = ?", id).Take(&payable).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	if err := db.WithContext(ctx).Model(&payable).Updates(attrs).Error; err != nil {
		return nil, err
	}
	return GetPayable(ctx, id)
}

func DeletePayable(ctx context.Context, id string) error {
	db := config.GetDB()

	if err := db.WithContext(ctx).Where("payable_id = ?", id).Delete(&PayablePayment{}).Error; err != nil {
		return err
	}
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&Payable{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrorRecordNotFound
	}
	return nil
}

func AddPayablePayment(ctx context.Context, payableId string, input *NewDebtPayment) (*PayablePayment, error) {
	if err := utils.ValidateResourceId[Payable](ctx, "", payableId); err != nil {
		return nil, err
	}

	db := config.GetDB()
	date := time.Now()
	if input.Date != nil {
		date = *input.Date
	}

	payment := PayablePayment{
		PayableId: payableId,
		Amount:    input.Amount,
		Date:      &date,
		Method:    input.Method,
	}
	if err := db.WithContext(ctx).Create(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func GetPayablePayments(ctx context.Context, payableId string) ([]*PayablePayment, error) {
	db := config.GetDB()
	var results []*PayablePayment

	err := db.WithContext(ctx).Where("payable_id = ?", payableId).Order("date").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
