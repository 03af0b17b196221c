package models

import (
	"context"
	"errors"
	"time"

	"github.com/shoplite/retail_backend/config"
	"github.com/shoplite/retail_backend/utils"
	"github.com/shopspring/decimal"
)

type Loan struct {
	ID            string          `gorm:"primary_key;size:64" json:"id"`
	LenderName    string          `gorm:"size:255;not null" json:"lenderName"`
	LenderContact string          `gorm:"size:64;not null" json:"lenderContact"`
	LenderAddress *string         `gorm:"size:255" json:"lenderAddress"`
	Principal     decimal.Decimal `gorm:"type:decimal(13,2)" json:"principal"`
	InterestType  InterestType    `gorm:"size:20;not null" json:"interestType"`
	InterestValue decimal.Decimal `gorm:"type:decimal(13,2)" json:"interestValue"`
	DueDate       *time.Time      `json:"dueDate"`
	PaymentPlan   string          `gorm:"size:100;not null" json:"paymentPlan"`
	Status        DebtStatus      `gorm:"size:20;default:active" json:"status"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`

	Payments []LoanPayment `gorm:"foreignKey:LoanId;references:ID" json:"payments,omitempty"`
}

type LoanPayment struct {
	ID     int             `gorm:"primary_key;autoIncrement" json:"id"`
	LoanId string          `gorm:"size:64;not null;index" json:"loanId"`
	Amount decimal.Decimal `gorm:"type:decimal(13,2)" json:"amount"`
	Date   *time.Time      `json:"date"`
	Method string          `gorm:"size:50" json:"method"`
}

type NewLoan struct {
	ID            string          `json:"id"`
	LenderName    string          `json:"lenderName" binding:"required"`
	LenderContact string          `json:"lenderContact" binding:"required"`
	LenderAddress string          `json:"lenderAddress"`
	Principal     decimal.Decimal `json:"principal"`
	InterestType  InterestType    `json:"interestType" binding:"required"`
	InterestValue decimal.Decimal `json:"interestValue"`
	DueDate       time.Time       `json:"dueDate" binding:"required"`
	PaymentPlan   string          `json:"paymentPlan" binding:"required"`
	Status        DebtStatus      `json:"status"`
}

func CreateLoan(ctx context.Context, input *NewLoan) (*Loan, error) {
	db := config.GetDB()

	status := input.Status
	if status == "" {
		status = DebtStatusActive
	}
	if !status.IsValid() {
		return nil, errors.New("invalid status")
	}

	loan := Loan{
		ID:            utils.ResourceId(input.ID),
		LenderName:    input.LenderName,
		LenderContact: input.LenderContact,
		LenderAddress: utils.NilIfEmpty(input.LenderAddress),
		Principal:     input.Principal,
		InterestType:  input.InterestType,
		InterestValue: input.InterestValue,
		DueDate:       &input.DueDate,
		PaymentPlan:   input.PaymentPlan,
		Status:        status,
	}
	if err := db.WithContext(ctx).Create(&loan).Error; err != nil {
		return nil, err
	}
	return &loan, nil
}

func GetLoan(ctx context.Context, id string) (*Loan, error) {
	db := config.GetDB()
	var result Loan

	err := db.WithContext(ctx).Preload("Payments").Where("id = ?", id).Take(&result).Error
	if err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &result, nil
}

func GetLoans(ctx context.Context) ([]*Loan, error) {
	db := config.GetDB()
	var results []*Loan

	if err := db.WithContext(ctx).Preload("Payments").Order("due_date").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func UpdateLoan(ctx context.Context, id string, attrs map[string]interface{}) (*Loan, error) {
	db := config.GetDB()
	var loan Loan

	if err := db.WithContext(ctx).Where("id = ?", id).Take(&loan).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	if err := db.WithContext(ctx).Model(&loan).Updates(attrs).Error; err != nil {
		return nil, err
	}
	return GetLoan(ctx, id)
}

func DeleteLoan(ctx context.Context, id string) error {
	db := config.GetDB()

	if err := db.WithContext(ctx).Where("loan_id = ?", id).Delete(&LoanPayment{}).Error; err != nil {
		return err
	}
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&Loan{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrorRecordNotFound
	}
	return nil
}

func AddLoanPayment(ctx context.Context, loanId string, input *NewDebtPayment) (*LoanPayment, error) {
	if err := utils.ValidateResourceId[Loan](ctx, "", loanId); err != nil {
		return nil, err
	}

	db := config.GetDB()
	date := time.Now()
	if input.Date != nil {
		date = *input.Date
	}

	payment := LoanPayment{
		LoanId: loanId,
		Amount: input.Amount,
		Date:   &date,
		Method: input.Method,
	}
	if err := db.WithContext(ctx).Create(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func GetLoanPayments(ctx context.Context, loanId string) ([]*LoanPayment, error) {
	db := config.GetDB()
	var results []*LoanPayment

	err := db.WithContext(ctx).Where("loan_id = ?", loanId).Order("date").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
