package models

import (
	"context"
	"errors"
	"time"

	"github.com/shoplite/retail_backend/config"
	"github.com/shoplite/retail_backend/utils"
	"github.com/shopspring/decimal"
)

type Return struct {
	ID                string          `gorm:"primary_key;size:64" json:"id"`
	OriginalSaleId    string          `gorm:"size:64;not null;index" json:"originalSaleId"`
	TotalReturnAmount decimal.Decimal `gorm:"type:decimal(13,2)" json:"totalReturnAmount"`
	GrandReturnAmount decimal.Decimal `gorm:"type:decimal(13,2)" json:"grandReturnAmount"`
	Vat               decimal.Decimal `gorm:"type:decimal(13,2)" json:"vat"`
	TurnoverTax       decimal.Decimal `gorm:"type:decimal(13,2)" json:"turnoverTax"`
	Levy              decimal.Decimal `gorm:"type:decimal(13,2)" json:"levy"`
	Date              *time.Time      `json:"date"`
	ShopId            string          `gorm:"size:64;not null;index" json:"shopId"`
	BusinessId        *string         `gorm:"size:64;index" json:"businessId"`
	CreatedBy         *string         `gorm:"size:64" json:"createdBy"`
	Reason            *string         `gorm:"size:500" json:"reason"`
	Status            ReturnStatus    `gorm:"size:20;default:pending" json:"status"`
	ApprovedBy        *string         `gorm:"size:64" json:"approvedBy"`
	ApprovedAt        *time.Time      `json:"approvedAt"`
	RejectedBy        *string         `gorm:"size:64" json:"rejectedBy"`
	RejectionReason   *string         `gorm:"size:500" json:"rejectionReason"`
	RejectedAt        *time.Time      `json:"rejectedAt"`
	CreatedAt         time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt         time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`

	Items []ReturnItem `gorm:"foreignKey:ReturnId;references:ID" json:"items,omitempty"`
}

type ReturnItem struct {
	ID            int             `gorm:"primary_key;autoIncrement" json:"id"`
	ReturnId      string          `gorm:"size:64;not null;index" json:"returnId"`
	ProductId     *string         `gorm:"size:64" json:"productId"`
	ProductName   string          `gorm:"size:255" json:"productName"`
	Quantity      int             `gorm:"not null;default:0" json:"quantity"`
	OriginalPrice decimal.Decimal `gorm:"type:decimal(13,2)" json:"originalPrice"`
	Reason        *string         `gorm:"size:500" json:"reason"`
	ShopId        string          `gorm:"size:64;not null" json:"shopId"`
}

type NewReturn struct {
	ID                string          `json:"id"`
	OriginalSaleId    string          `json:"originalSaleId" binding:"required"`
	TotalReturnAmount decimal.Decimal `json:"totalReturnAmount"`
	GrandReturnAmount decimal.Decimal `json:"grandReturnAmount"`
	Vat               decimal.Decimal `json:"vat"`
	TurnoverTax       decimal.Decimal `json:"turnoverTax"`
	Levy              decimal.Decimal `json:"levy"`
	Date              *time.Time      `json:"date"`
	ShopId            string          `json:"shopId" binding:"required"`
	BusinessId        string          `json:"businessId"`
	CreatedBy         string          `json:"createdBy"`
	Reason            string          `json:"reason"`
	Items             []NewReturnItem `json:"items" binding:"required,min=1"`
}

type NewReturnItem struct {
	ProductId     string          `json:"productId"`
	ProductName   string          `json:"productName"`
	Quantity      int             `json:"quantity" binding:"required"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
	Reason        string          `json:"reason"`
	ShopId        string          `json:"shopId"`
}

var (
	ErrReturnNotPending  = errors.New("only pending returns can be modified")
	ErrReturnNotApproved = errors.New("only approved returns can be completed")
)

// CreateReturn persists a pending return with its items and restocks the
// returned goods.
func CreateReturn(ctx context.Context, input *NewReturn) (*Return, error) {
	if err := utils.ValidateResourceId[Sale](ctx, "", input.OriginalSaleId); err != nil {
		return nil, errors.New("original sale not found")
	}

	db := config.GetDB()

	id := input.ID
	if id == "" {
		id = utils.GenerateReturnId()
	}
	date := time.Now()
	if input.Date != nil {
		date = *input.Date
	}

	ret := Return{
		ID:                id,
		OriginalSaleId:    input.OriginalSaleId,
		TotalReturnAmount: input.TotalReturnAmount,
		GrandReturnAmount: input.GrandReturnAmount,
		Vat:               input.Vat,
		TurnoverTax:       input.TurnoverTax,
		Levy:              input.Levy,
		Date:              &date,
		ShopId:            input.ShopId,
		BusinessId:        utils.NilIfEmpty(input.BusinessId),
		CreatedBy:         utils.NilIfEmpty(input.CreatedBy),
		Reason:            utils.NilIfEmpty(input.Reason),
		Status:            ReturnStatusPending,
	}
	for _, item := range input.Items {
		shopId := item.ShopId
		if shopId == "" {
			shopId = input.ShopId
		}
		ret.Items = append(ret.Items, ReturnItem{
			ProductId:     utils.NilIfEmpty(item.ProductId),
			ProductName:   item.ProductName,
			Quantity:      item.Quantity,
			OriginalPrice: item.OriginalPrice,
			Reason:        utils.NilIfEmpty(item.Reason),
			ShopId:        shopId,
		})
	}

	if err := db.WithContext(ctx).Create(&ret).Error; err != nil {
		return nil, err
	}

	ApplyReturnInventoryEvent(ctx, newReturnInventoryEvent(ReturnEventCreated, ret.ID, ret.Items))

	return &ret, nil
}

func GetReturn(ctx context.Context, id string) (*Return, error) {
	db := config.GetDB()
	var result Return

	err := db.WithContext(ctx).Preload("Items").Where("id = ?", id).Take(&result).Error
	if err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &result, nil
}

func GetReturnsByBusiness(ctx context.Context, businessId string, shopId string) ([]*Return, error) {
	db := config.GetDB()
	var results []*Return

	dbCtx := db.WithContext(ctx).Preload("Items").Where("business_id = ?", businessId)
	if shopId != "" {
		dbCtx = dbCtx.Where("shop_id = ?", shopId)
	}
	if err := dbCtx.Order("date DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func GetReturnsBySale(ctx context.Context, saleId string) ([]*Return, error) {
	db := config.GetDB()
	var results []*Return

	err := db.WithContext(ctx).Preload("Items").
		Where("original_sale_id = ?", saleId).
		Order("date DESC").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func ApproveReturn(ctx context.Context, id string, approvedBy string) (*Return, error) {
	if approvedBy == "" {
		return nil, errors.New("approvedBy is required")
	}

	ret, err := GetReturn(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransitionReturn(ret.Status, ReturnStatusApproved) {
		return nil, ErrReturnNotPending
	}

	db := config.GetDB()
	now := time.Now()
	attrs := map[string]interface{}{
		"status":      ReturnStatusApproved,
		"approved_by": approvedBy,
		"approved_at": now,
	}
	if err := db.WithContext(ctx).Model(&Return{}).Where("id = ?", id).Updates(attrs).Error; err != nil {
		return nil, err
	}
	return GetReturn(ctx, id)
}

func RejectReturn(ctx context.Context, id string, rejectedBy string, rejectionReason string) (*Return, error) {
	if rejectedBy == "" || rejectionReason == "" {
		return nil, errors.New("rejectedBy and rejectionReason are required")
	}

	ret, err := GetReturn(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransitionReturn(ret.Status, ReturnStatusRejected) {
		return nil, ErrReturnNotPending
	}

	db := config.GetDB()
	now := time.Now()
	attrs := map[string]interface{}{
		"status":           ReturnStatusRejected,
		"rejected_by":      rejectedBy,
		"rejection_reason": rejectionReason,
		"rejected_at":      now,
	}
	if err := db.WithContext(ctx).Model(&Return{}).Where("id = ?", id).Updates(attrs).Error; err != nil {
		return nil, err
	}

	ApplyReturnInventoryEvent(ctx, newReturnInventoryEvent(ReturnEventRejected, ret.ID, ret.Items))

	return GetReturn(ctx, id)
}

func CompleteReturn(ctx context.Context, id string) (*Return, error) {
	ret, err := GetReturn(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransitionReturn(ret.Status, ReturnStatusCompleted) {
		return nil, ErrReturnNotApproved
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(&Return{}).Where("id = ?", id).
		Update("status", ReturnStatusCompleted).Error
	if err != nil {
		return nil, err
	}
	return GetReturn(ctx, id)
}

// DeleteReturn removes a pending return and takes back its restock.
func DeleteReturn(ctx context.Context, id string) error {
	ret, err := GetReturn(ctx, id)
	if err != nil {
		return err
	}
	if ret.Status != ReturnStatusPending {
		return ErrReturnNotPending
	}

	ApplyReturnInventoryEvent(ctx, newReturnInventoryEvent(ReturnEventDeleted, ret.ID, ret.Items))

	db := config.GetDB()
	if err := db.WithContext(ctx).Where("return_id = ?", id).Delete(&ReturnItem{}).Error; err != nil {
		return err
	}
	return db.WithContext(ctx).Where("id = ?", id).Delete(&Return{}).Error
}
