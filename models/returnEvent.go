package models

import (
	"context"

	"github.com/shoplite/retail_backend/config"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ReturnEventKind string

const (
	ReturnEventCreated  ReturnEventKind = "return_created"
	ReturnEventRejected ReturnEventKind = "return_rejected"
	ReturnEventDeleted  ReturnEventKind = "return_deleted"
)

// ReturnInventoryEvent describes the stock adjustment a return lifecycle
// change implies. Creation restocks returned goods; rejection and deletion
// take the restock back.
type ReturnInventoryEvent struct {
	Kind     ReturnEventKind
	ReturnId string
	Items    []ReturnEventItem
}

type ReturnEventItem struct {
	ProductId string
	Quantity  int
}

func (kind ReturnEventKind) quantityDelta(qty int) int {
	if kind == ReturnEventCreated {
		return qty
	}
	return -qty
}

// stock never goes negative when a restock is reversed
func applyDelta(current int, delta int) int {
	next := current + delta
	if next < 0 {
		return 0
	}
	return next
}

func newReturnInventoryEvent(kind ReturnEventKind, returnId string, items []ReturnItem) ReturnInventoryEvent {
	ev := ReturnInventoryEvent{Kind: kind, ReturnId: returnId}
	for _, item := range items {
		if item.ProductId == nil || *item.ProductId == "" || item.Quantity == 0 {
			continue
		}
		ev.Items = append(ev.Items, ReturnEventItem{ProductId: *item.ProductId, Quantity: item.Quantity})
	}
	return ev
}

// ApplyReturnInventoryEvent adjusts inventory rows per event item. Products
// without an inventory row are skipped; one failed adjustment does not stop
// the rest.
func ApplyReturnInventoryEvent(ctx context.Context, ev ReturnInventoryEvent) {
	db := config.GetDB()
	logger := config.GetLogger()

	for _, item := range ev.Items {
		var inv Inventory
		err := db.WithContext(ctx).Where("id = ?", item.ProductId).Take(&inv).Error
		if err == gorm.ErrRecordNotFound {
			logger.WithFields(logrus.Fields{
				"module":    "models",
				"funcName":  "ApplyReturnInventoryEvent",
				"returnId":  ev.ReturnId,
				"productId": item.ProductId,
				"kind":      ev.Kind,
			}).Warn("inventory row missing, adjustment skipped")
			continue
		}
		if err != nil {
			config.LogError(logger, "models", "ApplyReturnInventoryEvent", "fetching inventory", item.ProductId, err)
			continue
		}

		newQty := applyDelta(inv.Quantity, ev.Kind.quantityDelta(item.Quantity))
		if err := db.WithContext(ctx).Model(&inv).Update("quantity", newQty).Error; err != nil {
			config.LogError(logger, "models", "ApplyReturnInventoryEvent", "updating inventory quantity", item.ProductId, err)
		}
	}
}
