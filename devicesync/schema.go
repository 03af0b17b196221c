package devicesync

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shoplite/retail_backend/utils"
)

// fieldSpec declares how one wire field is sanitized. Fields absent from an
// entity's schema are dropped from the record.
type fieldSpec struct {
	required   bool
	foreignKey bool
	date       bool
	jsonField  bool
	money      bool
}

type entitySchema map[string]fieldSpec

// Wire schemas for every syncable collection, keyed by the client's
// camelCase field names.
var entitySchemas = map[string]entitySchema{
	"business": {
		"id":                     {required: true},
		"name":                   {},
		"country":                {},
		"businessContact":        {},
		"adminName":              {},
		"adminContact":           {},
		"isPremium":              {},
		"subscriptionType":       {},
		"subscriptionStartDate":  {date: true},
		"subscriptionExpiryDate": {date: true},
		"trialUsed":              {},
		"lastPaymentTxRef":       {},
	},
	"users": {
		"id":          {required: true},
		"name":        {required: true},
		"contact":     {required: true},
		"password":    {required: true},
		"role":        {},
		"permissions": {jsonField: true},
		"businessId":  {required: true, foreignKey: true},
		"shopId":      {foreignKey: true},
	},
	"shops": {
		"id":         {required: true},
		"name":       {required: true},
		"location":   {},
		"businessId": {required: true, foreignKey: true},
	},
	"inventories": {
		"id":                {required: true},
		"name":              {required: true},
		"price":             {money: true},
		"quantity":          {},
		"lowStockThreshold": {},
		"barcode":           {},
		"createdBy":         {required: true},
		"shopId":            {required: true, foreignKey: true},
		"businessId":        {foreignKey: true},
	},
	"expenses": {
		"id":          {required: true},
		"description": {},
		"amount":      {money: true},
		"date":        {date: true},
		"category":    {},
		"createdBy":   {required: true},
		"shopId":      {required: true, foreignKey: true},
		"businessId":  {foreignKey: true},
	},
	"sales": {
		"id":          {required: true},
		"totalAmount": {money: true},
		"grandTotal":  {money: true},
		"vat":         {money: true},
		"turnoverTax": {money: true},
		"levy":        {money: true},
		"date":        {date: true},
		"createdBy":   {required: true},
		"shopId":      {required: true, foreignKey: true},
		"businessId":  {foreignKey: true},
	},
	"sale_items": {
		"id":          {required: true},
		"saleId":      {required: true, foreignKey: true},
		"productId":   {foreignKey: true},
		"productName": {},
		"price":       {money: true},
		"quantity":    {},
	},
	"returns": {
		"id":                {required: true},
		"originalSaleId":    {required: true, foreignKey: true},
		"totalReturnAmount": {money: true},
		"grandReturnAmount": {money: true},
		"vat":               {money: true},
		"turnoverTax":       {money: true},
		"levy":              {money: true},
		"date":              {date: true},
		"shopId":            {required: true, foreignKey: true},
		"businessId":        {foreignKey: true},
		"createdBy":         {},
		"reason":            {},
		"status":            {},
		"approvedBy":        {},
		"approvedAt":        {date: true},
		"rejectedBy":        {},
		"rejectionReason":   {},
		"rejectedAt":        {date: true},
	},
	"return_items": {
		"id":            {required: true},
		"returnId":      {required: true, foreignKey: true},
		"productId":     {foreignKey: true},
		"productName":   {},
		"quantity":      {},
		"originalPrice": {money: true},
		"reason":        {},
		"shopId":        {required: true},
	},
	"receivables": {
		"id":            {required: true},
		"name":          {required: true},
		"contact":       {required: true},
		"address":       {},
		"principal":     {money: true},
		"interestType":  {},
		"interestValue": {money: true},
		"dueDate":       {date: true},
		"paymentPlan":   {},
		"status":        {},
	},
	"payables": {
		"id":            {required: true},
		"name":          {required: true},
		"contact":       {required: true},
		"address":       {},
		"principal":     {money: true},
		"interestType":  {},
		"interestValue": {money: true},
		"dueDate":       {date: true},
		"paymentPlan":   {},
		"status":        {},
	},
	"loans": {
		"id":            {required: true},
		"lenderName":    {required: true},
		"lenderContact": {required: true},
		"lenderAddress": {},
		"principal":     {money: true},
		"interestType":  {},
		"interestValue": {money: true},
		"dueDate":       {date: true},
		"paymentPlan":   {},
		"status":        {},
	},
	"receivable_payments": {
		"id":           {required: true},
		"receivableId": {required: true, foreignKey: true},
		"amount":       {money: true},
		"date":         {date: true},
		"method":       {},
	},
	"payable_payments": {
		"id":        {required: true},
		"payableId": {required: true, foreignKey: true},
		"amount":    {money: true},
		"date":      {date: true},
		"method":    {},
	},
	"loan_payments": {
		"id":     {required: true},
		"loanId": {required: true, foreignKey: true},
		"amount": {money: true},
		"date":   {date: true},
		"method": {},
	},
}

// sanitizeRecord filters a raw wire record through the entity schema:
// unknown fields are dropped, empty foreign keys become nil, dates are
// parsed, JSON columns are re-encoded as raw JSON. A missing required field
// rejects the whole record.
func sanitizeRecord(raw map[string]interface{}, schema entitySchema) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(raw))

	for field, spec := range schema {
		value, present := raw[field]

		if !present || value == nil {
			if spec.required {
				return nil, fmt.Errorf("missing required field %s", field)
			}
			continue
		}

		if str, ok := value.(string); ok && strings.TrimSpace(str) == "" {
			if spec.required {
				return nil, fmt.Errorf("missing required field %s", field)
			}
			if spec.foreignKey {
				// dangling client references arrive as "" rather than null
				out[field] = nil
			}
			continue
		}

		switch {
		case spec.date:
			parsed, err := parseWireDate(value)
			if err != nil {
				return nil, fmt.Errorf("invalid date in field %s: %w", field, err)
			}
			out[field] = parsed
		case spec.money:
			// older clients serialize decimal amounts as strings
			if str, ok := value.(string); ok {
				dec, err := utils.ParseDecimal(str)
				if err != nil {
					return nil, fmt.Errorf("invalid amount in field %s: %w", field, err)
				}
				out[field] = dec
			} else {
				out[field] = value
			}
		case spec.jsonField:
			encoded, err := json.Marshal(value)
			if err != nil {
				return nil, fmt.Errorf("invalid json in field %s: %w", field, err)
			}
			out[field] = json.RawMessage(encoded)
		default:
			out[field] = value
		}
	}

	return out, nil
}

func parseWireDate(value interface{}) (time.Time, error) {
	str, ok := value.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("expected string, got %T", value)
	}
	if t, err := time.Parse(time.RFC3339, str); err == nil {
		return t, nil
	}
	// clients sometimes send date-only values
	if t, err := time.Parse("2006-01-02", str); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", str)
}

// camelToSnake converts a wire field name to its database column,
// e.g. originalSaleId -> original_sale_id.
func camelToSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
