package models

import (
	"log"

	"github.com/shoplite/retail_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Business{},
		&User{},
		&Shop{},
		&Inventory{},
		&Expense{},
		&Sale{},
		&SaleItem{},
		&Return{},
		&ReturnItem{},
		&Receivable{},
		&ReceivablePayment{},
		&Payable{},
		&PayablePayment{},
		&Loan{},
		&LoanPayment{},
	)
	if err != nil {
		log.Fatalf("migration failed: %v", err)
	}
}
