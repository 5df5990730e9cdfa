package models

import "time"

const (
	InventoryChangeManual   = "manual"
	InventoryChangePurchase = "purchase"
)

type InventoryItem struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name     string  `gorm:"size:100;not null" json:"name"`
	Quantity float64 `gorm:"not null;default:0" json:"quantity"`
	Unit     string  `gorm:"size:20" json:"unit"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type InventoryHistory struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ItemID uint          `gorm:"not null;index" json:"itemId"`
	Item   InventoryItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ChangeType     string  `gorm:"size:20;not null" json:"changeType"`
	QuantityChange float64 `gorm:"not null" json:"quantityChange"`
	QuantityAfter  float64 `gorm:"not null" json:"quantityAfter"`
	Note           string  `gorm:"size:255" json:"note"`

	ExpenseID *uint    `json:"expenseId"`
	Expense   *Expense `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	UserID *uint `json:"userId"`

	CreatedAt time.Time `json:"createdAt"`
}
