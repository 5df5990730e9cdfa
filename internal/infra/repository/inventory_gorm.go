package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/clinic-ledger/internal/httperr"
	"github.com/BruksfildServices01/clinic-ledger/internal/models"
)

type InventoryGormRepository struct {
	db *gorm.DB
}

func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

type PurchaseInput struct {
	ItemID   uint
	Quantity float64
	Amount   int64
	Date     string
	Time     string
	Note     string
	UserID   *uint
}

func (r *InventoryGormRepository) ListItems(ctx context.Context) ([]models.InventoryItem, error) {
	var out []models.InventoryItem
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *InventoryGormRepository) CreateItem(ctx context.Context, item *models.InventoryItem) error {
	return translate(r.db.WithContext(ctx).Create(item).Error, "inventory_item_not_found")
}

// Adjust applies a manual quantity change. The result may not go negative.
func (r *InventoryGormRepository) Adjust(
	ctx context.Context,
	itemID uint,
	delta float64,
	note string,
	userID *uint,
) (*models.InventoryItem, error) {

	var item models.InventoryItem

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockItem(tx, &item, itemID); err != nil {
			return err
		}
		return applyChange(tx, &item, delta, models.InventoryHistory{
			ChangeType: models.InventoryChangeManual,
			Note:       note,
			UserID:     userID,
		})
	})
	if err != nil {
		return nil, translate(err, "inventory_item_not_found")
	}
	return &item, nil
}

// Purchase books the expense and the stock increase together, or neither.
func (r *InventoryGormRepository) Purchase(
	ctx context.Context,
	in PurchaseInput,
) (*models.InventoryItem, *models.Expense, error) {

	if in.Quantity <= 0 {
		return nil, nil, httperr.ErrBusiness("invalid_quantity")
	}
	if in.Amount < 0 {
		return nil, nil, httperr.ErrBusiness("invalid_amount")
	}

	var (
		item    models.InventoryItem
		expense models.Expense
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockItem(tx, &item, in.ItemID); err != nil {
			return err
		}

		expense = models.Expense{
			Date:   in.Date,
			Time:   in.Time,
			Name:   fmt.Sprintf("Purchase: %s (%g %s)", item.Name, in.Quantity, item.Unit),
			Amount: in.Amount,
		}
		if err := tx.Create(&expense).Error; err != nil {
			return err
		}

		return applyChange(tx, &item, in.Quantity, models.InventoryHistory{
			ChangeType: models.InventoryChangePurchase,
			Note:       in.Note,
			ExpenseID:  &expense.ID,
			UserID:     in.UserID,
		})
	})
	if err != nil {
		return nil, nil, translate(err, "inventory_item_not_found")
	}
	return &item, &expense, nil
}

func (r *InventoryGormRepository) History(
	ctx context.Context,
	itemID uint,
) ([]models.InventoryHistory, error) {

	var out []models.InventoryHistory
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("id DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func lockItem(tx *gorm.DB, item *models.InventoryItem, id uint) error {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(item, id).Error
}

func applyChange(
	tx *gorm.DB,
	item *models.InventoryItem,
	delta float64,
	h models.InventoryHistory,
) error {
	after := item.Quantity + delta
	if after < 0 {
		return httperr.ErrBusiness("inventory_negative_quantity")
	}

	if err := tx.Model(item).Update("quantity", after).Error; err != nil {
		return err
	}
	item.Quantity = after

	h.ItemID = item.ID
	h.QuantityChange = delta
	h.QuantityAfter = after
	return tx.Omit(clause.Associations).Create(&h).Error
}
