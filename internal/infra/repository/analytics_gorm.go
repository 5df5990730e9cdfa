package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/clinic-ledger/internal/domain/analytics"
	"github.com/BruksfildServices01/clinic-ledger/internal/domain/record"
	"github.com/BruksfildServices01/clinic-ledger/internal/models"
	"github.com/BruksfildServices01/clinic-ledger/internal/timezone"
)

// AnalyticsGormRepository reads projections for the analytics views. Reads
// are plain selects; they do not need to be consistent with concurrent
// writes.
type AnalyticsGormRepository struct {
	db *gorm.DB
}

func NewAnalyticsGormRepository(db *gorm.DB) *AnalyticsGormRepository {
	return &AnalyticsGormRepository{db: db}
}

var _ domain.Repository = (*AnalyticsGormRepository)(nil)

// --------------------------------------------------
// Totals
// --------------------------------------------------

func (r *AnalyticsGormRepository) SumIncome(
	ctx context.Context,
	rg timezone.Range,
) (int64, error) {

	var sum int64
	err := r.db.WithContext(ctx).
		Model(&models.Income{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("date BETWEEN ? AND ?", rg.Start, rg.End).
		Scan(&sum).Error
	return sum, err
}

func (r *AnalyticsGormRepository) SumExpense(
	ctx context.Context,
	rg timezone.Range,
) (int64, error) {

	var sum int64
	err := r.db.WithContext(ctx).
		Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("date BETWEEN ? AND ?", rg.Start, rg.End).
		Scan(&sum).Error
	return sum, err
}

func (r *AnalyticsGormRepository) CountDoneClients(
	ctx context.Context,
	rg timezone.Range,
) (int, error) {

	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Record{}).
		Where("status = ? AND client_id IS NOT NULL", string(record.StatusDone)).
		Where("date BETWEEN ? AND ?", rg.Start, rg.End).
		Distinct("client_id").
		Count(&n).Error
	return int(n), err
}

// --------------------------------------------------
// Rows
// --------------------------------------------------

func (r *AnalyticsGormRepository) ListCompletions(
	ctx context.Context,
	f domain.CompletionFilter,
) ([]domain.CompletionRow, error) {

	q := r.db.WithContext(ctx).
		Table("record_completions AS c").
		Select(`c.id AS completion_id, c.record_id, c.employee_id,
			u.full_name AS employee_name, c.patient_count,
			r.date AS record_date, r.time AS record_time, r.patient_count AS record_patient_count,
			s.id AS service_id, s.name AS service_name, s.price AS service_price,
			COALESCE(cl.name, '') AS client_name,
			i.amount AS income_amount`).
		Joins("JOIN records r ON r.id = c.record_id").
		Joins("JOIN services s ON s.id = r.service_id").
		Joins("JOIN users u ON u.id = c.employee_id").
		Joins("LEFT JOIN clients cl ON cl.id = r.client_id").
		Joins("LEFT JOIN incomes i ON i.record_id = r.id")

	if f.Start != "" {
		q = q.Where("r.date >= ?", f.Start)
	}
	if f.End != "" {
		q = q.Where("r.date <= ?", f.End)
	}
	if f.EmployeeID != nil {
		q = q.Where("c.employee_id = ?", *f.EmployeeID)
	}
	if f.ServiceID != nil {
		q = q.Where("r.service_id = ?", *f.ServiceID)
	}

	var out []domain.CompletionRow
	if err := q.Order("c.id ASC").Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AnalyticsGormRepository) ListRecords(
	ctx context.Context,
	rg timezone.Range,
	status string,
) ([]domain.RecordRow, error) {

	q := r.db.WithContext(ctx).
		Table("records AS r").
		Select(`r.id, r.date, r.time, r.status, r.patient_count,
			r.client_id, COALESCE(cl.name, '') AS client_name, COALESCE(cl.phone, '') AS client_phone,
			s.id AS service_id, s.name AS service_name, s.price AS service_price,
			i.amount AS income_amount`).
		Joins("JOIN services s ON s.id = r.service_id").
		Joins("LEFT JOIN clients cl ON cl.id = r.client_id").
		Joins("LEFT JOIN incomes i ON i.record_id = r.id").
		Where("r.date BETWEEN ? AND ?", rg.Start, rg.End)

	if status != "" {
		q = q.Where("r.status = ?", status)
	}

	var out []domain.RecordRow
	if err := q.Order("r.date ASC, r.time ASC, r.id ASC").Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AnalyticsGormRepository) ListIncomes(
	ctx context.Context,
	rg timezone.Range,
) ([]domain.IncomeRow, error) {

	var out []domain.IncomeRow
	err := r.db.WithContext(ctx).
		Table("incomes AS i").
		Select(`i.id, i.date, i.time, i.name, i.amount, i.record_id,
			COALESCE(s.name, '') AS service_name, r.client_id`).
		Joins("LEFT JOIN records r ON r.id = i.record_id").
		Joins("LEFT JOIN services s ON s.id = r.service_id").
		Where("i.date BETWEEN ? AND ?", rg.Start, rg.End).
		Order("i.date ASC, i.time ASC, i.id ASC").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AnalyticsGormRepository) ListExpenses(
	ctx context.Context,
	rg timezone.Range,
) ([]domain.ExpenseRow, error) {

	var out []domain.ExpenseRow
	err := r.db.WithContext(ctx).
		Model(&models.Expense{}).
		Select("id, date, time, name, amount").
		Where("date BETWEEN ? AND ?", rg.Start, rg.End).
		Order("date ASC, time ASC, id ASC").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AnalyticsGormRepository) GetEmployee(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err, "employee_not_found")
	}
	return &user, nil
}
