package report

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/clinic-ledger/internal/domain/analytics"
	"github.com/BruksfildServices01/clinic-ledger/internal/httperr"
	"github.com/BruksfildServices01/clinic-ledger/internal/models"
	"github.com/BruksfildServices01/clinic-ledger/internal/report"
	"github.com/BruksfildServices01/clinic-ledger/internal/timezone"
)

type stubRepo struct {
	ranges []timezone.Range
}

func (s *stubRepo) SumIncome(ctx context.Context, r timezone.Range) (int64, error) { return 0, nil }
func (s *stubRepo) SumExpense(ctx context.Context, r timezone.Range) (int64, error) { return 0, nil }
func (s *stubRepo) CountDoneClients(ctx context.Context, r timezone.Range) (int, error) {
	return 0, nil
}

func (s *stubRepo) ListCompletions(ctx context.Context, f domain.CompletionFilter) ([]domain.CompletionRow, error) {
	return []domain.CompletionRow{
		{CompletionID: 1, RecordID: 1, EmployeeID: 1, EmployeeName: "Ana", PatientCount: 2, RecordPatientCount: 2, ServicePrice: 100},
	}, nil
}

func (s *stubRepo) ListRecords(ctx context.Context, r timezone.Range, status string) ([]domain.RecordRow, error) {
	s.ranges = append(s.ranges, r)
	return []domain.RecordRow{
		{ID: 1, Date: "2024-03-10", Status: "done", ServiceName: "Consultation", ServicePrice: 100, PatientCount: 2},
	}, nil
}

func (s *stubRepo) ListIncomes(ctx context.Context, r timezone.Range) ([]domain.IncomeRow, error) {
	return []domain.IncomeRow{{ID: 1, Date: "2024-03-10", Amount: 200}}, nil
}

func (s *stubRepo) ListExpenses(ctx context.Context, r timezone.Range) ([]domain.ExpenseRow, error) {
	return nil, nil
}

func (s *stubRepo) GetEmployee(ctx context.Context, id uint) (*models.User, error) {
	return nil, httperr.ErrNotFound("employee_not_found")
}

type failingRenderer struct{ report.Excel }

func (failingRenderer) Render(rep *domain.Report) ([]byte, error) {
	return nil, errors.New("disk full")
}

type memArchive struct {
	keys []string
	err  error
}

func (m *memArchive) Put(ctx context.Context, key, contentType string, body []byte) error {
	m.keys = append(m.keys, key)
	return m.err
}

func TestBuildReport(t *testing.T) {
	repo := &stubRepo{}
	rep, err := NewBuildReport(repo, 31).Execute(context.Background(), "2024-03-01", "2024-03-31", "year")
	require.NoError(t, err)

	assert.Equal(t, domain.PeriodYear, rep.Period)
	assert.Equal(t, int64(200), rep.Summary.TotalIncome)
	assert.Equal(t, []domain.PeriodRow{{Label: "2024", Income: 200, Result: 200}}, rep.Periods)
	assert.Equal(t, []domain.Rollup{{Name: "Ana", Count: 1, PatientCount: 2, Total: 200}}, rep.Employees)
	assert.Equal(t, []timezone.Range{{Start: "2024-03-01", End: "2024-03-31"}}, repo.ranges)
}

func TestBuildReport_Validation(t *testing.T) {
	uc := NewBuildReport(&stubRepo{}, 31)
	ctx := context.Background()

	_, err := uc.Execute(ctx, "2024-03-01", "2024-04-01", "day")
	assert.True(t, httperr.IsBusiness(err, "report_range_too_large"))

	_, err = uc.Execute(ctx, "2024-03-01", "2024-03-31", "week")
	assert.True(t, httperr.IsBusiness(err, "invalid_period"))

	_, err = uc.Execute(ctx, "2024-3-1", "2024-03-31", "day")
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))
}

func TestExportReport_ArchivesRenderedFile(t *testing.T) {
	archive := &memArchive{err: errors.New("bucket unavailable")}
	uc := NewExportReport(NewBuildReport(&stubRepo{}, 0), report.Renderers(), archive)

	file, err := uc.Execute(context.Background(), "excel", "2024-03-01", "2024-03-31", "month")
	require.NoError(t, err)

	assert.Equal(t, "report_2024-03-01_2024-03-31_month.xlsx", file.Name)
	assert.NotEmpty(t, file.Body)
	assert.Equal(t, []string{"reports/excel/2024-03-01_2024-03-31_month.xlsx"}, archive.keys)
}

func TestExportReport_Failures(t *testing.T) {
	uc := NewExportReport(NewBuildReport(&stubRepo{}, 0), map[string]report.Renderer{
		"excel": failingRenderer{},
	}, nil)
	ctx := context.Background()

	_, err := uc.Execute(ctx, "pdf", "2024-03-01", "2024-03-31", "month")
	assert.True(t, httperr.IsBusiness(err, "invalid_report_kind"))

	_, err = uc.Execute(ctx, "excel", "2024-03-01", "2024-03-31", "month")
	require.Error(t, err)
	assert.False(t, httperr.IsKind(err, httperr.KindValidation))
}
