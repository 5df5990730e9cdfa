package analytics

import (
	"context"

	domain "github.com/BruksfildServices01/clinic-ledger/internal/domain/analytics"
	"github.com/BruksfildServices01/clinic-ledger/internal/timezone"
)

type WorkloadInput struct {
	EmployeeID uint
	StartDate  string
	EndDate    string
	ServiceID  *uint
}

type GetEmployeeWorkload struct {
	repo domain.Repository
}

func NewGetEmployeeWorkload(repo domain.Repository) *GetEmployeeWorkload {
	return &GetEmployeeWorkload{repo: repo}
}

// Execute builds the workload view. Either date may be omitted to leave that
// side of the range open.
func (uc *GetEmployeeWorkload) Execute(
	ctx context.Context,
	in WorkloadInput,
) (*domain.EmployeeWorkload, error) {

	if in.StartDate != "" && in.EndDate != "" {
		if _, err := timezone.ParseRange(in.StartDate, in.EndDate); err != nil {
			return nil, err
		}
	} else {
		for _, d := range []string{in.StartDate, in.EndDate} {
			if d == "" {
				continue
			}
			if _, err := timezone.ParseDay(d); err != nil {
				return nil, err
			}
		}
	}

	employee, err := uc.repo.GetEmployee(ctx, in.EmployeeID)
	if err != nil {
		return nil, err
	}

	completions, err := uc.repo.ListCompletions(ctx, domain.CompletionFilter{
		Start:      in.StartDate,
		End:        in.EndDate,
		EmployeeID: &employee.ID,
		ServiceID:  in.ServiceID,
	})
	if err != nil {
		return nil, err
	}

	out := domain.Workload(employee.ID, employee.FullName, completions)
	return &out, nil
}
