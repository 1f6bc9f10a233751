package employee

import "context"

// EmployeeRepository is the read side of the employee directory.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	ListByIDs(ctx context.Context, ids []string) ([]Employee, error)
	ListByEmployeeCodes(ctx context.Context, codes []string) ([]Employee, error)
}
