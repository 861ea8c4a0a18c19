package staffsdk

import "context"

const employeeFields = `id firstName lastName projet position`

// Employees lists employees, narrowed by filter.
func (s *Session) Employees(ctx context.Context, filter EmployeeFilter) ([]Employee, error) {
	vars := map[string]any{}
	if filter.Project != "" {
		vars["projet"] = filter.Project
	}
	if filter.Position != "" {
		vars["position"] = filter.Position
	}

	var out struct {
		Employees []Employee `json:"employees"`
	}
	err := s.Execute(ctx, `query Employees($projet: String, $position: String) {
  employees(projet: $projet, position: $position) { `+employeeFields+` }
}`, vars, &out)
	if err != nil {
		return nil, err
	}
	return out.Employees, nil
}

// Employee returns nil when no employee has the id.
func (s *Session) Employee(ctx context.Context, id string) (*Employee, error) {
	var out struct {
		Employee *Employee `json:"employee"`
	}
	err := s.Execute(ctx, `query Employee($id: ID!) { employee(id: $id) { `+employeeFields+` } }`,
		map[string]any{"id": id}, &out)
	if err != nil {
		return nil, err
	}
	return out.Employee, nil
}

func (s *Session) AddEmployee(ctx context.Context, in EmployeeInput) (*Employee, error) {
	var out struct {
		AddEmploye *Employee `json:"addEmploye"`
	}
	err := s.Execute(ctx, `mutation Add($input: EmployeeInput) { addEmploye(input: $input) { `+employeeFields+` } }`,
		map[string]any{"input": in}, &out)
	if err != nil {
		return nil, err
	}
	return out.AddEmploye, nil
}

// UpdateEmployee returns the record after the update.
func (s *Session) UpdateEmployee(ctx context.Context, in EmployeeInput) (*Employee, error) {
	var out struct {
		UpdateEmploye *Employee `json:"updateEmploye"`
	}
	err := s.Execute(ctx, `mutation Update($input: EmployeeInput) { updateEmploye(input: $input) { `+employeeFields+` } }`,
		map[string]any{"input": in}, &out)
	if err != nil {
		return nil, err
	}
	return out.UpdateEmploye, nil
}

// RemoveEmployee reports whether an employee was removed.
func (s *Session) RemoveEmployee(ctx context.Context, id string) (bool, error) {
	var out struct {
		RemoveEmploye *bool `json:"removeEmploye"`
	}
	err := s.Execute(ctx, `mutation Remove($id: ID!) { removeEmploye(id: $id) }`,
		map[string]any{"id": id}, &out)
	if err != nil {
		return false, err
	}
	return out.RemoveEmploye != nil && *out.RemoveEmploye, nil
}
