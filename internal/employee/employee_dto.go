package employee

type CreateEmployeeRequest struct {
	FullName         string `json:"full_name" binding:"required,max=150"`
	Email            string `json:"email" binding:"required,email"`
	EmployeeNumber   string `json:"employee_number"`
	Phone            string `json:"phone"`
	HireDate         string `json:"hire_date" binding:"required"`
	EmploymentStatus string `json:"employment_status" binding:"omitempty,oneof=ACTIVE INACTIVE PROBATION"`
}

type UpdateEmployeeRequest struct {
	FullName         string `json:"full_name" binding:"required,max=150"`
	Email            string `json:"email" binding:"required,email"`
	EmployeeNumber   string `json:"employee_number" binding:"required"`
	Phone            string `json:"phone"`
	HireDate         string `json:"hire_date" binding:"required"`
	EmploymentStatus string `json:"employment_status" binding:"required,oneof=ACTIVE INACTIVE PROBATION"`
}

type EmployeeResponse struct {
	ID               string `json:"id"`
	CompanyID        string `json:"company_id"`
	EmployeeNumber   string `json:"employee_number"`
	FullName         string `json:"full_name"`
	Email            string `json:"email"`
	Phone            string `json:"phone,omitempty"`
	HireDate         string `json:"hire_date"`
	EmploymentStatus string `json:"employment_status"`
}
