package company

type CreateCompanyRequest struct {
	Name  string `json:"name" binding:"required,max=150"`
	Email string `json:"email" binding:"required,email"`
}

type CompanyResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}
