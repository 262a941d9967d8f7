package contact

type AddressDTO struct {
	EmployeeID   *int64 `json:"employee_id,omitempty"`
	DepartmentID *int64 `json:"department_id,omitempty"`
	ManagerID    *int64 `json:"manager_id,omitempty"`
	CountryCode  string `json:"country_code"`
	City         string `json:"city"`
	District     string `json:"district"`
	Street       string `json:"street"`
	ZipCode      string `json:"zip_code"`
	IsDefault    bool   `json:"is_default"`
}

func (dto AddressDTO) owner() Owner {
	return Owner{
		EmployeeID:   dto.EmployeeID,
		DepartmentID: dto.DepartmentID,
		ManagerID:    dto.ManagerID,
	}
}

type PhoneDTO struct {
	EmployeeID   *int64 `json:"employee_id,omitempty"`
	DepartmentID *int64 `json:"department_id,omitempty"`
	ManagerID    *int64 `json:"manager_id,omitempty"`
	CountryCode  string `json:"country_code"`
	PhoneNumber  string `json:"phone_number"`
	IsDefault    bool   `json:"is_default"`
}

func (dto PhoneDTO) owner() Owner {
	return Owner{
		EmployeeID:   dto.EmployeeID,
		DepartmentID: dto.DepartmentID,
		ManagerID:    dto.ManagerID,
	}
}
