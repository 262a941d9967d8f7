package category

import "errors"

type CategoryDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (dto CategoryDTO) Validate() error {
	if dto.Name == "" {
		return errors.New("name is required")
	}
	if len(dto.Name) > 250 {
		return errors.New("name must be less than 250 characters")
	}
	return nil
}
