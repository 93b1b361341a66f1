package dto

type CategoryRequest struct {
	Name  string `json:"name" validate:"required"`
	Color string `json:"color" validate:"required"`
	Icon  string `json:"icon" validate:"required"`
}

type CategoryResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	Icon      string `json:"icon"`
	CreatedAt string `json:"created_at"`
}
