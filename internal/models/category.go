package models

import "time"

// DefaultCategoryIcon иконка категории по умолчанию
const DefaultCategoryIcon = "category"

// Category категория доходов или расходов
type Category struct {
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Color     string          `json:"color,omitempty"`
	Icon      string          `json:"icon"`
	UserID    string          `json:"userId,omitempty"`
	Type      TransactionType `json:"type"`
}

// CategoryInput данные формы категории
type CategoryInput struct {
	Name  string          `json:"name" validate:"required,max=100"`
	Type  TransactionType `json:"type" validate:"required,oneof=income expense"`
	Color string          `json:"color" validate:"omitempty,hexcolor"`
	Icon  string          `json:"icon" validate:"omitempty,max=50"`
}

// CategoryUpdate частичное изменение категории
type CategoryUpdate struct {
	Name  string          `json:"name" validate:"omitempty,max=100"`
	Type  TransactionType `json:"type" validate:"omitempty,oneof=income expense"`
	Color string          `json:"color" validate:"omitempty,hexcolor"`
	Icon  string          `json:"icon" validate:"omitempty,max=50"`
}
