package api

// CategoryDTO категория в форме ответа бэкенда
type CategoryDTO struct {
	ID             FlexString `json:"id"`
	MongoID        FlexString `json:"_id,omitempty"`
	User           FlexString `json:"user,omitempty"`
	UserID         FlexString `json:"userId,omitempty"`
	Name           string     `json:"name"`
	Color          string     `json:"color,omitempty"`
	Icon           string     `json:"icon,omitempty"`
	Type           string     `json:"type"`
	CreatedAt      string     `json:"created_at,omitempty"`
	CreatedAtCamel string     `json:"createdAt,omitempty"`
	UpdatedAt      string     `json:"updated_at,omitempty"`
	UpdatedAtCamel string     `json:"updatedAt,omitempty"`
}

// CategoryRequest тело создания и обновления категории
type CategoryRequest struct {
	Name  string `json:"name,omitempty"`
	Type  string `json:"type,omitempty"`
	Color string `json:"color,omitempty"`
	Icon  string `json:"icon,omitempty"`
}
