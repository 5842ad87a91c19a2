package api

// TransactionDTO транзакция в форме ответа бэкенда
type TransactionDTO struct {
	ID             FlexString `json:"id"`
	MongoID        FlexString `json:"_id,omitempty"`
	Category       FlexString `json:"category"`             // идентификатор категории
	CategoryID     FlexString `json:"categoryId,omitempty"` // альтернативное имя поля
	User           FlexString `json:"user,omitempty"`
	UserID         FlexString `json:"userId,omitempty"`
	Title          string     `json:"title"`
	Type           string     `json:"type"` // income или expense
	CategoryName   string     `json:"category_name,omitempty"`
	CategoryColor  string     `json:"category_color,omitempty"`
	Description    string     `json:"description,omitempty"`
	Date           string     `json:"date"`
	CreatedAt      string     `json:"created_at,omitempty"`
	CreatedAtCamel string     `json:"createdAt,omitempty"`
	UpdatedAt      string     `json:"updated_at,omitempty"`
	UpdatedAtCamel string     `json:"updatedAt,omitempty"`
	Amount         FlexFloat  `json:"amount"`
}

// TransactionRequest тело создания транзакции.
// Категория передается голым идентификатором, дата в формате YYYY-MM-DD.
type TransactionRequest struct {
	Title       string  `json:"title"`
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Description string  `json:"description,omitempty"`
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
}

// TransactionPatch частичное обновление транзакции; nil-поля не отправляются
type TransactionPatch struct {
	Title       *string  `json:"title,omitempty"`
	Type        *string  `json:"type,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Description *string  `json:"description,omitempty"`
	Date        *string  `json:"date,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
}

// SuggestionsResponse подсказки для автодополнения названий
type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}
