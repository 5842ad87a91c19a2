package models

import "time"

// TransactionType тип транзакции
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// Valid проверяет, что тип известен
func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// Transaction денежное движение пользователя
type Transaction struct {
	Date          time.Time       `json:"date"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	CategoryID    string          `json:"categoryId"`
	CategoryName  string          `json:"categoryName,omitempty"`
	CategoryColor string          `json:"categoryColor,omitempty"`
	UserID        string          `json:"userId,omitempty"`
	Type          TransactionType `json:"type"`
	Amount        float64         `json:"amount"`
}

// TransactionInput данные формы создания транзакции
type TransactionInput struct {
	Date        time.Time       `json:"date" validate:"required"`
	Title       string          `json:"title" validate:"required,max=200"`
	Description string          `json:"description" validate:"max=1000"`
	CategoryID  string          `json:"category" validate:"required"`
	Type        TransactionType `json:"type" validate:"required,oneof=income expense"`
	Amount      float64         `json:"amount" validate:"gt=0"`
}

// TransactionUpdate частичное изменение транзакции; nil-поля не меняются
type TransactionUpdate struct {
	Date        *time.Time       `json:"date"`
	Title       *string          `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description" validate:"omitempty,max=1000"`
	CategoryID  *string          `json:"category" validate:"omitempty,min=1"`
	Type        *TransactionType `json:"type" validate:"omitempty,oneof=income expense"`
	Amount      *float64         `json:"amount" validate:"omitempty,gt=0"`
}

// Empty сообщает, что изменять нечего
func (u TransactionUpdate) Empty() bool {
	return u.Date == nil && u.Title == nil && u.Description == nil &&
		u.CategoryID == nil && u.Type == nil && u.Amount == nil
}
