package api

// LoginRequest представляет запрос на аутентификацию
type LoginRequest struct {
	Email    string `json:"email"`    // email пользователя
	Password string `json:"password"` // пароль
}

// SignupRequest представляет запрос на регистрацию нового пользователя
type SignupRequest struct {
	FirstName string `json:"first_name"` // имя
	LastName  string `json:"last_name"`  // фамилия
	Email     string `json:"email"`      // email
	Password  string `json:"password"`   // пароль
}

// AuthResponse представляет ответ на вход и регистрацию.
// При регистрации токены могут отсутствовать.
type AuthResponse struct {
	User    *UserDTO `json:"user"`              // профиль пользователя
	Access  string   `json:"access"`            // JWT access token
	Refresh string   `json:"refresh"`           // refresh token
	Message string   `json:"message,omitempty"` // сообщение сервера
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
	Detail  string `json:"detail,omitempty"`  // подробность (DRF)
}
