package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrMissingCredentials
	ErrInvalidOrderData
	ErrUnknownAction
	ErrCredentialExists
	ErrInvalidCredentials
	ErrMissingToken
	ErrInvalidToken
	ErrMethodNotAllowed
	ErrInvalidName
	ErrInvalidPhone
	ErrNotifierNotConfigured
	ErrNotifierFailed
	ErrMailDelivery
	ErrTokenNotProvided
	ErrRouteNotFound
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:            "success",
	ErrInternal:           "Внутренняя ошибка сервера",
	ErrNotFound:           "Пользователь не найден",
	ErrInvalidRequest:     "Некорректный запрос",
	ErrMissingCredentials: "Email и пароль обязательны",
	ErrInvalidOrderData:   "Данные заказа обязательны",
	ErrUnknownAction:      "Неизвестное действие",
	ErrCredentialExists:   "Пользователь с таким email уже существует",
	ErrInvalidCredentials: "Неверный email или пароль",
	ErrMissingToken:       "Требуется авторизация",
	ErrInvalidToken:       "Недействительный токен",
	ErrMethodNotAllowed:   "Метод не поддерживается",

	ErrInvalidName:           "Имя должно содержать от 2 до 100 символов",
	ErrInvalidPhone:          "Номер телефона должен содержать минимум 10 цифр",
	ErrNotifierNotConfigured: "Telegram credentials not configured",
	ErrNotifierFailed:        "Failed to send Telegram message",
	ErrMailDelivery:          "Не удалось отправить заявку",

	// ErrTokenNotProvided is the profile endpoint's wording of ErrMissingToken.
	ErrTokenNotProvided: "Токен не предоставлен",
	ErrRouteNotFound:    "Маршрут не найден",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:            http.StatusOK,
	ErrInternal:           http.StatusInternalServerError,
	ErrNotFound:           http.StatusNotFound,
	ErrInvalidRequest:     http.StatusBadRequest,
	ErrMissingCredentials: http.StatusBadRequest,
	ErrInvalidOrderData:   http.StatusBadRequest,
	ErrUnknownAction:      http.StatusBadRequest,
	ErrCredentialExists:   http.StatusBadRequest,
	ErrInvalidCredentials: http.StatusUnauthorized,
	ErrMissingToken:       http.StatusUnauthorized,
	ErrInvalidToken:       http.StatusUnauthorized,
	ErrMethodNotAllowed:   http.StatusMethodNotAllowed,

	ErrInvalidName:           http.StatusBadRequest,
	ErrInvalidPhone:          http.StatusBadRequest,
	ErrNotifierNotConfigured: http.StatusInternalServerError,
	ErrNotifierFailed:        http.StatusInternalServerError,
	ErrMailDelivery:          http.StatusInternalServerError,

	ErrTokenNotProvided: http.StatusUnauthorized,
	ErrRouteNotFound:    http.StatusNotFound,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:            "0000",
	ErrInternal:           "0001",
	ErrNotFound:           "0002",
	ErrInvalidRequest:     "0003",
	ErrMissingCredentials: "0004",
	ErrInvalidOrderData:   "0005",
	ErrUnknownAction:      "0006",
	ErrCredentialExists:   "0007",
	ErrInvalidCredentials: "0008",
	ErrMissingToken:       "0009",
	ErrInvalidToken:       "0010",
	ErrMethodNotAllowed:   "0011",

	ErrInvalidName:           "0012",
	ErrInvalidPhone:          "0013",
	ErrNotifierNotConfigured: "0014",
	ErrNotifierFailed:        "0015",
	ErrMailDelivery:          "0016",

	ErrTokenNotProvided: "0017",
	ErrRouteNotFound:    "0018",
}
