package model

// ConsultationRequest is a callback request left on the storefront.
type ConsultationRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Phone string `json:"phone" validate:"required,min=10,max=20,phonedigits"`
}

// NotificationResponse is the body returned by the notifier endpoints.
type NotificationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	OrderID uint64 `json:"orderId,omitempty"`
}
