package cancel_booking

// CancelBookingRequest HTTP request model
// Клиент подтверждает право на отмену кодом подтверждения;
// персонал отменяет по служебному заголовку без кода
type CancelBookingRequest struct {
	ConfirmationCode *string `json:"confirmationCode,omitempty"`
	Reason           *string `json:"reason,omitempty"`
}
