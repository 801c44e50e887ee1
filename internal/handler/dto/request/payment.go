package request

type CompletePaymentRequest struct {
	Method string `json:"method" binding:"required,oneof=cash card transfer ewallet"`
}
