package domain

// PayRequest is the input to a payment attempt.
type PayRequest struct {
	Payer    Payer
	Amount   Money
	Metadata map[string]string
}

// PayResponse reports the outcome of a payment or refund attempt.
// TransactionID is empty when no transaction was created. This is a value
// type and is never persisted.
type PayResponse struct {
	TransactionID string `json:"transaction_id"`
	OK            bool   `json:"ok"`
	Message       string `json:"message"`
}

func FailedResponse(msg string) PayResponse {
	return PayResponse{OK: false, Message: msg}
}
