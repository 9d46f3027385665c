package domain

// OtpRecord is the ephemeral payload stored under otp:{requestID}.
// Lifetime is bounded by the store TTL; a successful verification
// deletes it before returning.
type OtpRecord struct {
	PhoneNumber string `json:"phone_number"`
	Code        string `json:"code"`
}
