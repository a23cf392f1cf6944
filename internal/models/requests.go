package models

// OTPSubmission is posted to the backend's /api/verify_otp.
type OTPSubmission struct {
	Email string `json:"email" validate:"required,email,max=254"`
	OTP   string `json:"otp" validate:"required,len=6,number"`
}

// PasswordSubmission is posted to the backend's /api/signup.
type PasswordSubmission struct {
	Email           string `json:"email" validate:"required,email,max=254"`
	Password        string `json:"password" validate:"required,min=8,max=72,password"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// OTPForm is the JSON-mode body of the OTP page; the email comes from the path.
type OTPForm struct {
	OTP string `json:"otp"`
}

// PasswordForm is the JSON-mode body of the set-password page.
type PasswordForm struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}
