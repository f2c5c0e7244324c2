package v1

// Errors
const (
	UnknownErrorCode    = 0
	UnknownErrorMessage = "unknown error"

	UserAlreadyExistsCode     = 1001
	UserAlreadyExistsMessage  = "user already exists"
	UserNotFoundCode          = 1002
	UserNotFoundMessage       = "user not found"
	InvalidCredentialsCode    = 1003
	InvalidCredentialsMessage = "invalid credentials"
	RefreshTokenExpiredCode   = 1004
	RefreshTokenExpiredMsg    = "refresh token expired"

	VerificationNotFoundCode     = 1101
	VerificationNotFoundMessage  = "verification not found"
	VerificationMismatchCode     = 1102
	VerificationMismatchMessage  = "verification code mismatch"
	VerificationConfirmedCode    = 1103
	VerificationConfirmedMessage = "verification already confirmed"

	PostNotFoundCode    = 2001
	PostNotFoundMessage = "post not found"
)

type ErrorCode int
type ErrorMessage string

type ErrorStruct struct {
	ErrorCode    `json:"error_code"`
	ErrorMessage `json:"error_message"`
} // @name ErrorStruct

type ValidationErrorStruct struct {
	ErrorCode    int               `json:"error_code"`
	ErrorMessage string            `json:"error_message"`
	Errors       []ValidationError `json:"validation_errors"`
}

type ValidationError struct {
	FieldKey     string `json:"field_key"`
	ErrorMessage string `json:"error_message"`
}

func getErrorStruct(code ErrorCode) *ErrorStruct {
	errorStruct := &ErrorStruct{
		ErrorCode:    UnknownErrorCode,
		ErrorMessage: UnknownErrorMessage,
	}

	switch code {
	case UserAlreadyExistsCode:
		errorStruct.ErrorCode = UserAlreadyExistsCode
		errorStruct.ErrorMessage = UserAlreadyExistsMessage
	case UserNotFoundCode:
		errorStruct.ErrorCode = UserNotFoundCode
		errorStruct.ErrorMessage = UserNotFoundMessage
	case InvalidCredentialsCode:
		errorStruct.ErrorCode = InvalidCredentialsCode
		errorStruct.ErrorMessage = InvalidCredentialsMessage
	case RefreshTokenExpiredCode:
		errorStruct.ErrorCode = RefreshTokenExpiredCode
		errorStruct.ErrorMessage = RefreshTokenExpiredMsg
	case VerificationNotFoundCode:
		errorStruct.ErrorCode = VerificationNotFoundCode
		errorStruct.ErrorMessage = VerificationNotFoundMessage
	case VerificationMismatchCode:
		errorStruct.ErrorCode = VerificationMismatchCode
		errorStruct.ErrorMessage = VerificationMismatchMessage
	case VerificationConfirmedCode:
		errorStruct.ErrorCode = VerificationConfirmedCode
		errorStruct.ErrorMessage = VerificationConfirmedMessage
	case PostNotFoundCode:
		errorStruct.ErrorCode = PostNotFoundCode
		errorStruct.ErrorMessage = PostNotFoundMessage
	}

	return errorStruct
}
