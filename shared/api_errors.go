package shared

type ApiErrorType string

const (
	ApiErrorTypeValidation   ApiErrorType = "validation"
	ApiErrorTypeAuth         ApiErrorType = "auth"
	ApiErrorTypeInvalidToken ApiErrorType = "invalid_token"
	ApiErrorTypeForbidden    ApiErrorType = "forbidden"
	ApiErrorTypeNotFound     ApiErrorType = "not_found"
	ApiErrorTypeConflict     ApiErrorType = "conflict"

	ApiErrorTypeOther ApiErrorType = "other"
)

type ApiError struct {
	Type   ApiErrorType `json:"type"`
	Status int          `json:"status"`
	Msg    string       `json:"msg"`
}
