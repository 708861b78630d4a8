package domain

import "errors"

// ErrorKind classifies a domain error for transport mapping.
type ErrorKind int

const (
	KindBadRequest ErrorKind = iota + 1
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindTooManyRequests
	KindInternal
)

// Error is a client-facing failure carrying a stable machine-readable code.
// Sentinels below are compared by identity with errors.Is.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

func newError(kind ErrorKind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// NewValidationError builds an ad-hoc 400 error for request shapes that have
// no dedicated sentinel.
func NewValidationError(message string) *Error {
	return newError(KindBadRequest, "BAD_REQUEST", message)
}

// ErrRecordNotFound is returned by repositories; services translate it into a
// context-specific coded error.
var ErrRecordNotFound = errors.New("record not found")

// Authentication and authorization.
var (
	ErrAuthHeaderMissing       = newError(KindUnauthorized, "AUTH_HEADER_MISSING", "Authentication header missing.")
	ErrInvalidToken            = newError(KindUnauthorized, "INVALID_TOKEN", "Authentication failed. Invalid token.")
	ErrTokenExpired            = newError(KindUnauthorized, "TOKEN_EXPIRED", "Token expired")
	ErrUnauthorisedAccess      = newError(KindForbidden, "UNAUTHORISED_ACCESS", "Unauthorized Access")
	ErrIncorrectPassword       = newError(KindUnauthorized, "INCORRECT_PASSWORD", "Incorrect Password.")
	ErrEmailOrPasswordRequired = newError(KindBadRequest, "EMAIL_OR_PASSWORD_REQUIRED", "Email and password are required")
	ErrRefreshTokenRequired    = newError(KindBadRequest, "REFRESH_TOKEN_REQUIRED", "Refresh token is required")
)

// Identifiers and pagination.
var (
	ErrInvalidID         = newError(KindBadRequest, "INVALID_ID", "Invalid ID")
	ErrInvalidParentID   = newError(KindBadRequest, "INVALID_PARENT_ID", "Invalid parent id")
	ErrInvalidPagination = newError(KindBadRequest, "INVALID_PAGINATION", "Page and limit must be positive numbers.")
)

// Users.
var (
	ErrUserNotFound       = newError(KindBadRequest, "USER_NOT_FOUND", "User Not Found")
	ErrEmailExists        = newError(KindBadRequest, "EMAIL_ALREADY_EXISTS", "Email is already registered")
	ErrUsernameExists     = newError(KindConflict, "USERNAME_ALREADY_EXIST", "Username is already taken")
	ErrPhoneNumberExists  = newError(KindConflict, "PHONENUMBER_ALREADY_EXIST", "Phone number is already registered")
	ErrEmailRequired      = newError(KindBadRequest, "EMAIL_IS_REQUIRED", "Email is required")
	ErrEmailInvalid       = newError(KindBadRequest, "INVALID_EMAIL", "Please provide a valid email address")
	ErrEmailLength        = newError(KindBadRequest, "EMAIL_LENGTH", "Email must be between 6 and 50 characters")
	ErrUsernameLength     = newError(KindBadRequest, "USERNAME_LENGTH", "Username must be between 6 and 50 characters")
	ErrPhoneNumberInvalid = newError(KindBadRequest, "INVALID_PHONENUMBER", "Please provide a valid phone number")
	ErrPasswordRequired   = newError(KindBadRequest, "PASSWORD_IS_REQUIRED", "Password is required")
	ErrPasswordLength     = newError(KindBadRequest, "PASSWORD_LENGTH", "Password must be between 8 and 25 characters")
	ErrPasswordComplexity = newError(KindBadRequest, "PASSWORD_COMPLEXITY",
		"Password must contain an uppercase letter, a lowercase letter, a digit and one of @#$%^&+=!")
)

// Categories.
var (
	ErrCategoryNotFound        = newError(KindNotFound, "CATEGORY_NOT_FOUND", "Category not found")
	ErrProductCategoryNotFound = newError(KindBadRequest, "PRODUCT_CATEGORY_NOT_FOUND", "Product category not found")
	ErrParentCategoryNotFound  = newError(KindBadRequest, "PARENT_CATEGORY_NOT_FOUND", "Parent Category not found")
	ErrCategoryNameExists      = newError(KindBadRequest, "CATEGORY_NAME_EXIST", "Category name exist")
	ErrCategorySelfParent      = newError(KindBadRequest, "PARENT_CANNOT_BE_UPDATING_CATEGORY_ITSELF", "Updating category cannot be the parent")
	ErrCategoryCycle           = newError(KindBadRequest, "CATEGORY_HIERARCHY_CYCLE", "Parent category cannot be a descendant of the updating category")
	ErrCannotDeleteParent      = newError(KindBadRequest, "CANNOT_DELETE_PARENT_CATEGORY", "Cannot delete parent category")
	ErrCategoryNameRequired    = newError(KindBadRequest, "CATEGORYNAME_IS_REQUIRED", "Category name is required")
	ErrCategoryNameLength      = newError(KindBadRequest, "CATEGORYNAME_LENGTH", "Category name must be between 1 and 50 characters")
	ErrDescriptionRequired     = newError(KindBadRequest, "DESCRIPTION_IS_REQUIRED", "Description is required")
	ErrDescriptionLength       = newError(KindBadRequest, "DESCRIPTION_LENGTH", "Description must be between 5 and 250 characters")
)

// Products.
var (
	ErrProductNotFound      = newError(KindNotFound, "PRODUCT_NOT_FOUND", "Product not found")
	ErrDuplicateProductName = newError(KindConflict, "DUPLICATE_PRODUCT_NAME", "A product with this name already exists in the selected category.")
	ErrProductNameRequired  = newError(KindBadRequest, "NAME_IS_REQUIRED", "Product name is required")
	ErrProductNameLength    = newError(KindBadRequest, "NAME_LENGTH", "Product name must be between 1 and 50 characters")
	ErrCategoryIDRequired   = newError(KindBadRequest, "CATEGORYID_IS_REQUIRED", "Category id is required")
	ErrPriceRequired        = newError(KindBadRequest, "PRICE_IS_REQUIRED", "Price is required")
	ErrInvalidPrice         = newError(KindBadRequest, "INVALID_PRICE", "Price must be a non-negative number")
	ErrStockRequired        = newError(KindBadRequest, "STOCK_IS_REQUIRED", "Stock is required")
	ErrInvalidStock         = newError(KindBadRequest, "INVALID_STOCK", "Stock must be a non-negative integer")
)

// Perimeter and catch-all.
var (
	ErrTooManyRequests = newError(KindTooManyRequests, "TOO_MANY_REQUESTS", "Too many requests, please try again later.")
	ErrUnexpected      = newError(KindInternal, "UNEXPECTED_ERROR", "Something went wrong.")
)

// AsError extracts the coded error from err's chain.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
