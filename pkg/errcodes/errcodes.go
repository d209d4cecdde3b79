package errcodes

type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

const (
	InternalServerError ErrorCode = "InternalServerError"
	ValidationError     ErrorCode = "ValidationError"
	NotFound            ErrorCode = "NotFound"
	MethodNotAllowed    ErrorCode = "MethodNotAllowed"

	InvalidListing          ErrorCode = "InvalidListing"
	InvalidPrice            ErrorCode = "InvalidPrice"
	InventoryItemNotFound   ErrorCode = "InventoryItemNotFound"
	InvalidStatusTransition ErrorCode = "InvalidStatusTransition"
	StorageUnavailable      ErrorCode = "StorageUnavailable"
	LedgerWriteFailed       ErrorCode = "LedgerWriteFailed"
)
