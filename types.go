package sat

// Field is a name/value pair. Sequences of fields are ordered: the API
// uses them as display lines.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// InquiryRequest asks for the price and details of a billable product.
type InquiryRequest struct {
	ClientNumber string  `json:"client_number" validate:"required"`
	ProductCode  string  `json:"product_code" validate:"required"`
	DownlineID   string  `json:"downline_id,omitempty"`
	Amount       int64   `json:"amount,omitempty" validate:"gte=0"` // omitted when zero
	Fields       []Field `json:"fields,omitempty"`
}

// CheckoutRequest places an order. RequestID is the idempotency key: the
// server rejects a repeated RequestID with CodeDuplicateRequestID instead of
// creating a second order.
//
// The JSON field order of the remaining fields is the order in which they
// appear on the wire and are signed. A zero Amount is not transmitted.
type CheckoutRequest struct {
	RequestID    string  `json:"-" validate:"required"`
	ProductCode  string  `json:"product_code" validate:"required"`
	ClientNumber string  `json:"client_number" validate:"required"`
	Amount       int64   `json:"amount,omitempty" validate:"gte=0"`
	Fields       []Field `json:"fields,omitempty"`
}

// Resource types used in request and response envelopes.
const (
	TypeInquiry = "inquiry"
	TypeOrder   = "order"
	TypeAccount = "account"
)

// Order statuses.
const (
	OrderPending = "Pending"
	OrderSuccess = "Success"
	OrderFailed  = "Failed"
)

// Error codes carried by ErrorObject.Code.
const (
	CodeTransactionNotFound = "P02"
	CodeDuplicateRequestID  = "P03"
	CodeProductNotFound     = "P04"
	CodeInternalError       = "S00"
	CodeProductUnavailable  = "S02"
)

type envelope[T any] struct {
	Data resource[T] `json:"data"`
}

type resource[T any] struct {
	Type       string `json:"type"`
	ID         string `json:"id,omitempty"`
	Attributes T      `json:"attributes"`
}

// Resource is the data member of a successful response document.
type Resource[T any] struct {
	Type       string `json:"type"`
	ID         string `json:"id"`
	Attributes T      `json:"attributes"`
}

// Inquiry is the result of an inquiry.
type Inquiry struct {
	AdminFee      int64   `json:"admin_fee"`
	BasePrice     int64   `json:"base_price"`
	ClientName    string  `json:"client_name"`
	ClientNumber  string  `json:"client_number"`
	Fields        []Field `json:"fields"`
	InquiryResult []Field `json:"inquiry_result"`
	MeterID       string  `json:"meter_id"`
	ProductCode   string  `json:"product_code"`
	SalesPrice    int64   `json:"sales_price"`
}

// Order is the state of an order as returned by checkout and status checks.
type Order struct {
	ClientNumber string  `json:"client_number"`
	ErrorCode    string  `json:"error_code"`
	ErrorDetail  string  `json:"error_detail"`
	Fields       []Field `json:"fields"`
	FulfilledAt  *string `json:"fulfilled_at"`
	PartnerFee   int64   `json:"partner_fee"`
	ProductCode  string  `json:"product_code"`
	SalesPrice   int64   `json:"sales_price"`
	SerialNumber string  `json:"serial_number"`
	Status       string  `json:"status"`
}

// Account holds the partner balance.
type Account struct {
	Saldo int64 `json:"saldo"`
}

// PingStatus is the body of the ping endpoint. It is not wrapped in a
// resource envelope.
type PingStatus struct {
	BuildHash string `json:"buildhash"`
	Sandbox   bool   `json:"sandbox"`
	Status    string `json:"status"`
}

// ErrorObject is one entry of the errors member of a failed response.
type ErrorObject struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
	Status string `json:"status"`
}

func (e ErrorObject) Error() string {
	return e.Code + ": " + e.Detail
}
