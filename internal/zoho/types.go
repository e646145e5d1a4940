package zoho

// Invoice is a Zoho Books invoice as returned by the list endpoint
type Invoice struct {
	InvoiceID     string  `json:"invoice_id"`
	InvoiceNumber string  `json:"invoice_number"`
	CustomerID    string  `json:"customer_id"`
	CustomerName  string  `json:"customer_name"`
	Status        string  `json:"status"`
	Date          string  `json:"date"`
	DueDate       string  `json:"due_date"`
	Total         float64 `json:"total"`
	Balance       float64 `json:"balance"`
	Currency      string  `json:"currency_code"`
}

// Customer is a Zoho Books contact of type customer
type Customer struct {
	ContactID         string  `json:"contact_id"`
	ContactName       string  `json:"contact_name"`
	CompanyName       string  `json:"company_name"`
	Email             string  `json:"email"`
	Phone             string  `json:"phone"`
	OutstandingAmount float64 `json:"outstanding_receivable_amount"`
}

// Payment is a Zoho Books customer payment
type Payment struct {
	PaymentID    string  `json:"payment_id"`
	CustomerID   string  `json:"customer_id"`
	CustomerName string  `json:"customer_name"`
	Date         string  `json:"date"`
	Amount       float64 `json:"amount"`
	Mode         string  `json:"payment_mode"`
}

// TokenResponse is the Zoho accounts token endpoint response
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	APIDomain    string `json:"api_domain"`
	TokenType    string `json:"token_type"`
	Error        string `json:"error"`
}

// Credentials identifies the Zoho Books organization a call runs against
type Credentials struct {
	AccessToken    string
	OrganizationID string
}
