package domain

type Money struct {
	Currency string
	Amount   int64
}

type QuoteLine struct {
	Title     string
	Quantity  int64
	UnitPrice Money
	LineTotal Money
}

type Quote struct {
	Lines     []QuoteLine
	ItemCount int64
	Subtotal  Money
	Tax       Money
	Total     Money
	// TaxRate is a display string such as "8%".
	TaxRate string
}

type Customer struct {
	Name    string
	Phone   string
	Address string
	Note    string
}

type Summary struct {
	Quote       Quote
	OrderID     string
	Text        string
	WhatsAppURL string
	TelegramURL string
}
