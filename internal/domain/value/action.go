package value

type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSkip Action = "SKIP"
)

func (a Action) String() string {
	return string(a)
}

type TransactionType string

const (
	TransactionPurchase TransactionType = "purchase"
	TransactionSale     TransactionType = "sale"
)

func (t TransactionType) String() string {
	return string(t)
}
