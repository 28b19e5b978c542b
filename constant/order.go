package constant

type OrderStatus string

const (
	OrderStatusNew OrderStatus = "new"
)

type OrderSource string

const (
	OrderSourceAccount    OrderSource = "account"
	OrderSourceSubmission OrderSource = "submission"
)
