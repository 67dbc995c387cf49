package core

// CategoryTotal is an amount aggregated by category name.
type CategoryTotal struct {
	Category string
	Total    Money
}

// MonthTotal is an amount aggregated by calendar month (YYYY-MM).
type MonthTotal struct {
	Month string
	Total Money
}

// CategoryExpenses is one category group of the full expense list.
// Group order and within-group order follow the descending-ordered list
// the grouping was built from.
type CategoryExpenses struct {
	Category string
	Expenses []Expense
}

// Stats is a compact overview of the whole ledger.
type Stats struct {
	TotalExpenses   int64
	TotalAmount     Money
	TotalCategories int64
}
