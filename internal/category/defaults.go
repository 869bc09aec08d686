package category

// palette holds the colors offered when creating a category.
var palette = []Color{
	0xFFF44336, 0xFFE91E63, 0xFF9C27B0, 0xFF2196F3,
	0xFF009688, 0xFFFF9800, 0xFF607D8B,
}

func Palette() []Color {
	return append([]Color(nil), palette...)
}

const (
	OtherExpenseName = "Other"
	OtherIncomeName  = "Other Income"
)

// Defaults returns the categories seeded into an empty store.
func Defaults() []CreateParams {
	return []CreateParams{
		{Name: "Food & Drinks", Icon: IconRestaurant, Color: 0xFFFF9800, Type: TypeExpense},
		{Name: "Transport", Icon: IconDirectionsCar, Color: 0xFF2196F3, Type: TypeExpense},
		{Name: "Shopping", Icon: IconShoppingCart, Color: 0xFFE91E63, Type: TypeExpense},
		{Name: "Bills", Icon: IconReceipt, Color: 0xFFFFC107, Type: TypeExpense},
		{Name: "Entertainment", Icon: IconMovie, Color: 0xFF9C27B0, Type: TypeExpense},
		{Name: "Health", Icon: IconLocalHospital, Color: 0xFFF44336, Type: TypeExpense},
		{Name: "Education", Icon: IconSchool, Color: 0xFF009688, Type: TypeExpense},
		{Name: OtherExpenseName, Icon: IconMoreHoriz, Color: 0xFF607D8B, Type: TypeExpense},
		{Name: "Salary", Icon: IconAccountBalance, Color: 0xFF4CAF50, Type: TypeIncome},
		{Name: "Bonus", Icon: IconCardGiftcard, Color: 0xFF8BC34A, Type: TypeIncome},
		{Name: "Investment", Icon: IconTrendingUp, Color: 0xFF00BCD4, Type: TypeIncome},
		{Name: "Gift", Icon: IconRedeem, Color: 0xFFFF5722, Type: TypeIncome},
		{Name: OtherIncomeName, Icon: IconAttachMoney, Color: 0xFF795548, Type: TypeIncome},
	}
}
