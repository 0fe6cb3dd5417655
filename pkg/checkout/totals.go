package checkout

// PricedLine is a line whose unit price has been read from the variant.
type PricedLine struct {
	UnitPrice int
	Quantity  int
}

// LineTotal is the extended price of the line in cents.
func (l PricedLine) LineTotal() int {
	return l.UnitPrice * l.Quantity
}

// Totals are the order header amounts, all in cents.
type Totals struct {
	Subtotal int
	Shipping int
	Discount int
	Total    int
}

// ComputeTotals sums the lines and caps the discount at subtotal+shipping so
// the total never goes negative.
func ComputeTotals(lines []PricedLine, shipping, discount int) Totals {
	subtotal := 0
	for _, l := range lines {
		subtotal += l.LineTotal()
	}
	if shipping < 0 {
		shipping = 0
	}
	if discount < 0 {
		discount = 0
	}
	if ceiling := subtotal + shipping; discount > ceiling {
		discount = ceiling
	}
	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Discount: discount,
		Total:    subtotal + shipping - discount,
	}
}
