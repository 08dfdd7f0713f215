package gst

import "github.com/shopspring/decimal"

// DefaultUOM is the unit of measure given to new rows.
const DefaultUOM = "NOS"

// DefaultRate is the GST percent given to new rows.
var DefaultRate = decimal.NewFromInt(18)

// NewLineItem returns a blank row with the editor defaults.
func NewLineItem(sNo int, simpleMode bool) LineItem {
	item := LineItem{
		SNo:       sNo,
		Quantity:  one,
		UOM:       DefaultUOM,
		UnitPrice: decimal.Zero,
		GSTRate:   DefaultRate,
	}
	if simpleMode {
		zero := decimal.Zero
		item.TaxableValue = &zero
	}
	return item
}

// AddItem appends a blank row numbered after the existing ones.
func AddItem(items []LineItem, simpleMode bool) []LineItem {
	return append(items, NewLineItem(len(items)+1, simpleMode))
}

// RemoveItem drops the row with the given serial number and renumbers the
// rest 1..n. Unknown serial numbers leave the list unchanged apart from
// renumbering.
func RemoveItem(items []LineItem, sNo int) []LineItem {
	out := make([]LineItem, 0, len(items))
	for _, item := range items {
		if item.SNo == sNo {
			continue
		}
		out = append(out, item)
	}
	return Resequence(out)
}

// Resequence assigns dense 1-based serial numbers in slice order.
func Resequence(items []LineItem) []LineItem {
	for i := range items {
		items[i].SNo = i + 1
	}
	return items
}

// ApplyProduct copies catalog details into a row.
func ApplyProduct(item LineItem, description, hsn string, price decimal.Decimal) LineItem {
	item.Description = description
	item.HSNSAC = hsn
	item.UnitPrice = price
	return item
}

// SetCGSTPercent sets the total rate from a CGST half-rate.
func SetCGSTPercent(item LineItem, cgst decimal.Decimal) LineItem {
	item.GSTRate = cgst.Mul(two)
	return item
}

// CGSTPercent is the half-rate shown in the CGST/SGST columns.
func CGSTPercent(item LineItem) decimal.Decimal {
	return item.GSTRate.Div(two)
}
