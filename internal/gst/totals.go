// Package gst computes Indian GST totals for invoices, quotations and
// purchase orders. Everything here is pure: no I/O, no clocks, no errors
// from the computation itself.
package gst

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	two     = decimal.NewFromInt(2)
	hundred = decimal.NewFromInt(100)
)

// Mode selects how the inter-state decision is made.
type Mode string

const (
	ModeAuto          Mode = "auto"
	ModeForceIGST     Mode = "igst"
	ModeForceCGSTSGST Mode = "cgst_sgst"
)

// ParseMode maps a request value to a Mode. The empty string means auto.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeAuto:
		return ModeAuto, nil
	case ModeForceIGST:
		return ModeForceIGST, nil
	case ModeForceCGSTSGST:
		return ModeForceCGSTSGST, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// LineItem is one row of a document. UnitPrice is tax inclusive and only
// counts in detailed mode; TaxableValue only counts in simple mode.
type LineItem struct {
	SNo          int              `json:"s_no" bson:"s_no"`
	Description  string           `json:"description" bson:"description"`
	HSNSAC       string           `json:"hsn_sac" bson:"hsn_sac"`
	Quantity     decimal.Decimal  `json:"quantity" bson:"quantity"`
	UOM          string           `json:"uom" bson:"uom"`
	UnitPrice    decimal.Decimal  `json:"unit_price" bson:"unit_price"`
	GSTRate      decimal.Decimal  `json:"gst_rate" bson:"gst_rate"`
	TaxableValue *decimal.Decimal `json:"taxable_value,omitempty" bson:"taxable_value,omitempty"`
}

// Totals is always recomputed as a whole from the items.
type Totals struct {
	SubTotal     decimal.Decimal `json:"sub_total" bson:"sub_total"`
	TotalGST     decimal.Decimal `json:"total_gst" bson:"total_gst"`
	CGST         decimal.Decimal `json:"cgst" bson:"cgst"`
	SGST         decimal.Decimal `json:"sgst" bson:"sgst"`
	IGST         decimal.Decimal `json:"igst" bson:"igst"`
	GrandTotal   decimal.Decimal `json:"grand_total" bson:"grand_total"`
	IsInterState bool            `json:"is_inter_state" bson:"is_inter_state"`
}

// StateCode returns the two-character state prefix of a GSTIN, or "" when
// the GSTIN is shorter than two characters.
func StateCode(gstin string) string {
	if len(gstin) < 2 {
		return ""
	}
	return gstin[:2]
}

// IsInterState resolves the effective inter-state flag for a pair of GSTINs.
func IsInterState(companyGSTIN, clientGSTIN string, mode Mode) bool {
	switch mode {
	case ModeForceIGST:
		return true
	case ModeForceCGSTSGST:
		return false
	}
	company, client := StateCode(companyGSTIN), StateCode(clientGSTIN)
	return company != "" && client != "" && company != client
}

// ItemAmounts returns the taxable value and GST contributed by one item.
// In detailed mode the unit price is split into its pre-tax and tax parts,
// so taxable+tax equals quantity*unitPrice exactly. A rate at or below -100%
// has no meaningful split; the pre-tax part is then taken as zero.
func ItemAmounts(item LineItem, simpleMode bool) (taxable, tax decimal.Decimal) {
	if simpleMode {
		taxable = decimal.Zero
		if item.TaxableValue != nil {
			taxable = *item.TaxableValue
		}
		return taxable, taxable.Mul(item.GSTRate).Div(hundred)
	}

	divisor := one.Add(item.GSTRate.Div(hundred))
	perUnitTaxable := decimal.Zero
	if divisor.IsPositive() {
		perUnitTaxable = item.UnitPrice.Div(divisor)
	}
	perUnitTax := item.UnitPrice.Sub(perUnitTaxable)
	return item.Quantity.Mul(perUnitTaxable), item.Quantity.Mul(perUnitTax)
}

// ComputeTotals sums the items and splits the GST into CGST/SGST halves or a
// single IGST amount.
func ComputeTotals(items []LineItem, companyGSTIN, clientGSTIN string, simpleMode bool, mode Mode) Totals {
	subTotal, totalGST := decimal.Zero, decimal.Zero
	for _, item := range items {
		taxable, tax := ItemAmounts(item, simpleMode)
		subTotal = subTotal.Add(taxable)
		totalGST = totalGST.Add(tax)
	}

	t := Totals{
		SubTotal:     subTotal,
		TotalGST:     totalGST,
		CGST:         decimal.Zero,
		SGST:         decimal.Zero,
		IGST:         decimal.Zero,
		GrandTotal:   subTotal.Add(totalGST),
		IsInterState: IsInterState(companyGSTIN, clientGSTIN, mode),
	}
	if t.IsInterState {
		t.IGST = totalGST
	} else {
		half := totalGST.Div(two)
		t.CGST = half
		t.SGST = half
	}
	return t
}
