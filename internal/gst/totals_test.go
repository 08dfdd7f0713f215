package gst_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstbill/internal/gst"
)

const (
	companyGSTIN  = "33AIVPL0694A2Z8"
	sameStateGST  = "33XXXXX1111X1Z1"
	otherStateGST = "27XXXXX1111X1Z1"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func simpleItem(taxable, rate string) gst.LineItem {
	tv := d(taxable)
	return gst.LineItem{SNo: 1, Description: "Service", GSTRate: d(rate), TaxableValue: &tv}
}

func detailedItem(qty, price, rate string) gst.LineItem {
	return gst.LineItem{SNo: 1, Description: "Widget", HSNSAC: "8471", Quantity: d(qty), UnitPrice: d(price), GSTRate: d(rate), UOM: "NOS"}
}

func assertDecEqual(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, d(want).Equal(got), "want %s, got %s", want, got.String())
}

func TestStateCode(t *testing.T) {
	assert.Equal(t, "33", gst.StateCode(companyGSTIN))
	assert.Equal(t, "", gst.StateCode("3"))
	assert.Equal(t, "", gst.StateCode(""))
}

func TestIsInterState(t *testing.T) {
	assert.False(t, gst.IsInterState(companyGSTIN, sameStateGST, gst.ModeAuto))
	assert.True(t, gst.IsInterState(companyGSTIN, otherStateGST, gst.ModeAuto))

	t.Run("missing_gstin_is_intra_state_in_auto", func(t *testing.T) {
		assert.False(t, gst.IsInterState(companyGSTIN, "", gst.ModeAuto))
		assert.False(t, gst.IsInterState("", otherStateGST, gst.ModeAuto))
	})

	t.Run("overrides", func(t *testing.T) {
		assert.True(t, gst.IsInterState(companyGSTIN, sameStateGST, gst.ModeForceIGST))
		assert.False(t, gst.IsInterState(companyGSTIN, otherStateGST, gst.ModeForceCGSTSGST))
	})
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]gst.Mode{
		"":          gst.ModeAuto,
		"auto":      gst.ModeAuto,
		"igst":      gst.ModeForceIGST,
		"cgst_sgst": gst.ModeForceCGSTSGST,
	} {
		got, err := gst.ParseMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := gst.ParseMode("vat")
	assert.ErrorIs(t, err, gst.ErrInvalidMode)
}

func TestComputeTotals_SimpleMode(t *testing.T) {
	totals := gst.ComputeTotals([]gst.LineItem{simpleItem("1000", "18")}, companyGSTIN, sameStateGST, true, gst.ModeAuto)

	assertDecEqual(t, "1000", totals.SubTotal)
	assertDecEqual(t, "180", totals.TotalGST)
	assertDecEqual(t, "1180", totals.GrandTotal)
	assertDecEqual(t, "90", totals.CGST)
	assertDecEqual(t, "90", totals.SGST)
	assertDecEqual(t, "0", totals.IGST)
	assert.False(t, totals.IsInterState)
}

func TestComputeTotals_SimpleMode_MissingTaxableValue(t *testing.T) {
	item := gst.LineItem{SNo: 1, Description: "x", GSTRate: d("18")}
	totals := gst.ComputeTotals([]gst.LineItem{item}, companyGSTIN, sameStateGST, true, gst.ModeAuto)

	assert.True(t, totals.GrandTotal.IsZero())
}

func TestComputeTotals_DetailedMode(t *testing.T) {
	totals := gst.ComputeTotals([]gst.LineItem{detailedItem("2", "118", "18")}, companyGSTIN, otherStateGST, false, gst.ModeAuto)

	assertDecEqual(t, "200", totals.SubTotal)
	assertDecEqual(t, "36", totals.TotalGST)
	assertDecEqual(t, "236", totals.GrandTotal)
	assertDecEqual(t, "36", totals.IGST)
	assertDecEqual(t, "0", totals.CGST)
	assertDecEqual(t, "0", totals.SGST)
	assert.True(t, totals.IsInterState)
}

func TestItemAmounts_DetailedRoundTrip(t *testing.T) {
	cases := []struct{ qty, price, rate string }{
		{"1", "100", "18"},
		{"3", "99.99", "12"},
		{"7.5", "1234.56", "28"},
		{"0", "500", "5"},
		{"13", "0", "18"},
		{"1", "1", "0"},
		{"11", "333.33", "3"},
	}
	for _, c := range cases {
		item := detailedItem(c.qty, c.price, c.rate)
		taxable, tax := gst.ItemAmounts(item, false)
		want := d(c.qty).Mul(d(c.price))
		assert.Truef(t, taxable.Add(tax).Equal(want),
			"qty=%s price=%s rate=%s: %s+%s != %s", c.qty, c.price, c.rate, taxable, tax, want)
	}
}

func TestItemAmounts_RateMinusHundredIsClamped(t *testing.T) {
	item := detailedItem("2", "50", "-100")
	taxable, tax := gst.ItemAmounts(item, false)

	assert.True(t, taxable.IsZero())
	assertDecEqual(t, "100", tax)
}

func TestComputeTotals_Invariants(t *testing.T) {
	items := []gst.LineItem{
		detailedItem("3", "99.99", "12"),
		detailedItem("1", "1180", "18"),
		detailedItem("4", "10.5", "5"),
	}
	for _, client := range []string{sameStateGST, otherStateGST, ""} {
		for _, mode := range []gst.Mode{gst.ModeAuto, gst.ModeForceIGST, gst.ModeForceCGSTSGST} {
			for _, simple := range []bool{true, false} {
				totals := gst.ComputeTotals(items, companyGSTIN, client, simple, mode)

				assert.True(t, totals.GrandTotal.Equal(totals.SubTotal.Add(totals.TotalGST)))
				if totals.IsInterState {
					assert.True(t, totals.CGST.IsZero())
					assert.True(t, totals.SGST.IsZero())
					assert.True(t, totals.IGST.Equal(totals.TotalGST))
				} else {
					assert.True(t, totals.IGST.IsZero())
					assert.True(t, totals.CGST.Equal(totals.SGST))
					assert.True(t, totals.CGST.Equal(totals.TotalGST.Div(decimal.NewFromInt(2))))
				}
			}
		}
	}
}

func TestComputeTotals_AutoModeSwitchesOnClientState(t *testing.T) {
	items := []gst.LineItem{simpleItem("1000", "18")}

	same := gst.ComputeTotals(items, companyGSTIN, sameStateGST, true, gst.ModeAuto)
	assert.False(t, same.IsInterState)

	other := gst.ComputeTotals(items, companyGSTIN, "27"+sameStateGST[2:], true, gst.ModeAuto)
	assert.True(t, other.IsInterState)
	assertDecEqual(t, "180", other.IGST)
}

func TestComputeTotals_Empty(t *testing.T) {
	totals := gst.ComputeTotals(nil, companyGSTIN, sameStateGST, false, gst.ModeAuto)

	assert.True(t, totals.SubTotal.IsZero())
	assert.True(t, totals.GrandTotal.IsZero())
}
