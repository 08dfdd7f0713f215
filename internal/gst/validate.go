package gst

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrInvalidMode     = errors.New("invalid gst mode")
	ErrInvalidLineItem = errors.New("invalid line item")
	ErrInvalidGSTIN    = errors.New("invalid gstin")
)

var gstinPattern = regexp.MustCompile(`^\d{2}[A-Z]{5}\d{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)

// FieldError describes one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every problem found in a set of line items.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidLineItem.Error(), strings.Join(msgs, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidLineItem
}

func (e *ValidationError) add(field, msg string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: msg})
}

// ValidateItems checks the rows a document is about to be saved with.
// Rates must be non-negative, which also keeps the detailed-mode
// tax-inclusive split well defined.
func ValidateItems(items []LineItem, simpleMode bool) error {
	verr := &ValidationError{}
	for i, item := range items {
		prefix := fmt.Sprintf("items[%d]", i)
		if strings.TrimSpace(item.Description) == "" {
			verr.add(prefix+".description", "is required")
		}
		if item.GSTRate.IsNegative() {
			verr.add(prefix+".gst_rate", "must not be negative")
		}
		if simpleMode {
			if item.TaxableValue != nil && item.TaxableValue.IsNegative() {
				verr.add(prefix+".taxable_value", "must not be negative")
			}
			continue
		}
		if strings.TrimSpace(item.HSNSAC) == "" {
			verr.add(prefix+".hsn_sac", "is required")
		}
		if item.Quantity.IsNegative() {
			verr.add(prefix+".quantity", "must not be negative")
		}
		if item.UnitPrice.IsNegative() {
			verr.add(prefix+".unit_price", "must not be negative")
		}
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// ValidateGSTIN checks the 15-character GSTIN layout and that the state
// prefix is a real state code (01-38). Empty GSTINs are allowed; unregistered
// clients have none.
func ValidateGSTIN(gstin string) error {
	if gstin == "" {
		return nil
	}
	if !gstinPattern.MatchString(gstin) {
		return fmt.Errorf("%w: %s does not match the GSTIN format", ErrInvalidGSTIN, gstin)
	}
	code, _ := strconv.Atoi(gstin[:2])
	if code < 1 || code > 38 {
		return fmt.Errorf("%w: state code %s out of range 01-38", ErrInvalidGSTIN, gstin[:2])
	}
	return nil
}
