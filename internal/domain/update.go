package domain

import (
	"fmt"

	"github.com/spf13/cast"
)

// FieldUpdate is a closed set of edit operations on an order line. Each
// member carries a typed payload so the form engine can switch exhaustively
// instead of juggling field-name strings.
type FieldUpdate interface {
	fieldUpdate()
}

type SetQuantity struct{ Value float64 }
type SetUnitValue struct{ Value float64 }
type SetTotalValue struct{ Value float64 }
type SetHeadcount struct{ Value float64 }
type SetPurchaseOrder struct{ Value string }
type SetPerCapita struct{ Value float64 }
type SetAccumulatedTotal struct{ Value float64 }

func (SetQuantity) fieldUpdate()         {}
func (SetUnitValue) fieldUpdate()        {}
func (SetTotalValue) fieldUpdate()       {}
func (SetHeadcount) fieldUpdate()        {}
func (SetPurchaseOrder) fieldUpdate()    {}
func (SetPerCapita) fieldUpdate()        {}
func (SetAccumulatedTotal) fieldUpdate() {}

// ParseFieldUpdate builds a FieldUpdate from a wire-level field name and
// value, as submitted by the form client.
func ParseFieldUpdate(field string, value any) (FieldUpdate, error) {
	if field == "purchase_order" {
		return SetPurchaseOrder{Value: cast.ToString(value)}, nil
	}

	n, err := cast.ToFloat64E(value)
	if err != nil {
		return nil, fmt.Errorf("field %s expects a number: %w", field, err)
	}

	switch field {
	case "quantity":
		return SetQuantity{Value: n}, nil
	case "unit_value":
		return SetUnitValue{Value: n}, nil
	case "total_value":
		return SetTotalValue{Value: n}, nil
	case "headcount":
		return SetHeadcount{Value: n}, nil
	case "per_capita":
		return SetPerCapita{Value: n}, nil
	case "accumulated_total":
		return SetAccumulatedTotal{Value: n}, nil
	}
	return nil, fmt.Errorf("unknown field %q", field)
}
