package service

import (
	"sort"

	"github.com/pedidosfiliais/backend-go/internal/domain"
)

// The order form engine. All functions here are pure: they return fresh
// slices/maps and never alias the inputs, so a failed save leaves the
// caller's snapshot untouched.

// InitializeLines returns one line per known product, catalog order (by
// code): the persisted line for (branch, product) when one exists, else a
// zero-valued draft.
func InitializeLines(branchID string, products []domain.Product, existing []domain.OrderLine) []domain.OrderLine {
	ordered := make([]domain.Product, len(products))
	copy(ordered, products)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Code < ordered[j].Code })

	byProduct := make(map[string]domain.OrderLine, len(existing))
	for _, line := range existing {
		byProduct[line.ProductID] = line
	}

	lines := make([]domain.OrderLine, 0, len(ordered))
	for _, product := range ordered {
		if line, ok := byProduct[product.ID]; ok {
			lines = append(lines, line)
			continue
		}
		lines = append(lines, zeroLine(branchID, product.ID))
	}
	return lines
}

// ApplyUpdate replaces one field on the line matching productID and
// re-derives the dependent fields: total value tracks quantity × unit value,
// and per-capita tracks total value ÷ headcount while headcount > 0 (a zero
// headcount leaves per-capita at its prior value). All other lines are
// returned unchanged.
func ApplyUpdate(lines []domain.OrderLine, productID string, update domain.FieldUpdate) []domain.OrderLine {
	out := make([]domain.OrderLine, len(lines))
	copy(out, lines)

	for i := range out {
		if out[i].ProductID != productID {
			continue
		}
		line := out[i]

		totalChanged := false
		headcountChanged := false

		switch u := update.(type) {
		case domain.SetQuantity:
			line.Quantity = u.Value
			line.TotalValue = line.Quantity * line.UnitValue
			totalChanged = true
		case domain.SetUnitValue:
			line.UnitValue = u.Value
			line.TotalValue = line.Quantity * line.UnitValue
			totalChanged = true
		case domain.SetTotalValue:
			line.TotalValue = u.Value
			totalChanged = true
		case domain.SetHeadcount:
			line.Headcount = u.Value
			headcountChanged = true
		case domain.SetPurchaseOrder:
			line.PurchaseOrder = u.Value
		case domain.SetPerCapita:
			line.PerCapita = u.Value
		case domain.SetAccumulatedTotal:
			line.AccumulatedTotal = u.Value
		}

		if (totalChanged || headcountChanged) && line.Headcount > 0 {
			line.PerCapita = line.TotalValue / line.Headcount
		}

		out[i] = line
		break
	}
	return out
}

// Deactivate removes productID from the active set and zeroes its line.
// The cleared data is not recovered by a later Activate.
func Deactivate(lines []domain.OrderLine, active map[string]bool, productID string) ([]domain.OrderLine, map[string]bool) {
	out := make([]domain.OrderLine, len(lines))
	copy(out, lines)
	for i := range out {
		if out[i].ProductID == productID {
			out[i] = resetFields(out[i])
		}
	}

	nextActive := copyActive(active)
	delete(nextActive, productID)
	return out, nextActive
}

// Activate restores productID to the active set. The line is already at its
// zero default from the previous Deactivate.
func Activate(active map[string]bool, productID string) map[string]bool {
	nextActive := copyActive(active)
	nextActive[productID] = true
	return nextActive
}

// ValidateForSave checks the form snapshot before anything is written. Only
// active lines are inspected; the returned IncompleteFields codes keep the
// catalog order of lines.
func ValidateForSave(lines []domain.OrderLine, active map[string]bool, products []domain.Product, period, launchDate string) error {
	if period == "" || !domain.ValidPeriod(period) {
		return &domain.ValidationError{Reason: domain.ReasonMissingPeriod}
	}
	if launchDate == "" {
		return &domain.ValidationError{Reason: domain.ReasonMissingDate}
	}
	if len(active) == 0 {
		return &domain.ValidationError{Reason: domain.ReasonNoActiveProducts}
	}

	codeByID := make(map[string]string, len(products))
	for _, p := range products {
		codeByID[p.ID] = p.Code
	}

	var incomplete []string
	for _, line := range lines {
		if !active[line.ProductID] {
			continue
		}
		if line.Quantity <= 0 || line.UnitValue <= 0 || line.Headcount <= 0 {
			code := codeByID[line.ProductID]
			if code == "" {
				code = line.ProductID
			}
			incomplete = append(incomplete, code)
		}
	}
	if len(incomplete) > 0 {
		return &domain.ValidationError{Reason: domain.ReasonIncompleteFields, Codes: incomplete}
	}
	return nil
}

// Reconcile partitions the active lines by persisted identity: lines that
// already carry an id become updates, the rest inserts.
func Reconcile(lines []domain.OrderLine, active map[string]bool) (toInsert, toUpdate []domain.OrderLine) {
	for _, line := range lines {
		if !active[line.ProductID] {
			continue
		}
		if line.ID == "" {
			toInsert = append(toInsert, line)
		} else {
			toUpdate = append(toUpdate, line)
		}
	}
	return toInsert, toUpdate
}

// ClearForm resets every line's mutable fields, active or not. The caller
// also drops its active set and period selection.
func ClearForm(lines []domain.OrderLine) []domain.OrderLine {
	out := make([]domain.OrderLine, len(lines))
	for i, line := range lines {
		out[i] = resetFields(line)
	}
	return out
}

func zeroLine(branchID, productID string) domain.OrderLine {
	return domain.OrderLine{
		BranchID:  branchID,
		ProductID: productID,
		Status:    domain.StatusDraft,
	}
}

func resetFields(line domain.OrderLine) domain.OrderLine {
	line.Quantity = 0
	line.UnitValue = 0
	line.TotalValue = 0
	line.Headcount = 0
	line.PurchaseOrder = ""
	line.PerCapita = 0
	line.AccumulatedTotal = 0
	return line
}

func copyActive(active map[string]bool) map[string]bool {
	out := make(map[string]bool, len(active))
	for id, on := range active {
		if on {
			out[id] = true
		}
	}
	return out
}
