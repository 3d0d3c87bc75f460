package domain

import "time"

// Branch represents a filial that submits material orders.
type Branch struct {
	ID         string    `json:"id" db:"id"`
	Name       string    `json:"name" db:"nome"`
	Code       string    `json:"code" db:"codigo"`
	Company    string    `json:"company" db:"empresa"`
	Department string    `json:"department" db:"departamento"`
	Post       string    `json:"post" db:"posto"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// Product is a catalog item orderable by branches.
type Product struct {
	ID          string    `json:"id" db:"id"`
	Code        string    `json:"code" db:"codigo"`
	Item        string    `json:"item" db:"item"`
	Description string    `json:"description" db:"descricao"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// ProductInput carries the editable fields of a product.
type ProductInput struct {
	Code        string `json:"code"`
	Item        string `json:"item"`
	Description string `json:"description"`
}

// OrderLine is one product's order record for a branch in a period.
// ID is empty until the line has been persisted.
type OrderLine struct {
	ID               string  `json:"id,omitempty" db:"id"`
	BranchID         string  `json:"branch_id" db:"filial_id"`
	ProductID        string  `json:"product_id" db:"produto_id"`
	Period           string  `json:"period" db:"periodo"`
	Quantity         float64 `json:"quantity" db:"quantidade"`
	UnitValue        float64 `json:"unit_value" db:"valor_unitario"`
	TotalValue       float64 `json:"total_value" db:"valor_total"`
	Headcount        float64 `json:"headcount" db:"n_serventes"`
	PurchaseOrder    string  `json:"purchase_order" db:"ordem_compra"`
	PerCapita        float64 `json:"per_capita" db:"realizado_per_capita"`
	AccumulatedTotal float64 `json:"accumulated_total" db:"acumulado_total"`
	Status           string  `json:"status" db:"status"`
	LaunchDate       string  `json:"launch_date,omitempty" db:"data_lancamento"`
}

// OrderForm is the in-memory snapshot of a branch's order entry session.
type OrderForm struct {
	Branch     Branch      `json:"branch"`
	Products   []Product   `json:"products"`
	Lines      []OrderLine `json:"lines"`
	ActiveIDs  []string    `json:"active_ids"`
	Period     string      `json:"period"`
	LaunchDate string      `json:"launch_date"`
}

// ConsolidatedRow is one branch order merged with its reference data plus
// planned-vs-actual variance figures. Read-only, derived at report time.
type ConsolidatedRow struct {
	ID                      string  `json:"id"`
	Company                 string  `json:"company"`
	Department              string  `json:"department"`
	Post                    string  `json:"post"`
	BranchName              string  `json:"branch"`
	ProductCode             string  `json:"product_code"`
	PlannedPerCapita        float64 `json:"planned_per_capita"`
	Headcount               float64 `json:"headcount"`
	PlannedTotalPeriod      float64 `json:"planned_total_period"`
	AccumulatedMonths       int     `json:"accumulated_months"`
	PlannedTotalAccumulated float64 `json:"planned_total_accumulated"`
	PurchaseOrder           string  `json:"purchase_order"`
	RealizedPerCapita       float64 `json:"realized_per_capita"`
	ActualAccumulated       float64 `json:"actual_accumulated"`
	Variance                float64 `json:"variance"`
	PercentVariance         float64 `json:"percent_variance"`
	// PercentDefined is false when the planned total is zero and the
	// percent variance cannot be computed.
	PercentDefined bool   `json:"percent_defined"`
	Status         string `json:"status"`
}

// ReportFilter narrows the consolidated report.
type ReportFilter struct {
	BranchSubstring string `json:"branch" form:"branch"`
	Status          string `json:"status" form:"status"`
}

// ReportSummary sums the filtered consolidated rows.
type ReportSummary struct {
	Count        int     `json:"count"`
	TotalActual  float64 `json:"total_actual"`
	TotalPlanned float64 `json:"total_planned"`
	PendingCount int     `json:"pending_count"`
}

// PieSlice feeds the percent-variance pie chart.
type PieSlice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// BarPoint feeds the planned-vs-actual bar chart.
type BarPoint struct {
	Branch   string  `json:"branch"`
	Planned  float64 `json:"planned"`
	Realized float64 `json:"realized"`
}

// ChartData bundles the report chart datasets.
type ChartData struct {
	Variance      []PieSlice `json:"variance"`
	PlannedActual []BarPoint `json:"planned_vs_actual"`
}
