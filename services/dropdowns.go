package services

// UOMOptions returns the list of Unit of Measurement options.
var UOMOptions = []string{
	"nes",
	"pcts",
	"pks",
	"ltrs",
	"roll",
	"Nos",
	"Set",
	"Box",
}

// GSTOptions returns the list of GST percentage options.
var GSTOptions = []float64{0, 5, 12, 18, 28}

// FormOptions is everything a document form needs to populate its selects.
type FormOptions struct {
	Kinds          []KindOption `json:"kinds"`
	Statuses       []Status     `json:"statuses"`
	Units          []string     `json:"units"`
	TaxRates       []float64    `json:"taxRates"`
	DefaultTaxRate float64      `json:"defaultTaxRate"`
}

// KindOption pairs a kind with its display label.
type KindOption struct {
	Value Kind   `json:"value"`
	Label string `json:"label"`
}

// Options returns the form options under rules.
func Options(rules Rules) FormOptions {
	kinds := make([]KindOption, len(Kinds))
	for i, k := range Kinds {
		kinds[i] = KindOption{Value: k, Label: k.Label()}
	}
	return FormOptions{
		Kinds:          kinds,
		Statuses:       rules.statuses(),
		Units:          UOMOptions,
		TaxRates:       GSTOptions,
		DefaultTaxRate: rules.DefaultTaxRate,
	}
}
