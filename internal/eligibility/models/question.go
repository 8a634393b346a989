package models

type InputType string

const (
	InputText   InputType = "text"
	InputNumber InputType = "number"
	InputSelect InputType = "select"
)

type DataType string

const (
	DataText   DataType = "text"
	DataNumber DataType = "number"
	DataBool   DataType = "bool"
)

// MissingQuestion describes one follow-up input merged from every pending
// scheme that needs the field. Unbounded limits are nil.
type MissingQuestion struct {
	Key       string    `json:"key"`
	Label     string    `json:"label"`
	InputType InputType `json:"input_type"`
	DataType  DataType  `json:"data_type"`
	Options   []string  `json:"options,omitempty"`
	Min       *float64  `json:"min,omitempty"`
	Max       *float64  `json:"max,omitempty"`
}
