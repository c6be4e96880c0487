package finance

import "time"

// DateLayout is the ISO day format used for transaction dates.
const DateLayout = "2006-01-02"

// Kind tells expenses from income.
type Kind string

const (
	Debit  Kind = "debit"
	Credit Kind = "credit"
)

func (k Kind) Valid() bool { return k == Debit || k == Credit }

// Sign is the prefix shown in front of an amount.
func (k Kind) Sign() string {
	if k == Credit {
		return "+"
	}
	return "-"
}

type Category string

const (
	Food          Category = "food"
	Entertainment Category = "entertainment"
	Personal      Category = "personal"
	Debt          Category = "debt"
	Essentials    Category = "essentials"
)

// Categories lists every category in display order.
var Categories = []Category{Food, Entertainment, Personal, Debt, Essentials}

type categoryInfo struct {
	label string
	color string
}

var categoryInfos = map[Category]categoryInfo{
	Food:          {"Food", "#ff9800"},
	Entertainment: {"Entertainment", "#9c27b0"},
	Personal:      {"Personal", "#2196f3"},
	Debt:          {"Debt", "#f44336"},
	Essentials:    {"Essentials", "#4caf50"},
}

func (c Category) Valid() bool {
	_, ok := categoryInfos[c]
	return ok
}

func (c Category) Label() string {
	if info, ok := categoryInfos[c]; ok {
		return info.label
	}
	return string(c)
}

// Color returns the chip color for c, grey for unknown categories.
func (c Category) Color() string {
	if info, ok := categoryInfos[c]; ok {
		return info.color
	}
	return "#999999"
}

type Transaction struct {
	ID       int64    `json:"id"`
	Title    string   `json:"title"`
	Amount   float64  `json:"amount"`
	Date     string   `json:"date"`
	Type     Kind     `json:"type"`
	Category Category `json:"category"`
}

// Day parses the transaction date. The second result is false for
// malformed dates.
func (t Transaction) Day() (time.Time, bool) {
	d, err := time.Parse(DateLayout, t.Date)
	return d, err == nil
}

// Signed returns the amount with expenses negated.
func (t Transaction) Signed() float64 {
	if t.Type == Credit {
		return t.Amount
	}
	return -t.Amount
}
