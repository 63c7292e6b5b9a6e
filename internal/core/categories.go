package core

import (
	_ "embed"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed categories.yaml
var categoriesYAML []byte

type taxonomy struct {
	Expense []string `yaml:"expense"`
	Income  []string `yaml:"income"`
}

var loadTaxonomy = sync.OnceValue(func() taxonomy {
	var tax taxonomy
	if err := yaml.Unmarshal(categoriesYAML, &tax); err != nil || len(tax.Expense) == 0 || len(tax.Income) == 0 {
		// The embedded file ships with the binary; fall back to the
		// built-in lists rather than failing every caller.
		return taxonomy{
			Expense: []string{"Food and Dining", "Utilities", "Transport", "Entertainment", "Shopping"},
			Income:  []string{"Salary", "Investment"},
		}
	}
	return tax
})

// ExpenseCategories returns the suggested expense categories.
func ExpenseCategories() []string {
	return append([]string(nil), loadTaxonomy().Expense...)
}

// IncomeCategories returns the suggested income categories.
func IncomeCategories() []string {
	return append([]string(nil), loadTaxonomy().Income...)
}

// DefaultCategory is the entry-form preselection when the user has not
// recorded a transaction of the given side yet.
func DefaultCategory(isIncome bool) string {
	if isIncome {
		return loadTaxonomy().Income[0]
	}
	return loadTaxonomy().Expense[0]
}
