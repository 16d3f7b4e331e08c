package model

// Kind classifies a ledger entry. The set is closed.
type Kind string

const (
	KindExpense Kind = "Expense"
	KindIncome  Kind = "Income"
	KindSaving  Kind = "Saving"
)

// Kinds returns every kind in display order.
func Kinds() []Kind {
	return []Kind{KindExpense, KindIncome, KindSaving}
}

// Valid reports whether k is one of the closed set of kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindExpense, KindIncome, KindSaving:
		return true
	}
	return false
}

// Sign returns the contribution of k to the net balance: +1 for inflows
// (Income, Saving), -1 for Expense and 0 for anything outside the set.
func (k Kind) Sign() int {
	switch k {
	case KindIncome, KindSaving:
		return 1
	case KindExpense:
		return -1
	}
	return 0
}

// Order is the position of k in Kinds(). Unknown kinds sort last.
func (k Kind) Order() int {
	for i, kk := range Kinds() {
		if kk == k {
			return i
		}
	}
	return len(Kinds())
}

func (k Kind) String() string { return string(k) }
