package funds

import "lngtrade-cloud/internal/money"

// Account is the fund position of the active customer context.
// Invariant: Total == round2(Available + Occupied + Frozen) after every
// committed transition.
type Account struct {
	Total     float64
	Available float64
	Occupied  float64
	Frozen    float64
}

// Consistent reports whether the account invariant holds.
func (a Account) Consistent() bool {
	return a.Total == money.Round2(a.Available+a.Occupied+a.Frozen)
}

// Occupy moves amount from available to occupied.
func (a Account) Occupy(amount float64) Account {
	a.Available = money.Sub(a.Available, amount)
	a.Occupied = money.Add(a.Occupied, amount)
	return a
}

// Release moves amount from occupied back to available.
func (a Account) Release(amount float64) Account {
	a.Occupied = money.Sub(a.Occupied, amount)
	a.Available = money.Add(a.Available, amount)
	return a
}

// Freeze moves amount from occupied to frozen.
func (a Account) Freeze(amount float64) Account {
	a.Occupied = money.Sub(a.Occupied, amount)
	a.Frozen = money.Add(a.Frozen, amount)
	return a
}

// Credit increases total and available by amount.
func (a Account) Credit(amount float64) Account {
	a.Total = money.Add(a.Total, amount)
	a.Available = money.Add(a.Available, amount)
	return a
}
