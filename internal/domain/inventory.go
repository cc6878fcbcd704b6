package domain

// Inventory holds non-negative resource and seed counters
type Inventory struct {
	Resources map[string]int `json:"resources" validate:"dive,gte=0"`
	Seeds     map[string]int `json:"seeds" validate:"dive,gte=0"`
}

// NewInventory creates an inventory with the starting balances
func NewInventory() Inventory {
	inv := Inventory{
		Resources: make(map[string]int, len(StartingResources)),
		Seeds:     make(map[string]int, len(StartingSeeds)),
	}
	for k, v := range StartingResources {
		inv.Resources[k] = v
	}
	for k, v := range StartingSeeds {
		inv.Seeds[k] = v
	}
	return inv
}

// CanAfford returns true when every cost entry is covered by the resource balance
func (inv Inventory) CanAfford(cost map[string]int) bool {
	for id, amount := range cost {
		if amount <= 0 {
			continue
		}
		if inv.Resources[id] < amount {
			return false
		}
	}
	return true
}
