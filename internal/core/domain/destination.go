package domain

// Destination is a bookable place. Price is per person per day and may be unset.
type Destination struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Region      *string  `json:"region"`
	Price       *float64 `json:"price"`
}

// DestinationPatch carries a partial update. Nil fields are left untouched.
type DestinationPatch struct {
	Name        *string
	Description *string
	Region      *string
	Price       *float64
}

// Empty reports whether the patch changes nothing.
func (p DestinationPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Region == nil && p.Price == nil
}

// UnitPrice returns the price when it is set and non-zero.
func (d *Destination) UnitPrice() (float64, error) {
	if d.Price == nil || *d.Price == 0 {
		return 0, ErrMissingPrice
	}
	return *d.Price, nil
}
