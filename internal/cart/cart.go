package cart

import "strconv"

// Line is a merged cart entry. The cart holds at most one line per product;
// quantity accumulates on repeated adds.
type Line struct {
	ProductID    int64  `json:"id"`
	Name         string `json:"name"`
	UnitPriceUZS int64  `json:"price"`
	Category     string `json:"category"`
	Image        string `json:"image"`
	Quantity     int    `json:"quantity"`
}

// Lines is the ordered contents of a cart. Merge operations preserve insertion
// order and return a fresh slice.
type Lines []Line

// Add merges an increment of the given line into the cart. An existing line
// for the same product has its quantity raised; otherwise the line is
// appended.
func (l Lines) Add(line Line) Lines {
	out := make(Lines, len(l))
	copy(out, l)
	for i := range out {
		if out[i].ProductID == line.ProductID {
			out[i].Quantity += line.Quantity
			return out
		}
	}
	return append(out, line)
}

// SetQuantity replaces the quantity of the line for productID. A quantity
// below one removes the line. Unknown product ids are ignored.
func (l Lines) SetQuantity(productID int64, qty int) Lines {
	if qty < 1 {
		return l.Remove(productID)
	}
	out := make(Lines, len(l))
	copy(out, l)
	for i := range out {
		if out[i].ProductID == productID {
			out[i].Quantity = qty
			break
		}
	}
	return out
}

// Remove drops the line for productID, if present.
func (l Lines) Remove(productID int64) Lines {
	out := make(Lines, 0, len(l))
	for _, line := range l {
		if line.ProductID == productID {
			continue
		}
		out = append(out, line)
	}
	return out
}

// TotalUZS is the sum of unit price times quantity across all lines.
func (l Lines) TotalUZS() int64 {
	var total int64
	for _, line := range l {
		total += line.UnitPriceUZS * int64(line.Quantity)
	}
	return total
}

// Count is the total number of units across all lines.
func (l Lines) Count() int {
	var count int
	for _, line := range l {
		count += line.Quantity
	}
	return count
}

// ContentIDs returns the product ids as strings, in cart order. Used for
// analytics payloads.
func (l Lines) ContentIDs() []string {
	ids := make([]string, 0, len(l))
	for _, line := range l {
		ids = append(ids, strconv.FormatInt(line.ProductID, 10))
	}
	return ids
}
