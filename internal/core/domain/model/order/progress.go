package order

// Remaining totals the quantity and weight still to ship.
type Remaining struct {
	TotalQtyRemaining    int
	TotalWeightRemaining float64
}

// DeriveFulfillmentStatus is FULFILLED when every line has nothing remaining,
// PARTIAL when any line shipped something, UNFULFILLED otherwise. An empty
// set of lines is FULFILLED.
func DeriveFulfillmentStatus(lines []*Line) FulfillmentStatus {
	allDone := true
	anyShipped := false
	for _, l := range lines {
		if l.qtyRemaining > 0 {
			allDone = false
		}
		if l.qtyShipped > 0 {
			anyShipped = true
		}
	}

	switch {
	case allDone:
		return Fulfilled
	case anyShipped:
		return PartiallyFulfilled
	default:
		return Unfulfilled
	}
}

// ClassifyFulfillmentStatus is DeriveFulfillmentStatus with overshipment
// detection: any negative remaining quantity yields OVERSHIPPED.
func ClassifyFulfillmentStatus(lines []*Line) FulfillmentStatus {
	for _, l := range lines {
		if l.qtyRemaining < 0 {
			return Overshipped
		}
	}
	return DeriveFulfillmentStatus(lines)
}

// LineShippedPct is qtyShipped/qtyOrdered as a percentage capped at 100;
// zero when nothing was ordered.
func LineShippedPct(l *Line) float64 {
	if l.qtyOrdered <= 0 {
		return 0
	}
	return min(float64(l.qtyShipped)/float64(l.qtyOrdered)*100, 100)
}

// OrderShippedPct is the shipped share of the ordered weight, capped at 100;
// zero when no weight was ordered.
func OrderShippedPct(lines []*Line) float64 {
	var ordered, shipped float64
	for _, l := range lines {
		ordered += l.totalWeightOrdered
		shipped += l.totalWeightShipped
	}
	if ordered <= 0 {
		return 0
	}
	return min(shipped/ordered*100, 100)
}

// CalcRemaining sums remaining quantity and weight across lines.
func CalcRemaining(lines []*Line) Remaining {
	var r Remaining
	for _, l := range lines {
		r.TotalQtyRemaining += l.qtyRemaining
		r.TotalWeightRemaining += l.WeightFor(l.qtyRemaining)
	}
	return r
}
