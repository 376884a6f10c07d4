package duration

// Policy fixes the permissible nodes for one request kind and the
// fractional-day weight of any span between two of them. It is a pure
// lookup value; both calculators share the same traversal in Compute.
type Policy struct {
	nodes    map[Node]int
	dayStart Node
	dayEnd   Node

	// Leave weighting: elapsed minutes minus the midday rest overlap,
	// measured against a full working day.
	restStart      int
	restEnd        int
	fullDayMinutes int

	// Overtime weighting: fixed half-day intervals, each counting only
	// when the span covers it for at least its minimum.
	intervals []halfDayInterval
}

type halfDayInterval struct {
	start int
	end   int
	min   int
}

// LeavePolicy covers the working day 09:00-17:30 with the 12:00-14:00
// rest window excluded from weighting.
func LeavePolicy() Policy {
	return Policy{
		nodes: clockSubset(
			NodeMorningStart, NodeNoon, NodeAfternoonStart, NodeDayEnd,
		),
		dayStart:       NodeMorningStart,
		dayEnd:         NodeDayEnd,
		restStart:      12 * 60,
		restEnd:        14 * 60,
		fullDayMinutes: 8 * 60,
	}
}

// OvertimePolicy extends the day to 22:00. Each interval is worth half a
// day and counts only when the span overlaps it for the listed minimum,
// so a same-day request resolves on the ladder 0, 0.5, ..., 2.0.
func OvertimePolicy() Policy {
	return Policy{
		nodes: clockSubset(
			NodeMorningStart, NodeNoon, NodeAfternoonStart,
			NodeDayEnd, NodeEveningEnd, NodeNightEnd,
		),
		dayStart: NodeMorningStart,
		dayEnd:   NodeNightEnd,
		intervals: []halfDayInterval{
			{start: 9 * 60, end: 12 * 60, min: 180},        // morning
			{start: 14 * 60, end: 17*60 + 30, min: 210},    // afternoon
			{start: 17*60 + 30, end: 19*60 + 30, min: 120}, // evening
			{start: 19*60 + 30, end: 22 * 60, min: 150},    // late
		},
	}
}

func clockSubset(nodes ...Node) map[Node]int {
	m := make(map[Node]int, len(nodes))
	for _, n := range nodes {
		clock, ok := n.Clock()
		if !ok {
			continue
		}
		m[n] = clock
	}
	return m
}

func (p Policy) clock(n Node) (int, bool) {
	m, ok := p.nodes[n]
	return m, ok
}

// spanWeight converts a same-day span between two clock minutes into a
// fractional day count. Negative or empty spans weigh zero.
func (p Policy) spanWeight(startMin, endMin int) float64 {
	if endMin <= startMin {
		return 0
	}
	if p.intervals != nil {
		var total float64
		for _, iv := range p.intervals {
			if overlapMinutes(startMin, endMin, iv.start, iv.end) >= iv.min {
				total += 0.5
			}
		}
		return total
	}

	elapsed := endMin - startMin
	elapsed -= overlapMinutes(startMin, endMin, p.restStart, p.restEnd)
	if elapsed <= 0 {
		return 0
	}
	if elapsed*2 <= p.fullDayMinutes {
		return 0.5
	}
	return 1.0
}

func overlapMinutes(aStart, aEnd, bStart, bEnd int) int {
	start := aStart
	if bStart > start {
		start = bStart
	}
	end := aEnd
	if bEnd < end {
		end = bEnd
	}
	if end <= start {
		return 0
	}
	return end - start
}
