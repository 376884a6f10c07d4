package duration

// Node is a named day-boundary instant. Requests carry nodes instead of raw
// timestamps so duration rules stay pinned to business-meaningful points.
type Node string

const (
	NodeMorningStart   Node = "morning_start"   // 09:00
	NodeNoon           Node = "noon"            // 12:00
	NodeAfternoonStart Node = "afternoon_start" // 14:00
	NodeDayEnd         Node = "day_end"         // 17:30
	NodeEveningEnd     Node = "evening_end"     // 19:30
	NodeNightEnd       Node = "night_end"       // 22:00
)

var nodeClock = map[Node]int{
	NodeMorningStart:   9 * 60,
	NodeNoon:           12 * 60,
	NodeAfternoonStart: 14 * 60,
	NodeDayEnd:         17*60 + 30,
	NodeEveningEnd:     19*60 + 30,
	NodeNightEnd:       22 * 60,
}

// Clock returns the node's wall-clock time as minutes from midnight.
func (n Node) Clock() (int, bool) {
	m, ok := nodeClock[n]
	return m, ok
}
