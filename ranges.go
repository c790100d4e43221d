package gdprconsent

type entryKind uint8

const (
	entrySingle entryKind = iota
	entrySpan
)

// rangeEntry is one entry of the range payload: a single vendor ID or an
// inclusive span. Kind is the tag; end is meaningful only for spans.
type rangeEntry struct {
	kind       entryKind
	start, end uint16
}

// Per-entry wire costs: 1-bit default flag + 12-bit count up front, then a
// 1-bit kind tag plus one or two 16-bit vendor IDs per entry.
const (
	rangeHeaderBits = 1 + numEntriesBits
	singleBits      = 1 + vendorIDBits
	spanBits        = 1 + 2*vendorIDBits
)

// trueRange decomposes the set into the minimal list of single/span entries
// covering exactly its IDs. A span is emitted only for two or more
// immediately consecutive IDs; a run is flushed the moment the next ID is
// not contiguous. Greedy extension is optimal here: once a gap occurs no
// later merge is possible. Returns the entries and their total encoded bit
// length including the range header.
func trueRange(s *BitSet) ([]rangeEntry, int) {
	var entries []rangeEntry
	total := rangeHeaderBits

	start, end := 0, 0 // open run; 0 means none (IDs are 1-based)
	flush := func() {
		switch {
		case start == 0:
		case start == end:
			entries = append(entries, rangeEntry{kind: entrySingle, start: uint16(start)})
			total += singleBits
		default:
			entries = append(entries, rangeEntry{kind: entrySpan, start: uint16(start), end: uint16(end)})
			total += spanBits
		}
	}

	for id := range s.All() {
		switch {
		case start == 0:
			start, end = id, id
		case id == end+1:
			end = id
		default:
			flush()
			start, end = id, id
		}
	}
	flush()

	return entries, total
}

// falseRange is trueRange over the complement of s within 1..maxVendorID,
// i.e. the entries cover the IDs consent is withheld for.
func falseRange(s *BitSet, maxVendorID int) ([]rangeEntry, int) {
	inverse := NewBitSet()
	for id := 1; id <= maxVendorID; id++ {
		if !s.Has(id) {
			inverse.Set(id)
		}
	}
	return trueRange(inverse)
}
