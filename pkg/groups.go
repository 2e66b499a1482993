package reco

// TableFunc transforms a hits table into a new one. Implementations must
// not modify their input.
type TableFunc func(HitTable) HitTable

type GroupKey struct {
	Event int
	Npeak int
}

type Group struct {
	Key  GroupKey
	Rows HitTable
}

// Partition splits the table by (event, peak). Groups come out in the order
// their key first appears; rows keep their relative order.
func Partition(table HitTable) []Group {
	index := make(map[GroupKey]int)
	groups := make([]Group, 0)
	for _, row := range table {
		key := GroupKey{Event: row.Event, Npeak: row.Npeak}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key, Rows: make(HitTable, 0)})
		}
		groups[i].Rows = append(groups[i].Rows, row)
	}
	return groups
}

// PerGroup lifts fn to a whole table: partition, transform every group on
// its own and concatenate the results in group order.
func PerGroup(fn TableFunc) TableFunc {
	return func(table HitTable) HitTable {
		out := make(HitTable, 0, len(table))
		for _, group := range Partition(table) {
			out = append(out, fn(group.Rows)...)
		}
		return out
	}
}
