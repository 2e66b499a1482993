package reco

// NN marks a hit without a valid sensor assignment ("No Number").
// Its energy must end up in real hits.
const NN = -999999

type Hit struct {
	Npeak   int
	Nsipm   int
	X       float64
	Y       float64
	Xrms    float64
	Yrms    float64
	Z       float64
	Q       float64
	E       float64
	Xpeak   float64
	Ypeak   float64
	Qc      float64
	Ec      float64
	TrackID int
	Ep      float64
}

func (h Hit) IsNN() bool {
	return h.Q == NN
}

// NewPlaceholderHit builds the NN hit that replaces a slice where no
// sensor passed the threshold.
func NewPlaceholderHit(npeak int, z, e, ec, xpeak, ypeak float64) Hit {
	return Hit{
		Npeak:   npeak,
		Z:       z,
		Q:       NN,
		E:       e,
		Xpeak:   xpeak,
		Ypeak:   ypeak,
		Qc:      -1,
		Ec:      ec,
		TrackID: -1,
		Ep:      -1,
	}
}

type HitCollection struct {
	Event int
	Time  float64
	Hits  []Hit
}

func (hc HitCollection) Clone() HitCollection {
	hits := make([]Hit, len(hc.Hits))
	copy(hits, hc.Hits)
	return HitCollection{Event: hc.Event, Time: hc.Time, Hits: hits}
}

// HitRow is one row of a hits table: a hit plus the event it belongs to.
type HitRow struct {
	Event int
	Time  float64
	Hit
}

type HitTable []HitRow

func TableFromCollection(hc HitCollection) HitTable {
	table := make(HitTable, len(hc.Hits))
	for i, hit := range hc.Hits {
		table[i] = HitRow{Event: hc.Event, Time: hc.Time, Hit: hit}
	}
	return table
}

// CollectionsFromTable groups consecutive rows of the same event.
func CollectionsFromTable(table HitTable) []HitCollection {
	collections := make([]HitCollection, 0)
	for _, row := range table {
		last := len(collections) - 1
		if last < 0 || collections[last].Event != row.Event {
			collections = append(collections, HitCollection{
				Event: row.Event,
				Time:  row.Time,
				Hits:  make([]Hit, 0),
			})
			last++
		}
		collections[last].Hits = append(collections[last].Hits, row.Hit)
	}
	return collections
}

func (t HitTable) Hits() []Hit {
	hits := make([]Hit, len(t))
	for i, row := range t {
		hits[i] = row.Hit
	}
	return hits
}
