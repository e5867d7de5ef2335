package analytics

import "sync"

// DataLayer is an in-memory EventQueue kept per page
type DataLayer struct {
	mu      sync.Mutex
	records []Record
}

func NewDataLayer() *DataLayer {
	return &DataLayer{}
}

func (d *DataLayer) Push(r Record) {
	d.mu.Lock()
	d.records = append(d.records, r)
	d.mu.Unlock()
}

// Records returns a copy in push order
func (d *DataLayer) Records() []Record {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Record, len(d.records))
	copy(out, d.records)
	return out
}
