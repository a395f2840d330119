package format

// SliceResult is an in-memory RowSource.
type SliceResult struct {
	columns []string
	rows    [][]any
	pos     int
	visited int
}

// NewSliceResult returns a RowSource over rows.
func NewSliceResult(columns []string, rows [][]any) *SliceResult {
	return &SliceResult{columns: columns, rows: rows, pos: -1}
}

func (s *SliceResult) Columns() []string { return s.columns }

func (s *SliceResult) Next() bool {
	if s.pos+1 >= len(s.rows) {
		return false
	}
	s.pos++
	s.visited++
	return true
}

func (s *SliceResult) Values() ([]any, error) { return s.rows[s.pos], nil }

func (s *SliceResult) Err() error { return nil }

// Visited reports how many rows have been advanced over.
func (s *SliceResult) Visited() int { return s.visited }
