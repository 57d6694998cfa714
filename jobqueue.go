package cronsched

// queue implements heap.Interface over jobs, ordered (next fire time
// ascending, id ascending) per spec.md §4.E/§4.F. A job whose next fire
// time is the zero Time (no future fires remain) sorts after every job
// that still has one, so it surfaces at the heap minimum for eviction
// rather than blocking real work behind it.
type queue []*job

func (q queue) Len() int { return len(q) }

func (q queue) Less(i, j int) bool {
	a, b := q[i], q[j]
	switch {
	case a.next.IsZero() != b.next.IsZero():
		return b.next.IsZero()
	case a.next.Equal(b.next):
		return a.id < b.id
	default:
		return a.next.Before(b.next)
	}
}

func (q queue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *queue) Push(x interface{}) {
	j := x.(*job)
	j.index = len(*q)
	*q = append(*q, j)
}

func (q *queue) Pop() interface{} {
	old := *q
	n := len(old)
	j := old[n-1]
	old[n-1] = nil // avoid memory leak
	j.index = -1
	*q = old[:n-1]
	return j
}
