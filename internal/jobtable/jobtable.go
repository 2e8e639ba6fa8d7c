// Package jobtable implements the Job Table (spec §4.E): pipelines tracked
// as numbered jobs with state {Running, Stopped, Done}.
package jobtable

import "sync"

// Status is a Job's lifecycle state.
type Status int

const (
	Running Status = iota
	Stopped
	Done
)

func (s Status) String() string {
	switch s {
	case Running:
		return "Running"
	case Stopped:
		return "Stopped"
	case Done:
		return "Done"
	default:
		return "Unknown"
	}
}

// Job records one background or stopped pipeline (spec §3).
type Job struct {
	ID     int
	GID    int // pgid shared by all Pids
	Pids   []int
	Cmd    string
	Status Status
	// Report marks that this Job's completion should be announced at the
	// next prompt (spec §4.F).
	Report bool
}

// Table is the process-wide job table. At most one Job exists per gid;
// ids are the smallest positive integers covering the set without gaps at
// the moment of insertion, and are reused once a Job is fully reaped
// (spec §3, §4.E invariants).
type Table struct {
	mu   sync.Mutex
	jobs map[int]*Job
}

// New builds an empty Table.
func New() *Table {
	return &Table{jobs: make(map[int]*Job)}
}

// InsertJob records pid under gid's Job, allocating a new Job (with the
// lowest free id) if gid has no Job yet, or appending pid to the existing
// one (spec §4.E).
func (t *Table) InsertJob(gid, pid int, cmd string, status Status, bg bool) *Job {
	t.mu.Lock()
	defer t.mu.Unlock()

	if j := t.byGIDLocked(gid); j != nil {
		j.Pids = append(j.Pids, pid)
		return j
	}

	j := &Job{
		ID:     t.lowestFreeIDLocked(),
		GID:    gid,
		Pids:   []int{pid},
		Cmd:    cmd,
		Status: status,
		Report: bg,
	}
	t.jobs[j.ID] = j
	return j
}

func (t *Table) lowestFreeIDLocked() int {
	for id := 1; ; id++ {
		if _, used := t.jobs[id]; !used {
			return id
		}
	}
}

// GetByID looks up a Job by its small-integer id.
func (t *Table) GetByID(id int) (*Job, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	j, ok := t.jobs[id]
	return j, ok
}

// GetByGID looks up a Job by process-group id.
func (t *Table) GetByGID(gid int) (*Job, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	j := t.byGIDLocked(gid)
	return j, j != nil
}

func (t *Table) byGIDLocked(gid int) *Job {
	for _, j := range t.jobs {
		if j.GID == gid {
			return j
		}
	}
	return nil
}

// MarkRunning transitions gid's Job to Running, marking it for report at
// the next prompt when bg is true (e.g. a SIGCONT continuation).
func (t *Table) MarkRunning(gid int, bg bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if j := t.byGIDLocked(gid); j != nil {
		j.Status = Running
		if bg {
			j.Report = true
		}
	}
}

// MarkStopped transitions gid's Job to Stopped.
func (t *Table) MarkStopped(gid int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if j := t.byGIDLocked(gid); j != nil {
		j.Status = Stopped
	}
}

// RemovePID drops pid from gid's Job. When that empties the Job's pid
// set, the Job is erased from the table and returned so the caller can
// surface its completion (spec §3 invariant: "a Job is erased only when
// pids becomes empty AND the terminating status has been surfaced").
func (t *Table) RemovePID(gid, pid int) (*Job, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	j := t.byGIDLocked(gid)
	if j == nil {
		return nil, false
	}
	for i, p := range j.Pids {
		if p == pid {
			j.Pids = append(j.Pids[:i], j.Pids[i+1:]...)
			break
		}
	}
	if len(j.Pids) == 0 {
		delete(t.jobs, j.ID)
		return j, true
	}
	return nil, false
}

// All returns a snapshot of all jobs, for the `jobs` builtin. Order is not
// guaranteed; callers sort by ID for deterministic reporting (spec §4.E
// "sequencing of reports is deterministic by id").
func (t *Table) All() []*Job {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*Job, 0, len(t.jobs))
	for _, j := range t.jobs {
		jCopy := *j
		jCopy.Pids = append([]int(nil), j.Pids...)
		out = append(out, &jCopy)
	}
	return out
}
