package feed

import "sync"

// ViewState is the ephemeral per-screen state: the active query and tag,
// and the 1-based current page. It feeds the single update entry point on
// Store; handlers never mutate derived views directly.
type ViewState struct {
	Query string
	Tag   string
	Page  int
}

// Snapshot is a consistent read of the store for one render pass.
type Snapshot struct {
	// PageReports is the current page of the filtered subset.
	PageReports []Report

	// Filtered is the whole filtered subset, newest first.
	Filtered []Report

	// All is the full loaded set after the base (verified/window)
	// pre-filter. The aggregator runs off this.
	All []Report

	// State is the view state after clamping.
	State ViewState

	// Start and End are the half-open bounds of the current page within
	// Filtered, for "Showing X–Y of Z" display.
	Start, End int

	TotalPages int
	Total      int

	// Loaded is false until the first successful reload completes.
	Loaded bool
}

// Store holds the full fetched report set and the currently active
// filtered subset. All mutation goes through its methods; every state
// change recomputes the filtered view and re-clamps the current page, so
// a shrinking result set never strands the viewer on an empty page.
//
// Reloads carry a generation token. A reload that completes after a newer
// one began is discarded wholesale, so rapid refreshes cannot interleave
// stale data (ignore-stale supersession). A failed reload simply never
// calls Complete and the previous contents stay intact.
type Store struct {
	mu sync.Mutex

	base      Filter // verified/window pre-filter, applied at load
	search    Filter // query/tag filter, applied per state change
	paginator Paginator

	all      []Report
	filtered []Report
	state    ViewState
	gen      uint64
	loadGen  uint64
	loaded   bool
}

// NewStore creates a store. The filter's VerifiedOnly/Window/Now fields
// form the base pre-filter applied once per reload; its MatchFields,
// TagExactCase and Ascending fields shape the per-keystroke search filter.
// The filter's own Query and Tag are ignored; those live in ViewState.
func NewStore(f Filter, pageSize int) *Store {
	base := f
	base.Query = ""
	base.Tag = ""

	search := Filter{
		MatchFields:  f.MatchFields,
		TagExactCase: f.TagExactCase,
		Ascending:    f.Ascending,
	}

	return &Store{
		base:      base,
		search:    search,
		paginator: NewPaginator(pageSize),
		state:     ViewState{Page: 1},
	}
}

// Begin starts a reload attempt and returns its generation token.
// Starting a new reload supersedes any still in flight.
func (s *Store) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	return s.gen
}

// Complete finishes the reload identified by gen with the fetched
// reports. It returns false, leaving the store untouched, if a newer
// reload has begun since gen was issued. The store is rebuilt wholesale,
// never patched.
func (s *Store) Complete(gen uint64, reports []Report) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen || gen <= s.loadGen {
		return false
	}
	s.loadGen = gen

	s.all = s.base.Apply(reports)
	s.loaded = true
	s.refreshLocked()
	return true
}

// SetQuery updates the free-text query and resets to page 1.
func (s *Store) SetQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Query = query
	s.state.Page = 1
	s.refreshLocked()
}

// SetTag updates the active tag and resets to page 1. An empty tag
// clears the restriction.
func (s *Store) SetTag(tag string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Tag = tag
	s.state.Page = 1
	s.refreshLocked()
}

// SetPage moves to the requested page, clamped into the valid range.
func (s *Store) SetPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Page = page
	s.refreshLocked()
}

// Restore seeds the view state from saved preferences in one pass.
func (s *Store) Restore(state ViewState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	if s.state.Page < 1 {
		s.state.Page = 1
	}
	s.refreshLocked()
}

// refreshLocked is the single recomputation pass: filter, then clamp the
// current page against the new total. Callers hold s.mu.
func (s *Store) refreshLocked() {
	f := s.search
	f.Query = s.state.Query
	f.Tag = s.state.Tag
	s.filtered = f.Apply(s.all)
	s.state.Page = s.paginator.Clamp(s.state.Page, len(s.filtered))
}

// Snapshot returns a consistent view of the store for rendering.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := len(s.filtered)
	start, end := s.paginator.Bounds(s.state.Page, total)

	return Snapshot{
		PageReports: s.filtered[start:end],
		Filtered:    s.filtered,
		All:         s.all,
		State:       s.state,
		Start:       start,
		End:         end,
		TotalPages:  s.paginator.TotalPages(total),
		Total:       total,
		Loaded:      s.loaded,
	}
}
