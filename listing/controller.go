package listing

import (
	"context"
	"log"
	"sync"
)

type State int

const (
	StateIdle State = iota
	StateLoading
)

func (s State) String() string {
	if s == StateLoading {
		return "loading"
	}
	return "idle"
}

// Request describes one fetch issued by the controller. Generation tags the
// query session it belongs to; results from an older generation are dropped.
type Request struct {
	Generation uint64
	Page       int
	Reset      bool
	Query      Query
}

// Result is the outcome of Fetch, handed back to Apply.
type Result[T Listing] struct {
	Request Request
	Page    Page[T]
	Err     error
}

// Status is a point-in-time view of the controller for rendering.
type Status struct {
	Kind       string
	Generation uint64
	State      State
	Page       int
	Loaded     int
	Total      int
	HasMore    bool
	Err        *FetchError
	Query      Query
}

// Controller accumulates pages of one listing kind for the active query.
//
// Every query change starts a new generation: the accumulator is cleared, the
// page counter restarts at 1 and a reset request is issued. LoadMore hands out
// the next page only while idle and while more results remain, so at most one
// fetch of the current generation is in flight. Fetch runs outside the lock;
// Apply is the single place where state changes after a fetch.
type Controller[T Listing] struct {
	kind     string
	source   Source[T]
	pageSize int
	buckets  BucketSet

	mu         sync.Mutex
	query      Query
	items      []T
	seen       map[string]struct{}
	total      int
	page       int
	hasMore    bool
	state      State
	err        *FetchError
	generation uint64
	cancel     context.CancelFunc
}

func NewController[T Listing](kind string, source Source[T], pageSize int, buckets BucketSet) *Controller[T] {
	if pageSize <= 0 {
		pageSize = 12
	}
	return &Controller[T]{
		kind:     kind,
		source:   source,
		pageSize: pageSize,
		buckets:  buckets,
		seen:     make(map[string]struct{}),
		hasMore:  true,
	}
}

func (c *Controller[T]) Kind() string       { return c.kind }
func (c *Controller[T]) PageSize() int      { return c.pageSize }
func (c *Controller[T]) Buckets() BucketSet { return c.buckets }

// SetQuery replaces the query. When it differs from the current one the
// session is reset and the returned request fetches page 1 of the new query;
// changed is false when nothing needs fetching.
func (c *Controller[T]) SetQuery(q Query) (req Request, changed bool, err error) {
	if err := q.Validate(c.buckets); err != nil {
		return Request{}, false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generation > 0 && c.query.Equal(q) {
		return Request{}, false, nil
	}
	log.Printf("Controller[%s]: SET_FILTER %s -> %s", c.kind, c.query, q)
	c.query = q
	return c.resetLocked(), true, nil
}

// Reset starts a new session for the current query. It is used for the first
// load.
func (c *Controller[T]) Reset() Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resetLocked()
}

// Retry re-issues the reset fetch for the current query after a failure.
// The accumulator is rebuilt from page 1.
func (c *Controller[T]) Retry() Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		log.Printf("Controller[%s]: retrying after %v", c.kind, c.err)
	}
	return c.resetLocked()
}

func (c *Controller[T]) resetLocked() Request {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.generation++
	c.items = nil
	c.seen = make(map[string]struct{})
	c.total = 0
	c.page = 0
	c.hasMore = true
	c.err = nil
	c.state = StateLoading

	log.Printf("Controller[%s]: RESET gen=%d", c.kind, c.generation)
	return Request{Generation: c.generation, Page: 1, Reset: true, Query: c.query}
}

// LoadMore returns the request for the next page, or false when a fetch is
// already in flight, the last fetch failed or no more results remain.
func (c *Controller[T]) LoadMore() (Request, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateLoading || !c.hasMore || c.err != nil || c.generation == 0 {
		return Request{}, false
	}
	c.state = StateLoading
	return Request{Generation: c.generation, Page: c.page + 1, Query: c.query}, true
}

// Fetch performs the remote call for req. It does not touch controller state
// except to remember how to cancel the call if the query changes meanwhile.
func (c *Controller[T]) Fetch(ctx context.Context, req Request) Result[T] {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.mu.Lock()
	if req.Generation == c.generation {
		c.cancel = cancel
	}
	c.mu.Unlock()

	page, err := c.source.FetchPage(ctx, req.Query, req.Page, c.pageSize)
	if err != nil {
		return Result[T]{Request: req, Err: AsFetchError(c.kind, req.Page, err)}
	}
	return Result[T]{Request: req, Page: page}
}

// Apply folds a fetch result into the accumulator. It reports false when the
// result belongs to a superseded generation and was discarded.
func (c *Controller[T]) Apply(res Result[T]) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	req := res.Request
	if req.Generation != c.generation {
		log.Printf("Controller[%s]: discarding stale page %d (gen=%d, current=%d)",
			c.kind, req.Page, req.Generation, c.generation)
		return false
	}

	c.state = StateIdle
	c.cancel = nil

	if res.Err != nil {
		c.err = AsFetchError(c.kind, req.Page, res.Err)
		c.hasMore = false
		log.Printf("Controller[%s]: FETCH_ERROR gen=%d page=%d: %v", c.kind, req.Generation, req.Page, c.err)
		return true
	}

	if req.Reset {
		c.items = nil
		c.seen = make(map[string]struct{})
	}
	c.total = res.Page.Total

	added := 0
	for _, item := range res.Page.Items {
		if len(c.items) >= c.total {
			log.Printf("Controller[%s]: dropping %d items beyond reported total %d",
				c.kind, len(res.Page.Items)-added, c.total)
			break
		}
		id := item.ListingID()
		if _, dup := c.seen[id]; dup && id != "" {
			continue
		}
		c.seen[id] = struct{}{}
		c.items = append(c.items, item)
		added++
	}

	c.page = req.Page
	c.hasMore = len(c.items) < c.total && len(res.Page.Items) == c.pageSize

	action := "APPEND_PAGE"
	if req.Reset {
		action = "FETCH_SUCCESS"
	}
	log.Printf("Controller[%s]: %s gen=%d page=%d: +%d (loaded %d/%d, more=%t)",
		c.kind, action, req.Generation, req.Page, added, len(c.items), c.total, c.hasMore)
	return true
}

// Run fetches req and applies the result. The returned error is the fetch
// error of a result that was applied.
func (c *Controller[T]) Run(ctx context.Context, req Request) error {
	res := c.Fetch(ctx, req)
	if !c.Apply(res) {
		return nil
	}
	if res.Err != nil {
		return c.Status().Err
	}
	return nil
}

// Items returns a copy of the accumulator.
func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Visible returns the accumulator filtered and sorted for the current query.
func (c *Controller[T]) Visible() []T {
	c.mu.Lock()
	items, q := c.items, c.query
	c.mu.Unlock()

	return SortListings(ApplyFilters(items, q, c.buckets), q.Sort)
}

func (c *Controller[T]) Query() Query {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

func (c *Controller[T]) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Status{
		Kind:       c.kind,
		Generation: c.generation,
		State:      c.state,
		Page:       c.page,
		Loaded:     len(c.items),
		Total:      c.total,
		HasMore:    c.hasMore,
		Err:        c.err,
		Query:      c.query,
	}
}
