package services

import (
	"context"
	"fmt"
	"sort"

	"asp_listings/config"
	"asp_listings/contact"
	"asp_listings/format"
	"asp_listings/listing"
	"asp_listings/models"
	"asp_listings/propfusion"
)

// Row is one listing as shown in a list.
type Row struct {
	ID       string
	Title    string
	Location string
	Price    string
	Beds     string
	Area     string
	Badges   []format.Badge
}

// Fact is a labelled value on the detail view.
type Fact struct {
	Label string
	Value string
}

// Detail is everything shown for a single listing.
type Detail struct {
	Row
	Kind        string
	Description string
	Facts       []Fact
	Amenities   []string
	Photos      []string
	Agent       *models.Agent
	Links       contact.Links
}

// Fetched is a completed fetch waiting to be applied on the owning browser.
type Fetched interface {
	Request() listing.Request
	Err() error
	Apply() bool
}

// Browser is the kind-independent face of a listing controller, used by the
// TUI and the CLI.
type Browser interface {
	Kind() string
	Name() string
	Config() *config.KindConfig
	Query() listing.Query
	Status() listing.Status
	SetQuery(q listing.Query) (listing.Request, bool, error)
	Reset() listing.Request
	Retry() listing.Request
	LoadMore() (listing.Request, bool)
	Fetch(ctx context.Context, req listing.Request) Fetched
	Run(ctx context.Context, req listing.Request) error
	Rows() []Row
	Lookup(ctx context.Context, id string) (*Detail, error)
}

// KindBrowser adapts a Controller[T] and its source to Browser.
type KindBrowser[T listing.Listing] struct {
	cfg    *config.KindConfig
	ctrl   *listing.Controller[T]
	source *propfusion.Source[T]
	row    func(T) Row
	detail func(T) *Detail
}

func NewKindBrowser[T listing.Listing](cfg *config.KindConfig, source *propfusion.Source[T], row func(T) Row, detail func(T) *Detail) *KindBrowser[T] {
	return &KindBrowser[T]{
		cfg:    cfg,
		ctrl:   listing.NewController[T](cfg.ID, source, cfg.PageSize, cfg.PriceBuckets),
		source: source,
		row:    row,
		detail: detail,
	}
}

func (b *KindBrowser[T]) Kind() string               { return b.cfg.ID }
func (b *KindBrowser[T]) Name() string               { return b.cfg.Name }
func (b *KindBrowser[T]) Config() *config.KindConfig { return b.cfg }
func (b *KindBrowser[T]) Query() listing.Query       { return b.ctrl.Query() }
func (b *KindBrowser[T]) Status() listing.Status     { return b.ctrl.Status() }
func (b *KindBrowser[T]) Reset() listing.Request     { return b.ctrl.Reset() }
func (b *KindBrowser[T]) Retry() listing.Request     { return b.ctrl.Retry() }

func (b *KindBrowser[T]) Controller() *listing.Controller[T] {
	return b.ctrl
}

func (b *KindBrowser[T]) SetQuery(q listing.Query) (listing.Request, bool, error) {
	return b.ctrl.SetQuery(q)
}

func (b *KindBrowser[T]) LoadMore() (listing.Request, bool) {
	return b.ctrl.LoadMore()
}

func (b *KindBrowser[T]) Fetch(ctx context.Context, req listing.Request) Fetched {
	return &fetched[T]{ctrl: b.ctrl, res: b.ctrl.Fetch(ctx, req)}
}

func (b *KindBrowser[T]) Run(ctx context.Context, req listing.Request) error {
	return b.ctrl.Run(ctx, req)
}

// Rows renders the visible listings: the accumulator after the client-side
// filter and sort.
func (b *KindBrowser[T]) Rows() []Row {
	visible := b.ctrl.Visible()
	rows := make([]Row, len(visible))
	for i, item := range visible {
		rows[i] = b.row(item)
	}
	return rows
}

func (b *KindBrowser[T]) Lookup(ctx context.Context, id string) (*Detail, error) {
	item, err := b.source.Lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	d := b.detail(item)
	d.Kind = b.cfg.ID
	return d, nil
}

// Item finds a loaded listing by id.
func (b *KindBrowser[T]) Item(id string) (T, bool) {
	for _, item := range b.ctrl.Items() {
		if item.ListingID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

type fetched[T listing.Listing] struct {
	ctrl *listing.Controller[T]
	res  listing.Result[T]
}

func (f *fetched[T]) Request() listing.Request { return f.res.Request }
func (f *fetched[T]) Err() error               { return f.res.Err }
func (f *fetched[T]) Apply() bool              { return f.ctrl.Apply(f.res) }

// Browsers builds one Browser per configured kind, choosing the listing
// shape from the kind's handler.
func Browsers(cfg *config.Config, client *propfusion.Client) (map[string]Browser, error) {
	browsers := make(map[string]Browser, len(cfg.Kinds))
	for _, id := range cfg.KindIDs() {
		kind := cfg.Kinds[id]
		b, err := NewBrowser(kind, client)
		if err != nil {
			return nil, err
		}
		browsers[id] = b
	}
	return browsers, nil
}

func NewBrowser(kind *config.KindConfig, client *propfusion.Client) (Browser, error) {
	switch kind.Handler {
	case config.KindProperties:
		return NewKindBrowser(kind, propfusion.NewSource[models.Property](client, kind), PropertyRow, PropertyDetail), nil
	case config.KindRentals:
		return NewKindBrowser(kind, propfusion.NewSource[models.Rental](client, kind), RentalRow, RentalDetail), nil
	case config.KindProjects:
		return NewKindBrowser(kind, propfusion.NewSource[models.Project](client, kind), ProjectRow, ProjectDetail), nil
	default:
		return nil, fmt.Errorf("kind %s: unknown handler %q", kind.ID, kind.Handler)
	}
}

// OrderedKinds returns the browsers in tab order: the default kinds first,
// then any extra kinds alphabetically.
func OrderedKinds(browsers map[string]Browser) []Browser {
	rank := map[string]int{config.KindProperties: 0, config.KindRentals: 1, config.KindProjects: 2}
	out := make([]Browser, 0, len(browsers))
	for _, b := range browsers {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		ri, iok := rank[out[i].Kind()]
		rj, jok := rank[out[j].Kind()]
		switch {
		case iok && jok:
			return ri < rj
		case iok != jok:
			return iok
		default:
			return out[i].Kind() < out[j].Kind()
		}
	})
	return out
}
