package service

import (
	"maps"
	"sync"
	"time"

	"github.com/aikyam/site/internal/adapters/loader"
	"github.com/aikyam/site/internal/domain/countdown"
	"github.com/aikyam/site/internal/domain/model"
	"github.com/aikyam/site/pkg/metrics"
)

// Sections is a point-in-time copy of everything the page renders from.
// Slices are replaced wholesale on every load and never mutated in place.
type Sections struct {
	Team     []model.Person
	Board    model.Board
	Upcoming []model.Event
	Past     []model.Event
	Vendors  []model.Vendor
	Gallery  []model.GalleryItem

	// Loads holds the latest result per dataset name.
	Loads    map[string]loader.Result
	LoadedAt time.Time
	Target   *countdown.Target
}

// State is the single owner of the loaded datasets. Each section is
// published as soon as its own load settles.
type State struct {
	mu  sync.RWMutex
	cur Sections
}

func newState() *State {
	return &State{cur: Sections{
		Team:     []model.Person{},
		Board:    model.Board{Members: []model.Person{}},
		Upcoming: []model.Event{},
		Past:     []model.Event{},
		Vendors:  []model.Vendor{},
		Gallery:  []model.GalleryItem{},
		Loads:    map[string]loader.Result{},
	}}
}

// Snapshot returns a copy safe to read without holding the lock.
func (st *State) Snapshot() Sections {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := st.cur
	out.Loads = maps.Clone(st.cur.Loads)
	return out
}

func (st *State) record(r loader.Result, n int) {
	st.cur.Loads[r.Name] = r
	metrics.UpdateDatasetRecords(r.Name, n)
}

func (st *State) setTeam(v []model.Person, r loader.Result) {
	if v == nil {
		v = []model.Person{}
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	st.cur.Team = v
	st.record(r, len(v))
}

func (st *State) setBoard(v model.Board, r loader.Result) {
	if v.Members == nil {
		v.Members = []model.Person{}
	}
	n := len(v.Members)
	if v.Chairman != nil {
		n++
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	st.cur.Board = v
	st.record(r, n)
}

func (st *State) setUpcoming(v []model.Event, r loader.Result) {
	if v == nil {
		v = []model.Event{}
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	st.cur.Upcoming = v
	st.record(r, len(v))
}

func (st *State) setPast(v []model.Event, r loader.Result) {
	if v == nil {
		v = []model.Event{}
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	st.cur.Past = v
	st.record(r, len(v))
}

func (st *State) setVendors(v []model.Vendor, r loader.Result) {
	if v == nil {
		v = []model.Vendor{}
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	st.cur.Vendors = v
	st.record(r, len(v))
}

func (st *State) setGallery(v []model.GalleryItem, r loader.Result) {
	if v == nil {
		v = []model.GalleryItem{}
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	st.cur.Gallery = v
	st.record(r, len(v))
}

func (st *State) setLoadedAt(t time.Time) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.cur.LoadedAt = t
}

func (st *State) setTarget(t *countdown.Target) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.cur.Target = t
}
