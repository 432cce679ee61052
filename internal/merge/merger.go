package merge

import (
	"fmt"
	"sort"
	"strings"
)

// Event is delivered to subscribers after every mutation has finished
// recomputing.
type Event struct {
	Op      string
	Samples int
}

// Listener receives change notifications.
type Listener func(Event)

type subscription struct {
	id int
	fn Listener
}

// Option configures a Merger.
type Option func(*Merger)

// WithReference registers a reference curve under name.
func WithReference(name string, curve ReferenceCurve) Option {
	return func(m *Merger) {
		m.references[name] = curve
	}
}

// Merger stitches up to five band measurements into one spectrum.
type Merger struct {
	store       *bandStore
	breakpoints Breakpoints

	removeArtifact bool
	// artifactErr is set when removal is on but the filter could not run
	// over the current data.
	artifactErr error

	references map[string]ReferenceCurve
	reference  string

	listeners []subscription
	nextID    int
}

// New returns an empty Merger with default breakpoints.
func New(opts ...Option) *Merger {
	m := &Merger{
		store:       newBandStore(),
		breakpoints: DefaultBreakpoints(),
		references:  make(map[string]ReferenceCurve),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Merger) hasData(id BandID) bool {
	return m.store.hasData(id)
}

// Subscribe registers fn to be called after every mutation. The returned
// function removes the subscription.
func (m *Merger) Subscribe(fn Listener) (cancel func()) {
	m.nextID++
	id := m.nextID
	m.listeners = append(m.listeners, subscription{id: id, fn: fn})
	return func() {
		for i, s := range m.listeners {
			if s.id == id {
				m.listeners = append(m.listeners[:i], m.listeners[i+1:]...)
				return
			}
		}
	}
}

// LoadBand replaces band id's data. On error the band is left as it was.
// Loading into an auto-filled band switches its auto-fill off.
func (m *Merger) LoadBand(id BandID, freq, refl []float64, source string) error {
	if !id.Valid() {
		return fmt.Errorf("%w: invalid band %d", ErrLoad, int(id))
	}
	prev := m.save()
	if err := m.store.load(id, freq, refl, source); err != nil {
		return err
	}
	b := m.store.get(id)
	if b.fill.Enabled {
		b.fill.Enabled = false
	}
	seeded := m.seedFills(true)
	m.placeAround(id)
	for _, c := range seeded {
		m.placeAround(c)
	}
	return m.commit("load_band", prev)
}

// UnloadBand clears band id. Unloading an auto-filled band switches its
// auto-fill off.
func (m *Merger) UnloadBand(id BandID) error {
	if !id.Valid() {
		return fmt.Errorf("invalid band %d", int(id))
	}
	prev := m.save()
	b := m.store.get(id)
	b.clearData()
	b.fill.Enabled = false
	m.seedFills(false)
	m.breakpoints.normalize(m.breakpointInUse)
	return m.commit("unload_band", prev)
}

// SetBreakpoint moves breakpoint k (1-based) and returns the value actually
// applied after clamping.
func (m *Merger) SetBreakpoint(k int, v float64) (float64, error) {
	prev := m.save()
	applied, err := m.breakpoints.set(k, v)
	if err != nil {
		return 0, err
	}
	if err := m.commit("set_breakpoint", prev); err != nil {
		return 0, err
	}
	return applied, nil
}

// SetScale sets band id's offset and multiplier. Values are clamped to
// their limits. Auto-filled bands stay at identity.
func (m *Merger) SetScale(id BandID, offset, multiplier float64) error {
	if !id.Valid() {
		return fmt.Errorf("invalid band %d", int(id))
	}
	prev := m.save()
	if m.store.get(id).fill.Enabled {
		offset, multiplier = 0, 1
	}
	m.store.setScale(id, offset, multiplier)
	return m.commit("set_scale", prev)
}

// ResetScale restores band id to offset 0, multiplier 1.
func (m *Merger) ResetScale(id BandID) error {
	if !id.Valid() {
		return fmt.Errorf("invalid band %d", int(id))
	}
	prev := m.save()
	m.store.setScale(id, 0, 1)
	return m.commit("reset_scale", prev)
}

// SetAutoFill switches auto-fill on or off for interior band c and reports
// whether a bridge is available. Enabling replaces any loaded data in c;
// disabling clears it.
func (m *Merger) SetAutoFill(c BandID, enabled bool, order Order) (bool, error) {
	if !c.Interior() {
		return false, fmt.Errorf("auto-fill is only available for FIR, MIR and NIR, got %s", c)
	}
	prev := m.save()
	b := m.store.get(c)
	b.clearData()
	if !enabled {
		b.fill.Enabled = false
		m.breakpoints.normalize(m.breakpointInUse)
		return false, m.commit("set_autofill", prev)
	}

	b.fill = AutoFill{Enabled: true, Order: order}
	m.store.setScale(c, 0, 1)
	m.seedFills(false)
	m.placeAround(c)
	if err := m.commit("set_autofill", prev); err != nil {
		return false, err
	}
	return m.hasData(c), nil
}

// SetArtifactRemoval switches the visible-band artifact filter. If the
// filter cannot run on the current data the switch is left as it was and
// the error is returned.
func (m *Merger) SetArtifactRemoval(on bool) error {
	prev := m.save()
	m.removeArtifact = on
	return m.commit("set_artifact_removal", prev)
}

// ArtifactRemoval reports whether the artifact filter is on.
func (m *Merger) ArtifactRemoval() bool {
	return m.removeArtifact
}

// SelectReference picks the reference curve used by Export. An empty name or
// "none" disables normalization. Names match case-insensitively.
func (m *Merger) SelectReference(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "none") {
		m.reference = ""
		m.notify("select_reference")
		return nil
	}
	for n := range m.references {
		if strings.EqualFold(n, name) {
			m.reference = n
			m.notify("select_reference")
			return nil
		}
	}
	return fmt.Errorf("unknown reference %q", name)
}

// Reference returns the selected reference name, or "" for none.
func (m *Merger) Reference() string {
	return m.reference
}

// References lists the registered reference names.
func (m *Merger) References() []string {
	names := make([]string, 0, len(m.references))
	for n := range m.references {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Breakpoints returns the four breakpoints.
func (m *Merger) Breakpoints() Breakpoints {
	return m.breakpoints
}

// Markers returns the breakpoints whose two bands both hold data.
func (m *Merger) Markers() []Marker {
	var out []Marker
	for k := 1; k <= NumBreakpoints; k++ {
		if m.breakpointInUse(k) {
			out = append(out, Marker{Index: k, Frequency: m.breakpoints.Get(k)})
		}
	}
	return out
}

// Segment is one band's visible contribution.
type Segment struct {
	Band        BandID
	Frequency   []float64
	Reflectance []float64
}

// Segments returns the active, scaled samples of every band that
// contributes any, in ascending band order. The slices are copies.
func (m *Merger) Segments() []Segment {
	var out []Segment
	for _, id := range Bands() {
		b := m.store.get(id)
		if len(b.scaled) == 0 {
			continue
		}
		out = append(out, Segment{
			Band:        id,
			Frequency:   append([]float64(nil), b.frequency[b.active.Start:b.active.End]...),
			Reflectance: append([]float64(nil), b.scaled...),
		})
	}
	return out
}

// Assemble concatenates every band's active, scaled samples.
func (m *Merger) Assemble() Spectrum {
	var s Spectrum
	for _, id := range Bands() {
		b := m.store.get(id)
		if len(b.scaled) == 0 {
			continue
		}
		s.Frequency = append(s.Frequency, b.frequency[b.active.Start:b.active.End]...)
		s.Reflectance = append(s.Reflectance, b.scaled...)
	}
	return s
}

// Export assembles the spectrum and normalizes it against the selected
// reference, if any.
func (m *Merger) Export() (Spectrum, error) {
	if m.removeArtifact && m.artifactErr != nil {
		return Spectrum{}, m.artifactErr
	}
	s := m.Assemble()
	if m.reference == "" {
		return s, nil
	}
	return Normalize(s, m.references[m.reference])
}

// BandState is a read-only snapshot of one band.
type BandState struct {
	ID         BandID
	Source     string
	Samples    int
	Active     Range
	Measured   bool
	Offset     float64
	Multiplier float64
	AutoFill   AutoFill
	// FillAvailable is true when auto-fill is on and a bridge was built.
	FillAvailable bool
	// MinFrequency and MaxFrequency span the raw data; zero when empty.
	MinFrequency float64
	MaxFrequency float64
}

// Band returns a snapshot of band id.
func (m *Merger) Band(id BandID) (BandState, error) {
	if !id.Valid() {
		return BandState{}, fmt.Errorf("invalid band %d", int(id))
	}
	b := m.store.get(id)
	st := BandState{
		ID:            id,
		Source:        b.source,
		Samples:       len(b.frequency),
		Active:        b.active,
		Measured:      b.measured,
		Offset:        b.offset,
		Multiplier:    b.multiplier,
		AutoFill:      b.fill,
		FillAvailable: b.fill.Enabled && b.hasData(),
	}
	if b.hasData() {
		st.MinFrequency = b.frequency[0]
		st.MaxFrequency = b.frequency[len(b.frequency)-1]
	}
	return st, nil
}

// recompute runs the full chain: fill seeding, segment extraction, bridge
// rebuild, scaling and the artifact filter.
func (m *Merger) recompute() error {
	m.seedFills(false)
	for {
		m.extractSegments()
		if !m.rebuildFills() {
			break
		}
	}
	// Bridges were replaced; their own ranges need refreshing.
	m.extractSegments()
	for _, id := range Bands() {
		m.applyScale(id)
	}
	m.artifactErr = m.filterArtifact()
	return m.artifactErr
}

// state is everything a mutation may change. Slices are never written in
// place once stored, so a shallow copy is enough to roll back.
type state struct {
	bands          [NumBands]band
	breakpoints    Breakpoints
	removeArtifact bool
	artifactErr    error
}

func (m *Merger) save() state {
	return state{
		bands:          m.store.bands,
		breakpoints:    m.breakpoints,
		removeArtifact: m.removeArtifact,
		artifactErr:    m.artifactErr,
	}
}

func (m *Merger) restore(s state) {
	m.store.bands = s.bands
	m.breakpoints = s.breakpoints
	m.removeArtifact = s.removeArtifact
	m.artifactErr = s.artifactErr
}

// commit recomputes and notifies subscribers. If the recompute fails the
// merger is rolled back to prev and nobody is notified.
func (m *Merger) commit(op string, prev state) error {
	if err := m.recompute(); err != nil {
		m.restore(prev)
		return err
	}
	m.notify(op)
	return nil
}

func (m *Merger) notify(op string) {
	if len(m.listeners) == 0 {
		return
	}
	ev := Event{Op: op, Samples: m.sampleCount()}
	for _, s := range m.listeners {
		s.fn(ev)
	}
}

func (m *Merger) sampleCount() int {
	n := 0
	for _, id := range Bands() {
		n += len(m.store.get(id).scaled)
	}
	return n
}
