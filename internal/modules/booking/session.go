package booking

import (
	"sync"
	"time"

	"karam/internal/domain"
)

// FallbackFamilyName labels a session whose family record could not be
// loaded. The booking still goes through with placeholder details.
const FallbackFamilyName = "Unnamed hosting family"

// Session is one in-progress group booking. A session starts as soon as a
// visitor picks a family and a package; its family/package snapshot is
// resolved asynchronously and may arrive after the first guests were added.
type Session struct {
	ID          int64
	OwnerKey    string
	FamilyID    int64
	PackageType domain.PackageType
	StartedAt   time.Time

	Family  *domain.HostFamily
	Package *domain.Package
	Roster  *Roster
	Notes   string
}

// Pricing computes the current quote from the resolved package price and the
// roster size. Before the snapshot resolves the fallback price applies.
func (s *Session) Pricing() domain.PricingSnapshot {
	base := s.PackageType.DefaultPrice()
	if s.Package != nil {
		base = s.Package.PricePerPerson
	}
	return domain.CalculatePrice(base, s.Roster.Count())
}

func (s *Session) FamilyName() string {
	if s.Family != nil && s.Family.Name != "" {
		return s.Family.Name
	}
	return FallbackFamilyName
}

// SessionManager keeps at most one active session per owner key. All mutation
// goes through the manager's lock, so Session internals need no locking of
// their own.
type SessionManager struct {
	mu     sync.Mutex
	lastID int64
	active map[string]*Session
}

func NewSessionManager() *SessionManager {
	return &SessionManager{active: make(map[string]*Session)}
}

// Start opens a fresh session for the owner, discarding any session already
// in progress. Last start wins. The new session is seeded with one empty
// guest so the roster is never blank on screen.
func (m *SessionManager) Start(ownerKey string, familyID int64, pkg domain.PackageType) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	// Timestamp-derived id, nudged forward when two starts land on the
	// same nanosecond so ids stay strictly monotonic.
	id := time.Now().UnixNano()
	if id <= m.lastID {
		id = m.lastID + 1
	}
	m.lastID = id
	s := &Session{
		ID:          id,
		OwnerKey:    ownerKey,
		FamilyID:    familyID,
		PackageType: pkg,
		StartedAt:   time.Now(),
		Roster:      NewRoster(),
	}
	s.Roster.AddGuest()
	m.active[ownerKey] = s
	return s
}

// AttachSnapshot installs the resolved family/package details onto the
// session, unless the owner has since started a different session. Stale
// resolutions are dropped.
func (m *SessionManager) AttachSnapshot(ownerKey string, sessionID int64, fam *domain.HostFamily, pkg *domain.Package) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.active[ownerKey]
	if !ok || s.ID != sessionID {
		return false
	}
	s.Family = fam
	s.Package = pkg
	return true
}

// Update runs fn against the owner's active session under the manager lock.
// Returns ErrNoActiveSession when there is none.
func (m *SessionManager) Update(ownerKey string, fn func(*Session)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.active[ownerKey]
	if !ok {
		return ErrNoActiveSession
	}
	fn(s)
	return nil
}

// sessionState is a self-contained copy of a session, safe to read outside
// the manager lock.
type sessionState struct {
	ID          int64
	FamilyID    int64
	PackageType domain.PackageType
	StartedAt   time.Time
	FamilyName  string
	Family      *domain.HostFamily
	Package     *domain.Package
	Notes       string
	Guests      []domain.Guest
	Pricing     domain.PricingSnapshot
}

// Snapshot copies the owner's active session state.
func (m *SessionManager) Snapshot(ownerKey string) (sessionState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.active[ownerKey]
	if !ok {
		return sessionState{}, ErrNoActiveSession
	}
	return sessionState{
		ID:          s.ID,
		FamilyID:    s.FamilyID,
		PackageType: s.PackageType,
		StartedAt:   s.StartedAt,
		FamilyName:  s.FamilyName(),
		Family:      s.Family,
		Package:     s.Package,
		Notes:       s.Notes,
		Guests:      s.Roster.Guests(),
		Pricing:     s.Pricing(),
	}, nil
}

// Close discards the owner's active session, if any.
func (m *SessionManager) Close(ownerKey string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.active, ownerKey)
}

// Clear removes the session only if it is still the active one, so a commit
// never tears down a session started afterwards.
func (m *SessionManager) Clear(ownerKey string, sessionID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.active[ownerKey]; ok && s.ID == sessionID {
		delete(m.active, ownerKey)
	}
}
