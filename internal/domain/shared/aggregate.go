package shared

// BaseAggregateRoot provides common fields for aggregate roots
type BaseAggregateRoot struct {
	BaseEntity
	Version       int           `gorm:"not null;default:1"`
	storedVersion int           `gorm:"-"`
	domainEvents  []DomainEvent `gorm:"-"`
}

// IncrementVersion increments the version number
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// MarkStored records the current version as the one sitting in the
// database. Repositories call it after loading and after a successful
// version-guarded save.
func (a *BaseAggregateRoot) MarkStored() {
	a.storedVersion = a.Version
}

// StoredVersion returns the version last seen in the database. The
// optimistic-lock predicate must compare against this value, not
// Version-1: a unit of work may run several domain mutations, each
// incrementing the in-memory version, before a single save. For an
// aggregate that was never loaded it assumes exactly one increment.
func (a *BaseAggregateRoot) StoredVersion() int {
	if a.storedVersion > 0 {
		return a.storedVersion
	}
	return a.Version - 1
}

// AddDomainEvent adds a domain event to be published
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
}

// GetDomainEvents returns all pending domain events
func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent {
	return a.domainEvents
}

// ClearDomainEvents clears the pending domain events
func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.domainEvents = nil
}

// NewBaseAggregateRoot creates a new base aggregate root
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity:   NewBaseEntity(),
		Version:      1,
		domainEvents: make([]DomainEvent, 0),
	}
}
