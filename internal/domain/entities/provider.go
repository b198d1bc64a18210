package entities

// Worker is one member of a provider's staff. Whether a worker is already
// committed to another booking at a given slot is an external fact queried
// through the availability collaborator, never stored here.
type Worker struct {
	ID       string `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	IsActive bool   `json:"is_active" db:"is_active"`
}

// Provider is a service company with a roster of workers
type Provider struct {
	ID         string   `json:"id" db:"id"`
	Name       string   `json:"name" db:"name"`
	CategoryID string   `json:"category_id" db:"category_id"`
	Rating     float64  `json:"rating" db:"rating"`
	IsActive   bool     `json:"is_active" db:"is_active"`
	Workers    []Worker `json:"workers"`
}

// HasActiveWorker reports whether any locally known worker is active.
// Remote rosters are authoritative; this is only used as a fast pre-filter
// when the roster was loaded alongside the provider.
func (p *Provider) HasActiveWorker() bool {
	for _, w := range p.Workers {
		if w.IsActive {
			return true
		}
	}
	return false
}

// Slot is one discrete bookable time window
type Slot struct {
	Date string `json:"date" db:"date"`
	Time string `json:"time" db:"time"`
}

// ProviderAvailability pairs a provider with the availability verdict
// returned by the bulk collaborator endpoint
type ProviderAvailability struct {
	Provider  Provider `json:"provider"`
	Available bool     `json:"available"`
}
