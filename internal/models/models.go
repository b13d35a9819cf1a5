// package models defines the data model for the song catalog
package models

import (
	"time"
)

// Model defines the base interface for all persistent models, keyed by K.
type Model[K comparable] interface {
	ID() K           // ID returns the unique identifier for this model
	Validate() error // Validate checks if the model's data is valid and returns an error if not
}

// Timestamped is implemented by models that track creation and modification times.
type Timestamped interface {
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[K comparable, T Model[K]] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id K) (T, error)                       // Get retrieves a model by its ID
	Update(model T) error                      // Update modifies an existing model in the database
	Delete(id K) error                         // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}
