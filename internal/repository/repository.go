package repository

// Repositories holds all repository implementations
type Repositories struct {
	Game       GameRepository
	Prediction PredictionRepository
}

// NewRepositories creates the in-memory reference implementations.
func NewRepositories() *Repositories {
	return &Repositories{
		Game:       NewMemoryGameRepository(),
		Prediction: NewMemoryPredictionRepository(),
	}
}
