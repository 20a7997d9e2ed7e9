package fixtures

// FixtureStore defines the interface for interacting with fixture data.
type FixtureStore interface {
	AddFixture(fixture *Fixture) error
	GetFixtures(playerID string) ([]Fixture, error)
	DeleteFixture(fixtureID string) error
}
