package seeder

// Defaults seeds the bundled demo data set.
func Defaults() []Seeder {
	return []Seeder{
		FixtureSeeder{Label: "demo", Data: demoFixture},
	}
}
