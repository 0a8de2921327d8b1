package catalog

// Catalog is the immutable set of building, milestone, and perk
// definitions the simulation draws from. Lookup only; all balance
// numbers live in the definitions themselves.
type Catalog struct {
	buildings    []BuildingDefinition
	buildingByID map[string]BuildingDefinition

	milestones    []Milestone
	milestoneByID map[string]Milestone

	perks    []Perk
	perkByID map[string]Perk
}

func New(buildings []BuildingDefinition, milestones []Milestone, perks []Perk) *Catalog {
	c := &Catalog{
		buildings:     buildings,
		buildingByID:  make(map[string]BuildingDefinition, len(buildings)),
		milestones:    milestones,
		milestoneByID: make(map[string]Milestone, len(milestones)),
		perks:         perks,
		perkByID:      make(map[string]Perk, len(perks)),
	}
	for _, b := range buildings {
		c.buildingByID[b.ID] = b
	}
	for _, m := range milestones {
		c.milestoneByID[m.ID] = m
	}
	for _, p := range perks {
		c.perkByID[p.ID] = p
	}
	return c
}

// Default returns the catalog with the stock park content.
func Default() *Catalog {
	return New(Buildings, Milestones, Perks)
}

func (c *Catalog) Building(id string) (BuildingDefinition, bool) {
	b, ok := c.buildingByID[id]
	return b, ok
}

func (c *Catalog) Buildings() []BuildingDefinition {
	out := make([]BuildingDefinition, len(c.buildings))
	copy(out, c.buildings)
	return out
}

func (c *Catalog) Milestone(id string) (Milestone, bool) {
	m, ok := c.milestoneByID[id]
	return m, ok
}

func (c *Catalog) Milestones() []Milestone {
	out := make([]Milestone, len(c.milestones))
	copy(out, c.milestones)
	return out
}

func (c *Catalog) Perk(id string) (Perk, bool) {
	p, ok := c.perkByID[id]
	return p, ok
}

func (c *Catalog) Perks() []Perk {
	out := make([]Perk, len(c.perks))
	copy(out, c.perks)
	return out
}
