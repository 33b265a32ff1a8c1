package matching

// Candidates is an ordered collection of validated candidate records.
type Candidates struct {
	Items []*CandidateRecord
}

func (c *Candidates) Len() int {
	return len(c.Items)
}

func (c *Candidates) Append(record *CandidateRecord) {
	c.Items = append(c.Items, record)
}

func (c *Candidates) Names() []string {
	names := make([]string, 0, len(c.Items))
	for _, candidate := range c.Items {
		names = append(names, candidate.Name)
	}
	return names
}

// Teams is an ordered collection of validated team records keyed by name.
type Teams struct {
	Items []*TeamRecord
}

func (t *Teams) Len() int {
	return len(t.Items)
}

func (t *Teams) Names() []string {
	names := make([]string, 0, len(t.Items))
	for _, team := range t.Items {
		names = append(names, team.Name)
	}
	return names
}

func (t *Teams) FindByName(name string) *TeamRecord {
	for _, team := range t.Items {
		if team.Name == name {
			return team
		}
	}
	return nil
}

// Add appends a team to the collection. When a team with the same name is
// already present the newcomer replaces it (last processed wins) and the
// displaced record is returned so callers can warn about the collision.
func (t *Teams) Add(team *TeamRecord) *TeamRecord {
	for idx, existing := range t.Items {
		if existing.Name == team.Name {
			t.Items[idx] = team
			return existing
		}
	}

	t.Items = append(t.Items, team)
	return nil
}
