package story

// Session is the persistable progress of one play-through. Position is
// recorded as the path of 1-based choice indexes taken from the root, not
// as node ids: ids are renumbered whenever a storyline is reloaded from its
// serialized form, while the choice path survives any reload of the same
// document.
type Session struct {
	Storyline string `json:"storyline"`
	Path      []int  `json:"path"`
}

// Step appends a choice to the path.
func (s *Session) Step(choice int) {
	s.Path = append(s.Path, choice)
}
