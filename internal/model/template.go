package model

import "time"

// FootprintTemplate is a reusable footprint with the pitch it was drawn on.
type FootprintTemplate struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`
	Pitch       float64   `json:"pitch"`
	Footprint   Footprint `json:"footprint"`
}

// NewFootprintTemplate creates a new template from the given footprint.
func NewFootprintTemplate(name, description string, pitch float64, footprint Footprint) FootprintTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return FootprintTemplate{
		ID:          newID(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Pitch:       pitch,
		Footprint:   copyFootprint(footprint),
	}
}

// ToProject creates a new Project from this template.
func (t FootprintTemplate) ToProject(projectName string) Project {
	p := NewProject()
	p.Name = projectName
	p.Footprint = copyFootprint(t.Footprint)
	if t.Pitch > 0 {
		p.Settings.Pitch = t.Pitch
	}
	return p
}

// TemplateStore holds a collection of footprint templates.
type TemplateStore struct {
	Templates []FootprintTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{
		Templates: []FootprintTemplate{},
	}
}

// Add adds a template to the store.
func (ts *TemplateStore) Add(t FootprintTemplate) {
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID. Returns true if found and removed.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByName returns a pointer to the first template with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *FootprintTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}

// Names returns a list of template names.
func (ts *TemplateStore) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}

// gridFootprint scales grid-unit vertices by pitch.
func gridFootprint(pitch float64, coords ...int) Footprint {
	f := make(Footprint, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		f = append(f, Point{X: float64(coords[i]) * pitch, Y: float64(coords[i+1]) * pitch})
	}
	return f
}

// BuiltinTemplates returns the shipped footprints, all on a pitch of 20.
func BuiltinTemplates() TemplateStore {
	const pitch = 20
	store := NewTemplateStore()
	store.Add(NewFootprintTemplate("L", "Hexagon with one notched corner", pitch,
		gridFootprint(pitch, 0, 0, 2, 0, 2, 1, 1, 1, 1, 2, 0, 2)))
	store.Add(NewFootprintTemplate("Plus", "Symmetric cross", pitch,
		gridFootprint(pitch, 1, 0, 2, 0, 2, 1, 3, 1, 3, 2, 2, 2, 2, 3, 1, 3, 1, 2, 0, 2, 0, 1, 1, 1)))
	store.Add(NewFootprintTemplate("T", "Bar on a centered stem", pitch,
		gridFootprint(pitch, 1, 0, 2, 0, 2, 2, 3, 2, 3, 3, 0, 3, 0, 2, 1, 2)))
	store.Add(NewFootprintTemplate("U", "Block with a notch in the top edge", pitch,
		gridFootprint(pitch, 0, 0, 3, 0, 3, 2, 2, 2, 2, 1, 1, 1, 1, 2, 0, 2)))
	store.Add(NewFootprintTemplate("Staircase", "Three steps down to the right", pitch,
		gridFootprint(pitch, 0, 0, 3, 0, 3, 1, 2, 1, 2, 2, 1, 2, 1, 3, 0, 3)))
	return store
}

func copyFootprint(f Footprint) Footprint {
	if f == nil {
		return Footprint{}
	}
	cp := make(Footprint, len(f))
	copy(cp, f)
	return cp
}
