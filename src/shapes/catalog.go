//Package shapes keeps named seed patterns and helpers to transform them
package shapes

import (
	"sort"

	"lifeplayer/src/grid"
)

//Template is a named seed pattern, Coordinates are relative to an implicit origin
type Template struct {
	Name        string
	Descr       string
	Categories  []string
	Coordinates []grid.Coord
}

//Catalog maps shape names to templates
//the zero value is not usable, create it with NewCatalog
type Catalog struct {
	templates  map[string]Template
	categories map[string][]string
}

func NewCatalog(templates ...Template) *Catalog {
	c := &Catalog{
		templates:  map[string]Template{},
		categories: map[string][]string{},
	}
	for _, t := range templates {
		c.Add(t)
	}
	return c
}

//Add stores the template, a template with the same name is replaced
func (c *Catalog) Add(t Template) {
	if _, ok := c.templates[t.Name]; !ok {
		for _, cat := range t.Categories {
			c.categories[cat] = append(c.categories[cat], t.Name)
		}
	}
	c.templates[t.Name] = t
}

//Lookup returns the coordinates of the named shape
func (c *Catalog) Lookup(name string) ([]grid.Coord, bool) {
	t, ok := c.templates[name]
	if !ok {
		return nil, false
	}
	return t.Coordinates, true
}

//Template returns the full template of the named shape
func (c *Catalog) Template(name string) (Template, bool) {
	t, ok := c.templates[name]
	return t, ok
}

//Names returns all shape names sorted
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.templates))
	for k := range c.templates {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

//Category returns the shape names of the category in insertion order
func (c *Catalog) Category(name string) []string {
	return append([]string(nil), c.categories[name]...)
}
