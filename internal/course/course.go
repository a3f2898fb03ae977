// Package course holds the read-only course tree fetched from the
// content service. The client never mutates these values; personalized
// and translated variants live in the viewing screen's transient state.
package course

// Course is the root of the course tree.
type Course struct {
	ID      string   `json:"_id"`
	Name    string   `json:"name"`
	Modules []Module `json:"modules"`
}

// Module is an ordered group of assets. A module becomes quiz-eligible
// once its last asset is reached.
type Module struct {
	ID     string  `json:"_id"`
	Code   string  `json:"code"`
	Name   string  `json:"name"`
	Assets []Asset `json:"assets"`
}

// Asset is one piece of lesson content within a module.
type Asset struct {
	ID       string `json:"_id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Content  string `json:"content"`
	Language string `json:"language"`
	Domain   string `json:"domain"`
	Hobby    string `json:"hobby"`
	Style    string `json:"style"`
}

// Selection identifies an asset picked from the tree, along with the
// position facts the viewer needs to decide between "advance to the
// next asset" and "resolve the module quiz".
type Selection struct {
	Asset       Asset
	Module      Module
	AssetIndex  int
	ModuleIndex int
	// LastInModule is true when the asset is the final one of its
	// module, which makes "next" trigger quiz resolution instead of
	// asset advance.
	LastInModule bool
}

// Select builds a Selection for the asset at (moduleIndex, assetIndex).
// Returns false when either index is out of range.
func (c Course) Select(moduleIndex, assetIndex int) (Selection, bool) {
	if moduleIndex < 0 || moduleIndex >= len(c.Modules) {
		return Selection{}, false
	}
	m := c.Modules[moduleIndex]
	if assetIndex < 0 || assetIndex >= len(m.Assets) {
		return Selection{}, false
	}
	return Selection{
		Asset:        m.Assets[assetIndex],
		Module:       m,
		AssetIndex:   assetIndex,
		ModuleIndex:  moduleIndex,
		LastInModule: assetIndex == len(m.Assets)-1,
	}, true
}

// Next returns the selection for the sibling asset following s, or
// (Selection{}, false) when s is the last asset of its module.
func (c Course) Next(s Selection) (Selection, bool) {
	if s.LastInModule {
		return Selection{}, false
	}
	return c.Select(s.ModuleIndex, s.AssetIndex+1)
}
