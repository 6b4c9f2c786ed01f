package client

import "context"

// CategoryAll selects every cake regardless of category
const CategoryAll = "all"

// featuredLimit caps the storefront home carousel
const featuredLimit = 4

// FilterByCategory narrows already-fetched cakes to one category id,
// preserving order. CategoryAll returns the full set unchanged. Pure
// client-side, no round trip per filter change.
func FilterByCategory(cakes []Cake, categoryID string) []Cake {
	if categoryID == CategoryAll || categoryID == "" {
		return cakes
	}

	filtered := make([]Cake, 0, len(cakes))
	for _, cake := range cakes {
		if cake.CategoryID == categoryID {
			filtered = append(filtered, cake)
		}
	}
	return filtered
}

// FeaturedSubset returns at most the first four cakes in server order
func FeaturedSubset(cakes []Cake) []Cake {
	if len(cakes) <= featuredLimit {
		return cakes
	}
	return cakes[:featuredLimit]
}

// Lightbox is the pure selection state of the catalog detail view.
// Selecting and deselecting never touches the server.
type Lightbox struct {
	selected *Cake
}

// Select opens the lightbox on one cake
func (l *Lightbox) Select(cake Cake) {
	c := cake
	l.selected = &c
}

// Deselect closes the lightbox
func (l *Lightbox) Deselect() {
	l.selected = nil
}

// Selected returns the open cake, false when the lightbox is closed
func (l *Lightbox) Selected() (Cake, bool) {
	if l.selected == nil {
		return Cake{}, false
	}
	return *l.selected, true
}

// GalleryView assembles the public gallery from two independent fetches.
// Cakes and categories are requested together and may resolve in either
// order; the view only reports Ready once both have arrived.
type GalleryView struct {
	api *Client

	cakes          []Cake
	categories     []Category
	haveCakes      bool
	haveCategories bool
	activeCategory string
}

// NewGalleryView creates a gallery over the resource client
func NewGalleryView(api *Client) *GalleryView {
	return &GalleryView{api: api, activeCategory: CategoryAll}
}

// LoadCakes fetches and applies the cake list
func (g *GalleryView) LoadCakes(ctx context.Context) error {
	cakes, err := g.api.ListCakes(ctx, CakeFilter{})
	if err != nil {
		return err
	}
	g.SetCakes(cakes)
	return nil
}

// LoadCategories fetches and applies the category list
func (g *GalleryView) LoadCategories(ctx context.Context) error {
	categories, err := g.api.ListCategories(ctx)
	if err != nil {
		return err
	}
	g.SetCategories(categories)
	return nil
}

// SetCakes applies a resolved cake fetch, whichever order it lands in
func (g *GalleryView) SetCakes(cakes []Cake) {
	g.cakes = cakes
	g.haveCakes = true
}

// SetCategories applies a resolved category fetch
func (g *GalleryView) SetCategories(categories []Category) {
	g.categories = categories
	g.haveCategories = true
}

// Ready reports whether both fetches have resolved
func (g *GalleryView) Ready() bool {
	return g.haveCakes && g.haveCategories
}

// SetFilter switches the active category filter
func (g *GalleryView) SetFilter(categoryID string) {
	g.activeCategory = categoryID
}

// Filter returns the active category filter
func (g *GalleryView) Filter() string {
	return g.activeCategory
}

// Categories returns the fetched category list
func (g *GalleryView) Categories() []Category {
	return g.categories
}

// VisibleCakes returns the cakes matching the active filter
func (g *GalleryView) VisibleCakes() []Cake {
	return FilterByCategory(g.cakes, g.activeCategory)
}
