package client

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/paulaveiga/doceria-api/utils/slug"
)

// ListPhase is the lifecycle of one admin list view
type ListPhase int

const (
	PhaseIdle ListPhase = iota
	PhaseLoading
	PhaseLoaded
	PhaseError
)

// ListView drives one resource list: Idle/Loading to Loaded or Error.
// Every Load bumps a sequence number; a response whose sequence has been
// superseded is dropped instead of clobbering newer state.
type ListView[T any] struct {
	mu    sync.Mutex
	phase ListPhase
	items []T
	err   error
	seq   uint64
	fetch func(context.Context) ([]T, error)
}

// NewListView creates a list view over a fetch function
func NewListView[T any](fetch func(context.Context) ([]T, error)) *ListView[T] {
	return &ListView[T]{fetch: fetch}
}

// Load fetches the list. Safe to call again while a previous Load is in
// flight; only the most recent call's result is applied.
func (v *ListView[T]) Load(ctx context.Context) error {
	v.mu.Lock()
	v.seq++
	seq := v.seq
	v.phase = PhaseLoading
	v.mu.Unlock()

	items, err := v.fetch(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if seq != v.seq {
		// superseded by a newer Load, drop this response
		return nil
	}
	if err != nil {
		v.phase = PhaseError
		v.err = err
		return err
	}
	v.phase = PhaseLoaded
	v.items = items
	v.err = nil
	return nil
}

// Phase returns the current lifecycle phase
func (v *ListView[T]) Phase() ListPhase {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.phase
}

// Items returns the loaded items
func (v *ListView[T]) Items() []T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.items
}

// Err returns the error of the last failed load, nil otherwise
func (v *ListView[T]) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

// DialogMode distinguishes the create and edit dialogs
type DialogMode int

const (
	ModeCreate DialogMode = iota
	ModeEdit
)

// deleteConfirm is the two-step destructive-action machine:
// pending-confirmation then confirmed or cancelled. No network call
// happens before the confirm step.
type deleteConfirm struct {
	id      string
	pending bool
}

func (d *deleteConfirm) request(id string) {
	d.id = id
	d.pending = true
}

func (d *deleteConfirm) cancel() {
	d.id = ""
	d.pending = false
}

func (d *deleteConfirm) take() (string, bool) {
	if !d.pending {
		return "", false
	}
	id := d.id
	d.cancel()
	return id, true
}

// CategoryDraft is the in-progress category form. The slug follows the
// name until the user edits it by hand; from then on name edits leave
// the slug alone for the rest of the draft session.
type CategoryDraft struct {
	Name       string
	Slug       string
	slugEdited bool
}

// SetName updates the name, re-deriving the slug unless manually edited
func (d *CategoryDraft) SetName(name string) {
	d.Name = name
	if !d.slugEdited {
		d.Slug = slug.Generate(name)
	}
}

// SetSlug records a manual slug edit and stops auto-derivation
func (d *CategoryDraft) SetSlug(value string) {
	d.Slug = value
	d.slugEdited = true
}

// CategoryConsole drives the category admin view
type CategoryConsole struct {
	api        *Client
	List       *ListView[Category]
	dialogOpen bool
	draft      CategoryDraft
	confirm    deleteConfirm
}

// NewCategoryConsole creates the category console
func NewCategoryConsole(api *Client) *CategoryConsole {
	return &CategoryConsole{
		api:  api,
		List: NewListView(api.ListCategories),
	}
}

// OpenCreate opens the dialog with an empty draft
func (c *CategoryConsole) OpenCreate() {
	c.draft = CategoryDraft{}
	c.dialogOpen = true
}

// CloseDialog closes the dialog, discarding the draft
func (c *CategoryConsole) CloseDialog() {
	c.draft = CategoryDraft{}
	c.dialogOpen = false
}

// DialogOpen reports whether the create dialog is showing
func (c *CategoryConsole) DialogOpen() bool {
	return c.dialogOpen
}

// Draft returns the live draft for field edits
func (c *CategoryConsole) Draft() *CategoryDraft {
	return &c.draft
}

// Submit validates and creates the drafted category. Validation failures
// keep the dialog open; success closes it and reloads the list.
func (c *CategoryConsole) Submit(ctx context.Context) error {
	name := strings.TrimSpace(c.draft.Name)
	if name == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}

	categorySlug := c.draft.Slug
	if categorySlug == "" {
		categorySlug = slug.Generate(name)
	}
	if categorySlug == "" {
		return &ValidationError{Field: "slug", Message: "name does not produce a valid slug"}
	}

	if _, err := c.api.CreateCategory(ctx, CategoryInput{Name: name, Slug: categorySlug}); err != nil {
		return err
	}

	c.CloseDialog()
	return c.List.Load(ctx)
}

// RequestDelete marks a row for deletion, awaiting confirmation
func (c *CategoryConsole) RequestDelete(id string) {
	c.confirm.request(id)
}

// CancelDelete abandons a pending deletion without any network call
func (c *CategoryConsole) CancelDelete() {
	c.confirm.cancel()
}

// ConfirmDelete issues the delete for the pending row, then reloads.
// A no-op when nothing is pending.
func (c *CategoryConsole) ConfirmDelete(ctx context.Context) error {
	id, ok := c.confirm.take()
	if !ok {
		return nil
	}
	if err := c.api.DeleteCategory(ctx, id); err != nil {
		return err
	}
	return c.List.Load(ctx)
}

// CakeDraft is the in-progress catalog item form. Price stays a string
// until submit so the dialog can hold whatever was typed.
type CakeDraft struct {
	Name        string
	Description string
	Price       string
	CategoryID  string
	ImageURL    string
	Featured    bool
}

// CakeConsole drives the catalog item admin view
type CakeConsole struct {
	api        *Client
	List       *ListView[Cake]
	dialogOpen bool
	mode       DialogMode
	targetID   string
	draft      CakeDraft
	confirm    deleteConfirm
}

// NewCakeConsole creates the cake console
func NewCakeConsole(api *Client) *CakeConsole {
	return &CakeConsole{
		api: api,
		List: NewListView(func(ctx context.Context) ([]Cake, error) {
			return api.ListCakes(ctx, CakeFilter{})
		}),
	}
}

// OpenCreate opens the dialog with empty defaults
func (c *CakeConsole) OpenCreate() {
	c.draft = CakeDraft{}
	c.mode = ModeCreate
	c.targetID = ""
	c.dialogOpen = true
}

// OpenEdit seeds the draft from an existing row
func (c *CakeConsole) OpenEdit(cake Cake) {
	c.draft = CakeDraft{
		Name:        cake.Name,
		Description: cake.Description,
		Price:       strconv.FormatFloat(cake.Price, 'f', -1, 64),
		CategoryID:  cake.CategoryID,
		ImageURL:    cake.ImageURL,
		Featured:    cake.Featured,
	}
	c.mode = ModeEdit
	c.targetID = cake.ID
	c.dialogOpen = true
}

// CloseDialog closes the dialog, discarding the draft
func (c *CakeConsole) CloseDialog() {
	c.draft = CakeDraft{}
	c.targetID = ""
	c.dialogOpen = false
}

// DialogOpen reports whether the dialog is showing
func (c *CakeConsole) DialogOpen() bool {
	return c.dialogOpen
}

// Mode returns the dialog mode
func (c *CakeConsole) Mode() DialogMode {
	return c.mode
}

// Draft returns the live draft for field edits
func (c *CakeConsole) Draft() *CakeDraft {
	return &c.draft
}

// Submit validates and persists the draft. The price must parse as a
// non-negative number before any request goes out. Success closes the
// dialog and reloads the list; failure leaves the dialog open.
func (c *CakeConsole) Submit(ctx context.Context) error {
	name := strings.TrimSpace(c.draft.Name)
	if name == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if strings.TrimSpace(c.draft.Description) == "" {
		return &ValidationError{Field: "description", Message: "description is required"}
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(c.draft.Price), 64)
	if err != nil {
		return &ValidationError{Field: "price", Message: "price must be a number"}
	}
	if price < 0 {
		return &ValidationError{Field: "price", Message: "price cannot be negative"}
	}

	input := CakeInput{
		Name:        name,
		Description: strings.TrimSpace(c.draft.Description),
		Price:       price,
		CategoryID:  c.draft.CategoryID,
		ImageURL:    c.draft.ImageURL,
		Featured:    c.draft.Featured,
	}

	if c.mode == ModeEdit {
		_, err = c.api.UpdateCake(ctx, c.targetID, input)
	} else {
		_, err = c.api.CreateCake(ctx, input)
	}
	if err != nil {
		return err
	}

	c.CloseDialog()
	return c.List.Load(ctx)
}

// RequestDelete marks a row for deletion, awaiting confirmation
func (c *CakeConsole) RequestDelete(id string) {
	c.confirm.request(id)
}

// CancelDelete abandons a pending deletion without any network call
func (c *CakeConsole) CancelDelete() {
	c.confirm.cancel()
}

// ConfirmDelete issues the delete for the pending row, then reloads
func (c *CakeConsole) ConfirmDelete(ctx context.Context) error {
	id, ok := c.confirm.take()
	if !ok {
		return nil
	}
	if err := c.api.DeleteCake(ctx, id); err != nil {
		return err
	}
	return c.List.Load(ctx)
}

// TestimonialDraft is the in-progress testimonial form
type TestimonialDraft struct {
	AuthorName string
	Content    string
	Rating     int
}

// TestimonialConsole drives the testimonial admin view
type TestimonialConsole struct {
	api        *Client
	List       *ListView[Testimonial]
	dialogOpen bool
	draft      TestimonialDraft
	confirm    deleteConfirm
}

// NewTestimonialConsole creates the testimonial console
func NewTestimonialConsole(api *Client) *TestimonialConsole {
	return &TestimonialConsole{
		api:  api,
		List: NewListView(api.ListTestimonials),
	}
}

// OpenCreate opens the dialog with the rating defaulted to five stars
func (c *TestimonialConsole) OpenCreate() {
	c.draft = TestimonialDraft{Rating: 5}
	c.dialogOpen = true
}

// CloseDialog closes the dialog, discarding the draft
func (c *TestimonialConsole) CloseDialog() {
	c.draft = TestimonialDraft{}
	c.dialogOpen = false
}

// DialogOpen reports whether the dialog is showing
func (c *TestimonialConsole) DialogOpen() bool {
	return c.dialogOpen
}

// Draft returns the live draft for field edits
func (c *TestimonialConsole) Draft() *TestimonialDraft {
	return &c.draft
}

// Submit validates and creates the drafted testimonial
func (c *TestimonialConsole) Submit(ctx context.Context) error {
	if strings.TrimSpace(c.draft.AuthorName) == "" {
		return &ValidationError{Field: "author_name", Message: "author name is required"}
	}
	if strings.TrimSpace(c.draft.Content) == "" {
		return &ValidationError{Field: "content", Message: "content is required"}
	}
	if c.draft.Rating < 1 || c.draft.Rating > 5 {
		return &ValidationError{Field: "rating", Message: "rating must be between 1 and 5"}
	}

	_, err := c.api.CreateTestimonial(ctx, TestimonialInput{
		AuthorName: strings.TrimSpace(c.draft.AuthorName),
		Content:    strings.TrimSpace(c.draft.Content),
		Rating:     c.draft.Rating,
	})
	if err != nil {
		return err
	}

	c.CloseDialog()
	return c.List.Load(ctx)
}

// RequestDelete marks a row for deletion, awaiting confirmation
func (c *TestimonialConsole) RequestDelete(id string) {
	c.confirm.request(id)
}

// CancelDelete abandons a pending deletion without any network call
func (c *TestimonialConsole) CancelDelete() {
	c.confirm.cancel()
}

// ConfirmDelete issues the delete for the pending row, then reloads
func (c *TestimonialConsole) ConfirmDelete(ctx context.Context) error {
	id, ok := c.confirm.take()
	if !ok {
		return nil
	}
	if err := c.api.DeleteTestimonial(ctx, id); err != nil {
		return err
	}
	return c.List.Load(ctx)
}

// SettingsForm is the admin settings editor, always in edit mode against
// the singleton record
type SettingsForm struct {
	api *Client

	HeroImageURL         string
	LogoURL              string
	InstagramAccessToken string
	InstagramUserID      string
}

// NewSettingsForm creates the settings editor
func NewSettingsForm(api *Client) *SettingsForm {
	return &SettingsForm{api: api}
}

// Load seeds the form from the authorized settings record
func (f *SettingsForm) Load(ctx context.Context) error {
	settings, err := f.api.GetAdminSettings(ctx)
	if err != nil {
		return err
	}
	f.HeroImageURL = settings.HeroImageURL
	f.LogoURL = settings.LogoURL
	f.InstagramAccessToken = settings.InstagramAccessToken
	f.InstagramUserID = settings.InstagramUserID
	return nil
}

// Submit persists the form and re-reads server truth
func (f *SettingsForm) Submit(ctx context.Context) error {
	_, err := f.api.UpdateSettings(ctx, SettingsUpdate{
		HeroImageURL:         &f.HeroImageURL,
		LogoURL:              &f.LogoURL,
		InstagramAccessToken: &f.InstagramAccessToken,
		InstagramUserID:      &f.InstagramUserID,
	})
	if err != nil {
		return err
	}
	return f.Load(ctx)
}
