package inkcms

// SiteSource provides the cross-cutting data shared by every public
// view: archive buckets, categories, site parameters and static pages.
type SiteSource interface {
	CountByMonth() ([]MonthCount, error)
	CategoriesByName() ([]Category, error)
	Parameters() (map[string]string, error)
	StaticPages() ([]ContentItem, error)
}

// SiteContext is the context block shared by every listing and post
// view, so templates need no per-view branching. Empty collections are
// normal; a missing archive or category list is never an error.
type SiteContext struct {
	Archives   []MonthCount
	Categories []Category
	Params     map[string]string
	Pages      []ContentItem
}

// ListingContext wraps one page of posts with the shared site context
// and the URL prefix pagination links are built from.
type ListingContext struct {
	SiteContext
	Posts     PageResult
	URLPrefix string
}

// PostContext carries a single post, its comments, and the shared site
// context.
type PostContext struct {
	SiteContext
	Post     ContentItem
	Comments []Comment
}

// Assembler decorates page results with the shared site context.
type Assembler struct {
	source SiteSource
}

// NewAssembler creates an Assembler over the given source.
func NewAssembler(source SiteSource) *Assembler {
	return &Assembler{source: source}
}

func (a *Assembler) siteContext() (SiteContext, error) {
	archives, err := a.source.CountByMonth()
	if err != nil {
		return SiteContext{}, err
	}
	categories, err := a.source.CategoriesByName()
	if err != nil {
		return SiteContext{}, err
	}
	params, err := a.source.Parameters()
	if err != nil {
		return SiteContext{}, err
	}
	pages, err := a.source.StaticPages()
	if err != nil {
		return SiteContext{}, err
	}
	return SiteContext{
		Archives:   archives,
		Categories: categories,
		Params:     params,
		Pages:      pages,
	}, nil
}

// Assemble wraps a page result into the context every listing view
// receives.
func (a *Assembler) Assemble(posts PageResult, urlPrefix string) (ListingContext, error) {
	site, err := a.siteContext()
	if err != nil {
		return ListingContext{}, err
	}
	return ListingContext{SiteContext: site, Posts: posts, URLPrefix: urlPrefix}, nil
}

// AssemblePost wraps a single post and its comments into the context
// the post view receives.
func (a *Assembler) AssemblePost(post ContentItem, comments []Comment) (PostContext, error) {
	site, err := a.siteContext()
	if err != nil {
		return PostContext{}, err
	}
	return PostContext{SiteContext: site, Post: post, Comments: comments}, nil
}
