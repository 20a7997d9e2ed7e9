package knowledge

// ArticleStore defines the interface for interacting with the knowledge base.
type ArticleStore interface {
	AddArticle(article *Article) error
	GetArticle(articleID string) (*Article, error)
	// Search returns articles whose title or body contains the query, newest
	// first. An empty query returns everything.
	Search(query string) ([]Article, error)
	DeleteArticle(articleID string) error
}
