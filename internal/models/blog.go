package models

type BlogPost struct {
	ID              string   `json:"id"`
	Slug            string   `json:"slug"`
	Title           string   `json:"title"`
	Excerpt         string   `json:"excerpt"`
	Content         string   `json:"content"`
	Author          string   `json:"author"`
	Category        string   `json:"category"`
	Date            string   `json:"date"`
	FeaturedImage   string   `json:"featuredImage"`
	Tags            []string `json:"tags"`
	RelatedProducts []string `json:"relatedProducts"`
	Featured        bool     `json:"featured"`
}

// BlogDocument — le post le plus récent est toujours en tête de la liste
type BlogDocument struct {
	Posts []BlogPost `json:"posts"`
}

func (p *BlogPost) Normalize() {
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.RelatedProducts == nil {
		p.RelatedProducts = []string{}
	}
}
