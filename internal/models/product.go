package models

// Catégories autorisées pour les produits (le préfixe d'ID en découle)
var ProductCategories = []string{
	"solar-kits",
	"solar-accessories",
	"home-energy",
	"outdoor-solar",
}

func IsValidCategory(category string) bool {
	for _, c := range ProductCategories {
		if c == category {
			return true
		}
	}
	return false
}

type ProductImage struct {
	Thumb   string   `json:"thumb"`
	Gallery []string `json:"gallery"`
}

type ProductPrice struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Display  string  `json:"display"`
}

// AffiliateLink — Available est toujours dérivé de l'URL côté serveur
type AffiliateLink struct {
	URL       string `json:"url"`
	Available bool   `json:"available"`
}

type ProductMetadata struct {
	DateAdded      string `json:"dateAdded"`
	LastUpdated    string `json:"lastUpdated"`
	LastPriceCheck string `json:"lastPriceCheck"`
	Clicks         int    `json:"clicks"`
	Featured       bool   `json:"featured"`
}

type Product struct {
	ID         string                   `json:"id"`
	Name       string                   `json:"name"`
	Category   string                   `json:"category"`
	Tags       []string                 `json:"tags"`
	Image      ProductImage             `json:"image"`
	Price      ProductPrice             `json:"price"`
	Affiliates map[string]AffiliateLink `json:"affiliates"`
	Metadata   ProductMetadata          `json:"metadata"`
}

// ProductsDocument est l'unité de lecture/écriture : tout le catalogue d'un coup
type ProductsDocument struct {
	Products []Product `json:"products"`
}

// Normalize garantit des tableaux non-nil et recalcule la disponibilité
// des liens affiliés (url non vide = disponible)
func (p *Product) Normalize() {
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Image.Gallery == nil {
		p.Image.Gallery = []string{}
	}
	for name, link := range p.Affiliates {
		link.Available = link.URL != ""
		p.Affiliates[name] = link
	}
}
