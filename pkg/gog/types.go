package gog

// Product is one raw catalog entry as returned by the catalog endpoint.
// Products are transient: they are parsed, mirrored into the store and
// discarded.
type Product struct {
	Title            string   `json:"title"`
	Slug             string   `json:"slug"`
	Price            Price    `json:"price"`
	ReleaseDate      string   `json:"releaseDate"`
	Genres           []Genre  `json:"genres"`
	OperatingSystems []string `json:"operatingSystems"`
	Developers       []string `json:"developers"`
	Publishers       []string `json:"publishers"`
	CoverHorizontal  string   `json:"coverHorizontal"`
	Screenshots      []string `json:"screenshots"`
}

// Genre is a named genre reference inside a catalog product
type Genre struct {
	Name string `json:"name"`
}

// Price carries the nested price object of a catalog product
type Price struct {
	FinalMoney Money `json:"finalMoney"`
}

// Money is the innermost amount of a catalog price
type Money struct {
	Amount float64 `json:"amount"`
}

// Details is the long-form metadata scraped from a game page
type Details struct {
	Description      string
	ShortDescription string
	Rating           string
}

// catalogResponse is the top-level catalog endpoint body
type catalogResponse struct {
	Products []Product `json:"products"`
}
