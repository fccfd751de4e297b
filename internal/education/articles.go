// Package education holds the curated article feed.
package education

// Article is one entry in the education feed.
type Article struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Publication string `json:"publication"`
	Link        string `json:"link"`
}

// Feed returns the curated articles, best picks first.
func Feed() []Article {
	return []Article{
		{
			ID:          1,
			Title:       "10 most common birth control pill side effects",
			Publication: "Medical News Today",
			Link:        "https://www.medicalnewstoday.com/articles/290196",
		},
		{
			ID:          2,
			Title:       "Birth Control Pills: Overview and Benefits",
			Publication: "Cleveland Clinic",
			Link:        "https://my.clevelandclinic.org/health/treatments/3977-birth-control-the-pill",
		},
		{
			ID:          3,
			Title:       "Why We Must Invest in New Women's Contraceptive Options",
			Publication: "Gates Foundation",
			Link:        "https://www.gatesfoundation.org/ideas/articles/why-we-must-invest-in-new-womens-contraceptive-options",
		},
		{
			ID:          4,
			Title:       "What Portion of Women Use Birth Control?",
			Publication: "USAFacts",
			Link:        "https://usafacts.org/articles/what-portion-of-women-use-birth-control/",
		},
		{
			ID:          5,
			Title:       "Contraception: Empowering Women and Girls",
			Publication: "PAI",
			Link:        "https://pai.org/issues/contraception/",
		},
		{
			ID:          6,
			Title:       "Oral Contraceptives and Cancer Risk",
			Publication: "National Cancer Institute",
			Link:        "https://www.cancer.gov/about-cancer/causes-prevention/risk/hormones/oral-contraceptives-fact-sheet",
		},
		{
			ID:          7,
			Title:       "A Brief History of Birth Control",
			Publication: "Our Bodies Ourselves",
			Link:        "https://ourbodiesourselves.org/health-info/a-brief-history-of-birth-control",
		},
	}
}

// ByID returns the article with the given ID, if any.
func ByID(id int) (Article, bool) {
	for _, a := range Feed() {
		if a.ID == id {
			return a, true
		}
	}
	return Article{}, false
}
