package models

// CompanyNewsItem is a user-curated article attached to a ticker. The backend
// assigns the ID on creation; PublishedDate stays in wire (ISO-8601) form and
// is only formatted at render time.
type CompanyNewsItem struct {
	ID            int64  `json:"id"`
	Ticker        string `json:"ticker,omitempty"`
	URL           string `json:"url"`
	Title         string `json:"title"`
	Summary       string `json:"summary"`
	Source        string `json:"source"`
	PublishedDate string `json:"published_date"`
}

// AIAnalysis is the optional model-generated enrichment attached to a market
// article by POST /news/{id}/analyze.
type AIAnalysis struct {
	Sentiment          string   `json:"sentiment"`
	Summary            string   `json:"summary"`
	MentionedCompanies []string `json:"mentioned_companies"`
	RelatedNews        []string `json:"related_news"`
}

// MarketArticle is a scraped market-news article in normalized form.
type MarketArticle struct {
	ID        int64       `json:"id"`
	Headline  string      `json:"headline"`
	Source    string      `json:"source"`
	Timestamp string      `json:"timestamp"`
	Summary   string      `json:"summary"`
	Content   string      `json:"content"`
	URL       string      `json:"url"`
	ImageURL  string      `json:"image_url"`
	Tags      []string    `json:"tags"`
	Analysis  *AIAnalysis `json:"ai_analysis,omitempty"`
}
