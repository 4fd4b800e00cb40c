package query

// Profile is a saved search. Name is derived from the file name.
type Profile struct {
	Name     string
	Query    string `yaml:"q"`
	PageSize int    `yaml:"page_size"`
	From     string `yaml:"from"`
	To       string `yaml:"to"`
	Language string `yaml:"language"`
	Domains  string `yaml:"domains"`
	SortBy   string `yaml:"sort_by"`
	SearchIn string `yaml:"search_in"`
}
