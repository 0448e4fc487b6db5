package types

// RenderConfig holds settings for the rendering stage.
type RenderConfig struct {
	// Title is the document title placed in frontmatter (Markdown mode)
	// or the title page (LaTeX mode).
	Title string `json:"title" yaml:"title"`

	// SourceDir is the directory containing the catechism TOML files.
	SourceDir string `json:"source_dir" yaml:"source_dir"`

	// OutputDir is the base directory for rendered artifacts
	// (contains markdown/, latex/, pdf/).
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Translation is the Bible translation used for passage links
	// (default "ESV").
	Translation string `json:"translation" yaml:"translation"`

	// ReferenceColumns overrides the default column count for scripture
	// reference blocks whose source gives no hint (default 2).
	ReferenceColumns int `json:"reference_columns" yaml:"reference_columns"`
}

// TypesetConfig holds settings for the typesetting stage.
type TypesetConfig struct {
	// Engine is the LaTeX engine passed to latexmk (default "xelatex").
	Engine string `json:"engine" yaml:"engine"`

	// Image is the container image holding the TeX distribution.
	Image string `json:"image" yaml:"image"`
}

// IndexConfig holds settings for the scripture reference index.
type IndexConfig struct {
	// IndexDir is the directory holding the SQLite database and exports.
	IndexDir string `json:"index_dir" yaml:"index_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Render  RenderConfig  `json:"render" yaml:"render"`
	Typeset TypesetConfig `json:"typeset" yaml:"typeset"`
	Index   IndexConfig   `json:"index" yaml:"index"`
}
