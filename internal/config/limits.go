package config

const (
	// MinIdeaTextLength is the minimum length for a submitted idea after
	// whitespace normalization. Shorter submissions carry too little
	// signal for useful analysis.
	MinIdeaTextLength = 20

	// MaxIdeaTextLength is the maximum length for a submitted idea.
	// Keeps prompts within a sane token budget.
	MaxIdeaTextLength = 10000

	// MaxTitleLength caps document, diagram, feature, and task titles.
	MaxTitleLength = 255

	// MinFeatureTitleLength is the minimum length for a feature title.
	MinFeatureTitleLength = 3

	// MinFeatureDescriptionLength is the minimum length for a feature
	// description. A description this short cannot be broken into tasks.
	MinFeatureDescriptionLength = 10

	// MinTaskTitleLength is the minimum length for a task title.
	MinTaskTitleLength = 3
)
