package dto

type BuildInput struct {
	StartTopic string
	Width      int
	Depth      int
}

type NodeOutput struct {
	Topic    string       `json:"topic" yaml:"topic"`
	Children []NodeOutput `json:"children,omitempty" yaml:"children,omitempty"`
}

type BuildOutput struct {
	Tree       NodeOutput `json:"tree" yaml:"tree"`
	AnswerPath []string   `json:"answer_path" yaml:"answer_path"`
	Width      int        `json:"width" yaml:"width"`
	Depth      int        `json:"depth" yaml:"depth"`
	Nodes      int        `json:"nodes" yaml:"nodes"`
	Visited    int        `json:"visited" yaml:"visited"`
}

type BudgetOutput struct {
	Width    int  `json:"width"`
	Depth    int  `json:"depth"`
	Nodes    int  `json:"nodes"`
	MaxNodes int  `json:"max_nodes"`
	Allowed  bool `json:"allowed"`
}

type CacheStatsOutput struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
	Topics  int  `json:"topics" yaml:"topics"`
	Links   int  `json:"links" yaml:"links"`
}
