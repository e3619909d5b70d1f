package prompts

// Prompt is a named prompt template
type Prompt struct {
	Name    string `yaml:"name" json:"name"`
	Content string `yaml:"content" json:"content"`
}

// Library holds the fixed prompt sets used by the experiments.
// The zero value is not useful; construct with Default or Load.
type Library struct {
	sets map[string][]Prompt
}

// Set names understood by the experiments
const (
	SetSimpleQA  = "simple_qa"
	SetReasoning = "reasoning"
	SetCreative  = "creative"
	SetAnalysis  = "analysis"
	SetEdgeCases = "edge_cases"
)

// Default returns the built-in prompt library
func Default() *Library {
	return &Library{sets: map[string][]Prompt{
		SetSimpleQA: {
			{Name: "quantum_computing", Content: "Explain quantum computing in 2 sentences."},
			{Name: "cloud_benefits", Content: "What are the top 3 benefits of cloud computing?"},
			{Name: "python_sort", Content: "Write a Python function to sort a list of integers in descending order."},
		},
		SetReasoning: {
			{Name: "math_problem", Content: "If A + B = 15 and A - B = 5, what are the values of A and B? Show your work."},
			{Name: "logic_puzzle", Content: "Three people are in a room: Alice, Bob, and Charlie. Alice says 'Bob is lying.' Bob says 'Charlie is lying.' Charlie says 'Both Alice and Bob are lying.' Who is telling the truth?"},
			{Name: "code_reasoning", Content: "Debug this code snippet and explain what's wrong:\n\n```python\ndef factorial(n):\n    if n == 0:\n        return 1\n    return n * factorial(n - 1)\n\nresult = factorial(-1)\n```"},
		},
		SetCreative: {
			{Name: "story_start", Content: "Write the opening paragraph of a science fiction story about AI discovering emotions."},
			{Name: "robot_painter", Content: "Write a creative short story about a robot learning to paint."},
		},
		SetAnalysis: {
			{Name: "tech_comparison", Content: "Compare and contrast microservices architecture vs monolithic architecture. Include pros and cons of each."},
			{Name: "ml_explainer", Content: "Explain machine learning in detail."},
		},
		SetEdgeCases: {
			{Name: "empty_input", Content: ""},
			{Name: "special_chars", Content: "What does this mean: 🚀 @#$%^&*() []{}|\\/<>?"},
			{Name: "very_long", Content: "Repeat the word 'test' 500 times, then explain what you just did."},
		},
	}}
}

// Set returns the prompts of a named set, or nil if the set is unknown
func (l *Library) Set(name string) []Prompt {
	return l.sets[name]
}

// All returns every prompt across the non-edge-case sets
func (l *Library) All() []Prompt {
	var all []Prompt
	for _, name := range []string{SetSimpleQA, SetReasoning, SetCreative, SetAnalysis} {
		all = append(all, l.sets[name]...)
	}
	return all
}

// merge overlays the given sets on top of the library, replacing whole sets
func (l *Library) merge(sets map[string][]Prompt) {
	for name, ps := range sets {
		l.sets[name] = ps
	}
}
