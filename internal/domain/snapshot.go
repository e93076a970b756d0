package domain

// Snapshot is the observable state of a form after one input event.
type Snapshot struct {
	Step         int    `json:"step"`
	Field        Field  `json:"field,omitempty"`
	FibInput     string `json:"fib_input"`
	FibDisplay   string `json:"fib_display"`
	FibValid     bool   `json:"fib_valid"`
	FibError     string `json:"fib_error,omitempty"`
	Name         string `json:"name"`
	Computations int    `json:"computations"`
	CacheHits    int    `json:"cache_hits"`
}

// SelectSpec maps an output name to a JSONPath expression.
type SelectSpec map[string]string

type SelectResult struct {
	Name    string `json:"name"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}
