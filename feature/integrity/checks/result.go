package checks

// MaxIssues caps the issues kept per check; Count still reports the total.
const MaxIssues = 100

// Status values of a Result.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Issue is a single inconsistency found by a check.
type Issue struct {
	Table   string `json:"table" yaml:"table"`
	Token   string `json:"token,omitempty" yaml:"token,omitempty"`
	Message string `json:"message" yaml:"message"`
}

// Result is the outcome of one check.
type Result struct {
	Name   string  `json:"name" yaml:"name"`
	Status string  `json:"status" yaml:"status"`
	Count  int     `json:"count" yaml:"count"`
	Issues []Issue `json:"issues" yaml:"issues"`
}

// collector accumulates issues for one check.
type collector struct {
	name   string
	count  int
	issues []Issue
}

func newCollector(name string) *collector {
	return &collector{name: name, issues: []Issue{}}
}

func (c *collector) add(table, tok, msg string) {
	c.count++
	if len(c.issues) < MaxIssues {
		c.issues = append(c.issues, Issue{Table: table, Token: tok, Message: msg})
	}
}

func (c *collector) result() Result {
	status := StatusOK
	if c.count > 0 {
		status = StatusFailed
	}
	return Result{Name: c.name, Status: status, Count: c.count, Issues: c.issues}
}
