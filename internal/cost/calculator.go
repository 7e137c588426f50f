// Package cost answers Runtime pricing questions synchronously, without
// touching documentation retrieval or the completion provider.
package cost

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Runtime pricing and free-tier allowances, per month.
const (
	RatePerGBSecond  = 0.00001667
	RatePerExecution = 0.0000002
	FreeGBSeconds    = 400000
	FreeExecutions   = 1000000
)

// OverviewURL is the pricing documentation page linked from every cost answer
const OverviewURL = "https://developer.adobe.com/app-builder/docs/overview/"

var (
	memoryRe     = regexp.MustCompile(`(?i)(\d+)\s*MB`)
	durationRe   = regexp.MustCompile(`(?i)(\d+)\s*s(?:ec(?:ond)?s?)?`)
	executionsRe = regexp.MustCompile(`(?i)(\d+)\s*(?:times?|executions?)`)
	dailyRe      = regexp.MustCompile(`(?i)daily|per\s+day|each\s+day`)
)

// Result is a terminal cost-path answer
type Result struct {
	Answer       string
	ProTip       string
	LearnMoreURL string
}

// Parameters are the usage figures extracted from a question. A zero field
// means the question did not mention it.
type Parameters struct {
	MemoryMB   int
	DurationS  int
	Executions int
}

// IsCostQuestion reports whether a question should take the cost fast path
func IsCostQuestion(question string) bool {
	q := strings.ToLower(question)
	return strings.Contains(q, "cost") ||
		strings.Contains(q, "price") ||
		strings.Contains(q, "pricing") ||
		strings.Contains(q, "calculate") ||
		(strings.Contains(q, "how much") && strings.Contains(q, "$"))
}

// ParseParameters extracts memory, duration and execution count from free
// text. A daily execution count is scaled to a 30-day month.
func ParseParameters(question string) Parameters {
	var p Parameters

	if m := memoryRe.FindStringSubmatch(question); m != nil {
		p.MemoryMB, _ = strconv.Atoi(m[1])
	}
	if m := durationRe.FindStringSubmatch(question); m != nil {
		p.DurationS, _ = strconv.Atoi(m[1])
	}
	if m := executionsRe.FindStringSubmatch(question); m != nil {
		p.Executions, _ = strconv.Atoi(m[1])
		if dailyRe.MatchString(question) {
			p.Executions *= 30
		}
	}

	return p
}

// Calculate answers a cost question. When a parameter is missing the answer
// is a usage guide rather than an error.
func Calculate(question string) Result {
	p := ParseParameters(question)

	if p.MemoryMB == 0 || p.DurationS == 0 || p.Executions == 0 {
		return Result{
			Answer: "🤖 *DocuBot - Cost Calculator*\n\nTo calculate costs, I need:\n" +
				"• Memory (MB): e.g., 512MB\n" +
				"• Duration (seconds): e.g., 5s\n" +
				"• Executions per month: e.g., 100\n\n" +
				`Example: "Calculate costs for 512MB running 5s, 100 times daily"`,
			ProTip:       "Lower memory allocation = lower costs. Start with 256-512 MB and scale up only if needed.",
			LearnMoreURL: OverviewURL,
		}
	}

	memoryGB := float64(p.MemoryMB) / 1024
	gbSeconds := memoryGB * float64(p.DurationS) * float64(p.Executions)
	memoryCost := max(0, gbSeconds-FreeGBSeconds) * RatePerGBSecond
	executionCost := max(0, float64(p.Executions)-FreeExecutions) * RatePerExecution
	total := memoryCost + executionCost

	answer := fmt.Sprintf("🤖 *DocuBot - Cost Calculator*\n\n"+
		"*Configuration:*\n"+
		"• Memory: %d MB (%.2f GB)\n"+
		"• Duration: %ds per execution\n"+
		"• Executions: %s per month\n\n"+
		"*Calculations:*\n"+
		"• GB-seconds: %s (Free tier: %s)\n"+
		"• Memory cost: $%.4f\n"+
		"• Execution cost: $%.4f\n\n"+
		"*Total: $%.2f/month*",
		p.MemoryMB, memoryGB,
		p.DurationS,
		humanize.Comma(int64(p.Executions)),
		humanize.Commaf(gbSeconds), humanize.Comma(int64(FreeGBSeconds)),
		memoryCost,
		executionCost,
		total,
	)

	proTip := "To reduce costs: Lower memory allocation, optimize execution time, or cache results to reduce executions."
	if total == 0 {
		proTip = "Your usage fits within the free tier! 🎉"
	}

	return Result{Answer: answer, ProTip: proTip, LearnMoreURL: OverviewURL}
}
