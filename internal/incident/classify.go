package incident

import "strings"

// Keyword cascades for severity and category. Matching is substring
// containment over lower-cased text with no word-boundary requirement,
// so "crash" matches "crashed". First match wins; order is the contract.
// Keeping the rules as plain data makes every classification auditable
// and reproducible from its inputs.

var severityRules = []struct {
	severity Severity
	keywords []string
}{
	{SeverityCritical, []string{"down", "outage", "critical", "security breach", "data loss", "crash"}},
	{SeverityHigh, []string{"error", "failure", "slow", "timeout", "unavailable"}},
	{SeverityMedium, []string{"issue", "problem", "bug", "warning"}},
}

var categoryRules = []struct {
	category Category
	keywords []string
}{
	{CategorySecurity, []string{"security", "breach", "unauthorized", "hack", "vulnerability", "injection", "phishing", "malware"}},
	{CategoryNetwork, []string{"network", "dns", "connection", "latency", "firewall", "vpn", "router"}},
	{CategoryDatabase, []string{"database", "sql", "query", "db", "replication", "deadlock"}},
	{CategoryFrontend, []string{"ui", "frontend", "browser", "page", "css", "render", "display"}},
	{CategoryHardware, []string{"hardware", "disk", "memory", "cpu", "server rack", "power", "overheat"}},
}

// ClassifySeverity maps report text to a severity tier. It scans the
// cascade in priority order and falls through to LOW.
func ClassifySeverity(title, description string) Severity {
	text := strings.ToLower(title + " " + description)
	for _, rule := range severityRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.severity
			}
		}
	}
	return SeverityLow
}

// ClassifyCategory maps report text plus the affected service name to a
// functional category. SECURITY outranks NETWORK outranks DATABASE and
// so on; a report matching several sets gets the highest-priority one.
// Falls through to SOFTWARE.
func ClassifyCategory(title, description, affectedService string) Category {
	text := strings.ToLower(title + " " + description + " " + affectedService)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.category
			}
		}
	}
	return CategorySoftware
}
