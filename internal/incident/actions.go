package incident

// actionTable maps (severity, category) to a canned remediation. The
// table is total over today's enums; SuggestedAction falls back to
// actionFallback so future severity or category additions degrade to a
// generic recommendation instead of an empty string.
var actionTable = map[Severity]map[Category]string{
	SeverityCritical: {
		CategorySecurity: "Isolate affected systems immediately, revoke exposed credentials, and engage the security on-call.",
		CategoryNetwork:  "Fail over to the backup network path and page the network on-call for immediate mitigation.",
		CategoryDatabase: "Fail over to the standby replica and page the database on-call; verify data integrity before reopening writes.",
		CategoryFrontend: "Roll back the latest frontend deploy and serve the maintenance page until recovery is confirmed.",
		CategoryHardware: "Fail over to redundant hardware and dispatch datacenter operations for physical inspection.",
		CategorySoftware: "Roll back the latest release and page the owning team; start an incident bridge.",
	},
	SeverityHigh: {
		CategorySecurity: "Rotate potentially exposed credentials and start a security review within the hour.",
		CategoryNetwork:  "Reroute traffic away from the degraded path and investigate link health.",
		CategoryDatabase: "Kill long-running queries, check replication lag, and throttle batch workloads.",
		CategoryFrontend: "Disable the affected feature flag and roll back if error rates do not recover.",
		CategoryHardware: "Drain workloads from the affected host and schedule urgent hardware replacement.",
		CategorySoftware: "Roll back or hotfix the offending change and monitor error rates closely.",
	},
	SeverityMedium: {
		CategorySecurity: "File a security review ticket and apply the relevant patches during the next maintenance window.",
		CategoryNetwork:  "Monitor the affected segment and schedule a configuration review.",
		CategoryDatabase: "Analyze the slow queries involved and add missing indexes during the next window.",
		CategoryFrontend: "Reproduce in staging and schedule a fix for the next sprint.",
		CategoryHardware: "Run hardware diagnostics and plan replacement before end of quarter.",
		CategorySoftware: "Triage in the next sprint planning and add regression coverage.",
	},
	SeverityLow: {
		CategorySecurity: "Log for the periodic security audit; no immediate action required.",
		CategoryNetwork:  "Track in the network backlog and review during routine maintenance.",
		CategoryDatabase: "Add to database housekeeping backlog for the next cleanup pass.",
		CategoryFrontend: "Add to the UI polish backlog.",
		CategoryHardware: "Note in the hardware lifecycle log for the next refresh cycle.",
		CategorySoftware: "Add to the backlog and revisit during routine grooming.",
	},
}

const actionFallback = "Review the incident details and assign to the appropriate team."

// SuggestedAction looks up the remediation for a (severity, category)
// pair, falling back to a generic review-and-assign message.
func SuggestedAction(sev Severity, cat Category) string {
	if byCat, ok := actionTable[sev]; ok {
		if action, ok := byCat[cat]; ok {
			return action
		}
	}
	return actionFallback
}
