// Package incident provides the business boundary for Beacon's incident
// triage system. It defines the Engine (deterministic severity/category
// classification, remediation lookup, confidence scoring), the Service
// (validation, lifecycle, query execution, aggregation), the Store
// interface (persistence), and domain models.
package incident
