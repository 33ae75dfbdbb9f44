// Package dataset describes the fixed three-table e-commerce dataset the
// agent answers questions about. The schema is known at design time; both
// the LLM prompt and the fallback rules are written against it.
package dataset

// Table names.
const (
	TableTotalSales  = "total_sales_metrics"
	TableAdSales     = "ad_sales_metrics"
	TableEligibility = "product_eligibility"
)

// DDL statements for the three tables, applied idempotently at startup
// and before ingestion.
var DDL = []string{
	`CREATE TABLE IF NOT EXISTS total_sales_metrics (
		date TEXT,
		item_id TEXT,
		total_sales REAL,
		total_units_ordered INTEGER
	);`,
	`CREATE TABLE IF NOT EXISTS ad_sales_metrics (
		date TEXT,
		item_id TEXT,
		ad_sales REAL,
		impressions INTEGER,
		ad_spend REAL,
		clicks INTEGER,
		units_sold INTEGER
	);`,
	`CREATE TABLE IF NOT EXISTS product_eligibility (
		eligibility_datetime_utc TEXT,
		item_id TEXT,
		eligibility TEXT,
		message TEXT
	);`,
}

// Columns returns the ordered column names for a known table, or nil for
// an unknown one. Ingestion uses this to map spreadsheet columns by
// position.
func Columns(table string) []string {
	switch table {
	case TableTotalSales:
		return []string{"date", "item_id", "total_sales", "total_units_ordered"}
	case TableAdSales:
		return []string{"date", "item_id", "ad_sales", "impressions", "ad_spend", "clicks", "units_sold"}
	case TableEligibility:
		return []string{"eligibility_datetime_utc", "item_id", "eligibility", "message"}
	}
	return nil
}

// ExampleQuestions lists questions the fallback rules are guaranteed to
// handle. Served to the frontend as demo prompts.
func ExampleQuestions() []string {
	return []string{
		"What is my total sales?",
		"Calculate the RoAS (Return on Ad Spend).",
		"Which product had the highest CPC (Cost Per Click)?",
		"Show me the top 10 products by sales.",
		"What is the average number of impressions?",
		"Which products are not eligible for advertising?",
		"What is the total ad spend?",
		"Show me the total clicks.",
		"How many products do I have?",
		"What is the conversion rate?",
		"What is the click-through rate (CTR)?",
		"Show me the ad spend for each product.",
		"What are my sales today?",
		"Show me the eligibility status distribution.",
	}
}
