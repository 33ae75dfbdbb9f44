package resolver

import (
	"regexp"
	"strings"
)

// Rule maps a question pattern to a canonical, parameter-free SQL query.
// Patterns are matched case-insensitively and anchored at the start of
// the question.
type Rule struct {
	Pattern string
	Query   string
}

// defaultRules is the ordered fallback rule table. Order is part of the
// contract: when several patterns match the same question, the earliest
// rule wins. A question containing both "top products" and "ad spend"
// wording resolves to the top-products query because that rule comes
// first.
var defaultRules = []Rule{
	// Total sales
	{`.*total\s+sales.*`, "SELECT SUM(total_sales) as total_sales FROM total_sales_metrics;"},
	{`.*my\s+sales.*`, "SELECT SUM(total_sales) as total_sales FROM total_sales_metrics;"},

	// RoAS (Return on Ad Spend)
	{`.*roas.*`, "SELECT (SUM(ad_sales) * 100.0 / SUM(ad_spend)) as roas_percentage FROM ad_sales_metrics WHERE ad_spend > 0;"},
	{`.*return\s+on\s+ad\s+spend.*`, "SELECT (SUM(ad_sales) * 100.0 / SUM(ad_spend)) as roas_percentage FROM ad_sales_metrics WHERE ad_spend > 0;"},

	// CPC (Cost Per Click)
	{`.*highest\s+cpc.*`, "SELECT item_id, (ad_spend / clicks) as cpc FROM ad_sales_metrics WHERE clicks > 0 ORDER BY cpc DESC LIMIT 1;"},
	{`.*cost\s+per\s+click.*`, "SELECT item_id, (ad_spend / clicks) as cpc FROM ad_sales_metrics WHERE clicks > 0 ORDER BY cpc DESC LIMIT 10;"},

	// Top products
	{`.*top.*products.*sales.*`, "SELECT item_id, SUM(total_sales) as total_sales FROM total_sales_metrics GROUP BY item_id ORDER BY total_sales DESC LIMIT 10;"},
	{`.*top.*products.*ad.*sales.*`, "SELECT item_id, SUM(ad_sales) as ad_sales FROM ad_sales_metrics GROUP BY item_id ORDER BY ad_sales DESC LIMIT 10;"},
	{`.*best.*performing.*products.*`, "SELECT item_id, SUM(total_sales) as total_sales FROM total_sales_metrics GROUP BY item_id ORDER BY total_sales DESC LIMIT 10;"},

	// Impressions
	{`.*average.*impressions.*`, "SELECT AVG(impressions) as avg_impressions FROM ad_sales_metrics;"},
	{`.*total.*impressions.*`, "SELECT SUM(impressions) as total_impressions FROM ad_sales_metrics;"},
	{`.*impressions.*product.*`, "SELECT item_id, SUM(impressions) as total_impressions FROM ad_sales_metrics GROUP BY item_id ORDER BY total_impressions DESC LIMIT 10;"},

	// Eligibility
	{`.*not\s+eligible.*`, "SELECT item_id, message FROM product_eligibility WHERE eligibility = 0;"},
	{`.*eligible.*products.*`, "SELECT item_id FROM product_eligibility WHERE eligibility = 1;"},
	{`.*eligibility.*status.*`, "SELECT eligibility, COUNT(*) as count FROM product_eligibility GROUP BY eligibility;"},

	// Ad spend
	{`.*total.*ad.*spend.*`, "SELECT SUM(ad_spend) as total_ad_spend FROM ad_sales_metrics;"},
	{`.*average.*ad.*spend.*`, "SELECT AVG(ad_spend) as avg_ad_spend FROM ad_sales_metrics;"},
	{`.*ad.*spend.*product.*`, "SELECT item_id, SUM(ad_spend) as total_ad_spend FROM ad_sales_metrics GROUP BY item_id ORDER BY total_ad_spend DESC LIMIT 10;"},

	// Clicks
	{`.*total.*clicks.*`, "SELECT SUM(clicks) as total_clicks FROM ad_sales_metrics;"},
	{`.*average.*clicks.*`, "SELECT AVG(clicks) as avg_clicks FROM ad_sales_metrics;"},
	{`.*clicks.*product.*`, "SELECT item_id, SUM(clicks) as total_clicks FROM ad_sales_metrics GROUP BY item_id ORDER BY total_clicks DESC LIMIT 10;"},

	// Units sold
	{`.*total.*units.*sold.*`, "SELECT SUM(total_units_ordered) as total_units FROM total_sales_metrics;"},
	{`.*units.*sold.*ad.*`, "SELECT SUM(units_sold) as ad_units_sold FROM ad_sales_metrics;"},

	// Counts
	{`.*how\s+many\s+products.*`, "SELECT COUNT(DISTINCT item_id) as product_count FROM total_sales_metrics;"},
	{`.*number\s+of\s+products.*`, "SELECT COUNT(DISTINCT item_id) as product_count FROM total_sales_metrics;"},

	// Date ranges
	{`.*sales.*today.*`, "SELECT SUM(total_sales) as today_sales FROM total_sales_metrics WHERE date = date('now');"},
	{`.*sales.*yesterday.*`, "SELECT SUM(total_sales) as yesterday_sales FROM total_sales_metrics WHERE date = date('now', '-1 day');"},

	// Performance metrics
	{`.*conversion.*rate.*`, "SELECT (SUM(units_sold) * 100.0 / SUM(clicks)) as conversion_rate FROM ad_sales_metrics WHERE clicks > 0;"},
	{`.*ctr.*`, "SELECT (SUM(clicks) * 100.0 / SUM(impressions)) as ctr FROM ad_sales_metrics WHERE impressions > 0;"},
	{`.*click.*through.*rate.*`, "SELECT (SUM(clicks) * 100.0 / SUM(impressions)) as ctr FROM ad_sales_metrics WHERE impressions > 0;"},
}

type compiledRule struct {
	rule Rule
	re   *regexp.Regexp
}

// FallbackResolver resolves questions against a fixed, ordered rule
// table. It needs no network and is the availability guarantee when the
// model is absent or unreliable.
type FallbackResolver struct {
	rules []compiledRule
}

// NewFallbackResolver compiles the default rule table.
func NewFallbackResolver() *FallbackResolver {
	return newFallbackResolver(defaultRules)
}

func newFallbackResolver(rules []Rule) *FallbackResolver {
	fr := &FallbackResolver{rules: make([]compiledRule, 0, len(rules))}
	for _, r := range rules {
		// \A anchors at the start of the question, matching the
		// original match-from-start semantics rather than substring
		// search. The leading .* in each pattern does the scanning.
		re := regexp.MustCompile(`(?i)\A(?:` + r.Pattern + `)`)
		fr.rules = append(fr.rules, compiledRule{rule: r, re: re})
	}
	return fr
}

// Resolve returns the canonical query of the first rule whose pattern
// matches the question. Matching stops at the first hit.
func (fr *FallbackResolver) Resolve(question string) (string, bool) {
	q := strings.TrimSpace(question)
	for _, cr := range fr.rules {
		if cr.re.MatchString(q) {
			return cr.rule.Query, true
		}
	}
	return "", false
}

// Rules returns the rule table in match order.
func (fr *FallbackResolver) Rules() []Rule {
	out := make([]Rule, len(fr.rules))
	for i, cr := range fr.rules {
		out[i] = cr.rule
	}
	return out
}
