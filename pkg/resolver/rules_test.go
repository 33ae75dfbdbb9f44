package resolver

import (
	"strings"
	"testing"
)

func TestFallbackResolver_Resolve(t *testing.T) {
	fr := NewFallbackResolver()

	tests := []struct {
		name     string
		question string
		wantSQL  string
	}{
		{
			name:     "total sales",
			question: "What is my total sales?",
			wantSQL:  "SELECT SUM(total_sales) as total_sales FROM total_sales_metrics;",
		},
		{
			name:     "my sales",
			question: "Show my sales figures",
			wantSQL:  "SELECT SUM(total_sales) as total_sales FROM total_sales_metrics;",
		},
		{
			name:     "roas",
			question: "Calculate the RoAS",
			wantSQL:  "SELECT (SUM(ad_sales) * 100.0 / SUM(ad_spend)) as roas_percentage FROM ad_sales_metrics WHERE ad_spend > 0;",
		},
		{
			name:     "return on ad spend",
			question: "What is the return on ad spend?",
			wantSQL:  "SELECT (SUM(ad_sales) * 100.0 / SUM(ad_spend)) as roas_percentage FROM ad_sales_metrics WHERE ad_spend > 0;",
		},
		{
			name:     "highest cpc",
			question: "Which item had the highest CPC?",
			wantSQL:  "SELECT item_id, (ad_spend / clicks) as cpc FROM ad_sales_metrics WHERE clicks > 0 ORDER BY cpc DESC LIMIT 1;",
		},
		{
			name:     "cost per click",
			question: "Show the cost per click",
			wantSQL:  "SELECT item_id, (ad_spend / clicks) as cpc FROM ad_sales_metrics WHERE clicks > 0 ORDER BY cpc DESC LIMIT 10;",
		},
		{
			name:     "top products by sales",
			question: "Show me the top 10 products by sales.",
			wantSQL:  "SELECT item_id, SUM(total_sales) as total_sales FROM total_sales_metrics GROUP BY item_id ORDER BY total_sales DESC LIMIT 10;",
		},
		{
			name:     "best performing products",
			question: "What are my best performing products?",
			wantSQL:  "SELECT item_id, SUM(total_sales) as total_sales FROM total_sales_metrics GROUP BY item_id ORDER BY total_sales DESC LIMIT 10;",
		},
		{
			name:     "average impressions",
			question: "What is the average number of impressions?",
			wantSQL:  "SELECT AVG(impressions) as avg_impressions FROM ad_sales_metrics;",
		},
		{
			name:     "total impressions",
			question: "Show total impressions",
			wantSQL:  "SELECT SUM(impressions) as total_impressions FROM ad_sales_metrics;",
		},
		{
			name:     "impressions per product",
			question: "Show impressions for each product",
			wantSQL:  "SELECT item_id, SUM(impressions) as total_impressions FROM ad_sales_metrics GROUP BY item_id ORDER BY total_impressions DESC LIMIT 10;",
		},
		{
			name:     "not eligible",
			question: "Which items are not eligible for advertising?",
			wantSQL:  "SELECT item_id, message FROM product_eligibility WHERE eligibility = 0;",
		},
		{
			name:     "eligible products",
			question: "List eligible products",
			wantSQL:  "SELECT item_id FROM product_eligibility WHERE eligibility = 1;",
		},
		{
			name:     "eligibility status",
			question: "Show me the eligibility status breakdown",
			wantSQL:  "SELECT eligibility, COUNT(*) as count FROM product_eligibility GROUP BY eligibility;",
		},
		{
			name:     "total ad spend",
			question: "What is the total ad spend?",
			wantSQL:  "SELECT SUM(ad_spend) as total_ad_spend FROM ad_sales_metrics;",
		},
		{
			name:     "average ad spend",
			question: "What is the average ad spend?",
			wantSQL:  "SELECT AVG(ad_spend) as avg_ad_spend FROM ad_sales_metrics;",
		},
		{
			name:     "total clicks",
			question: "Show me the total clicks.",
			wantSQL:  "SELECT SUM(clicks) as total_clicks FROM ad_sales_metrics;",
		},
		{
			name:     "average clicks",
			question: "What is the average clicks per day?",
			wantSQL:  "SELECT AVG(clicks) as avg_clicks FROM ad_sales_metrics;",
		},
		{
			name:     "clicks per product",
			question: "Show clicks by product",
			wantSQL:  "SELECT item_id, SUM(clicks) as total_clicks FROM ad_sales_metrics GROUP BY item_id ORDER BY total_clicks DESC LIMIT 10;",
		},
		{
			name:     "total units sold",
			question: "What is the total units sold?",
			wantSQL:  "SELECT SUM(total_units_ordered) as total_units FROM total_sales_metrics;",
		},
		{
			name:     "how many products",
			question: "How many products do I have?",
			wantSQL:  "SELECT COUNT(DISTINCT item_id) as product_count FROM total_sales_metrics;",
		},
		{
			name:     "number of products",
			question: "What is the number of products in the catalog?",
			wantSQL:  "SELECT COUNT(DISTINCT item_id) as product_count FROM total_sales_metrics;",
		},
		{
			name:     "conversion rate",
			question: "What is the conversion rate?",
			wantSQL:  "SELECT (SUM(units_sold) * 100.0 / SUM(clicks)) as conversion_rate FROM ad_sales_metrics WHERE clicks > 0;",
		},
		{
			name:     "ctr",
			question: "What is the CTR?",
			wantSQL:  "SELECT (SUM(clicks) * 100.0 / SUM(impressions)) as ctr FROM ad_sales_metrics WHERE impressions > 0;",
		},
		{
			name:     "click through rate without acronym",
			question: "Show the click through rate",
			wantSQL:  "SELECT (SUM(clicks) * 100.0 / SUM(impressions)) as ctr FROM ad_sales_metrics WHERE impressions > 0;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := fr.Resolve(tt.question)
			if !ok {
				t.Fatalf("Resolve(%q) matched no rule", tt.question)
			}
			if got != tt.wantSQL {
				t.Errorf("Resolve(%q) = %q, want %q", tt.question, got, tt.wantSQL)
			}
		})
	}
}

func TestFallbackResolver_OrderPrecedence(t *testing.T) {
	fr := NewFallbackResolver()

	tests := []struct {
		name     string
		question string
		wantSQL  string
	}{
		{
			// Matches both the RoAS rule and the later total-ad-spend
			// rule; the earlier RoAS rule wins.
			name:     "roas beats total ad spend",
			question: "What is the RoAS on my total ad spend?",
			wantSQL:  "SELECT (SUM(ad_sales) * 100.0 / SUM(ad_spend)) as roas_percentage FROM ad_sales_metrics WHERE ad_spend > 0;",
		},
		{
			// Matches both the top-products rule and the later
			// total-ad-spend rule; the earlier top-products rule wins.
			name:     "top products beats ad spend",
			question: "Show top products by sales next to total ad spend",
			wantSQL:  "SELECT item_id, SUM(total_sales) as total_sales FROM total_sales_metrics GROUP BY item_id ORDER BY total_sales DESC LIMIT 10;",
		},
		{
			// Matches both the total-sales rule and the later
			// sales-today rule; the earlier total-sales rule wins.
			name:     "total sales beats sales today",
			question: "What are my total sales today?",
			wantSQL:  "SELECT SUM(total_sales) as total_sales FROM total_sales_metrics;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := fr.Resolve(tt.question)
			if !ok {
				t.Fatalf("Resolve(%q) matched no rule", tt.question)
			}
			if got != tt.wantSQL {
				t.Errorf("Resolve(%q) = %q, want earlier rule's query %q", tt.question, got, tt.wantSQL)
			}
		})
	}
}

func TestFallbackResolver_NoMatch(t *testing.T) {
	fr := NewFallbackResolver()

	for _, q := range []string{
		"What is the meaning of life?",
		"",
		"försäljning",
	} {
		if got, ok := fr.Resolve(q); ok {
			t.Errorf("Resolve(%q) = %q, want no match", q, got)
		}
	}
}

func TestFallbackResolver_RulesOrderStable(t *testing.T) {
	fr := NewFallbackResolver()
	rules := fr.Rules()

	if len(rules) != len(defaultRules) {
		t.Fatalf("Rules() returned %d rules, want %d", len(rules), len(defaultRules))
	}
	for i, r := range rules {
		if r != defaultRules[i] {
			t.Errorf("rule %d = %+v, want %+v", i, r, defaultRules[i])
		}
	}

	// All canonical queries are read-only statements.
	for _, r := range rules {
		if !strings.HasPrefix(strings.ToUpper(r.Query), "SELECT") {
			t.Errorf("rule %q has non-SELECT query %q", r.Pattern, r.Query)
		}
	}
}
