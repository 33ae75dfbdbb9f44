package question

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		question string
		want     Category
	}{
		{"What is my total sales?", CategoryTotalSales},
		{"Calculate the RoAS", CategoryRoAS},
		{"What is the Return on Ad Spend?", CategoryRoAS},
		{"Which product had the highest CPC?", CategoryCPC},
		{"Show the cost per click by product", CategoryCPC},
		{"What is the total ad spend?", CategoryAdSpend},
		{"Show me the total clicks", CategoryClicks},
		{"Count the eligible products", CategoryCount},
		{"How many products do I have?", CategoryCount},
		{"What is the conversion rate?", CategoryConversionRate},
		{"What is the CTR?", CategoryCTR},
		{"Show the click-through rate", CategoryCTR},
		{"Show the click through rate", CategoryCTR},
		{"Show me everything", CategoryGeneric},
		{"", CategoryGeneric},
	}

	for _, tt := range tests {
		if got := Classify(tt.question); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.question, got, tt.want)
		}
	}
}

func TestClassify_Precedence(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     Category
	}{
		{
			name:     "total sales beats count",
			question: "Count the total sales rows",
			want:     CategoryTotalSales,
		},
		{
			name:     "roas beats ad spend",
			question: "What is the RoAS on total ad spend?",
			want:     CategoryRoAS,
		},
		{
			name:     "count beats conversion rate",
			question: "How many products improved their conversion rate?",
			want:     CategoryCount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.question); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.question, got, tt.want)
			}
		})
	}
}

func TestCategoryString(t *testing.T) {
	tests := []struct {
		category Category
		want     string
	}{
		{CategoryGeneric, "generic"},
		{CategoryTotalSales, "total_sales"},
		{CategoryRoAS, "roas"},
		{CategoryCPC, "cpc"},
		{CategoryAdSpend, "ad_spend"},
		{CategoryClicks, "clicks"},
		{CategoryCount, "count"},
		{CategoryConversionRate, "conversion_rate"},
		{CategoryCTR, "ctr"},
	}

	for _, tt := range tests {
		if got := tt.category.String(); got != tt.want {
			t.Errorf("Category(%d).String() = %q, want %q", tt.category, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{"What is my total sales?", "What is my total sales?", true},
		{"  padded question  ", "padded question", true},
		{"", "", false},
		{"   \t\n", "", false},
	}

	for _, tt := range tests {
		got, ok := Normalize(tt.raw)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Normalize(%q) = (%q, %v), want (%q, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}
