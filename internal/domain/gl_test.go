package domain

import "testing"

func TestComposeGLNum(t *testing.T) {
	tests := []struct {
		name        string
		parent      string
		layerGLNum  string
		want        string
		expectError bool
	}{
		{name: "layer 4 under product", parent: "210201000", layerGLNum: "001", want: "210201001"},
		{name: "layer 3 under group", parent: "210200000", layerGLNum: "01000", want: "210201000"},
		{name: "layer 2 under category", parent: "210000000", layerGLNum: "0200000", want: "210200000"},
		{name: "root segment is the whole number", parent: "", layerGLNum: "100000000", want: "100000000"},
		{name: "short parent", parent: "2102", layerGLNum: "001", expectError: true},
		{name: "empty segment", parent: "210201000", layerGLNum: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComposeGLNum(tt.parent, tt.layerGLNum)
			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestSegmentLength(t *testing.T) {
	want := map[int]int{0: 9, 1: 8, 2: 7, 3: 5, 4: 3}
	for layer, length := range want {
		got, ok := SegmentLength(layer)
		if !ok || got != length {
			t.Fatalf("layer %d: expected %d, got %d (ok=%v)", layer, length, got, ok)
		}
	}

	if _, ok := SegmentLength(5); ok {
		t.Fatalf("expected layer 5 to be rejected")
	}
}

func TestNatureOf(t *testing.T) {
	tests := []struct {
		glNum       string
		nature      GLNature
		debitNature bool
	}{
		{"110101001", GLNatureAsset, true},
		{"210201001", GLNatureLiability, false},
		{"310000000", GLNatureEquity, false},
		{"410000000", GLNatureIncome, false},
		{"510000000", GLNatureExpense, true},
		{"910000000", GLNatureUnknown, false},
		{"", GLNatureUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.glNum, func(t *testing.T) {
			n := NatureOf(tt.glNum)
			if n != tt.nature {
				t.Fatalf("expected %s, got %s", tt.nature, n)
			}
			if n.IsDebitNatured() != tt.debitNature {
				t.Fatalf("expected debit natured %v", tt.debitNature)
			}
		})
	}
}

func TestAccountClassOf(t *testing.T) {
	if AccountClassOf("110101001") != AccountGLLiability {
		t.Fatalf("expected prefix 1 to be a liability account GL")
	}
	if AccountClassOf("210201001") != AccountGLAsset {
		t.Fatalf("expected prefix 2 to be an asset account GL")
	}
	if AccountClassOf("310000000") != AccountGLOther {
		t.Fatalf("expected prefix 3 to be other")
	}
}

func TestCustomerAndOfficeGL(t *testing.T) {
	if !IsCustomerGL("110101001") || IsOfficeGL("110101001") {
		t.Fatalf("expected 110101001 to be a customer GL")
	}
	if IsCustomerGL("120101001") || !IsOfficeGL("120101001") {
		t.Fatalf("expected 120101001 to be an office GL")
	}
}
