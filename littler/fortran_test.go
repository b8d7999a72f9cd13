package littler

import "testing"

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"F13.5 missing", formatF(Missing, 13, 5), "-888888.00000"},
		{"F13.5 end", formatF(EndOfRecord, 13, 5), "-777777.00000"},
		{"F13.5 pressure", formatF(85000, 13, 5), "  85000.00000"},
		{"F20.5 latitude", formatF(37.123456, 20, 5), "            37.12346"},
		{"F13.5 overflow truncates", formatF(12345678.5, 13, 5), "12345678.5000"},
		{"I10", formatI(-888888, 10), "   -888888"},
		{"I7 zero", formatI(0, 7), "      0"},
		{"A10 pads", formatA("abc", 10), "abc       "},
		{"A4 truncates", formatA("abcdef", 4), "abcd"},
		{"L10 true", formatL(true, 10), "         T"},
		{"L10 false", formatL(false, 10), "         F"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Errorf("got %q, want %q", tc.got, tc.want)
			}
		})
	}
}

func TestParseF(t *testing.T) {
	tests := []struct {
		field   string
		want    float64
		wantErr bool
	}{
		{"  85000.00000", 85000, false},
		{"-888888.00000", Missing, false},
		{"             ", Missing, false},
		{"", Missing, false},
		{"   12.5x", 0, true},
	}
	for _, tc := range tests {
		got, err := parseF(tc.field)
		if (err != nil) != tc.wantErr {
			t.Errorf("parseF(%q) error = %v, wantErr %v", tc.field, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("parseF(%q) = %v, want %v", tc.field, got, tc.want)
		}
	}
}
