package contextmap

import "testing"

func TestFormatChars(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   int
		want string
	}{
		{in: 0, want: "0 chars"},
		{in: 999, want: "999 chars"},
		{in: 1000, want: "1.0K chars"},
		{in: 1500, want: "1.5K chars"},
		{in: 999_949, want: "999.9K chars"},
		{in: 2_300_000, want: "2.3M chars"},
	}

	for _, tc := range tests {
		if got := FormatChars(tc.in); got != tc.want {
			t.Fatalf("FormatChars(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
