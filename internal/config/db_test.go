package config

import "testing"

func TestEnsureParseTime(t *testing.T) {
	cases := []struct {
		name string
		dsn  string
		want string
	}{
		{"bare dsn", "user:pw@tcp(localhost:3306)/tiketi",
			"user:pw@tcp(localhost:3306)/tiketi?parseTime=true"},
		{"existing params", "user:pw@tcp(localhost:3306)/tiketi?charset=utf8mb4",
			"user:pw@tcp(localhost:3306)/tiketi?charset=utf8mb4&parseTime=true"},
		{"already set", "user:pw@tcp(localhost:3306)/tiketi?parseTime=true",
			"user:pw@tcp(localhost:3306)/tiketi?parseTime=true"},
		{"already set false", "user:pw@tcp(localhost:3306)/tiketi?parseTime=false",
			"user:pw@tcp(localhost:3306)/tiketi?parseTime=false"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ensureParseTime(tc.dsn); got != tc.want {
				t.Fatalf("ensureParseTime(%q) = %q, want %q", tc.dsn, got, tc.want)
			}
		})
	}
}
